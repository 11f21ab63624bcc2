package services

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// normalizeDestination trims, collapses inner whitespace and title-cases a
// destination name ("  bir   billing" -> "Bir Billing").
func normalizeDestination(s string, tag language.Tag) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	if tag == language.Und {
		tag = language.English
	}
	return cases.Title(tag).String(s)
}

// normalizeTravelType lower-cases and trims a travel type tag.
func normalizeTravelType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
