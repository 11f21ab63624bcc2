// Package utils holds small parsing helpers shared by the HTTP layer.
package utils

import (
	"math"
	"strconv"
)

// AtoiDefault parses s as a decimal int, returning def when s is empty or
// not a valid int. No whitespace trimming is done.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ParseID parses a positive numeric row id from a path segment. Zero,
// negatives and values beyond uint32 are rejected.
func ParseID(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 || n > math.MaxUint32 {
		return 0, false
	}
	return uint(n), true
}
