package ml

import (
	"regexp"
	"strings"
)

var wordRE = regexp.MustCompile(`\p{L}+\p{N}*`)

var positiveWords = wordSet(
	"amazing", "awesome", "beautiful", "best", "enjoyed", "excellent",
	"fantastic", "good", "great", "love", "loved", "lovely", "nice",
	"peaceful", "perfect", "relaxing", "stunning", "wonderful",
)

var negativeWords = wordSet(
	"awful", "bad", "boring", "crowded", "dirty", "disappointing",
	"expensive", "hate", "horrible", "noisy", "overpriced", "poor",
	"rude", "terrible", "worst",
)

func wordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func tokenize(s string) []string {
	return wordRE.FindAllString(strings.ToLower(s), -1)
}

// Sentiment scores a free-text comment as the number of positive keyword
// occurrences minus the number of negative ones.
func Sentiment(comment string) float64 {
	score := 0
	for _, w := range tokenize(comment) {
		if _, ok := positiveWords[w]; ok {
			score++
		} else if _, ok := negativeWords[w]; ok {
			score--
		}
	}
	return float64(score)
}
