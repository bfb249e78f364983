// Package textutil provides the text primitives behind fragrance name
// matching: match-key normalization, Levenshtein distance, and a composite
// similarity score.
//
// Normalization lowercases, strips diacritics, removes everything that is not
// a letter, digit, or space, and trims. Similarity prefers exact equality,
// then substring containment, then normalized edit distance, yielding a score
// in [0, 1].
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeMatchKey canonicalizes a string for fuzzy comparison: lowercase,
// diacritics stripped, non-alphanumeric characters (except spaces) removed.
func NormalizeMatchKey(value string) string {
	lowered := strings.ToLower(strings.TrimSpace(value))
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		stripped = lowered
	}
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// StripDiacritics removes combining marks without altering case or spacing.
func StripDiacritics(value string) string {
	stripped, _, err := transform.String(stripMarks, value)
	if err != nil {
		return value
	}
	return stripped
}

// TitleCase formats a free-text name for display.
func TitleCase(value string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(value))
}

// Similarity scores two normalized strings in [0, 1].
//
// Exact equality scores 1. Containment in either direction scores the length
// ratio of the shorter to the longer string. Anything else falls back to
// 1 - editDistance/maxLen.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		shorter, longer := len(a), len(b)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return float64(shorter) / float64(longer)
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return 1 - float64(Levenshtein(a, b))/float64(maxLen)
}

// Levenshtein computes the edit distance between two strings with unit costs
// for insertion, deletion, and substitution.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j-1]+cost, curr[j-1]+1, prev[j]+1)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
