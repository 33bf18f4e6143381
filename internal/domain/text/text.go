// Package text holds the string primitives shared by the lexical pipeline:
// markup cleaning, word splitting and sentence splitting.
package text

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	tagPattern       = regexp.MustCompile(`<[^>]+>`)
	sentenceBoundary = regexp.MustCompile(`[.!?]+`)
)

// Clean strips angle-bracket tags, collapses whitespace runs into a single
// space and trims the result. HTML entities are left untouched.
func Clean(raw string) string {
	stripped := tagPattern.ReplaceAllString(raw, "")
	return strings.Join(strings.Fields(stripped), " ")
}

// Words splits s on runs of whitespace.
func Words(s string) []string {
	return strings.Fields(s)
}

// Sentences splits s on runs of '.', '!' and '?'.
// Pieces are returned untrimmed and empty pieces are kept, so "a. b." yields
// ["a", " b", ""]. Callers trim and filter as they need.
func Sentences(s string) []string {
	return sentenceBoundary.Split(s, -1)
}

// Runes returns the length of s in code points.
func Runes(s string) int {
	return utf8.RuneCountInString(s)
}

// Prefix returns the first n code points of s.
func Prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
