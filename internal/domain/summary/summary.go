// Package summary picks representative sentences from a text.
package summary

import (
	"strings"

	"github.com/kailas-cloud/docrag/internal/domain/text"
)

// EmptyMessage is returned when no sentence is long enough to summarize.
const EmptyMessage = "The document appears to be empty or too short to summarize."

// minSentenceRunes is the length a trimmed sentence must exceed to be kept.
const minSentenceRunes = 20

// Summarize returns up to three sentences of s joined with spaces and
// terminated with a period. With more than three candidate sentences it takes
// the first, the one at index count/2 and the last.
func Summarize(s string) string {
	sentences := candidates(s)
	if len(sentences) == 0 {
		return EmptyMessage
	}

	if len(sentences) <= 3 {
		return strings.Join(sentences, " ") + "."
	}

	picked := []string{
		sentences[0],
		sentences[len(sentences)/2],
		sentences[len(sentences)-1],
	}
	return strings.Join(picked, " ") + "."
}

func candidates(s string) []string {
	var out []string
	for _, raw := range text.Sentences(s) {
		if sent := strings.TrimSpace(raw); text.Runes(sent) > minSentenceRunes {
			out = append(out, sent)
		}
	}
	return out
}
