// Package analysis computes word and sentence statistics over cleaned text.
package analysis

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/docrag/internal/domain/text"
)

const (
	topWordsLimit = 10
	minWordRunes  = 3
	trimChars     = ".,!?;:"
)

// WordCount is a word and the number of times it occurs.
type WordCount struct {
	Word  string
	Count int
}

// Report holds document statistics.
type Report struct {
	WordCount         int
	SentenceCount     int
	CharacterCount    int
	AverageWordLength float64
	TopWords          []WordCount
}

// Analyze computes statistics over s.
//
// TopWords lists up to ten words longer than three characters after
// lower-casing and trimming surrounding punctuation. Higher counts come
// first; equal counts keep the order in which the words first appear.
func Analyze(s string) Report {
	words := text.Words(s)

	sentences := 0
	for _, sent := range text.Sentences(s) {
		if strings.TrimSpace(sent) != "" {
			sentences++
		}
	}

	var avg float64
	if len(words) > 0 {
		total := 0
		for _, w := range words {
			total += text.Runes(w)
		}
		avg = float64(total) / float64(len(words))
	}

	return Report{
		WordCount:         len(words),
		SentenceCount:     sentences,
		CharacterCount:    text.Runes(s),
		AverageWordLength: avg,
		TopWords:          topWords(words),
	}
}

func topWords(words []string) []WordCount {
	index := make(map[string]int)
	freq := make([]WordCount, 0)
	for _, w := range words {
		norm := strings.Trim(strings.ToLower(w), trimChars)
		if text.Runes(norm) <= minWordRunes {
			continue
		}
		if i, ok := index[norm]; ok {
			freq[i].Count++
			continue
		}
		index[norm] = len(freq)
		freq = append(freq, WordCount{Word: norm, Count: 1})
	}

	sort.SliceStable(freq, func(i, j int) bool {
		return freq[i].Count > freq[j].Count
	})

	if len(freq) > topWordsLimit {
		freq = freq[:topWordsLimit]
	}
	return freq
}
