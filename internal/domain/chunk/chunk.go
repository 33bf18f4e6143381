// Package chunk splits normalized text into word-bounded segments.
package chunk

import (
	"strings"

	"github.com/kailas-cloud/docrag/internal/domain/text"
)

// DefaultSize is the approximate character budget of a chunk.
const DefaultSize = 500

// Split greedily packs words into chunks. Each appended word adds its length
// plus one separator to the running length; once the running length reaches
// size the chunk is closed, including the word that crossed the limit.
// Leftover words form a final, possibly short, chunk. A size <= 0 selects
// DefaultSize.
func Split(s string, size int) []string {
	if size <= 0 {
		size = DefaultSize
	}

	var (
		chunks  []string
		current []string
		length  int
	)
	for _, w := range text.Words(s) {
		current = append(current, w)
		length += text.Runes(w) + 1

		if length >= size {
			chunks = append(chunks, strings.Join(current, " "))
			current = nil
			length = 0
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}
