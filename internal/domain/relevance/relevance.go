// Package relevance ranks document chunks against a query by shared vocabulary.
package relevance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/docrag/internal/domain/chunk"
	"github.com/kailas-cloud/docrag/internal/domain/text"
)

// DefaultTopK is the number of ranked chunks considered for a context list.
const DefaultTopK = 3

// Ordering decides whether zero-score chunks are dropped before or after the
// ranked list is cut to TopK.
type Ordering string

const (
	// SliceThenFilter cuts to TopK first and then drops zero scores, so a
	// positive chunk outside the window is never returned.
	SliceThenFilter Ordering = "slice_then_filter"
	// FilterThenSlice drops zero scores first and then cuts to TopK.
	FilterThenSlice Ordering = "filter_then_slice"
)

// ParseOrdering converts a config value into an Ordering. Empty selects SliceThenFilter.
func ParseOrdering(s string) (Ordering, error) {
	switch Ordering(s) {
	case "", SliceThenFilter:
		return SliceThenFilter, nil
	case FilterThenSlice:
		return FilterThenSlice, nil
	default:
		return "", fmt.Errorf("unknown ordering %q", s)
	}
}

// Scored pairs a chunk with its relevance score.
type Scored struct {
	Score int
	Chunk string
}

// Scorer ranks chunks of a document against a query.
type Scorer struct {
	TopK      int
	ChunkSize int
	Ordering  Ordering
}

// NewScorer returns a Scorer with the default window, chunk size and ordering.
func NewScorer() *Scorer {
	return &Scorer{TopK: DefaultTopK, ChunkSize: chunk.DefaultSize, Ordering: SliceThenFilter}
}

// Score counts distinct lower-cased query words that also occur in c.
func Score(c, query string) int {
	return overlap(wordSet(c), wordSet(query))
}

// ScoreAll chunks doc and scores every chunk against query, in chunk order.
func (s *Scorer) ScoreAll(doc, query string) []Scored {
	q := wordSet(query)
	chunks := chunk.Split(doc, s.ChunkSize)

	out := make([]Scored, len(chunks))
	for i, c := range chunks {
		out[i] = Scored{Score: overlap(wordSet(c), q), Chunk: c}
	}
	return out
}

// Rank returns the context list for query: chunks ordered by descending
// score, ties kept in document order, limited to TopK and to positive scores.
func (s *Scorer) Rank(doc, query string) []string {
	scored := s.ScoreAll(doc, query)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	topK := s.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	if s.Ordering == FilterThenSlice {
		scored = positive(scored)
		if len(scored) > topK {
			scored = scored[:topK]
		}
	} else {
		if len(scored) > topK {
			scored = scored[:topK]
		}
		scored = positive(scored)
	}

	out := make([]string, len(scored))
	for i, sc := range scored {
		out[i] = sc.Chunk
	}
	return out
}

func positive(scored []Scored) []Scored {
	filtered := scored[:0]
	for _, sc := range scored {
		if sc.Score > 0 {
			filtered = append(filtered, sc)
		}
	}
	return filtered
}

func wordSet(s string) map[string]struct{} {
	words := text.Words(strings.ToLower(s))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func overlap(a, b map[string]struct{}) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}

// Fingerprint identifies the ranking parameters, so cached context lists are
// never shared between differently configured scorers.
func (s *Scorer) Fingerprint() string {
	return fmt.Sprintf("k=%d;size=%d;ordering=%s", s.TopK, s.ChunkSize, s.Ordering)
}
