package relevance

import (
	"reflect"
	"testing"
)

// Each word below is 9 characters, so with ChunkSize 10 every word is its own chunk.
const fourChunks = "alphaword betaword1 gammaword deltaword"

func TestScore(t *testing.T) {
	tests := []struct {
		chunk, query string
		want         int
	}{
		{"the cat sat on the mat", "the cat", 2},
		{"the cat sat on the mat", "THE CAT", 2},
		{"the cat sat", "the the the", 1},
		{"cats", "cat", 0},
		{"what is a fox?", "fox", 0},
		{"", "anything", 0},
		{"anything", "", 0},
	}
	for _, tc := range tests {
		if got := Score(tc.chunk, tc.query); got != tc.want {
			t.Errorf("Score(%q, %q) = %d, want %d", tc.chunk, tc.query, got, tc.want)
		}
	}
}

func TestScoreAll_CaseInvariant(t *testing.T) {
	s := NewScorer()
	doc := "Go is a statically typed language. It compiles quickly."
	lower := s.ScoreAll(doc, "go language compiles")
	upper := s.ScoreAll(doc, "GO LANGUAGE COMPILES")
	if !reflect.DeepEqual(lower, upper) {
		t.Errorf("scores differ by query case: %v vs %v", lower, upper)
	}
}

func TestRank_DescendingStable(t *testing.T) {
	s := &Scorer{TopK: 3, ChunkSize: 10}
	got := s.Rank(fourChunks, "gammaword betaword1 deltaword")
	// All three matching chunks score 1: ties keep document order.
	want := []string{"betaword1", "gammaword", "deltaword"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRank_HigherScoreFirst(t *testing.T) {
	s := &Scorer{TopK: 3, ChunkSize: 20}
	doc := "apple banana cherry apple kiwi mango"
	// chunks: "apple banana cherry" (6+7+7 reaches 20), "apple kiwi mango"
	got := s.Rank(doc, "kiwi mango apple")
	want := []string{"apple kiwi mango", "apple banana cherry"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRank_TopKLimit(t *testing.T) {
	s := &Scorer{TopK: 2, ChunkSize: 10}
	got := s.Rank(fourChunks, "alphaword betaword1 gammaword deltaword")
	want := []string{"alphaword", "betaword1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRank_SliceThenFilter(t *testing.T) {
	// Only the fourth chunk matches; after the stable sort it is ranked first.
	s := &Scorer{TopK: 3, ChunkSize: 10, Ordering: SliceThenFilter}
	got := s.Rank(fourChunks, "deltaword")
	if !reflect.DeepEqual(got, []string{"deltaword"}) {
		t.Errorf("got %q", got)
	}

	// With TopK 1 and two positive chunks, only the first ranked is kept.
	s.TopK = 1
	got = s.Rank(fourChunks, "deltaword alphaword")
	if !reflect.DeepEqual(got, []string{"alphaword"}) {
		t.Errorf("got %q", got)
	}
}

func TestRank_ZeroScoresDropped(t *testing.T) {
	for _, ord := range []Ordering{SliceThenFilter, FilterThenSlice} {
		s := &Scorer{TopK: 3, ChunkSize: 10, Ordering: ord}
		got := s.Rank(fourChunks, "nothing matches")
		if got == nil || len(got) != 0 {
			t.Errorf("%s: expected empty non-nil list, got %#v", ord, got)
		}
	}
}

func TestRank_OrderingsAgree(t *testing.T) {
	// The ranked list is sorted by descending score, so every zero score
	// trails every positive one and both orderings select the same chunks.
	docs := []string{
		fourChunks,
		"red blue aaaaaaaa bbbbbbbb cccccccc green",
		"green zzzzzzzz yyyyyyyy xxxxxxxx red blue",
	}
	queries := []string{"red blue green", "deltaword", "alphaword zzzzzzzz", "none"}

	for _, doc := range docs {
		for _, q := range queries {
			for _, k := range []int{1, 2, 3, 5} {
				slice := &Scorer{TopK: k, ChunkSize: 10, Ordering: SliceThenFilter}
				filter := &Scorer{TopK: k, ChunkSize: 10, Ordering: FilterThenSlice}
				a, b := slice.Rank(doc, q), filter.Rank(doc, q)
				if !reflect.DeepEqual(a, b) {
					t.Errorf("doc %q query %q k=%d: %q != %q", doc, q, k, a, b)
				}
			}
		}
	}
}

func TestRank_Empty(t *testing.T) {
	s := NewScorer()
	if got := s.Rank("", "query"); len(got) != 0 {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestParseOrdering(t *testing.T) {
	tests := []struct {
		in      string
		want    Ordering
		wantErr bool
	}{
		{"", SliceThenFilter, false},
		{"slice_then_filter", SliceThenFilter, false},
		{"filter_then_slice", FilterThenSlice, false},
		{"random", "", true},
	}
	for _, tc := range tests {
		got, err := ParseOrdering(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseOrdering(%q): err = %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseOrdering(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFingerprint(t *testing.T) {
	a := NewScorer()
	b := &Scorer{TopK: 5, ChunkSize: 500, Ordering: SliceThenFilter}
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("different TopK should give different fingerprints")
	}
	if got := a.Fingerprint(); got != "k=3;size=500;ordering=slice_then_filter" {
		t.Errorf("unexpected fingerprint %q", got)
	}
}
