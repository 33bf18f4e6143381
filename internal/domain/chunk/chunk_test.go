package chunk

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplit_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		if got := Split(in, DefaultSize); len(got) != 0 {
			t.Errorf("Split(%q): expected no chunks, got %q", in, got)
		}
	}
}

func TestSplit_ClosesOnLimit(t *testing.T) {
	// "aaaa" contributes 5, so the second word reaches 10 and closes the chunk.
	got := Split("aaaa bbbb cccc dddd e", 10)
	want := []string{"aaaa bbbb", "cccc dddd", "e"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSplit_TriggeringWordStaysInClosedChunk(t *testing.T) {
	got := Split("a b verylongword c", 8)
	want := []string{"a b verylongword", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSplit_OversizedWordIsOwnChunk(t *testing.T) {
	long := strings.Repeat("x", 600)
	got := Split(long+" tail", DefaultSize)
	want := []string{long, "tail"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %d chunks, want %d", len(got), len(want))
	}
}

func TestSplit_NoTrailingEmptyChunk(t *testing.T) {
	got := Split("abcd abcd", 10)
	if len(got) != 1 || got[0] != "abcd abcd" {
		t.Errorf("got %q", got)
	}
}

func TestSplit_MultibyteCountsCodePoints(t *testing.T) {
	// "ééé" is three code points (six bytes): 4 per word, closes after the third word.
	got := Split("ééé ééé ééé ééé", 12)
	want := []string{"ééé ééé ééé", "ééé"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSplit_NonPositiveSizeUsesDefault(t *testing.T) {
	in := strings.Repeat("word ", 200)
	if !reflect.DeepEqual(Split(in, 0), Split(in, DefaultSize)) {
		t.Error("size 0 should behave like DefaultSize")
	}
}

func TestSplit_TotalAndOrdered(t *testing.T) {
	inputs := []string{
		"The quick brown fox jumps over the lazy dog",
		strings.Repeat("lorem ipsum dolor sit amet consectetur ", 120),
		"one\ttwo\nthree   four",
	}
	for _, in := range inputs {
		for _, size := range []int{1, 7, 50, DefaultSize} {
			var words []string
			for _, c := range Split(in, size) {
				words = append(words, strings.Fields(c)...)
			}
			if !reflect.DeepEqual(words, strings.Fields(in)) {
				t.Errorf("size %d: chunks do not reproduce the word sequence", size)
			}
		}
	}
}
