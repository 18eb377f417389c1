package services

import (
	"regexp"
	"strings"
	"testing"
)

func TestTextChunker_Split(t *testing.T) {
	chunker := NewTextChunker()

	segments := chunker.Split("Hello world. This is a test. Goodbye now.", 15)

	expected := []string{"Hello world.", "This is a test.", "Goodbye now."}
	if len(segments) != len(expected) {
		t.Fatalf("Expected %d segments, got %d: %v", len(expected), len(segments), segments)
	}
	for i, segment := range segments {
		if segment != expected[i] {
			t.Fatalf("Segment %d: expected %q, got %q", i, expected[i], segment)
		}
	}
}

func TestTextChunker_SplitPacksSentences(t *testing.T) {
	chunker := NewTextChunker()

	segments := chunker.Split("One. Two. Three. Four.", 11)

	expected := []string{"One. Two.", "Three.", "Four."}
	if len(segments) != len(expected) {
		t.Fatalf("Expected %d segments, got %d: %v", len(expected), len(segments), segments)
	}
	for i, segment := range segments {
		if segment != expected[i] {
			t.Fatalf("Segment %d: expected %q, got %q", i, expected[i], segment)
		}
	}
}

func TestTextChunker_SplitIsLossless(t *testing.T) {
	chunker := NewTextChunker()
	whitespace := regexp.MustCompile(`\s+`)

	input := "First sentence here.  Second one!\nA third, question? And a trailing fragment without punctuation"
	normalized := strings.TrimSpace(whitespace.ReplaceAllString(input, " "))

	segments := chunker.Split(input, 30)

	rejoined := strings.Join(segments, " ")
	if rejoined != normalized {
		t.Fatalf("Rejoined segments differ from normalized input:\n%q\n%q", rejoined, normalized)
	}
	for i, segment := range segments {
		if segment == "" {
			t.Fatalf("Segment %d is empty", i)
		}
	}
}

func TestTextChunker_SplitIsDeterministic(t *testing.T) {
	chunker := NewTextChunker()

	input := "Alpha beta gamma. Delta epsilon? Zeta! Eta theta iota."
	first := chunker.Split(input, 20)
	second := chunker.Split(input, 20)

	if len(first) != len(second) {
		t.Fatalf("Two runs returned different segment counts: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Two runs differ at segment %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestTextChunker_OversizedSentenceStaysWhole(t *testing.T) {
	chunker := NewTextChunker()

	long := strings.Repeat("word ", 20) + "end."
	segments := chunker.Split("Short. "+long+" Tail.", 25)

	found := false
	for _, segment := range segments {
		if len(segment) > 25 {
			if !strings.Contains(segment, "end.") {
				t.Fatalf("Unexpected oversized segment: %q", segment)
			}
			found = true
		}
	}
	if !found {
		t.Fatal("Expected the oversized sentence to survive as its own segment")
	}
}

func TestTextChunker_SegmentsRespectBound(t *testing.T) {
	chunker := NewTextChunker()

	segments := chunker.Split("One two. Three four. Five six. Seven eight. Nine ten.", 12)

	for i, segment := range segments {
		if len(segment) > 12 {
			t.Fatalf("Segment %d exceeds the bound: %q", i, segment)
		}
	}
}

func TestTextChunker_TotalOnDegenerateInput(t *testing.T) {
	chunker := NewTextChunker()

	for _, input := range []string{"", "   ", "\n\t  \n"} {
		segments := chunker.Split(input, 10)
		if len(segments) != 1 {
			t.Fatalf("Input %q: expected exactly one segment, got %d", input, len(segments))
		}
		if segments[0] == "" {
			t.Fatalf("Input %q: degenerate segment is empty", input)
		}
	}
}

func TestTextChunker_DegenerateSegmentIsTruncated(t *testing.T) {
	chunker := NewTextChunker()

	segments := chunker.Split("          ", 4)
	if len(segments) != 1 {
		t.Fatalf("Expected one segment, got %d", len(segments))
	}
	if len(segments[0]) > 4 {
		t.Fatalf("Degenerate segment exceeds maxChars: %q", segments[0])
	}
}
