package services

import (
	"audiobook-generation-api/application/ports/inbound"
	"regexp"
	"strings"
)

type textChunker struct {
	boundaryRegexp   *regexp.Regexp
	whitespaceRegexp *regexp.Regexp
}

func NewTextChunker() inbound.TextChunkerPort {
	return &textChunker{
		boundaryRegexp:   regexp.MustCompile(`[.!?]\s+`),
		whitespaceRegexp: regexp.MustCompile(`\s+`),
	}
}

// Split packs sentence units greedily into segments of at most maxChars,
// joining sentences with a single space. A sentence ends after '.', '!' or
// '?' followed by whitespace; text without terminal punctuation is one
// sentence. A single sentence longer than maxChars becomes its own oversized
// segment rather than being subdivided.
func (t *textChunker) Split(text string, maxChars int) []string {
	if maxChars < 1 {
		maxChars = 1
	}

	segments := make([]string, 0)
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			segments = append(segments, current.String())
			current.Reset()
		}
	}

	for _, sentence := range t.sentences(text) {
		if current.Len() == 0 {
			current.WriteString(sentence)
			continue
		}
		if current.Len()+1+len(sentence) > maxChars {
			flush()
			current.WriteString(sentence)
			continue
		}
		current.WriteString(" ")
		current.WriteString(sentence)
	}
	flush()

	if len(segments) == 0 {
		return []string{t.degenerateSegment(text, maxChars)}
	}

	return segments
}

// sentences yields the whitespace-normalized, non-empty sentence units of the
// input in order.
func (t *textChunker) sentences(text string) []string {
	result := make([]string, 0)

	appendUnit := func(raw string) {
		unit := strings.TrimSpace(t.whitespaceRegexp.ReplaceAllString(raw, " "))
		if unit != "" {
			result = append(result, unit)
		}
	}

	start := 0
	for _, boundary := range t.boundaryRegexp.FindAllStringIndex(text, -1) {
		appendUnit(text[start : boundary[0]+1])
		start = boundary[1]
	}
	appendUnit(text[start:])

	return result
}

// degenerateSegment guarantees the pipeline never sees zero segments: for
// input with no usable sentences the first maxChars characters of the raw
// input form a single chunk. A fully empty input still yields one non-empty
// placeholder segment.
func (t *textChunker) degenerateSegment(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) > maxChars {
		runes = runes[:maxChars]
	}
	if len(runes) == 0 {
		return " "
	}
	return string(runes)
}
