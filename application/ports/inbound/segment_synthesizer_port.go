package inbound

import (
	"audiobook-generation-api/domain"
	"context"
)

// SegmentSynthesizerPort turns one text segment into audio bytes using the
// given voice sample. Retries are the caller's policy, not performed here.
type SegmentSynthesizerPort interface {
	Synthesize(ctx context.Context, segment domain.TextSegment, voiceSampleURL string) (domain.AudioSegment, error)
}
