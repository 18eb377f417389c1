package outbound

import (
	"audiobook-generation-api/domain"
	"context"
)

// VoiceResolverPort resolves a voice reference to a single fetchable audio
// sample URL before synthesis begins.
type VoiceResolverPort interface {
	Resolve(ctx context.Context, jobID string, voice domain.VoiceReference) (string, error)
}
