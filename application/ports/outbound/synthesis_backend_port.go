package outbound

import "context"

type SynthesizeRequest struct {
	Text string
	// VoiceSampleURL points at the reference audio whose voice the backend
	// should clone.
	VoiceSampleURL string
	// ReferenceTranscript is the transcript of the reference audio. Empty is
	// an accepted, common case.
	ReferenceTranscript string
}

// SynthesisResult carries exactly one of an inline payload or a remote result
// location, depending on what the backend returned.
type SynthesisResult struct {
	Audio     []byte
	ResultURL string
}

// SynthesisBackendPort is one call to the external inference service.
type SynthesisBackendPort interface {
	Synthesize(ctx context.Context, req SynthesizeRequest) (SynthesisResult, error)
}
