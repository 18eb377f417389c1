package adapters

import (
	"audiobook-generation-api/application/ports/outbound"
	"context"
)

// mockTTSBackend answers every synthesis call with a fixed placeholder
// payload, for running the service without a GPU inference endpoint.
type mockTTSBackend struct {
	logger outbound.LoggerPort
}

func NewMockTTSBackend(logger outbound.LoggerPort) outbound.SynthesisBackendPort {
	return &mockTTSBackend{
		logger: logger,
	}
}

func (m *mockTTSBackend) Synthesize(_ context.Context, req outbound.SynthesizeRequest) (outbound.SynthesisResult, error) {
	m.logger.DebugWithFields("Mock synthesis call", map[string]interface{}{
		"chars": len(req.Text),
	})
	return outbound.SynthesisResult{Audio: []byte("mock audio content")}, nil
}
