package services

import (
	"audiobook-generation-api/application/ports/outbound"
	"audiobook-generation-api/domain"
	"audiobook-generation-api/infrastructure/adapters"
	"context"
	"errors"
	"fmt"
	"testing"
)

type stubSynthesisBackend struct {
	result   outbound.SynthesisResult
	err      error
	requests []outbound.SynthesizeRequest
}

func (s *stubSynthesisBackend) Synthesize(_ context.Context, req outbound.SynthesizeRequest) (outbound.SynthesisResult, error) {
	s.requests = append(s.requests, req)
	return s.result, s.err
}

type stubResultFetcher struct {
	payload []byte
	err     error
	urls    []string
}

func (s *stubResultFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	s.urls = append(s.urls, url)
	return s.payload, s.err
}

func TestSegmentSynthesizer_InlineAudio(t *testing.T) {
	backend := &stubSynthesisBackend{result: outbound.SynthesisResult{Audio: []byte("wav bytes")}}
	fetcher := &stubResultFetcher{}
	synthesizer := NewSegmentSynthesizer(adapters.NewZerologWrapper(), backend, fetcher)

	audio, err := synthesizer.Synthesize(context.Background(), domain.TextSegment{Index: 3, Text: "Hello."}, "https://cdn.example.com/voice.mp3")
	if err != nil {
		t.Fatal("Failed to synthesize segment:", err)
	}

	if audio.Index != 3 {
		t.Fatalf("Expected index 3, got %d", audio.Index)
	}
	if string(audio.Content) != "wav bytes" {
		t.Fatalf("Unexpected audio content: %q", audio.Content)
	}
	if len(fetcher.urls) != 0 {
		t.Fatal("Inline audio should not trigger a result fetch")
	}
}

func TestSegmentSynthesizer_RemoteResult(t *testing.T) {
	backend := &stubSynthesisBackend{result: outbound.SynthesisResult{ResultURL: "https://results.example.com/out.wav"}}
	fetcher := &stubResultFetcher{payload: []byte("fetched bytes")}
	synthesizer := NewSegmentSynthesizer(adapters.NewZerologWrapper(), backend, fetcher)

	audio, err := synthesizer.Synthesize(context.Background(), domain.TextSegment{Index: 0, Text: "Hello."}, "voice-url")
	if err != nil {
		t.Fatal("Failed to synthesize segment:", err)
	}

	if string(audio.Content) != "fetched bytes" {
		t.Fatalf("Unexpected audio content: %q", audio.Content)
	}
	if len(fetcher.urls) != 1 || fetcher.urls[0] != "https://results.example.com/out.wav" {
		t.Fatalf("Unexpected fetched urls: %v", fetcher.urls)
	}
}

func TestSegmentSynthesizer_BackendFailure(t *testing.T) {
	backend := &stubSynthesisBackend{err: fmt.Errorf("connection refused")}
	synthesizer := NewSegmentSynthesizer(adapters.NewZerologWrapper(), backend, &stubResultFetcher{})

	_, err := synthesizer.Synthesize(context.Background(), domain.TextSegment{Index: 1, Text: "Hello."}, "voice-url")
	if !errors.Is(err, domain.ErrBackendInvocation) {
		t.Fatalf("Expected a backend invocation error, got %v", err)
	}
}

func TestSegmentSynthesizer_ResultFetchFailure(t *testing.T) {
	backend := &stubSynthesisBackend{result: outbound.SynthesisResult{ResultURL: "https://results.example.com/out.wav"}}
	fetcher := &stubResultFetcher{err: fmt.Errorf("timeout")}
	synthesizer := NewSegmentSynthesizer(adapters.NewZerologWrapper(), backend, fetcher)

	_, err := synthesizer.Synthesize(context.Background(), domain.TextSegment{Index: 1, Text: "Hello."}, "voice-url")
	if !errors.Is(err, domain.ErrResultFetch) {
		t.Fatalf("Expected a result fetch error, got %v", err)
	}
	if errors.Is(err, domain.ErrBackendInvocation) {
		t.Fatal("A fetch failure must not classify as a backend invocation failure")
	}
}

func TestSegmentSynthesizer_EmptyPayload(t *testing.T) {
	backend := &stubSynthesisBackend{}
	synthesizer := NewSegmentSynthesizer(adapters.NewZerologWrapper(), backend, &stubResultFetcher{})

	_, err := synthesizer.Synthesize(context.Background(), domain.TextSegment{Index: 0, Text: "Hello."}, "voice-url")
	if !errors.Is(err, domain.ErrBackendInvocation) {
		t.Fatalf("Expected a backend invocation error for an empty payload, got %v", err)
	}
}

func TestSegmentSynthesizer_RejectsBlankSegment(t *testing.T) {
	backend := &stubSynthesisBackend{result: outbound.SynthesisResult{Audio: []byte("x")}}
	synthesizer := NewSegmentSynthesizer(adapters.NewZerologWrapper(), backend, &stubResultFetcher{})

	_, err := synthesizer.Synthesize(context.Background(), domain.TextSegment{Index: 0, Text: "  "}, "voice-url")
	if !errors.Is(err, domain.ErrBackendInvocation) {
		t.Fatalf("Expected a backend invocation error, got %v", err)
	}
	if len(backend.requests) != 0 {
		t.Fatal("A blank segment must not reach the backend")
	}
}
