package services

import (
	"audiobook-generation-api/application/ports/inbound"
	"audiobook-generation-api/application/ports/outbound"
	"audiobook-generation-api/domain"
	"context"
	"fmt"
	"strings"
)

type segmentSynthesizer struct {
	logger        outbound.LoggerPort
	backend       outbound.SynthesisBackendPort
	resultFetcher outbound.ResultFetcherPort
}

func NewSegmentSynthesizer(logger outbound.LoggerPort, backend outbound.SynthesisBackendPort,
	resultFetcher outbound.ResultFetcherPort) inbound.SegmentSynthesizerPort {
	return &segmentSynthesizer{
		logger:        logger,
		backend:       backend,
		resultFetcher: resultFetcher,
	}
}

// Synthesize invokes the backend once for the segment and normalizes the
// result into audio bytes. A backend that answers with a remote result URL is
// followed up with a bounded fetch; failures of that fetch are reported as
// domain.ErrResultFetch so the caller can attribute the error correctly,
// everything else as domain.ErrBackendInvocation.
func (s *segmentSynthesizer) Synthesize(ctx context.Context, segment domain.TextSegment, voiceSampleURL string) (domain.AudioSegment, error) {
	if strings.TrimSpace(segment.Text) == "" {
		return domain.AudioSegment{}, fmt.Errorf("%w: segment %d has no text", domain.ErrBackendInvocation, segment.Index)
	}
	if voiceSampleURL == "" {
		return domain.AudioSegment{}, fmt.Errorf("%w: segment %d has no voice sample", domain.ErrBackendInvocation, segment.Index)
	}

	result, err := s.backend.Synthesize(ctx, outbound.SynthesizeRequest{
		Text:           segment.Text,
		VoiceSampleURL: voiceSampleURL,
	})
	if err != nil {
		s.logger.ErrorWithFields(err, "Synthesis backend call failed", map[string]interface{}{
			"segment": segment.Index,
		})
		return domain.AudioSegment{}, fmt.Errorf("%w: segment %d: %v", domain.ErrBackendInvocation, segment.Index, err)
	}

	content, err := s.normalize(ctx, segment.Index, result)
	if err != nil {
		return domain.AudioSegment{}, err
	}

	return domain.AudioSegment{
		Index:   segment.Index,
		Content: content,
	}, nil
}

func (s *segmentSynthesizer) normalize(ctx context.Context, index int, result outbound.SynthesisResult) ([]byte, error) {
	if len(result.Audio) > 0 {
		return result.Audio, nil
	}

	if result.ResultURL == "" {
		return nil, fmt.Errorf("%w: segment %d returned neither audio nor a result location", domain.ErrBackendInvocation, index)
	}

	payload, err := s.resultFetcher.Fetch(ctx, result.ResultURL)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to fetch synthesis result", map[string]interface{}{
			"segment": index,
			"url":     result.ResultURL,
		})
		return nil, fmt.Errorf("%w: segment %d: %v", domain.ErrResultFetch, index, err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: segment %d result at %s is empty", domain.ErrResultFetch, index, result.ResultURL)
	}

	return payload, nil
}
