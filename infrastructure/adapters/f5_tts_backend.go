package adapters

import (
	"audiobook-generation-api/application/ports/outbound"
	"audiobook-generation-api/config"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type f5Request struct {
	Text           string `json:"text"`
	VoiceSampleURL string `json:"voice_sample_url"`
	RefText        string `json:"ref_text"`
}

type f5ResponseBody struct {
	AudioURL string `json:"audio_url"`
	Output   string `json:"output"`
	URL      string `json:"url"`
}

type f5TTSBackend struct {
	logger    outbound.LoggerPort
	ttsConfig *config.TTSConfig
	client    *http.Client
}

// NewF5TTSBackend talks to an F5-TTS voice-cloning inference endpoint. The
// endpoint answers either with the audio payload inline, with a bare result
// URL, or with a JSON object naming the result URL; all three are passed
// through as a SynthesisResult for the caller to normalize.
func NewF5TTSBackend(logger outbound.LoggerPort, ttsConfig *config.TTSConfig) outbound.SynthesisBackendPort {
	return &f5TTSBackend{
		logger:    logger,
		ttsConfig: ttsConfig,
		client:    &http.Client{Timeout: ttsConfig.RequestTimeout},
	}
}

func (f *f5TTSBackend) Synthesize(ctx context.Context, req outbound.SynthesizeRequest) (outbound.SynthesisResult, error) {
	httpReq, err := f.getRequest(ctx, req)
	if err != nil {
		f.logger.ErrorWithFields(err, "Failed to construct the synthesis request", map[string]interface{}{
			"url": f.ttsConfig.ApiUrl,
		})
		return outbound.SynthesisResult{}, err
	}

	res, err := f.client.Do(httpReq)
	if err != nil {
		f.logger.Error(err, "Failed to call the synthesis backend")
		return outbound.SynthesisResult{}, err
	}

	defer func(body io.ReadCloser) {
		err := body.Close()
		if err != nil {
			f.logger.Error(err, "Failed to close the synthesis response body")
		}
	}(res.Body)

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		f.logger.Error(err, "Failed to read the synthesis response body")
		return outbound.SynthesisResult{}, err
	}

	if res.StatusCode != http.StatusOK {
		f.logger.ErrorWithFields(nil, "Synthesis backend returned non-OK status code", map[string]interface{}{
			"status":  res.StatusCode,
			"message": string(payload),
		})
		return outbound.SynthesisResult{}, fmt.Errorf("synthesis backend returned status %d", res.StatusCode)
	}

	return f.parseResponse(res.Header.Get("Content-Type"), payload)
}

func (f *f5TTSBackend) getRequest(ctx context.Context, req outbound.SynthesizeRequest) (*http.Request, error) {
	reqBody := f5Request{
		Text:           req.Text,
		VoiceSampleURL: req.VoiceSampleURL,
		RefText:        req.ReferenceTranscript,
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, f.ttsConfig.ApiUrl+"/generate", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Add("Content-Type", "application/json")
	if f.ttsConfig.ApiKey != "" {
		httpReq.Header.Add("Authorization", "Bearer "+f.ttsConfig.ApiKey)
	}

	return httpReq, nil
}

func (f *f5TTSBackend) parseResponse(contentType string, payload []byte) (outbound.SynthesisResult, error) {
	switch {
	case strings.HasPrefix(contentType, "audio/"), strings.HasPrefix(contentType, "application/octet-stream"):
		return outbound.SynthesisResult{Audio: payload}, nil

	case strings.HasPrefix(contentType, "application/json"):
		var body f5ResponseBody
		if err := json.Unmarshal(payload, &body); err != nil {
			return outbound.SynthesisResult{}, fmt.Errorf("unparseable synthesis response: %v", err)
		}
		resultURL := body.AudioURL
		if resultURL == "" {
			resultURL = body.Output
		}
		if resultURL == "" {
			resultURL = body.URL
		}
		if resultURL == "" {
			return outbound.SynthesisResult{}, fmt.Errorf("synthesis response names no result location")
		}
		return outbound.SynthesisResult{ResultURL: resultURL}, nil

	default:
		trimmed := strings.TrimSpace(string(payload))
		if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
			return outbound.SynthesisResult{ResultURL: trimmed}, nil
		}
		return outbound.SynthesisResult{}, fmt.Errorf("unusable synthesis response of type %q", contentType)
	}
}
