package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	F5Provider   = "f5"
	MockProvider = "mock"
)

type TTSConfig struct {
	Provider       string
	ApiUrl         string
	ApiKey         string
	RequestTimeout time.Duration
}

func GetTTSConfig() (*TTSConfig, error) {
	provider := os.Getenv("TTS_PROVIDER")
	if provider == "" {
		provider = F5Provider
	}
	if provider != F5Provider && provider != MockProvider {
		return nil, fmt.Errorf("unknown TTS_PROVIDER %q", provider)
	}

	apiUrl := os.Getenv("TTS_API_URL")
	if apiUrl == "" && provider != MockProvider {
		return nil, fmt.Errorf("TTS_API_URL must be set")
	}

	apiKey := os.Getenv("TTS_API_KEY")

	timeoutSeconds := 600
	if raw := os.Getenv("TTS_REQUEST_TIMEOUT_SECONDS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TTS_REQUEST_TIMEOUT_SECONDS")
		}
		timeoutSeconds = parsed
	}

	return &TTSConfig{
		Provider:       provider,
		ApiUrl:         apiUrl,
		ApiKey:         apiKey,
		RequestTimeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}
