package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type PipelineConfig struct {
	// MaxSegmentChars bounds one synthesis call: large enough to amortize
	// per-call overhead, small enough to bound per-call latency and memory.
	MaxSegmentChars int
	// Parallelism is the number of concurrent synthesis calls per job; 1
	// means strictly sequential.
	Parallelism int
	// JobTimeout bounds the whole job wall-clock time.
	JobTimeout time.Duration
	// ResultFetchTimeout bounds fetching one remote synthesis result.
	ResultFetchTimeout time.Duration
}

func GetPipelineConfig() (*PipelineConfig, error) {
	maxSegmentChars, err := intFromEnv("MAX_SEGMENT_CHARS", 3000)
	if err != nil {
		return nil, err
	}
	if maxSegmentChars < 1 {
		return nil, fmt.Errorf("MAX_SEGMENT_CHARS must be positive")
	}

	parallelism, err := intFromEnv("SYNTHESIS_PARALLELISM", 1)
	if err != nil {
		return nil, err
	}
	if parallelism < 1 {
		return nil, fmt.Errorf("SYNTHESIS_PARALLELISM must be positive")
	}

	jobTimeoutMinutes, err := intFromEnv("JOB_TIMEOUT_MINUTES", 40)
	if err != nil {
		return nil, err
	}

	resultFetchSeconds, err := intFromEnv("RESULT_FETCH_TIMEOUT_SECONDS", 120)
	if err != nil {
		return nil, err
	}

	return &PipelineConfig{
		MaxSegmentChars:    maxSegmentChars,
		Parallelism:        parallelism,
		JobTimeout:         time.Duration(jobTimeoutMinutes) * time.Minute,
		ResultFetchTimeout: time.Duration(resultFetchSeconds) * time.Second,
	}, nil
}

func intFromEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s", name)
	}
	return parsed, nil
}
