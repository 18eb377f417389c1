package inbound

import (
	"audiobook-generation-api/domain"
	"context"
)

// AudiobookPipelinePort drives one job from queued to a terminal state. The
// job record is the sole channel for reporting the outcome: Run never panics
// and never leaves a job without a terminal write.
type AudiobookPipelinePort interface {
	Run(ctx context.Context, job domain.Job)
}
