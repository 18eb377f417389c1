package outbound

import (
	"audiobook-generation-api/domain"
	"context"
)

// JobRecorderPort is the durable status store the pipeline writes to. Updates
// are partial: only the fields set on the JobUpdate are written. Concurrent
// updates to independent job ids must be safe; no multi-job transactional
// guarantees are required.
type JobRecorderPort interface {
	Create(ctx context.Context, job domain.Job) error
	Update(ctx context.Context, jobID string, update domain.JobUpdate) error
	Get(ctx context.Context, jobID string) (domain.JobRecord, error)
}
