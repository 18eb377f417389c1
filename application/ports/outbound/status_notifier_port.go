package outbound

import (
	"audiobook-generation-api/domain"
)

// StatusNotifierPort pushes job status updates to realtime subscribers.
// Notifications are best-effort: a subscriber that lags or disconnects never
// affects the job.
type StatusNotifierPort interface {
	Notify(jobID string, record domain.JobRecord)
}
