package adapters

import (
	"audiobook-generation-api/application/ports/outbound"
	"audiobook-generation-api/domain"
	"encoding/json"
	"github.com/donovanhide/eventsource"
	"net/http"
	"strconv"
	"sync/atomic"
)

type jobStatusEvent struct {
	id     string
	record domain.JobRecord
}

func (e *jobStatusEvent) Id() string    { return e.id }
func (e *jobStatusEvent) Event() string { return "status" }

func (e *jobStatusEvent) Data() string {
	payload, err := json.Marshal(map[string]interface{}{
		"job_id":          e.record.ID,
		"status":          e.record.Status,
		"progress":        e.record.Progress,
		"error":           e.record.ErrorMessage,
		"output_location": e.record.OutputLocation,
	})
	if err != nil {
		return "{}"
	}
	return string(payload)
}

// EventsourceStatusNotifier broadcasts job status updates over server-sent
// events, one channel per job id. Subscribers that lag or disconnect never
// affect the job.
type EventsourceStatusNotifier struct {
	server  *eventsource.Server
	eventID int64
}

func NewEventsourceStatusNotifier() *EventsourceStatusNotifier {
	server := eventsource.NewServer()
	server.AllowCORS = true

	return &EventsourceStatusNotifier{
		server: server,
	}
}

func (n *EventsourceStatusNotifier) Notify(jobID string, record domain.JobRecord) {
	n.server.Publish([]string{jobID}, &jobStatusEvent{
		id:     strconv.FormatInt(atomic.AddInt64(&n.eventID, 1), 10),
		record: record,
	})
}

// Handler serves the SSE subscription stream for one job id.
func (n *EventsourceStatusNotifier) Handler(jobID string) http.HandlerFunc {
	return n.server.Handler(jobID)
}

func (n *EventsourceStatusNotifier) Close() {
	n.server.Close()
}

var _ outbound.StatusNotifierPort = (*EventsourceStatusNotifier)(nil)
