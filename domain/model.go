package domain

type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobReady      JobStatus = "ready"
	JobFailed     JobStatus = "failed"
)

// Terminal reports whether no further transition may leave this status.
func (s JobStatus) Terminal() bool {
	return s == JobReady || s == JobFailed
}

// VoiceReference identifies the voice the synthesis backend should reproduce.
// Either SampleURL points at a fetchable audio sample, or VideoID names an
// external video from which the ClipStart..ClipEnd range is extracted.
type VoiceReference struct {
	SampleURL string
	VideoID   string
	ClipStart float64
	ClipEnd   float64
}

func (v VoiceReference) Empty() bool {
	return v.SampleURL == "" && v.VideoID == ""
}

// Job holds the immutable inputs of one document-to-audiobook conversion.
// Mutable lifecycle state lives in the job record and is written only through
// JobUpdate values.
type Job struct {
	ID           string
	DocumentPath string
	Title        string
	VoiceLabel   string
	Voice        VoiceReference
}

func NewJob(id string, documentPath string, title string, voiceLabel string, voice VoiceReference) Job {
	return Job{
		ID:           id,
		DocumentPath: documentPath,
		Title:        title,
		VoiceLabel:   voiceLabel,
		Voice:        voice,
	}
}

type TextSegment struct {
	Index int
	Text  string
}

// AudioSegment is the synthesis output for one TextSegment. It is consumed
// exactly once by the concatenation step and never persisted individually.
type AudioSegment struct {
	Index   int
	Content []byte
}

// JobRecord is the externally readable status of a job.
type JobRecord struct {
	ID             string
	Title          string
	VoiceLabel     string
	Status         JobStatus
	Progress       int
	ErrorMessage   string
	OutputLocation string
}

// JobUpdate is a partial write to a job record; only non-nil fields are
// written. Values are built through the constructors below so that a ready
// record without an output location, or a failed record carrying one, cannot
// be expressed.
type JobUpdate struct {
	Status         *JobStatus
	Progress       *int
	ErrorMessage   *string
	OutputLocation *string
}

// Apply folds a partial update into the record, mirroring what a recorder
// write with the same update persists.
func (r *JobRecord) Apply(update JobUpdate) {
	if update.Status != nil {
		r.Status = *update.Status
	}
	if update.Progress != nil {
		r.Progress = *update.Progress
	}
	if update.ErrorMessage != nil {
		r.ErrorMessage = *update.ErrorMessage
	}
	if update.OutputLocation != nil {
		r.OutputLocation = *update.OutputLocation
	}
}

// Processing marks the job in flight at the given progress, clamped to [0,99].
func Processing(progress int) JobUpdate {
	if progress < 0 {
		progress = 0
	}
	if progress > 99 {
		progress = 99
	}
	status := JobProcessing
	return JobUpdate{
		Status:   &status,
		Progress: &progress,
	}
}

// Ready is the successful terminal write: progress 100 and the output
// location, always together.
func Ready(outputLocation string) JobUpdate {
	status := JobReady
	progress := 100
	return JobUpdate{
		Status:         &status,
		Progress:       &progress,
		OutputLocation: &outputLocation,
	}
}

// Failed is the failing terminal write: a message and never an output
// location.
func Failed(message string) JobUpdate {
	status := JobFailed
	return JobUpdate{
		Status:       &status,
		ErrorMessage: &message,
	}
}
