package dto

type CreateJobRequest struct {
	DocumentPath   string  `json:"document_path" binding:"required"`
	Title          string  `json:"title"`
	VoiceLabel     string  `json:"voice_label"`
	VoiceSampleURL string  `json:"voice_sample_url"`
	VideoID        string  `json:"video_id"`
	ClipStart      float64 `json:"clip_start"`
	ClipEnd        float64 `json:"clip_end"`
}

type CreateJobResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type JobStatusResponse struct {
	JobID          string `json:"job_id"`
	Status         string `json:"status"`
	Progress       int    `json:"progress"`
	Error          string `json:"error,omitempty"`
	OutputLocation string `json:"output_location,omitempty"`
}
