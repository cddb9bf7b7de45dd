package models

import "time"

// JobState represents the lifecycle state of a processing job
type JobState string

const (
	JobStateQueued     JobState = "queued"
	JobStateProcessing JobState = "processing"
	JobStateCompleted  JobState = "completed"
	JobStateFailed     JobState = "failed"
	JobStateCancelled  JobState = "cancelled"
)

// IsTerminal reports whether the state admits no further transitions
func (s JobState) IsTerminal() bool {
	switch s {
	case JobStateCompleted, JobStateFailed, JobStateCancelled:
		return true
	}
	return false
}

// Error types recorded on failed jobs
const (
	ErrorTypeTimeout    = "timeout"
	ErrorTypeProcessing = "processing_error"
)

// ProcessingOptions are per-job overrides supplied at enqueue time
type ProcessingOptions struct {
	ProcessingTier   string   `json:"processing_tier,omitempty"`
	Languages        []string `json:"languages,omitempty"`
	ForceFullPageOCR bool     `json:"force_full_page_ocr,omitempty"`
	TimeoutSeconds   *int     `json:"timeout_seconds,omitempty"`
}

// ProcessingMetadata describes a completed conversion
type ProcessingMetadata struct {
	PageCount        int    `json:"page_count"`
	FilePath         string `json:"file_path,omitempty"`
	ProcessingTier   string `json:"processing_tier"`
	Format           string `json:"format"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
	OCREngine        string `json:"ocr_engine"`
}

// ProcessingResult is the conversion engine's report for one document.
// Status is "success" or "error"; engine-level failures arrive as an error
// status rather than a Go error so the worker can record them on the job.
type ProcessingResult struct {
	Status   string              `json:"status"`
	Markdown string              `json:"markdown,omitempty"`
	Metadata *ProcessingMetadata `json:"metadata,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// Job is the central record tracked by the orchestrator. The orchestrator's
// mutex guards every field; handlers only ever see copies.
type Job struct {
	ID               string             `json:"job_id"`
	FilePath         string             `json:"file_path"`
	Options          ProcessingOptions  `json:"-"`
	State            JobState           `json:"status"`
	Progress         int                `json:"progress"`
	Result           *ProcessingResult  `json:"result,omitempty"`
	Error            string             `json:"error,omitempty"`
	ErrorType        string             `json:"error_type,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	StartedAt        *time.Time         `json:"started_at,omitempty"`
	CompletedAt      *time.Time         `json:"completed_at,omitempty"`
	TraceID          string             `json:"trace_id,omitempty"`
	CorrelationID    string             `json:"correlation_id,omitempty"`
	MemoryRSSStartMB *float64           `json:"memory_rss_start_mb,omitempty"`
	MemoryRSSEndMB   *float64           `json:"memory_rss_end_mb,omitempty"`
}

// Clone returns a deep copy safe to hand outside the orchestrator's lock
func (j *Job) Clone() *Job {
	clone := *j

	if j.StartedAt != nil {
		t := *j.StartedAt
		clone.StartedAt = &t
	}
	if j.CompletedAt != nil {
		t := *j.CompletedAt
		clone.CompletedAt = &t
	}
	if j.MemoryRSSStartMB != nil {
		v := *j.MemoryRSSStartMB
		clone.MemoryRSSStartMB = &v
	}
	if j.MemoryRSSEndMB != nil {
		v := *j.MemoryRSSEndMB
		clone.MemoryRSSEndMB = &v
	}
	if j.Options.TimeoutSeconds != nil {
		v := *j.Options.TimeoutSeconds
		clone.Options.TimeoutSeconds = &v
	}
	if len(j.Options.Languages) > 0 {
		clone.Options.Languages = make([]string, len(j.Options.Languages))
		copy(clone.Options.Languages, j.Options.Languages)
	}
	if j.Result != nil {
		result := *j.Result
		if j.Result.Metadata != nil {
			metadata := *j.Result.Metadata
			result.Metadata = &metadata
		}
		clone.Result = &result
	}

	return &clone
}
