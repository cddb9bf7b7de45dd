package schemas

// ProcessResponse acknowledges a single-document submission
type ProcessResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// BatchProcessResponse acknowledges a batch submission
type BatchProcessResponse struct {
	CorrelationID  string   `json:"correlation_id"`
	JobIDs         []string `json:"job_ids"`
	TotalDocuments int      `json:"total_documents"`
	Status         string   `json:"status"`
	TraceID        string   `json:"trace_id,omitempty"`
}

// CancelResponse acknowledges a successful cancellation
type CancelResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	TraceID string `json:"trace_id,omitempty"`
}

// HealthResponse reports service liveness and queue depth
type HealthResponse struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	ProcessingTier string `json:"processing_tier"`
	QueueSize      int    `json:"queue_size"`
	ActiveJobs     int    `json:"active_jobs"`
	TraceID        string `json:"trace_id,omitempty"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Detail  string `json:"detail"`
	TraceID string `json:"trace_id,omitempty"`
}
