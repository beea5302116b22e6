package types

// CreateStudentRequest is the body of POST /students.
type CreateStudentRequest struct {
	// Required unique student name.
	// example: Alice
	Name string `json:"name" example:"Alice"`
}

// CreateStudentResponse is returned by POST /students.
type CreateStudentResponse struct {
	// example: 1
	StudentID int64 `json:"student_id" example:"1"`
	// example: Alice
	Name string `json:"name" example:"Alice"`
}

// StudentsResponse wraps the list returned by GET /students.
type StudentsResponse struct {
	Students []Student `json:"students"`
}

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	// Student the text belongs to.
	// example: 1
	StudentID int64 `json:"student_id" example:"1"`
	// Text to correct.
	// example: She go to store.
	Text string `json:"text" example:"She go to store."`
}

// ErrorItem describes one changed span in an analysis.
type ErrorItem struct {
	// example: go
	OriginalSpan string `json:"original_span" example:"go"`
	// example: goes
	CorrectedSpan string `json:"corrected_span" example:"goes"`
	// example: Verb Tense Error
	ErrorType string `json:"error_type" example:"Verb Tense Error"`
}

// AnalyzeResponse is returned by POST /analyze.
type AnalyzeResponse struct {
	// ULID identifying this submission.
	// example: 01HZX3J5W4V6Q8M9N0P1R2S3T4
	SubmissionID string `json:"submission_id,omitempty" example:"01HZX3J5W4V6Q8M9N0P1R2S3T4"`
	// example: She go to store.
	OriginalText string `json:"original_text" example:"She go to store."`
	// example: She goes to the store.
	CorrectedText string `json:"corrected_text" example:"She goes to the store."`
	// Changed spans in original order.
	Errors []ErrorItem `json:"errors"`
}

// FeedbackResponse is returned by GET /students/{id}/feedback.
type FeedbackResponse struct {
	// Human readable advice; lines are separated by "\n".
	// example: No errors recorded. Great job!
	Feedback string `json:"feedback" example:"No errors recorded. Great job!"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: Student not found.
	Error string `json:"error" example:"Student not found."`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
	// Same message as Error, under the key browser clients read.
	// example: Student not found.
	Detail string `json:"detail" example:"Student not found."`
}

// BackendStatus describes one configured model backend.
type BackendStatus struct {
	// Task served: correction or classification.
	// example: correction
	Task string `json:"task" example:"correction"`
	// Backend kind.
	// example: hf
	Backend string `json:"backend" example:"hf"`
	// Model name passed to the backend.
	// example: vennify/t5-base-grammar-correction
	Model string `json:"model" example:"vennify/t5-base-grammar-correction"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Overall analyzer state (ready, degraded, error).
	// example: ready
	State string `json:"state" example:"ready"`
	// Configured model backends.
	Backends []BackendStatus `json:"backends"`
	// Error labels in classifier id order.
	Labels []string `json:"labels"`
	// Analyses waiting for an in-flight slot.
	// example: 0
	QueueLen int `json:"queue_len" example:"0"`
	// Analyses currently calling the models.
	// example: 1
	Inflight int `json:"inflight" example:"1"`
	// Maximum queued analyses before backpressure triggers.
	// example: 32
	MaxQueueDepth int `json:"max_queue_depth" example:"32"`
	// Total analyses completed.
	// example: 12
	AnalysesTotal uint64 `json:"analyses_total" example:"12"`
	// Analyses answered from the cache.
	// example: 3
	CacheHitsTotal uint64 `json:"cache_hits_total" example:"3"`
	// Whether the analysis cache is enabled.
	// example: true
	CacheEnabled bool `json:"cache_enabled" example:"true"`
	// Last backend error observed (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
