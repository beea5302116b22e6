package types

import "time"

// Student is a learner whose submissions are tracked.
type Student struct {
	// Database identifier.
	// example: 1
	ID int64 `json:"student_id" example:"1"`
	// Unique display name or username.
	// example: Alice
	Name string `json:"name" example:"Alice"`
	// Creation time (RFC 3339).
	CreatedAt time.Time `json:"created_at"`
}

// ErrorLog is one persisted error span from a single analysis.
type ErrorLog struct {
	// Database identifier.
	// example: 17
	ID int64 `json:"id" example:"17"`
	// Owning student.
	// example: 1
	StudentID int64 `json:"-"`
	// ULID shared by every row written for the same /analyze call.
	// example: 01HZX3J5W4V6Q8M9N0P1R2S3T4
	SubmissionID string `json:"submission_id,omitempty" example:"01HZX3J5W4V6Q8M9N0P1R2S3T4"`
	// Full text as submitted.
	// example: She go to store.
	OriginalText string `json:"original_text" example:"She go to store."`
	// Full text as corrected by the model.
	// example: She goes to the store.
	CorrectedText string `json:"corrected_text" example:"She goes to the store."`
	// Error label assigned by the classifier.
	// example: Verb Tense Error
	ErrorType string `json:"error_type" example:"Verb Tense Error"`
	// Changed tokens on the original side (may be empty for insertions).
	// example: go
	OriginalSpan string `json:"original_span" example:"go"`
	// Changed tokens on the corrected side (may be empty for deletions).
	// example: goes
	CorrectedSpan string `json:"corrected_span" example:"goes"`
	// Insert time.
	CreatedAt time.Time `json:"created_at"`
}
