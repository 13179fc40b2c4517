package model

import "time"

// Job represents a background job in the system
type Job struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Status      JobStatus  `json:"status"`
	Progress    int        `json:"progress"`
	CurrentStep string     `json:"currentStep,omitempty"`
	Error       *string    `json:"error,omitempty"`
	Payload     []byte     `json:"payload,omitempty"` // JSON, persisted with the record
	Result      []byte     `json:"result,omitempty"`  // JSON, persisted with the record
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	RetryCount  int        `json:"retryCount"`
}

// Job types
const (
	JobTypeSinging = "singing"
)

// SingingJobPayload contains the data for a singing render job
type SingingJobPayload struct {
	UserID  string                 `json:"userId"`
	Request SingingGenerateRequest `json:"request"`
}
