package model

import "time"

// SingingGenerateRequest represents the request body for singing generation
type SingingGenerateRequest struct {
	Lyrics               string   `json:"lyrics" validate:"required,min=1,max=2000"`
	Style                Style    `json:"style" validate:"omitempty,oneof=pop ballad jazz plain"`
	Mood                 Mood     `json:"mood" validate:"omitempty,oneof=happy sad energetic calm"`
	IncludeAccompaniment *bool    `json:"includeAccompaniment"`
	VocalLevel           *float64 `json:"vocalLevel" validate:"omitempty,gte=0,lte=2"`
	MusicLevel           *float64 `json:"musicLevel" validate:"omitempty,gte=0,lte=2"`
	TTSEngine            string   `json:"ttsEngine" validate:"omitempty,oneof=auto http phonetic"`
	PitchAdjustment      float64  `json:"pitchAdjustment" validate:"omitempty,gte=-12,lte=12"`
	Seed                 *int64   `json:"seed"`
}

// SingingStartResponse is returned when a singing job is accepted
type SingingStartResponse struct {
	JobID             string    `json:"jobId"`
	Status            JobStatus `json:"status"`
	EstimatedDuration int       `json:"estimatedDuration"` // seconds
	CreatedAt         time.Time `json:"createdAt"`
}

// SingingStatusResponse reports job progress
type SingingStatusResponse struct {
	JobID       string     `json:"jobId"`
	Status      JobStatus  `json:"status"`
	Progress    int        `json:"progress"`
	CurrentStep string     `json:"currentStep,omitempty"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	RetryCount  int        `json:"retryCount"`
}

// NoteInfo describes one melody note in the job result
type NoteInfo struct {
	Word      string   `json:"word"`
	Frequency float64  `json:"frequency"`
	Duration  float64  `json:"duration"`
	Emphasis  Emphasis `json:"emphasis"`
}

// SingingResultResponse is the completed job result
type SingingResultResponse struct {
	ID              string     `json:"id"`
	AudioURL        string     `json:"audioUrl"`
	Format          string     `json:"format"`
	DurationSeconds float64    `json:"durationSeconds"`
	SynthesisMethod string     `json:"synthesisMethod"`
	Style           Style      `json:"style"`
	Mood            Mood       `json:"mood"`
	IncludesMusic   bool       `json:"includesMusic"`
	Notes           []NoteInfo `json:"notes,omitempty"`
	Phrases         int        `json:"phrases"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// SingingCancelResponse confirms a cancellation
type SingingCancelResponse struct {
	Success bool      `json:"success"`
	JobID   string    `json:"jobId"`
	Status  JobStatus `json:"status"`
}
