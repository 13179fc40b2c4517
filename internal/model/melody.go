package model

// MelodyExtractRequest represents the request body for melody extraction
type MelodyExtractRequest struct {
	AudioURL string `json:"audioUrl" validate:"required,url"`
}

// MelodyNote is one detected note from an extraction
type MelodyNote struct {
	Frequency float64 `json:"frequency"`
	StartTime float64 `json:"startTime"`
	Duration  float64 `json:"duration"`
}

// MelodyExtractResponse represents the response for melody extraction
type MelodyExtractResponse struct {
	Notes  []MelodyNote `json:"notes"`
	Tempo  float64      `json:"tempo"`
	Source string       `json:"source"`
}
