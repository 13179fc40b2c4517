package model

// Musical styles
type Style string

const (
	StylePop    Style = "pop"
	StyleBallad Style = "ballad"
	StyleJazz   Style = "jazz"
	StylePlain  Style = "plain"
)

var ValidStyles = []Style{StylePop, StyleBallad, StyleJazz, StylePlain}

// Moods
type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodSad       Mood = "sad"
	MoodEnergetic Mood = "energetic"
	MoodCalm      Mood = "calm"
)

var ValidMoods = []Mood{MoodHappy, MoodSad, MoodEnergetic, MoodCalm}

// Word emphasis levels
type Emphasis string

const (
	EmphasisLow    Emphasis = "low"
	EmphasisMedium Emphasis = "medium"
	EmphasisHigh   Emphasis = "high"
)

// Job status
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCanceled  JobStatus = "canceled"
)
