package domain

import "time"

// GenerationOutcome enumerates how a generation attempt ended.
type GenerationOutcome string

const (
	OutcomeSucceeded GenerationOutcome = "succeeded"
	OutcomeFailed    GenerationOutcome = "failed"
	// OutcomeDiscarded marks a completion that arrived after the session
	// had already moved on (restart, expiry).
	OutcomeDiscarded GenerationOutcome = "discarded"
)

// GenerationEvent is the journal record of a single generation attempt.
type GenerationEvent struct {
	ID        string
	SessionID string
	Decade    Decade
	Outcome   GenerationOutcome
	ErrorKind string
	Latency   time.Duration
	CreatedAt time.Time
}

// GenerationCount aggregates journal rows per decade and outcome.
type GenerationCount struct {
	Decade  Decade            `json:"decade"`
	Outcome GenerationOutcome `json:"outcome"`
	Total   int64             `json:"total"`
}
