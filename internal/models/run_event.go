package models

import "time"

// Event types written to the run log.
const (
	EventRunStarted   = "RUN_STARTED"
	EventModeSolved   = "MODE_SOLVED"
	EventRunCompleted = "RUN_COMPLETED"
	EventError        = "ERROR"
)

// RunEvent is a single entry of the simulation audit log.
type RunEvent struct {
	EventID     string    `json:"event_id"`
	RunID       string    `json:"run_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // RUN_STARTED | MODE_SOLVED | RUN_COMPLETED | ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
