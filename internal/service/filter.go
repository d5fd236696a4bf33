package service

import "time"

// LogFilter supports history filtering by time range, type and run.
type LogFilter struct {
	From  time.Time // inclusive; zero means no lower bound
	To    time.Time // inclusive; zero means no upper bound
	Type  string    // "", "RUN_STARTED", "MODE_SOLVED", "RUN_COMPLETED", "ERROR"
	RunID string    // "" means every run
}
