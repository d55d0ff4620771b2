package scheduler

import "time"

// TickStats summarises one tick.
type TickStats struct {
	// StartedAt is the tick's "now", used for the due check.
	StartedAt time.Time `json:"started_at"`
	// Due is the number of notes found due in the scan.
	Due int `json:"due"`
	// Published is the number of notes posted successfully.
	Published int `json:"published"`
	// Failed is the number of notes marked failed.
	Failed int `json:"failed"`
	// Skipped counts notes that were edited or deleted between the scan and publishing.
	Skipped int `json:"skipped"`
	// StoreErrors counts notes whose load or save failed.
	StoreErrors int `json:"store_errors"`
	// Duration is how long the tick took.
	Duration time.Duration `json:"duration_ns"`
}

// LogAttrs returns the stats as slog key/value pairs.
func (s TickStats) LogAttrs() []any {
	return []any{
		"due", s.Due,
		"published", s.Published,
		"failed", s.Failed,
		"skipped", s.Skipped,
		"store_errors", s.StoreErrors,
		"duration", s.Duration,
	}
}
