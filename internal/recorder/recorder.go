package recorder

import "time"

// FetchSnapshot is one successful fetch and its derived figures.
type FetchSnapshot struct {
	Timestamp        time.Time
	CurrentDonations float64
	RunStart         time.Time
	TotalHours       int
	CostToNextHour   float64
	Fallback         bool
	Source           string
}

// ErrorEvent is one failed fetch.
type ErrorEvent struct {
	Timestamp time.Time
	Kind      string // "error_no_connection" or "error_general"
	Message   string
}

// Recorder persists fetch history for analysis.
type Recorder interface {
	RecordFetch(snap *FetchSnapshot) error
	RecordError(evt *ErrorEvent) error
	// RecentSnapshots returns up to limit snapshots, newest first.
	RecentSnapshots(limit int) ([]FetchSnapshot, error)
	Close() error
}
