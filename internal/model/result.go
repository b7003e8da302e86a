package model

import "time"

// ThankYouHours is how long thank-you time runs past the last bussed hour.
const ThankYouHours = 3

// ResultData is one successful fetch with its derived hour figures.
type ResultData struct {
	CurrentDonations float64   `json:"current_donations"`
	RunStart         time.Time `json:"run_start"`
	TotalHours       int       `json:"total_hours"`
	CostToNextHour   float64   `json:"cost_to_next_hour"`
	FetchedAt        time.Time `json:"fetched_at"`
	OmegaShift       bool      `json:"omega_shift"`
	Fallback         bool      `json:"fallback"` // hour figures are closed-form estimates
}

// RunEnd is when the bus stops given the current donations.
func (d *ResultData) RunEnd() time.Time {
	return d.RunStart.Add(time.Duration(d.TotalHours) * time.Hour)
}

// EndPlusThankYou is RunEnd plus thank-you time.
func (d *ResultData) EndPlusThankYou() time.Time {
	return d.RunStart.Add(time.Duration(d.TotalHours+ThankYouHours) * time.Hour)
}

// EventKind indicates how a ResultEvent came about.
type EventKind string

const (
	EventFetched           EventKind = "fetched"
	EventCached            EventKind = "cached"
	EventErrorNoConnection EventKind = "error_no_connection"
	EventErrorGeneral      EventKind = "error_general"
)

// ResultEvent is the outcome of a collect attempt. Data holds the live,
// cached or last-known result and is nil until the first success.
type ResultEvent struct {
	Kind EventKind   `json:"kind"`
	Data *ResultData `json:"data,omitempty"`
	Err  error       `json:"-"`
}

// IsError reports whether the event carries a fetch failure.
func (e *ResultEvent) IsError() bool {
	return e != nil && (e.Kind == EventErrorNoConnection || e.Kind == EventErrorGeneral)
}
