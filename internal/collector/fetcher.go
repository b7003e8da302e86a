package collector

import (
	"context"
	"time"
)

// Fetcher defines the interface for fetching Desert Bus stats.
type Fetcher interface {
	FetchCurrentDonations(ctx context.Context) (float64, error)
	// FetchRunStart returns the start of the run held in the given year.
	FetchRunStart(ctx context.Context, year int) (time.Time, error)
	Name() string
}
