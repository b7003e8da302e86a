package collector

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	log "github.com/sirupsen/logrus"

	"DBWidget/internal/calculator"
	"DBWidget/internal/model"
)

// DefaultCacheTTL is how long a fetched result is served without refetching.
const DefaultCacheTTL = 30 * time.Second

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Donations float64
	RunStart  time.Time
	// StartByYear overrides RunStart per year; a missing year is a 404.
	StartByYear  map[int]time.Time
	DonationsErr error
	RunStartErr  error
	Calls        int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCurrentDonations(_ context.Context) (float64, error) {
	m.Calls++
	if m.DonationsErr != nil {
		return 0, m.DonationsErr
	}
	return m.Donations, nil
}

func (m *MockFetcher) FetchRunStart(_ context.Context, year int) (time.Time, error) {
	if m.RunStartErr != nil {
		return time.Time{}, m.RunStartErr
	}
	if m.StartByYear != nil {
		if t, ok := m.StartByYear[year]; ok {
			return t, nil
		}
		return time.Time{}, &StatusError{URL: fmt.Sprintf("mock://DB%d", RunNumber(year)), Code: 404}
	}
	return m.RunStart, nil
}

// Collector orchestrates fetching and hour conversion.
type Collector struct {
	Fetcher    Fetcher
	CacheTTL   time.Duration
	OmegaShift bool
	Now        func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, cacheTTL time.Duration, omegaShift bool) *Collector {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Collector{Fetcher: fetcher, CacheTTL: cacheTTL, OmegaShift: omegaShift, Now: time.Now}
}

// Collect fetches fresh stats unless last is still within the cache TTL.
// Failures are reported in the event together with last.
func (c *Collector) Collect(ctx context.Context, last *model.ResultData) *model.ResultEvent {
	now := c.Now()
	if last != nil && now.Sub(last.FetchedAt) < c.CacheTTL {
		log.Debug("[FETCH] last-known data still fresh, serving cached")
		return &model.ResultEvent{Kind: model.EventCached, Data: last}
	}

	data, err := c.fetch(ctx, now)
	if err != nil {
		kind := model.EventErrorGeneral
		if IsNoConnection(err) {
			kind = model.EventErrorNoConnection
		}
		log.WithError(err).WithField("kind", kind).Error("[FETCH] fetching data failed")
		return &model.ResultEvent{Kind: kind, Data: last, Err: err}
	}
	return &model.ResultEvent{Kind: model.EventFetched, Data: data}
}

func (c *Collector) fetch(ctx context.Context, now time.Time) (*model.ResultData, error) {
	donations, err := c.Fetcher.FetchCurrentDonations(ctx)
	if err != nil {
		return nil, err
	}
	runStart, err := c.fetchRunStart(ctx, now.Year())
	if err != nil {
		return nil, err
	}

	conv := calculator.Convert(donations)
	return &model.ResultData{
		CurrentDonations: donations,
		RunStart:         runStart,
		TotalHours:       conv.TotalHours,
		CostToNextHour:   conv.ToNextHour,
		FetchedAt:        now,
		OmegaShift:       c.OmegaShift,
		Fallback:         conv.Fallback,
	}, nil
}

// fetchRunStart tries this year's stats, then last year's if this year's don't exist yet.
func (c *Collector) fetchRunStart(ctx context.Context, year int) (time.Time, error) {
	start, err := c.Fetcher.FetchRunStart(ctx, year)
	if err == nil {
		return start, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return time.Time{}, err
	}
	log.WithField("year", year-1).Debug("[FETCH] stats not found, backing off a year")
	return c.Fetcher.FetchRunStart(ctx, year-1)
}

// IsNoConnection reports whether err came from the transport rather than the server.
func IsNoConnection(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}
