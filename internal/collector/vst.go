package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"DBWidget/internal/calculator"
)

// DefaultVSTBaseURL is the Video Strike Team's stats site.
const DefaultVSTBaseURL = "https://vst.ninja"

// dbYearOffset maps a calendar year to the sequential run number (2007 was DB1).
const dbYearOffset = 2006

// ErrNotFound is returned when the requested stats file does not exist.
var ErrNotFound = errors.New("not found")

// StatusError is a non-200 response from the stats site.
type StatusError struct {
	URL  string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d, body: %s", e.URL, e.Code, e.Body)
}

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// VSTFetcher implements Fetcher against the vst.ninja endpoints.
type VSTFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewVSTFetcher creates a new fetcher with optional proxy support.
func NewVSTFetcher(baseURL, proxyURL string) *VSTFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = DefaultVSTBaseURL
	}
	return &VSTFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *VSTFetcher) Name() string { return "vst" }

// RunNumber converts a calendar year into the sequential DB number used in stats URLs.
func RunNumber(year int) int {
	return year - dbYearOffset
}

// StatsURL returns the stats file URL for the run held in year.
func (f *VSTFetcher) StatsURL(year int) string {
	n := RunNumber(year)
	return fmt.Sprintf("%s/DB%d/data/DB%d_stats.json", f.BaseURL, n, n)
}

// FetchCurrentDonations reads the plain-text running total.
func (f *VSTFetcher) FetchCurrentDonations(ctx context.Context) (float64, error) {
	body, err := f.get(ctx, f.BaseURL+"/milestones/latestTotal")
	if err != nil {
		return 0, fmt.Errorf("fetch current donations: %w", err)
	}
	total, err := strconv.ParseFloat(strings.TrimSpace(string(body)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse current donations: %w", err)
	}
	if !calculator.ValidAmount(total) {
		return 0, fmt.Errorf("parse current donations: %w: %v", calculator.ErrInvalidAmount, total)
	}
	return total, nil
}

// vstStats is the first element of the stats JSON array.
type vstStats struct {
	YearStart *float64 `json:"Year Start Actual UNIX Time"`
}

// FetchRunStart reads the actual start time from the run's stats file.
func (f *VSTFetcher) FetchRunStart(ctx context.Context, year int) (time.Time, error) {
	endpoint := f.StatsURL(year)
	log.WithField("url", endpoint).Debug("[FETCH] fetching stats")

	body, err := f.get(ctx, endpoint)
	if err != nil {
		return time.Time{}, fmt.Errorf("fetch stats: %w", err)
	}
	var stats []vstStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return time.Time{}, fmt.Errorf("decode stats: %w", err)
	}
	if len(stats) == 0 || stats[0].YearStart == nil {
		return time.Time{}, fmt.Errorf("decode stats: no start time in %s", endpoint)
	}
	return time.Unix(int64(*stats[0].YearStart), 0), nil
}

func (f *VSTFetcher) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: endpoint, Code: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
