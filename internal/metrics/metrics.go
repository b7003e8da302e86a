// Package metrics exposes Prometheus collectors for fetches and conversions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"DBWidget/internal/model"
)

const namespace = "dbwidget"

// Manager owns the service's collectors on a private registry.
type Manager struct {
	registry *prometheus.Registry

	fetchTotal          *prometheus.CounterVec
	fetchDuration       prometheus.Histogram
	fallbackConversions prometheus.Counter
	currentDonations    prometheus.Gauge
	totalHours          prometheus.Gauge
	costToNextHour      prometheus.Gauge
}

// NewManager registers all collectors on a fresh registry.
func NewManager() *Manager {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Manager{
		registry: reg,
		fetchTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Collect attempts by result kind.",
		}, []string{"kind"}),
		fetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time spent collecting stats.",
			Buckets:   prometheus.DefBuckets,
		}),
		fallbackConversions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_conversions_total",
			Help:      "Conversions that ran past the lookup table and used the closed-form estimate.",
		}),
		currentDonations: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "current_donations",
			Help:      "Last fetched donation total in dollars.",
		}),
		totalHours: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_hours",
			Help:      "Hours unlocked by the last fetched total.",
		}),
		costToNextHour: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cost_to_next_hour",
			Help:      "Dollars still needed for the next hour.",
		}),
	}
}

// ObserveEvent records one collect attempt.
func (m *Manager) ObserveEvent(evt *model.ResultEvent, took time.Duration) {
	m.fetchTotal.WithLabelValues(string(evt.Kind)).Inc()
	m.fetchDuration.Observe(took.Seconds())

	if evt.Kind != model.EventFetched || evt.Data == nil {
		return
	}
	m.currentDonations.Set(evt.Data.CurrentDonations)
	m.totalHours.Set(float64(evt.Data.TotalHours))
	m.costToNextHour.Set(evt.Data.CostToNextHour)
	if evt.Data.Fallback {
		m.fallbackConversions.Inc()
	}
}

// ObserveFallback counts an ad-hoc conversion that ran past the table.
func (m *Manager) ObserveFallback() {
	m.fallbackConversions.Inc()
}

// Registry returns the private registry, mainly for tests.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
