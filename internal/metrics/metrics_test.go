package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DBWidget/internal/model"
)

func TestObserveEvent_Fetched(t *testing.T) {
	m := NewManager()
	m.ObserveEvent(&model.ResultEvent{
		Kind: model.EventFetched,
		Data: &model.ResultData{CurrentDonations: 5_000_000, TotalHours: 189, CostToNextHour: 10, Fallback: true},
	}, 150*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchTotal.WithLabelValues("fetched")))
	assert.Equal(t, 5_000_000.0, testutil.ToFloat64(m.currentDonations))
	assert.Equal(t, 189.0, testutil.ToFloat64(m.totalHours))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.costToNextHour))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbackConversions))
}

func TestObserveEvent_ErrorLeavesGauges(t *testing.T) {
	m := NewManager()
	m.ObserveEvent(&model.ResultEvent{
		Kind: model.EventErrorGeneral,
		Data: &model.ResultData{CurrentDonations: 99, Fallback: true},
	}, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchTotal.WithLabelValues("error_general")))
	assert.Zero(t, testutil.ToFloat64(m.currentDonations))
	assert.Zero(t, testutil.ToFloat64(m.fallbackConversions))

	m.ObserveFallback()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbackConversions))
}

func TestHandler(t *testing.T) {
	m := NewManager()
	m.ObserveFallback()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dbwidget_fallback_conversions_total 1")
}
