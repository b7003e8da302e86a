package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"DBWidget/internal/calculator"
	"DBWidget/internal/metrics"
	"DBWidget/internal/model"
	"DBWidget/internal/recorder"
	"DBWidget/internal/widget"
)

// LastEventSource provides the most recent result event.
type LastEventSource interface {
	Last() *model.ResultEvent
}

// Handler holds the dependencies for HTTP handlers.
type Handler struct {
	State    LastEventSource
	Recorder recorder.Recorder
	Metrics  *metrics.Manager
	Location *time.Location
	Now      func() time.Time
}

// NewHandler creates a Handler.
func NewHandler(state LastEventSource, rec recorder.Recorder, m *metrics.Manager, loc *time.Location) *Handler {
	return &Handler{State: state, Recorder: rec, Metrics: m, Location: loc, Now: time.Now}
}

// StatusResponse is the body of GET /api/status.
type StatusResponse struct {
	Kind   model.EventKind   `json:"kind,omitempty"`
	Error  string            `json:"error,omitempty"`
	Data   *model.ResultData `json:"data,omitempty"`
	Banner widget.Banner     `json:"banner"`
}

// ConvertResponse is the body of GET /api/convert.
type ConvertResponse struct {
	Amount     float64 `json:"amount"`
	TotalHours int     `json:"total_hours"`
	ToNextHour float64 `json:"to_next_hour"`
	Fallback   bool    `json:"fallback"`
}

// SnapshotResponse is one row of GET /api/history.
type SnapshotResponse struct {
	Timestamp        time.Time `json:"timestamp"`
	CurrentDonations float64   `json:"current_donations"`
	TotalHours       int       `json:"total_hours"`
	CostToNextHour   float64   `json:"cost_to_next_hour"`
	Fallback         bool      `json:"fallback"`
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Status handles GET /api/status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	evt := h.State.Last()
	resp := StatusResponse{Banner: widget.Render(evt, h.Now(), h.Location)}
	if evt != nil {
		resp.Kind = evt.Kind
		resp.Data = evt.Data
		if evt.Err != nil {
			resp.Error = evt.Err.Error()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Convert handles GET /api/convert?amount=X.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	amount, err := calculator.ParseAmount(r.URL.Query().Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, calculator.ErrInvalidAmount.Error())
		return
	}
	c := calculator.Convert(amount)
	if c.Fallback {
		h.Metrics.ObserveFallback()
	}
	writeJSON(w, http.StatusOK, ConvertResponse{
		Amount:     amount,
		TotalHours: c.TotalHours,
		ToNextHour: c.ToNextHour,
		Fallback:   c.Fallback,
	})
}

// History handles GET /api/history?limit=N.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 1000 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 1000")
			return
		}
		limit = n
	}

	snaps, err := h.Recorder.RecentSnapshots(limit)
	if err != nil {
		log.WithError(err).Error("[HTTP] load history")
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	out := make([]SnapshotResponse, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, SnapshotResponse{
			Timestamp:        s.Timestamp,
			CurrentDonations: s.CurrentDonations,
			TotalHours:       s.TotalHours,
			CostToNextHour:   s.CostToNextHour,
			Fallback:         s.Fallback,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("[HTTP] encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
