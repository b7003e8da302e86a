// Package api serves the widget status, ad-hoc conversions and metrics over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", h.Health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", h.Status)
		r.Get("/convert", h.Convert)
		r.Get("/history", h.History)
	})
	r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"took":       time.Since(start),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("[HTTP] request served")
	})
}
