/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request, echoed in the log line
  2. Logger:     One logrus line per request (method, path, status, duration)
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/config/*      Settings, holidays, flexibility, schedule periods
  /api/days/*        Day records (the only edits that reconcile pools)
  /api/weeks/*       Weekly summaries
  /api/status        Pool balances
  /api/export        JSON export document
  /api/import        JSON import (replaces everything)
  /api/report.xlsx   Weekly spreadsheet
  /api/reset         Wipe all data
  /api/scenarios/*   Demo ledgers (dev only)

SECURITY NOTE:
  Single-user tool. No authentication middleware.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/horari/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.Log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/config", func(r chi.Router) {
			r.Get("/", h.GetConfig)
			r.Put("/", h.UpdateConfig)
			r.Post("/holidays/{date}/toggle", h.ToggleHoliday)
			r.Put("/flexibility", h.SetFlexibility)
			r.Post("/periods", h.AddSchedulePeriod)
			r.Delete("/periods/{id}", h.RemoveSchedulePeriod)
			r.Get("/coverage", h.GetCoverage)
		})

		r.Route("/days", func(r chi.Router) {
			r.Get("/", h.ListDays)
			r.Get("/{date}", h.GetDay)
			r.Put("/{date}", h.PutDay)
			r.Delete("/{date}", h.DeleteDay)
		})

		r.Route("/weeks", func(r chi.Router) {
			r.Get("/", h.ListWeeks)
			r.Get("/{date}", h.GetWeek)
		})

		r.Get("/status", h.GetStatus)
		r.Get("/export", h.Export)
		r.Post("/import", h.Import)
		r.Get("/report.xlsx", h.Report)
		r.Post("/reset", h.Reset)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
		})
	})

	return r
}

// requestLogger logs each request once it completes.
func requestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			entry := log.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).String(),
				"request_id": middleware.GetReqID(r.Context()),
			})
			if ww.Status() >= http.StatusInternalServerError {
				entry.Warn("request failed")
				return
			}
			entry.Debug("request")
		})
	}
}
