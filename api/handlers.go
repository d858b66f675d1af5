/*
handlers.go - HTTP API handlers for the work-hours ledger

PURPOSE:
  Exposes the ledger service via REST API for the local web UI. Handles
  HTTP request/response and JSON serialization, and delegates to
  timesheet.Service and the exchange package.

ENDPOINTS:
  Config:
    GET    /api/config                          Current config
    PUT    /api/config                          Replace config (settings)
    POST   /api/config/holidays/{date}/toggle   Add or remove a holiday
    PUT    /api/config/flexibility              Set flex credit by hand
    POST   /api/config/periods                  Add a schedule period
    DELETE /api/config/periods/{id}             Remove a schedule period
    GET    /api/config/coverage                 Uncovered days and period issues

  Days:
    GET    /api/days?from=&to=                  Stored records in a range
    GET    /api/days/{date}                     Record or draft for a date
    PUT    /api/days/{date}                     Edit a day (reconciles pools)
    DELETE /api/days/{date}                     Reset a day to laboral

  Summaries:
    GET    /api/weeks/{date}                    Week containing date
    GET    /api/weeks                           Every week of the year
    GET    /api/status                          Pool status

  Data:
    GET    /api/export                          JSON export document
    POST   /api/import                          Replace ledger from a document
    GET    /api/report.xlsx                     Weekly workbook
    POST   /api/reset                           Erase everything

  Demo:
    GET    /api/scenarios                       Available demo ledgers
    POST   /api/scenarios/load                  Replace ledger with a demo

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed input (dates, clocks, bodies)
  - 404: Unknown schedule period
  - 409: Request exceeds a pool (vacation, AP)
  - 413: Import document too large
  - 422: Document or record fails validation
  - 500: Internal errors

SECURITY NOTE:
  Single-user local host. No authentication.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/warp/work-ledger/exchange"
	"github.com/warp/work-ledger/generic"
	"github.com/warp/work-ledger/timesheet"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service *timesheet.Service
	Log     logrus.FieldLogger
	// Now stamps exports; replaced in tests.
	Now func() time.Time
}

// NewHandler creates a new handler over the given service.
func NewHandler(svc *timesheet.Service, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{Service: svc, Log: log, Now: time.Now}
}

// =============================================================================
// CONFIG ENDPOINTS
// =============================================================================

// GetConfig returns the current config.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Service.Config(r.Context())
	if err != nil {
		h.fail(w, "Failed to load config", err)
		return
	}
	writeJSON(w, http.StatusOK, exchange.ConfigToDTO(cfg))
}

// UpdateConfig replaces the config. Pools are taken as given; stored days
// are not reconciled again.
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req exchange.ConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := exchange.ValidateConfig(req); err != nil {
		h.fail(w, "Invalid config", err)
		return
	}
	cfg, err := exchange.ConfigFromDTO(req)
	if err != nil {
		h.fail(w, "Invalid config", err)
		return
	}
	cfg, err = h.Service.UpdateConfig(r.Context(), cfg)
	if err != nil {
		h.fail(w, "Failed to save config", err)
		return
	}
	writeJSON(w, http.StatusOK, exchange.ConfigToDTO(cfg))
}

// ToggleHoliday adds or removes {date} from the holiday list.
func (h *Handler) ToggleHoliday(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}
	cfg, err := h.Service.ToggleHoliday(r.Context(), date)
	if err != nil {
		h.fail(w, "Failed to toggle holiday", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":      date.String(),
		"isHoliday": timesheet.IsHoliday(date, cfg.Holidays),
		"holidays":  cfg.Holidays,
	})
}

// SetFlexibility overrides the accumulated flex credit.
func (h *Handler) SetFlexibility(w http.ResponseWriter, r *http.Request) {
	var req FlexibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	cfg, err := h.Service.SetFlexibility(r.Context(), req.hours())
	if err != nil {
		h.fail(w, "Failed to set flexibility", err)
		return
	}
	writeJSON(w, http.StatusOK, exchange.ConfigToDTO(cfg))
}

// AddSchedulePeriod appends a period and returns it with its new ID.
func (h *Handler) AddSchedulePeriod(w http.ResponseWriter, r *http.Request) {
	var req AddPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	start, err := generic.ParseDate(req.StartDate)
	if err != nil {
		h.fail(w, "Invalid start date", err)
		return
	}
	end, err := generic.ParseDate(req.EndDate)
	if err != nil {
		h.fail(w, "Invalid end date", err)
		return
	}
	st := timesheet.ScheduleType(req.ScheduleType)
	if !st.IsValid() {
		writeError(w, http.StatusBadRequest, "scheduleType must be hivern or estiu", nil)
		return
	}

	p, err := h.Service.AddSchedulePeriod(r.Context(), start, end, st)
	if err != nil {
		h.fail(w, "Failed to add schedule period", err)
		return
	}
	writeJSON(w, http.StatusCreated, exchange.PeriodDTO{
		ID:           p.ID,
		StartDate:    p.Start.String(),
		EndDate:      p.End.String(),
		ScheduleType: string(p.Type),
	})
}

// RemoveSchedulePeriod drops the period {id}.
func (h *Handler) RemoveSchedulePeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Service.RemoveSchedulePeriod(r.Context(), id); err != nil {
		h.fail(w, "Failed to remove schedule period", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed", "id": id})
}

// GetCoverage reports days of the calendar year without a schedule period
// and any malformed or overlapping periods. Advisory only.
func (h *Handler) GetCoverage(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Service.Config(r.Context())
	if err != nil {
		h.fail(w, "Failed to load config", err)
		return
	}
	resp := CoverageDTO{
		Year:   cfg.CalendarYear,
		Gaps:   timesheet.CoverageGaps(cfg.SchedulePeriods, cfg.CalendarYear),
		Issues: []PeriodIssueDTO{},
	}
	for _, is := range timesheet.ValidatePeriods(cfg.SchedulePeriods) {
		resp.Issues = append(resp.Issues, PeriodIssueDTO{PeriodID: is.PeriodID, OtherID: is.OtherID, Problem: is.Problem})
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// DAY ENDPOINTS
// =============================================================================

// ListDays returns the stored records between ?from and ?to (inclusive).
// Both default to the bounds of the calendar year.
func (h *Handler) ListDays(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg, err := h.Service.Config(ctx)
	if err != nil {
		h.fail(w, "Failed to load config", err)
		return
	}

	period := generic.YearPeriod(cfg.CalendarYear)
	if s := r.URL.Query().Get("from"); s != "" {
		if period.Start, err = generic.ParseDate(s); err != nil {
			h.fail(w, "Invalid from date", err)
			return
		}
	}
	if s := r.URL.Query().Get("to"); s != "" {
		if period.End, err = generic.ParseDate(s); err != nil {
			h.fail(w, "Invalid to date", err)
			return
		}
	}
	if period.End.Before(period.Start) {
		writeError(w, http.StatusBadRequest, "to must not be before from", nil)
		return
	}

	recs, err := h.Service.Range(ctx, period)
	if err != nil {
		h.fail(w, "Failed to load days", err)
		return
	}
	out := make([]DayDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toDayDTO(rec, cfg, true))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetDay returns the record for {date}, or the prefilled draft if none.
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	cfg, err := h.Service.Config(ctx)
	if err != nil {
		h.fail(w, "Failed to load config", err)
		return
	}
	rec, stored, err := h.Service.Day(ctx, date)
	if err != nil {
		h.fail(w, "Failed to load day", err)
		return
	}
	writeJSON(w, http.StatusOK, toDayDTO(rec, cfg, stored))
}

// PutDay applies an edit to {date}. The body's date, if set, must match.
func (h *Handler) PutDay(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var req exchange.DayDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Date == "" {
		req.Date = date.String()
	}
	if req.Date != date.String() {
		writeError(w, http.StatusBadRequest, "Body date does not match URL", nil)
		return
	}
	if err := exchange.ValidateDay(req); err != nil {
		h.fail(w, "Invalid day record", err)
		return
	}

	cfg, err := h.Service.Config(ctx)
	if err != nil {
		h.fail(w, "Failed to load config", err)
		return
	}
	rec, err := exchange.DayFromDTO(req, cfg)
	if err != nil {
		h.fail(w, "Invalid day record", err)
		return
	}

	res, err := h.Service.ApplyEdit(ctx, rec)
	if err != nil {
		h.fail(w, "Failed to save day", err)
		return
	}
	writeJSON(w, http.StatusOK, toEditResponse(res))
}

// DeleteDay resets {date} to the empty laboral default.
func (h *Handler) DeleteDay(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}
	res, err := h.Service.ResetDay(r.Context(), date)
	if err != nil {
		h.fail(w, "Failed to reset day", err)
		return
	}
	writeJSON(w, http.StatusOK, toEditResponse(res))
}

// =============================================================================
// SUMMARY ENDPOINTS
// =============================================================================

// GetWeek summarises the Monday-Sunday week containing {date}.
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}
	week, err := h.Service.Week(r.Context(), date)
	if err != nil {
		h.fail(w, "Failed to summarise week", err)
		return
	}
	writeJSON(w, http.StatusOK, toWeekDTO(week))
}

// ListWeeks summarises every week of the calendar year.
func (h *Handler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	weeks, err := h.Service.Year(r.Context())
	if err != nil {
		h.fail(w, "Failed to summarise weeks", err)
		return
	}
	out := make([]WeekDTO, 0, len(weeks))
	for _, wk := range weeks {
		out = append(out, toWeekDTO(wk))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetStatus returns the pool status.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.Service.Status(r.Context())
	if err != nil {
		h.fail(w, "Failed to compute status", err)
		return
	}
	writeJSON(w, http.StatusOK, toStatusDTO(status))
}

// =============================================================================
// DATA ENDPOINTS
// =============================================================================

// Export returns the JSON export document as an attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	cfg, days, err := h.Service.Snapshot(r.Context())
	if err != nil {
		h.fail(w, "Failed to export", err)
		return
	}
	now := h.Now()
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="horari-%s.json"`, now.Format(generic.DateLayout)))
	writeJSON(w, http.StatusOK, exchange.Export(cfg, days, now))
}

// Import replaces the whole ledger with the posted document. A document
// that fails validation leaves stored data untouched.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	doc, err := exchange.Decode(r.Body)
	if err != nil {
		h.fail(w, "Import rejected", err)
		return
	}
	cfg, days, err := exchange.Import(doc)
	if err != nil {
		h.fail(w, "Import rejected", err)
		return
	}
	if err := h.Service.Replace(r.Context(), cfg, days); err != nil {
		h.fail(w, "Failed to import", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "imported",
		"days":    len(days),
		"version": doc.Version,
	})
}

// Report returns the weekly xlsx workbook.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	cfg, days, err := h.Service.Snapshot(r.Context())
	if err != nil {
		h.fail(w, "Failed to build report", err)
		return
	}
	var buf bytes.Buffer
	if err := exchange.WriteWeeklyReport(&buf, cfg, days); err != nil {
		h.fail(w, "Failed to build report", err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="horari-%d.xlsx"`, cfg.CalendarYear))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Reset erases the config and all day records.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Reset(r.Context()); err != nil {
		h.fail(w, "Failed to reset", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func dateParam(w http.ResponseWriter, r *http.Request) (generic.TimePoint, bool) {
	date, err := generic.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return generic.TimePoint{}, false
	}
	return date, true
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var quota *generic.QuotaError
	switch {
	case errors.Is(err, generic.ErrDocumentTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &quota):
		return http.StatusConflict
	case errors.Is(err, generic.ErrInvalidDocument):
		return http.StatusUnprocessableEntity
	case generic.IsNotFound(err):
		return http.StatusNotFound
	case generic.IsClientError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// fail writes err with the status it maps to. Validation failures carry
// their issue list as details; server errors are logged.
func (h *Handler) fail(w http.ResponseWriter, message string, err error) {
	status := statusFor(err)
	resp := ErrorResponse{Error: message, Details: err.Error()}

	var verr *exchange.ValidationError
	var quota *generic.QuotaError
	switch {
	case errors.As(err, &verr):
		resp.Code = "invalid"
		issues := make([]map[string]string, 0, len(verr.Issues))
		for _, is := range verr.Issues {
			issues = append(issues, map[string]string{"path": is.Path, "message": is.Message})
		}
		resp.Details = map[string]any{"summary": verr.Error(), "issues": issues}
	case errors.As(err, &quota):
		resp.Code = "quota_exceeded"
		resp.Details = map[string]any{
			"pool":      quota.Pool,
			"available": quota.Available.Float64(),
			"requested": quota.Requested.Float64(),
			"shortfall": quota.Shortfall().InexactFloat64(),
			"unit":      string(quota.Available.Unit),
		}
	}

	if status >= http.StatusInternalServerError {
		h.Log.WithError(err).Error(message)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
