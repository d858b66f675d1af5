/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built ledgers for demos and manual UI testing. Each
	scenario wipes the store and replays a list of day edits through
	timesheet.Service, so pools are built by the same reconciliation path a
	user's edits take.

AVAILABLE SCENARIOS:

	surplus-week:       One full week with an hour of overtime (flex accrual)
	vacation-requests:  Approved and pending vacation plus pending AP
	flex-day:           Two surplus weeks, then a flexibility absence

HOW SCENARIOS WORK:
 1. Reset the store (default config on next read)
 2. Apply each edit in order with the quota guard on

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "surplus-week"}

NOTE:

	Scenarios erase the ledger. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Shared helpers
  - timesheet/service.go: ApplyEdit
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/warp/work-ledger/generic"
	"github.com/warp/work-ledger/timesheet"
)

type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// scenario is a named list of edits replayed on an empty ledger.
type scenario struct {
	ScenarioDTO
	edits func() []timesheet.DayRecord
}

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []scenario{
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "surplus-week",
			Name:        "Surplus Week",
			Description: "Week 10 worked in full with one extra hour on Friday",
		},
		edits: func() []timesheet.DayRecord {
			return []timesheet.DayRecord{
				demoWorked("2026-03-02", "07:30", "15:00"),
				demoWorked("2026-03-03", "07:30", "15:00"),
				demoWorked("2026-03-04", "07:30", "15:00"),
				demoWorked("2026-03-05", "07:30", "15:00"),
				demoWorked("2026-03-06", "07:00", "15:30"),
			}
		},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "vacation-requests",
			Name:        "Vacation Requests",
			Description: "Two approved and one pending vacation day, 3h of pending AP",
		},
		edits: func() []timesheet.DayRecord {
			return []timesheet.DayRecord{
				demoKind("2026-08-03", timesheet.Vacation{Approval: timesheet.RequestApproved}),
				demoKind("2026-08-04", timesheet.Vacation{Approval: timesheet.RequestApproved}),
				demoKind("2026-08-05", timesheet.Vacation{Approval: timesheet.RequestPending}),
				demoKind("2026-03-10", timesheet.PersonalLeave{Hours: decimal.NewFromInt(3), Approval: timesheet.RequestPending}),
			}
		},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "flex-day",
			Name:        "Flex Day",
			Description: "Two weeks with an hour of overtime each, then 1.5h of flexibility",
		},
		edits: func() []timesheet.DayRecord {
			var out []timesheet.DayRecord
			for _, monday := range []string{"2026-03-02", "2026-03-09"} {
				start := generic.MustParseDate(monday)
				for i := 0; i < 4; i++ {
					out = append(out, demoWorked(start.AddDays(i).String(), "07:30", "15:00"))
				}
				out = append(out, demoWorked(start.AddDays(4).String(), "07:00", "15:30"))
			}
			return append(out, demoKind("2026-03-16", timesheet.FlexLeave{
				Hours:    decimal.NewFromFloat(1.5),
				Approval: timesheet.RequestApproved,
			}))
		},
	},
}

func demoWorked(date, start, end string) timesheet.DayRecord {
	s, e := timesheet.MustParseClock(start), timesheet.MustParseClock(end)
	return timesheet.DayRecord{
		Date:   generic.MustParseDate(date),
		Shift1: timesheet.Shift{Start: &s, End: &e},
		Kind:   timesheet.Working{},
	}
}

func demoKind(date string, kind timesheet.DayKind) timesheet.DayRecord {
	return timesheet.DayRecord{Date: generic.MustParseDate(date), Kind: kind}
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	out := make([]ScenarioDTO, 0, len(scenarios))
	for _, s := range scenarios {
		out = append(out, s.ScenarioDTO)
	}
	writeJSON(w, http.StatusOK, out)
}

// LoadScenario replaces the ledger with a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var found *scenario
	for i := range scenarios {
		if scenarios[i].ID == req.ScenarioID {
			found = &scenarios[i]
			break
		}
	}
	if found == nil {
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err := h.loadScenario(r.Context(), *found); err != nil {
		h.fail(w, "Failed to load scenario", err)
		return
	}
	h.Log.WithField("scenario", found.ID).Info("scenario loaded")
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": found.ID})
}

func (h *Handler) loadScenario(ctx context.Context, s scenario) error {
	if err := h.Service.Reset(ctx); err != nil {
		return err
	}
	for _, rec := range s.edits() {
		if _, err := h.Service.ApplyEdit(ctx, rec); err != nil {
			return fmt.Errorf("scenario %s, %s: %w", s.ID, rec.Key(), err)
		}
	}
	return nil
}
