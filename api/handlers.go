/*
handlers.go - HTTP handlers for the schedule API

PURPOSE:
  Implements all HTTP endpoints: schedule documents in their three
  generations, the outcome registry, day resolution, the calendar views,
  open-time summaries, and the holiday template catalog.

ERROR MAPPING:
  - Malformed request body or query parameter -> 400
  - Validation failure -> 400 with the full issue list
  - Unknown template / missing resource -> 404
  - Store failure -> 500

UPDATE PATH:
  Every write follows the same sequence: decode, validate, normalize,
  persist, swap into the resolver. The resolver is only updated after a
  successful save, so a store failure never leaves the served schedule
  ahead of the stored one.

SEE ALSO:
  - server.go: Route definitions
  - resolver.go: The cached resolution service
  - factory/schedule.go: Parse helpers and the template catalog
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/warp/schedule-engine/factory"
	"github.com/warp/schedule-engine/schedule"
	"github.com/warp/schedule-engine/store"
)

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	Store    store.ScheduleStore
	Resolver *Resolver
	Logger   *zap.Logger

	validate *validator.Validate
}

// NewHandler creates a handler with its resolver.
func NewHandler(st store.ScheduleStore, logger *zap.Logger) (*Handler, error) {
	resolver, err := NewResolver(logger)
	if err != nil {
		return nil, err
	}
	return &Handler{
		Store:    st,
		Resolver: resolver,
		Logger:   logger,
		validate: validator.New(),
	}, nil
}

// Load primes the resolver from the store, seeding the stock default
// schedule when nothing has been saved yet.
func (h *Handler) Load(ctx context.Context) error {
	sched, err := h.Store.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		sched = factory.DefaultSchedule()
		if err := h.Store.Save(ctx, sched); err != nil {
			return fmt.Errorf("seed default schedule: %w", err)
		}
		h.Logger.Info("seeded default schedule", zap.String("timezone", sched.Timezone))
	} else if err != nil {
		return fmt.Errorf("load schedule: %w", err)
	}

	normalized, warnings := schedule.NormalizeSchedule(sched)
	h.Resolver.Update(normalized, warnings)
	return nil
}

// =============================================================================
// SCHEDULE DOCUMENTS
// =============================================================================

// GetSchedule returns the current schedule in the editing model.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, schedule.FromV2(h.Resolver.Schedule()))
}

// PutSchedule replaces the schedule from an editing-model document.
func (h *Handler) PutSchedule(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	edit, err := factory.ParseEditSchedule(body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validate.Var(edit.Timezone, "required,timezone"); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid timezone: " + edit.Timezone,
			Code:  "timezone-invalid",
			Where: "timezone",
		})
		return
	}

	if issues := schedule.ValidateEditSchedule(edit); len(issues) > 0 {
		respondIssues(w, issues)
		return
	}

	outcomes := h.Resolver.Schedule().ExitOutcomes
	normalized, warnings := schedule.NormalizeSchedule(schedule.ToV2(edit, outcomes))

	if err := h.Store.Save(r.Context(), normalized); err != nil {
		h.Logger.Error("save schedule", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to save schedule")
		return
	}
	h.Resolver.Update(normalized, warnings)
	respondJSON(w, http.StatusOK, normalized)
}

// GetScheduleV2 returns the raw rule-based schedule.
func (h *Handler) GetScheduleV2(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Resolver.Schedule())
}

// PutScheduleV2 replaces the schedule from a rule-based document.
func (h *Handler) PutScheduleV2(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	normalized, warnings, err := factory.ParseSchedule(body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validate.Var(normalized.Timezone, "required,timezone"); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid timezone: " + normalized.Timezone,
			Code:  "timezone-invalid",
			Where: "timezone",
		})
		return
	}

	if err := h.Store.Save(r.Context(), normalized); err != nil {
		h.Logger.Error("save schedule", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to save schedule")
		return
	}
	h.Resolver.Update(normalized, warnings)
	respondJSON(w, http.StatusOK, normalized)
}

// GetScheduleV1 lowers the current schedule to the legacy per-weekday
// shape. Holiday layers do not survive the lowering.
func (h *Handler) GetScheduleV1(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, schedule.ToV1(schedule.FromV2(h.Resolver.Schedule())))
}

// =============================================================================
// OUTCOME REGISTRY
// =============================================================================

// GetOutcomes returns the outcome registry.
func (h *Handler) GetOutcomes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Resolver.Schedule().ExitOutcomes)
}

// PutOutcomes replaces the outcome registry. Names and colors are kept
// as edited; missing canonical entries are filled back in.
func (h *Handler) PutOutcomes(w http.ResponseWriter, r *http.Request) {
	var registry []schedule.OutcomeDefinition
	if err := json.NewDecoder(r.Body).Decode(&registry); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse outcome registry")
		return
	}

	sched := h.Resolver.Schedule()
	sched.ExitOutcomes = schedule.NormalizeRegistry(registry)
	normalized, warnings := schedule.NormalizeSchedule(sched)

	if err := h.Store.Save(r.Context(), normalized); err != nil {
		h.Logger.Error("save outcomes", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to save outcomes")
		return
	}
	h.Resolver.Update(normalized, warnings)
	respondJSON(w, http.StatusOK, normalized.ExitOutcomes)
}

// =============================================================================
// RESOLUTION AND CALENDAR VIEWS
// =============================================================================

// GetResolve resolves a single date. Accepts ISO (2026-12-25) and
// display (25.12.2026) formats.
func (h *Handler) GetResolve(w http.ResponseWriter, r *http.Request) {
	date, err := schedule.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, newDayDTO(h.Resolver.Resolve(date)))
}

// GetWeek returns the 7-day view for the week containing ?start=
// (today when absent). The view always starts on Monday.
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	anchor := time.Now()
	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed, err := schedule.ParseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		anchor = parsed
	}

	start := schedule.StartOfWeek(anchor)
	resolutions := h.Resolver.Range(start, 7)
	days := make([]DayDTO, 0, len(resolutions))
	for _, resolution := range resolutions {
		days = append(days, newDayDTO(resolution))
	}
	respondJSON(w, http.StatusOK, WeekDTO{
		Start: schedule.FormatISODate(start),
		Days:  days,
	})
}

// GetMonth returns the 42-cell grid for ?month=YYYY-MM (the current
// month when absent). The grid starts on the Monday of the week holding
// the 1st; cells outside the month are flagged.
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	anchor := time.Now()
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "malformed month, expected YYYY-MM")
			return
		}
		anchor = parsed
	}

	first := schedule.StartOfMonth(anchor)
	gridStart := schedule.StartOfWeek(first)
	resolutions := h.Resolver.Range(gridStart, 42)

	cells := make([]MonthCellDTO, 0, len(resolutions))
	for i, resolution := range resolutions {
		cellDate := schedule.AddDays(gridStart, i)
		cells = append(cells, MonthCellDTO{
			DayDTO:         newDayDTO(resolution),
			InCurrentMonth: cellDate.Month() == first.Month(),
		})
	}
	respondJSON(w, http.StatusOK, MonthDTO{
		Month: first.Format("2006-01"),
		Cells: cells,
	})
}

// GetSummary aggregates open time over ?from= and ?days= (today and a
// week when absent).
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	from := time.Now()
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := schedule.ParseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		from = parsed
	}

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 366 {
			respondError(w, http.StatusBadRequest, "days must be between 1 and 366")
			return
		}
		days = parsed
	}

	respondJSON(w, http.StatusOK, h.Resolver.Summarize(from, days))
}

// =============================================================================
// HOLIDAY TEMPLATES
// =============================================================================

// GetTemplates returns the holiday template catalog with example dates
// for ?year= (the current year when absent).
func (h *Handler) GetTemplates(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1583 || parsed > 9999 {
			respondError(w, http.StatusBadRequest, "malformed year")
			return
		}
		year = parsed
	}

	templates := factory.HolidayTemplates()
	out := make([]TemplateDTO, 0, len(templates))
	for _, template := range templates {
		out = append(out, TemplateDTO{
			ID:          template.ID,
			Label:       template.Label,
			ExampleDate: factory.ExampleDate(template, year),
			Holiday:     template.Holiday,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// GetTemplate returns one template by ID.
func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	template, ok := factory.TemplateByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, "unknown template: "+id)
		return
	}
	respondJSON(w, http.StatusOK, TemplateDTO{
		ID:          template.ID,
		Label:       template.Label,
		ExampleDate: factory.ExampleDate(template, time.Now().Year()),
		Holiday:     template.Holiday,
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

func respondIssues(w http.ResponseWriter, issues []schedule.Issue) {
	out := make([]IssueDTO, 0, len(issues))
	for _, issue := range issues {
		out = append(out, IssueDTO{Code: string(issue.Code), Where: issue.Where})
	}
	respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Error:  "schedule failed validation",
		Issues: out,
	})
}
