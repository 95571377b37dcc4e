/*
Package factory provides schedule defaults, holiday templates, and the
JSON parsing bridge.

PURPOSE:
  Everything a collaborator needs to obtain a well-formed schedule without
  hand-building rules: the stock default schedule, the holiday template
  catalog the admin UI offers, and parse helpers that decode untrusted or
  older-format JSON and normalize it before the engine ever sees it.

WHY A SEPARATE PACKAGE?
  The schedule package is the pure engine; it neither picks defaults nor
  decides what a deployment's template catalog looks like. Those are
  product choices, and they live here.

USAGE:
  sched := factory.DefaultSchedule()

  sched, warnings, err := factory.ParseSchedule(body)
  for _, w := range warnings { logger.Warn(w) }

SEE ALSO:
  - schedule/convert.go: ToV2 used to lift the default schedule
  - schedule/outcomes.go: normalization applied by the parse helpers
*/
package factory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/warp/schedule-engine/schedule"
)

// =============================================================================
// DEFAULT SCHEDULE
// =============================================================================

// DefaultEditSchedule returns the stock editing-model schedule: office
// hours Monday to Friday, a short Saturday, closed Sundays, no holidays.
func DefaultEditSchedule() schedule.EditSchedule {
	return schedule.EditSchedule{
		Timezone:      "Europe/London",
		EffectiveFrom: schedule.FormatISODate(time.Now()),
		Weekly: []schedule.WeeklyRecord{
			{
				Name: "Weekdays",
				Days: []schedule.Weekday{
					schedule.Monday, schedule.Tuesday, schedule.Wednesday,
					schedule.Thursday, schedule.Friday,
				},
				Slots: []schedule.Slot{
					{Start: "09:00", End: "17:00", Action: schedule.OutcomeAllow},
				},
				ClosedAction: schedule.OutcomeDeny,
			},
			{
				Name: "Saturday",
				Days: []schedule.Weekday{schedule.Saturday},
				Slots: []schedule.Slot{
					{Start: "10:00", End: "14:00", Action: schedule.OutcomeAllow},
				},
				ClosedAction: schedule.OutcomeDeny,
			},
		},
		RecurringHolidays: []schedule.Holiday{},
		DateRanges:        []schedule.Holiday{},
		SingleDates:       []schedule.Holiday{},
	}
}

// DefaultSchedule returns the stock schedule already lifted to V2 and
// normalized.
func DefaultSchedule() schedule.Schedule {
	v2 := schedule.ToV2(DefaultEditSchedule(), schedule.DefaultOutcomes())
	normalized, _ := schedule.NormalizeSchedule(v2)
	return normalized
}

// =============================================================================
// HOLIDAY TEMPLATES
// =============================================================================

// HolidayTemplate is one entry of the template catalog the admin UI
// offers when adding a holiday.
type HolidayTemplate struct {
	ID      string
	Label   string
	Holiday schedule.Holiday
}

var holidayTemplates = []HolidayTemplate{
	{
		ID:    "easter-sunday",
		Label: "Easter Sunday",
		Holiday: schedule.Holiday{
			Name:         "Easter Sunday",
			Rule:         schedule.HolidayEaster,
			OffsetDays:   0,
			LengthDays:   1,
			Closed:       true,
			Slots:        []schedule.Slot{},
			ClosedAction: schedule.OutcomeDeny,
		},
	},
	{
		ID:    "christmas-day",
		Label: "Christmas Day",
		Holiday: schedule.Holiday{
			Name:         "Christmas Day",
			Rule:         schedule.HolidayFixedDate,
			Month:        12,
			Day:          25,
			LengthDays:   1,
			Closed:       true,
			Slots:        []schedule.Slot{},
			ClosedAction: schedule.OutcomeDeny,
		},
	},
	{
		ID:    "national-holiday",
		Label: "National Holiday (July 4)",
		Holiday: schedule.Holiday{
			Name:         "National Holiday",
			Rule:         schedule.HolidayFixedDate,
			Month:        7,
			Day:          4,
			LengthDays:   1,
			Closed:       true,
			Slots:        []schedule.Slot{},
			ClosedAction: schedule.OutcomeDeny,
		},
	},
	{
		ID:    "swedish-midsummer-day",
		Label: "Midsummer Day (Sweden)",
		Holiday: schedule.Holiday{
			Name:         "Midsummer Day",
			Rule:         schedule.HolidayMidsummerDay,
			LengthDays:   1,
			Closed:       true,
			Slots:        []schedule.Slot{},
			ClosedAction: schedule.OutcomeDeny,
		},
	},
}

// HolidayTemplates returns the template catalog.
func HolidayTemplates() []HolidayTemplate {
	out := make([]HolidayTemplate, len(holidayTemplates))
	copy(out, holidayTemplates)
	return out
}

// TemplateByID looks up one template.
func TemplateByID(id string) (HolidayTemplate, bool) {
	for _, template := range holidayTemplates {
		if template.ID == id {
			return template, true
		}
	}
	return HolidayTemplate{}, false
}

// ExampleDate computes the template's holiday date for a year, for UI
// labels such as "Christmas Day (2026: 25.12.2026)". Returns "" when the
// holiday's fields cannot produce a date.
func ExampleDate(template HolidayTemplate, year int) string {
	h := template.Holiday
	switch h.Rule {
	case schedule.HolidayFixedDate:
		if h.Month == 0 || h.Day == 0 {
			return ""
		}
		return schedule.FormatISODate(time.Date(year, time.Month(h.Month), h.Day, 0, 0, 0, 0, time.UTC))
	case schedule.HolidayEaster:
		return schedule.FormatISODate(schedule.AddDays(schedule.EasterSunday(year), h.OffsetDays))
	case schedule.HolidayMidsummerDay:
		return schedule.FormatISODate(schedule.SwedishMidsummerDay(year))
	case schedule.HolidayMidsummerEve:
		return schedule.FormatISODate(schedule.SwedishMidsummerEve(year))
	default:
		return ""
	}
}

// =============================================================================
// PARSE HELPERS - sanitization entry points for untrusted input
// =============================================================================

// ParseSchedule decodes a V2 schedule document and normalizes it. The
// warnings list any unrecognized outcome references that were coerced;
// callers should log them.
func ParseSchedule(data []byte) (schedule.Schedule, []string, error) {
	var raw schedule.Schedule
	if err := json.Unmarshal(data, &raw); err != nil {
		return schedule.Schedule{}, nil, fmt.Errorf("parse schedule: %w", err)
	}
	normalized, warnings := schedule.NormalizeSchedule(raw)
	return normalized, warnings, nil
}

// ParseEditSchedule decodes an editing-model schedule document.
// Validation is the caller's next step; this only guarantees the shape.
func ParseEditSchedule(data []byte) (schedule.EditSchedule, error) {
	var raw schedule.EditSchedule
	if err := json.Unmarshal(data, &raw); err != nil {
		return schedule.EditSchedule{}, fmt.Errorf("parse edit schedule: %w", err)
	}
	return raw, nil
}
