/*
convert.go - Mid-generation editing model and V2 converters

PURPOSE:
  Admin forms edit a human-friendly, record-based schedule: weekly records
  covering several weekdays each, holiday entries built from templates,
  date ranges and single-date overrides. The engine consumes the flat,
  prioritized rule list (V2). This file holds the editing model and the
  total converters between the two generations.

CONVERSION CONTRACT:
  - ToV2 emits rules in the fixed order single-dates, recurring holidays,
    date ranges, weekly records (ScopePrecedence), assigning ascending
    priorities from zero. Under ascending-wins resolution this makes
    single-date overrides the strongest layer and the weekly pattern the
    weakest.
  - No entry is dropped in either direction; every scope variant has a
    mapping. Round-tripping is resolution-equivalent, lossy only in
    cosmetic fields (auto-generated names, effectiveFrom).
  - Outcome references are copied through unchanged. Normalization is an
    explicit separate step (outcomes.go).

SEE ALSO:
  - legacy.go: the V1 per-weekday generation
  - validate.go: runs against this editing model before conversion
*/
package schedule

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// EDITING MODEL (mid-generation)
// =============================================================================

// HolidayRule is the holiday entry kind in the editing model. It covers
// both recurring computations and the fixed date-range / single-date
// override layers.
type HolidayRule string

const (
	HolidayFixedDate     HolidayRule = "fixed-date"
	HolidayEaster        HolidayRule = "easter"
	HolidayMidsummerDay  HolidayRule = "swedish-midsummer-day"
	HolidayMidsummerEve  HolidayRule = "swedish-midsummer-eve"
	HolidayDateRange     HolidayRule = "date-range"
	HolidaySingleDate    HolidayRule = "single-date"
)

// WeeklyRecord is one weekly pattern entry: the same slots on each listed
// weekday.
type WeeklyRecord struct {
	Name         string    `json:"name"`
	Days         []Weekday `json:"days"`
	Slots        []Slot    `json:"slots"`
	ClosedAction OutcomeID `json:"closedAction"`
	ClosedReason string    `json:"closedReason,omitempty"`
}

// Holiday is one holiday entry in the editing model. Which fields apply
// depends on Rule; Closed entries carry no slots.
type Holiday struct {
	Name       string      `json:"name"`
	Rule       HolidayRule `json:"rule"`
	Month      int         `json:"month,omitempty"`      // fixed-date
	Day        int         `json:"day,omitempty"`        // fixed-date
	OffsetDays int         `json:"offsetDays,omitempty"` // easter
	RangeStart string      `json:"rangeStart,omitempty"` // date-range
	RangeEnd   string      `json:"rangeEnd,omitempty"`   // date-range
	SingleDate string      `json:"singleDate,omitempty"` // single-date
	Weekdays   []Weekday   `json:"weekdays,omitempty"`   // date-range filter
	LengthDays int         `json:"lengthDays,omitempty"` // recurring window, default 1

	Closed       bool      `json:"closed"`
	Slots        []Slot    `json:"slots"`
	ClosedAction OutcomeID `json:"closedAction"`
	ClosedReason string    `json:"closedReason,omitempty"`
}

// EditSchedule is the record-based schedule the admin surfaces edit.
type EditSchedule struct {
	Timezone          string         `json:"timezone"`
	EffectiveFrom     string         `json:"effectiveFrom,omitempty"`
	Weekly            []WeeklyRecord `json:"days"`
	RecurringHolidays []Holiday      `json:"recurringHolidays"`
	DateRanges        []Holiday      `json:"dateRanges"`
	SingleDates       []Holiday      `json:"singleDates"`
}

// =============================================================================
// LIFT: editing model -> V2
// =============================================================================

// ToV2 lifts an editing-model schedule into the rule-based form. Emission
// order follows ScopePrecedence with ascending priorities from zero, so
// the override layers outrank the weekly pattern. Outcome references and
// slots are copied through unchanged.
func ToV2(edit EditSchedule, outcomes []OutcomeDefinition) Schedule {
	rules := make([]Rule, 0, len(edit.SingleDates)+len(edit.RecurringHolidays)+len(edit.DateRanges)+len(edit.Weekly))
	priority := 0

	emit := func(name string, applies AppliesOn, slots []Slot, closed DefaultClosed) {
		rules = append(rules, Rule{
			ID:            uuid.NewString(),
			Name:          name,
			Priority:      priority,
			AppliesOn:     applies,
			Slots:         copySlots(slots),
			DefaultClosed: closed,
		})
		priority++
	}

	for _, h := range edit.SingleDates {
		emit(h.Name, holidayAppliesOn(h), holidaySlots(h), holidayClosed(h))
	}
	for _, h := range edit.RecurringHolidays {
		emit(h.Name, holidayAppliesOn(h), holidaySlots(h), holidayClosed(h))
	}
	for _, h := range edit.DateRanges {
		emit(h.Name, holidayAppliesOn(h), holidaySlots(h), holidayClosed(h))
	}
	for _, record := range edit.Weekly {
		name := record.Name
		if name == "" {
			name = weekdayListLabel(record.Days)
		}
		emit(name, WeeklyDays{Weekdays: copyWeekdays(record.Days)}, record.Slots, DefaultClosed{
			Action: record.ClosedAction,
			Reason: record.ClosedReason,
		})
	}

	return Schedule{
		Timezone:     edit.Timezone,
		ExitOutcomes: NormalizeRegistry(outcomes),
		Rules:        rules,
	}
}

// holidayAppliesOn is total over HolidayRule: every kind maps to exactly
// one scope variant.
func holidayAppliesOn(h Holiday) AppliesOn {
	length := h.LengthDays
	if length < 1 {
		length = 1
	}
	switch h.Rule {
	case HolidaySingleDate:
		return SingleDate{Date: h.SingleDate}
	case HolidayDateRange:
		return DateRange{DateFrom: h.RangeStart, DateTo: h.RangeEnd, Weekdays: copyWeekdays(h.Weekdays)}
	case HolidayEaster:
		return RecurringHoliday{Kind: RecurringEasterOffset, OffsetDays: h.OffsetDays, LengthDays: length}
	case HolidayMidsummerDay:
		return RecurringHoliday{Kind: RecurringMidsummerDay, LengthDays: length}
	case HolidayMidsummerEve:
		return RecurringHoliday{Kind: RecurringMidsummerEve, LengthDays: length}
	default:
		return RecurringHoliday{Kind: RecurringFixedDate, Month: h.Month, Day: h.Day, LengthDays: length}
	}
}

func holidaySlots(h Holiday) []Slot {
	if h.Closed {
		return nil
	}
	return h.Slots
}

func holidayClosed(h Holiday) DefaultClosed {
	return DefaultClosed{Action: h.ClosedAction, Reason: h.ClosedReason}
}

// =============================================================================
// LOWER: V2 -> editing model
// =============================================================================

// FromV2 lowers a rule-based schedule back to the editing model, grouping
// rules by scope. Rules are visited in priority order so the editing
// lists keep the precedence the user saw. Missing holiday fields default
// to a 1-day window; effectiveFrom defaults to today.
func FromV2(s Schedule) EditSchedule {
	edit := EditSchedule{
		Timezone:          s.Timezone,
		EffectiveFrom:     FormatISODate(time.Now()),
		Weekly:            []WeeklyRecord{},
		RecurringHolidays: []Holiday{},
		DateRanges:        []Holiday{},
		SingleDates:       []Holiday{},
	}

	ordered := make([]Rule, len(s.Rules))
	copy(ordered, s.Rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	for _, rule := range ordered {
		switch applies := rule.AppliesOn.(type) {
		case WeeklyDays:
			edit.Weekly = append(edit.Weekly, WeeklyRecord{
				Name:         rule.Name,
				Days:         copyWeekdays(applies.Weekdays),
				Slots:        copySlots(rule.Slots),
				ClosedAction: rule.DefaultClosed.Action,
				ClosedReason: rule.DefaultClosed.Reason,
			})

		case SingleDate:
			h := holidayShell(rule)
			h.Rule = HolidaySingleDate
			h.SingleDate = applies.Date
			edit.SingleDates = append(edit.SingleDates, h)

		case DateRange:
			h := holidayShell(rule)
			h.Rule = HolidayDateRange
			h.RangeStart = applies.DateFrom
			h.RangeEnd = applies.DateTo
			h.Weekdays = copyWeekdays(applies.Weekdays)
			edit.DateRanges = append(edit.DateRanges, h)

		case RecurringHoliday:
			h := holidayShell(rule)
			h.LengthDays = applies.LengthDays
			if h.LengthDays < 1 {
				h.LengthDays = 1
			}
			switch applies.Kind {
			case RecurringEasterOffset:
				h.Rule = HolidayEaster
				h.OffsetDays = applies.OffsetDays
			case RecurringMidsummerDay:
				h.Rule = HolidayMidsummerDay
			case RecurringMidsummerEve:
				h.Rule = HolidayMidsummerEve
			default:
				h.Rule = HolidayFixedDate
				h.Month = applies.Month
				h.Day = applies.Day
			}
			edit.RecurringHolidays = append(edit.RecurringHolidays, h)
		}
	}

	return edit
}

func holidayShell(rule Rule) Holiday {
	return Holiday{
		Name:         rule.Name,
		LengthDays:   1,
		Closed:       len(rule.Slots) == 0,
		Slots:        copySlots(rule.Slots),
		ClosedAction: rule.DefaultClosed.Action,
		ClosedReason: rule.DefaultClosed.Reason,
	}
}

// =============================================================================
// SMALL HELPERS
// =============================================================================

func copySlots(slots []Slot) []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}

func copyWeekdays(days []Weekday) []Weekday {
	out := make([]Weekday, len(days))
	copy(out, days)
	return out
}

func weekdayListLabel(days []Weekday) string {
	labels := make([]string, 0, len(days))
	for _, day := range days {
		labels = append(labels, day.Label())
	}
	return strings.Join(labels, ", ")
}
