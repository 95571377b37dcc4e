/*
validate.go - Structural validation of the editing model

PURPOSE:
  Pure predicate functions over the editing-model schedule, run before any
  conversion is persisted. Each failure is a specific tag a UI can map to
  a field-level message; nothing here throws or wraps generic errors.

INVARIANTS CHECKED:
  - Slots parse, start < end, and do not overlap within a rule
  - No weekday is claimed by more than one weekly record
  - No two date ranges overlap in both date span and weekday set
  - Holiday entries carry the fields their kind requires

All functions treat their input as read-only and return nil when valid.

SEE ALSO:
  - convert.go: the model being validated
  - dates.go: ParseDate / ParseTimeOfDay
*/
package schedule

import (
	"fmt"
	"sort"
)

// =============================================================================
// FAILURE TAGS
// =============================================================================

type FailureCode string

const (
	FailureTimeFormat               FailureCode = "time-format"
	FailureTimeOrder                FailureCode = "time-order"
	FailureSlotOverlap              FailureCode = "slot-overlap"
	FailureSlotRequired             FailureCode = "slot-required"
	FailureDaysRequired             FailureCode = "days-required"
	FailureWeekdayOverlap           FailureCode = "weekday-overlap"
	FailureDateRangeRequired        FailureCode = "date-range-required"
	FailureDateRangeWeekdaysMissing FailureCode = "date-range-weekdays-required"
	FailureDateRangeFormat          FailureCode = "date-range-format"
	FailureDateRangeOrder           FailureCode = "date-range-order"
	FailureDateRangeOverlap         FailureCode = "date-range-overlap"
	FailureSingleDateRequired       FailureCode = "single-date-required"
	FailureSingleDateFormat         FailureCode = "single-date-format"
)

// Issue is one validation failure: a tag plus the location it applies to.
// Issue implements error so callers may pass it across error-shaped APIs,
// but validators return it as a value, not through panic or error wrapping.
type Issue struct {
	Code  FailureCode
	Where string
}

func (i *Issue) Error() string {
	if i.Where == "" {
		return string(i.Code)
	}
	return fmt.Sprintf("%s: %s", i.Where, i.Code)
}

func issue(code FailureCode, where string) *Issue {
	return &Issue{Code: code, Where: where}
}

// =============================================================================
// SLOT VALIDATION
// =============================================================================

// ValidateSlot checks that both times parse and start precedes end.
func ValidateSlot(slot Slot) *Issue {
	start, okStart := ParseTimeOfDay(slot.Start)
	end, okEnd := ParseTimeOfDay(slot.End)
	if !okStart || !okEnd {
		return issue(FailureTimeFormat, "")
	}
	if start >= end {
		return issue(FailureTimeOrder, "")
	}
	return nil
}

// ValidateSlotSet checks every slot individually and rejects pairwise
// overlap. Touching slots (09:00-12:00, 12:00-17:00) are allowed.
func ValidateSlotSet(slots []Slot) *Issue {
	type span struct{ start, end int }
	spans := make([]span, 0, len(slots))

	for _, slot := range slots {
		if failure := ValidateSlot(slot); failure != nil {
			return failure
		}
		start, _ := ParseTimeOfDay(slot.Start)
		end, _ := ParseTimeOfDay(slot.End)
		spans = append(spans, span{start: start, end: end})
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			return issue(FailureSlotOverlap, "")
		}
	}
	return nil
}

// =============================================================================
// WEEKLY RECORDS
// =============================================================================

// ValidateWeeklyRecord checks a single weekly record: at least one
// weekday, at least one slot, and a valid slot set.
func ValidateWeeklyRecord(record WeeklyRecord) *Issue {
	if len(record.Days) == 0 {
		return issue(FailureDaysRequired, "")
	}
	if len(record.Slots) == 0 {
		return issue(FailureSlotRequired, "")
	}
	return ValidateSlotSet(record.Slots)
}

// ValidateWeeklyCoverage rejects any weekday claimed by more than one
// weekly record.
func ValidateWeeklyCoverage(records []WeeklyRecord) *Issue {
	used := map[Weekday]bool{}
	for _, record := range records {
		for _, day := range record.Days {
			if used[day] {
				return issue(FailureWeekdayOverlap, "")
			}
			used[day] = true
		}
	}
	return nil
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// ValidateHoliday performs the kind-specific required-field checks and,
// for open entries, requires a valid non-overlapping slot set.
func ValidateHoliday(h Holiday) *Issue {
	switch h.Rule {
	case HolidayDateRange:
		if h.RangeStart == "" || h.RangeEnd == "" {
			return issue(FailureDateRangeRequired, "")
		}
		if len(h.Weekdays) == 0 {
			return issue(FailureDateRangeWeekdaysMissing, "")
		}
		start, errStart := ParseDate(h.RangeStart)
		end, errEnd := ParseDate(h.RangeEnd)
		if errStart != nil || errEnd != nil {
			return issue(FailureDateRangeFormat, "")
		}
		if end.Before(start) {
			return issue(FailureDateRangeOrder, "")
		}

	case HolidaySingleDate:
		if h.SingleDate == "" {
			return issue(FailureSingleDateRequired, "")
		}
		if _, err := ParseDate(h.SingleDate); err != nil {
			return issue(FailureSingleDateFormat, "")
		}
	}

	if !h.Closed {
		if len(h.Slots) == 0 {
			return issue(FailureSlotRequired, "")
		}
		return ValidateSlotSet(h.Slots)
	}
	return nil
}

// ValidateDateRangeOverlap rejects two date-range entries that overlap in
// both date span and weekday set. Ranges overlapping in dates but with
// disjoint weekday sets are allowed.
func ValidateDateRangeOverlap(holidays []Holiday) *Issue {
	type span struct {
		start, end string
		weekdays   []Weekday
	}

	spans := make([]span, 0, len(holidays))
	for _, h := range holidays {
		if h.Rule != HolidayDateRange {
			continue
		}
		start, errStart := ParseDate(h.RangeStart)
		end, errEnd := ParseDate(h.RangeEnd)
		if errStart != nil || errEnd != nil {
			// Unparseable ranges are ValidateHoliday's problem.
			continue
		}
		spans = append(spans, span{
			start:    FormatISODate(start),
			end:      FormatISODate(end),
			weekdays: h.Weekdays,
		})
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	for i := 0; i < len(spans); i++ {
		for j := i + 1; j < len(spans); j++ {
			// Sorted by start, so once a later range begins after this one
			// ends, none of the remaining ranges can overlap it.
			if spans[j].start > spans[i].end {
				break
			}
			if weekdaysIntersect(spans[i].weekdays, spans[j].weekdays) {
				return issue(FailureDateRangeOverlap, "")
			}
		}
	}
	return nil
}

func weekdaysIntersect(a, b []Weekday) bool {
	for _, day := range a {
		for _, other := range b {
			if day == other {
				return true
			}
		}
	}
	return false
}

// =============================================================================
// WHOLE-SCHEDULE VALIDATION
// =============================================================================

// ValidateEditSchedule aggregates every structural check over an
// editing-model schedule. The returned issues carry locations
// ("days[1]", "dateRanges[0]") a form can map back to its fields. An
// empty result means the schedule is safe to convert.
func ValidateEditSchedule(edit EditSchedule) []Issue {
	var issues []Issue

	collect := func(failure *Issue, where string) {
		if failure != nil {
			issues = append(issues, Issue{Code: failure.Code, Where: where})
		}
	}

	for i, record := range edit.Weekly {
		collect(ValidateWeeklyRecord(record), fmt.Sprintf("days[%d]", i))
	}
	collect(ValidateWeeklyCoverage(edit.Weekly), "days")

	for i, h := range edit.RecurringHolidays {
		collect(ValidateHoliday(h), fmt.Sprintf("recurringHolidays[%d]", i))
	}
	for i, h := range edit.DateRanges {
		collect(ValidateHoliday(h), fmt.Sprintf("dateRanges[%d]", i))
	}
	for i, h := range edit.SingleDates {
		collect(ValidateHoliday(h), fmt.Sprintf("singleDates[%d]", i))
	}
	collect(ValidateDateRangeOverlap(edit.DateRanges), "dateRanges")

	return issues
}
