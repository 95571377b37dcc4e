/*
resolve.go - Rule resolution engine

PURPOSE:
  Answers "what is open on date X". Every rule's scope-specific predicate
  is evaluated against the date; matches are ordered by priority and the
  first one governs the whole day. Losing matches are reported as shadowed
  rules so an operator can see "X overrides Y" instead of reconciling
  merged slot sets.

ALGORITHM:
  1. Compute the date's ISO form and weekday
  2. Evaluate each rule's predicate (weekly / single-date / date-range /
     recurring)
  3. Stable-sort matches by ascending priority; the first match wins
  4. Emit the winner's slots verbatim, its closed outcome, and the
     shadowed rule names in priority order

NO-MATCH POLICY:
  A date no rule claims is not an error: it resolves to fully closed with
  the Deny outcome. Matched=false distinguishes this fallback from an
  intentional closed rule so the embedding layer can flag coverage gaps.

SEE ALSO:
  - types.go: rule model and scope variants
  - dates.go: recurring-holiday anchors
*/
package schedule

import (
	"slices"
	"sort"
	"time"
)

// NoMatchingRuleName is the rule name reported when no rule claims a date.
const NoMatchingRuleName = "No matching rule"

// DayResolution is the effective schedule for one calendar day.
type DayResolution struct {
	Date    string  `json:"date"`
	Weekday Weekday `json:"weekday"`

	// Matched is false when no rule claimed the date and the Deny
	// fallback applies.
	Matched  bool   `json:"matched"`
	RuleName string `json:"ruleName"`
	Scope    Scope  `json:"scope"`

	Slots        []Slot    `json:"slots"`
	ClosedAction OutcomeID `json:"closedAction"`
	ClosedReason string    `json:"closedReason,omitempty"`

	// Shadowed lists the names of rules that matched the date but lost to
	// a higher-precedence rule, in their matched (priority) order.
	Shadowed []string `json:"shadowed"`
}

// Resolve evaluates a schedule for one calendar date. Pure: the schedule
// is not modified, and equal inputs always produce equal resolutions.
func Resolve(s Schedule, date time.Time) DayResolution {
	day := DateOnly(date)
	isoDate := FormatISODate(day)
	weekday := WeekdayOf(day)

	ordered := make([]Rule, len(s.Rules))
	copy(ordered, s.Rules)
	// Stable keeps schedule order for equal priorities, so resolution is
	// deterministic even when validators were bypassed.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	var matched []Rule
	for _, rule := range ordered {
		if ruleMatches(rule, day, isoDate, weekday) {
			matched = append(matched, rule)
		}
	}

	if len(matched) == 0 {
		return DayResolution{
			Date:         isoDate,
			Weekday:      weekday,
			Matched:      false,
			RuleName:     NoMatchingRuleName,
			Scope:        ScopeWeekly,
			Slots:        []Slot{},
			ClosedAction: OutcomeDeny,
			Shadowed:     []string{},
		}
	}

	winner := matched[0]
	slots := make([]Slot, len(winner.Slots))
	copy(slots, winner.Slots)

	shadowed := make([]string, 0, len(matched)-1)
	for _, rule := range matched[1:] {
		shadowed = append(shadowed, rule.Name)
	}

	return DayResolution{
		Date:         isoDate,
		Weekday:      weekday,
		Matched:      true,
		RuleName:     winner.Name,
		Scope:        winner.Scope(),
		Slots:        slots,
		ClosedAction: winner.DefaultClosed.Action,
		ClosedReason: winner.DefaultClosed.Reason,
		Shadowed:     shadowed,
	}
}

// ResolveRange resolves consecutive days starting at from. Convenience
// for calendar views; each day is an independent Resolve call.
func ResolveRange(s Schedule, from time.Time, days int) []DayResolution {
	out := make([]DayResolution, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, Resolve(s, AddDays(from, i)))
	}
	return out
}

// =============================================================================
// PREDICATES
// =============================================================================

func ruleMatches(rule Rule, day time.Time, isoDate string, weekday Weekday) bool {
	switch applies := rule.AppliesOn.(type) {
	case SingleDate:
		return applies.Date == isoDate

	case DateRange:
		if applies.DateFrom == "" || applies.DateTo == "" {
			return false
		}
		// Lexicographic compare is chronological for fixed-width ISO dates.
		if isoDate < applies.DateFrom || isoDate > applies.DateTo {
			return false
		}
		if len(applies.Weekdays) > 0 {
			return slices.Contains(applies.Weekdays, weekday)
		}
		return true

	case WeeklyDays:
		return slices.Contains(applies.Weekdays, weekday)

	case RecurringHoliday:
		anchor, ok := recurringAnchor(applies, day.Year())
		if !ok {
			return false
		}
		length := applies.LengthDays
		if length < 1 {
			length = 1
		}
		// Whole-day window in civil dates: [anchor, anchor+length-1].
		return isoDate >= FormatISODate(anchor) && isoDate <= FormatISODate(AddDays(anchor, length-1))

	default:
		return false
	}
}

// recurringAnchor computes the holiday's start date for a year. The
// window is anchored in the queried date's own year only: a window
// spilling past December 31 does not reach into the next year's January.
func recurringAnchor(applies RecurringHoliday, year int) (time.Time, bool) {
	switch applies.Kind {
	case RecurringFixedDate:
		if applies.Month == 0 || applies.Day == 0 {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(applies.Month), applies.Day, 0, 0, 0, 0, time.UTC), true
	case RecurringEasterOffset:
		return AddDays(EasterSunday(year), applies.OffsetDays), true
	case RecurringMidsummerDay:
		return SwedishMidsummerDay(year), true
	case RecurringMidsummerEve:
		return SwedishMidsummerEve(year), true
	default:
		return time.Time{}, false
	}
}
