/*
Package schedule provides the core opening-hours engine.

PURPOSE:
  This package contains the versioned schedule data model and the rule
  resolution engine that decides, for any calendar date, which rule governs
  the day and which time windows are open. Admin surfaces (hours editor,
  outcome editor, calendar views) are thin collaborators over this engine.

KEY CONCEPTS IN THIS FILE (types.go):
  - Weekday: Monday-first weekday enumeration
  - Slot: an open time-of-day window carrying its own outcome
  - Rule: one schedule entry with a scope-tagged applicability payload
  - Schedule: the rule-based (V2) schedule, the interchange format

DESIGN PRINCIPLES:
  1. Value semantics: callers pass schedules in, get new values out;
     nothing in this package mutates its inputs or holds state
  2. Sum types: Rule.AppliesOn is a sealed interface with one variant per
     scope, checked exhaustively with type switches
  3. Stable wire shape: the V2 JSON layout (field names, enumerations,
     nesting) is the compatibility contract and is preserved by the
     custom Rule codec

USAGE:
  res := schedule.Resolve(sched, date)
  for _, slot := range res.Slots { ... }

SEE ALSO:
  - resolve.go: rule matching and winner selection
  - convert.go: editing-model (mid-generation) converters
  - outcomes.go: canonical outcome IDs and normalization
*/
package schedule

import (
	"encoding/json"
	"fmt"
	"time"
)

// =============================================================================
// WEEKDAYS
// =============================================================================

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists all weekdays in canonical Monday-first order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayLabels = map[Weekday]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// Label returns the human-readable weekday name, or the raw value for an
// unknown weekday.
func (w Weekday) Label() string {
	if label, ok := weekdayLabels[w]; ok {
		return label
	}
	return string(w)
}

// Valid reports whether w is one of the seven canonical weekdays.
func (w Weekday) Valid() bool {
	_, ok := weekdayLabels[w]
	return ok
}

// WeekdayOf maps a calendar date to its Weekday.
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// =============================================================================
// SLOTS AND OUTCOMES
// =============================================================================

// OutcomeID identifies a business outcome from the fixed canonical set.
// See outcomes.go for the canonical IDs and normalization of legacy values.
type OutcomeID string

// OutcomeDefinition carries the display metadata for one outcome.
type OutcomeDefinition struct {
	ID    OutcomeID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

// Slot is a contiguous open window within a day. Start and End are
// zero-padded 24h "HH:mm" strings; "24:00" is the valid end-of-day
// sentinel. Start must sort before End.
type Slot struct {
	Start  string    `json:"start"`
	End    string    `json:"end"`
	Action OutcomeID `json:"action"`
}

// DefaultClosed is the outcome applied to any time outside a matching
// rule's slots.
type DefaultClosed struct {
	Action OutcomeID `json:"action"`
	Reason string    `json:"reason,omitempty"`
}

// =============================================================================
// SCOPES - the kinds of applicability a rule can have
// =============================================================================

type Scope string

const (
	ScopeSingleDate Scope = "single-date"
	ScopeRecurring  Scope = "recurring"
	ScopeDateRange  Scope = "date-range"
	ScopeWeekly     Scope = "weekly"
)

// ScopePrecedence is the fixed emission and tie-break order: converters
// assign ascending priorities in this order, so a single-date rule always
// beats a recurring holiday, which beats a date range, which beats the
// weekly pattern. This ordering is part of the engine's contract, not an
// accident of list construction.
var ScopePrecedence = []Scope{ScopeSingleDate, ScopeRecurring, ScopeDateRange, ScopeWeekly}

// RecurringKind selects how a recurring rule's anchor date is computed
// for a given year.
type RecurringKind string

const (
	RecurringFixedDate     RecurringKind = "fixed-date"           // month + day every year
	RecurringEasterOffset  RecurringKind = "easter-offset"        // Easter Sunday + offsetDays
	RecurringMidsummerDay  RecurringKind = "swedish-midsummer-day" // Saturday between Jun 20-26
	RecurringMidsummerEve  RecurringKind = "swedish-midsummer-eve" // Friday between Jun 19-25
)

// =============================================================================
// APPLIES-ON - sum type over rule scopes
// =============================================================================

// AppliesOn is the scope-specific applicability payload of a rule. It is a
// sealed sum type: exactly one variant exists per scope, and the variant
// determines the rule's scope tag on the wire.
type AppliesOn interface {
	RuleScope() Scope
	appliesOn()
}

// WeeklyDays applies the rule on a set of weekdays, every week.
type WeeklyDays struct {
	Weekdays []Weekday
}

// SingleDate applies the rule on exactly one ISO calendar date.
type SingleDate struct {
	Date string
}

// DateRange applies the rule between two ISO dates inclusive, optionally
// filtered to a weekday subset.
type DateRange struct {
	DateFrom string
	DateTo   string
	Weekdays []Weekday
}

// RecurringHoliday applies the rule every year, starting at a computed
// anchor date and spanning LengthDays consecutive calendar days.
type RecurringHoliday struct {
	Kind       RecurringKind
	Month      int // 1-12, fixed-date only
	Day        int // 1-31, fixed-date only
	OffsetDays int // easter-offset only
	LengthDays int // window length; values < 1 are treated as 1
}

func (WeeklyDays) RuleScope() Scope       { return ScopeWeekly }
func (SingleDate) RuleScope() Scope       { return ScopeSingleDate }
func (DateRange) RuleScope() Scope        { return ScopeDateRange }
func (RecurringHoliday) RuleScope() Scope { return ScopeRecurring }

func (WeeklyDays) appliesOn()       {}
func (SingleDate) appliesOn()       {}
func (DateRange) appliesOn()        {}
func (RecurringHoliday) appliesOn() {}

// =============================================================================
// RULES
// =============================================================================

// Rule is the atomic unit of scheduling. Priority defines evaluation
// order: lower numbers are evaluated first and win ties (see resolve.go).
// The scope tag on the wire is derived from the AppliesOn variant, so a
// Rule cannot carry a payload that disagrees with its scope.
type Rule struct {
	ID            string
	Name          string
	Priority      int
	AppliesOn     AppliesOn
	Slots         []Slot
	DefaultClosed DefaultClosed
}

// Scope returns the rule's scope tag. Rules without a payload report the
// weekly scope and never match.
func (r Rule) Scope() Scope {
	if r.AppliesOn == nil {
		return ScopeWeekly
	}
	return r.AppliesOn.RuleScope()
}

// Schedule is the rule-based (V2) schedule: a flat, prioritized rule list
// plus the outcome display registry. Rules need not be stored in priority
// order; Priority alone defines evaluation order.
type Schedule struct {
	Timezone     string              `json:"timezone"`
	ExitOutcomes []OutcomeDefinition `json:"exitOutcomes"`
	Rules        []Rule              `json:"rules"`
}

// =============================================================================
// WIRE CODEC
// =============================================================================
// The V2 JSON layout is the interchange contract:
//
//   {"id","name","scope","priority",
//    "appliesOn":{"date"?,"dateFrom"?,"dateTo"?,"weekdays"?,
//                 "recurring":{"kind","month"?,"day"?,"offsetDays"?,"lengthDays"?}?},
//    "slots":[{"start","end","action"}],
//    "defaultClosed":{"action","reason"?}}
// =============================================================================

type ruleJSON struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Scope         Scope         `json:"scope"`
	Priority      int           `json:"priority"`
	AppliesOn     appliesOnJSON `json:"appliesOn"`
	Slots         []Slot        `json:"slots"`
	DefaultClosed DefaultClosed `json:"defaultClosed"`
}

type appliesOnJSON struct {
	Date      string         `json:"date,omitempty"`
	DateFrom  string         `json:"dateFrom,omitempty"`
	DateTo    string         `json:"dateTo,omitempty"`
	Weekdays  []Weekday      `json:"weekdays,omitempty"`
	Recurring *recurringJSON `json:"recurring,omitempty"`
}

type recurringJSON struct {
	Kind       RecurringKind `json:"kind"`
	Month      int           `json:"month,omitempty"`
	Day        int           `json:"day,omitempty"`
	OffsetDays int           `json:"offsetDays,omitempty"`
	LengthDays int           `json:"lengthDays,omitempty"`
}

func (r Rule) MarshalJSON() ([]byte, error) {
	out := ruleJSON{
		ID:            r.ID,
		Name:          r.Name,
		Scope:         r.Scope(),
		Priority:      r.Priority,
		Slots:         r.Slots,
		DefaultClosed: r.DefaultClosed,
	}
	if out.Slots == nil {
		out.Slots = []Slot{}
	}

	switch applies := r.AppliesOn.(type) {
	case WeeklyDays:
		out.AppliesOn.Weekdays = applies.Weekdays
	case SingleDate:
		out.AppliesOn.Date = applies.Date
	case DateRange:
		out.AppliesOn.DateFrom = applies.DateFrom
		out.AppliesOn.DateTo = applies.DateTo
		out.AppliesOn.Weekdays = applies.Weekdays
	case RecurringHoliday:
		out.AppliesOn.Recurring = &recurringJSON{
			Kind:       applies.Kind,
			Month:      applies.Month,
			Day:        applies.Day,
			OffsetDays: applies.OffsetDays,
			LengthDays: applies.LengthDays,
		}
	case nil:
		// No payload: emitted as an empty weekly rule that never matches.
	}

	return json.Marshal(out)
}

func (r *Rule) UnmarshalJSON(data []byte) error {
	var in ruleJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	applies, err := decodeAppliesOn(in.Scope, in.AppliesOn)
	if err != nil {
		return fmt.Errorf("rule %q: %w", in.Name, err)
	}

	r.ID = in.ID
	r.Name = in.Name
	r.Priority = in.Priority
	r.AppliesOn = applies
	r.Slots = in.Slots
	r.DefaultClosed = in.DefaultClosed
	return nil
}

// decodeAppliesOn builds the payload variant selected by the scope tag.
// A payload that does not carry the fields its scope requires is a codec
// error rather than a rule that silently never matches.
func decodeAppliesOn(scope Scope, in appliesOnJSON) (AppliesOn, error) {
	switch scope {
	case ScopeWeekly:
		return WeeklyDays{Weekdays: in.Weekdays}, nil
	case ScopeSingleDate:
		if in.Date == "" {
			return nil, fmt.Errorf("%w: single-date rule without date", ErrInvalidAppliesOn)
		}
		return SingleDate{Date: in.Date}, nil
	case ScopeDateRange:
		if in.DateFrom == "" || in.DateTo == "" {
			return nil, fmt.Errorf("%w: date-range rule without endpoints", ErrInvalidAppliesOn)
		}
		return DateRange{DateFrom: in.DateFrom, DateTo: in.DateTo, Weekdays: in.Weekdays}, nil
	case ScopeRecurring:
		if in.Recurring == nil {
			return nil, fmt.Errorf("%w: recurring rule without recurring payload", ErrInvalidAppliesOn)
		}
		return RecurringHoliday{
			Kind:       in.Recurring.Kind,
			Month:      in.Recurring.Month,
			Day:        in.Recurring.Day,
			OffsetDays: in.Recurring.OffsetDays,
			LengthDays: in.Recurring.LengthDays,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScope, scope)
	}
}
