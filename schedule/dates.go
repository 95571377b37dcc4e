/*
dates.go - Calendar date and time-of-day utilities

PURPOSE:
  Pure date computations the rule engine depends on: movable holiday
  anchors (Easter, Swedish midsummer), date parsing in the two accepted
  input formats, and the strict HH:mm clock used by slots.

CONVENTIONS:
  - All dates are civil dates: midnight UTC, no wall-clock component.
    The schedule's timezone tells the embedding application which civil
    day a wall-clock instant belongs to; the engine itself never converts.
  - Times of day are minutes since midnight. "24:00" is the end-of-day
    sentinel (1440 minutes) and is only valid as a slot end.

SEE ALSO:
  - resolve.go: consumes anchors and weekday mapping
  - validate.go: consumes ParseTimeOfDay
*/
package schedule

import (
	"fmt"
	"regexp"
	"time"
)

const (
	isoDateLayout     = "2006-01-02"
	displayDateLayout = "02.01.2006"

	// MinutesPerDay is the "24:00" sentinel in minutes.
	MinutesPerDay = 24 * 60
)

// =============================================================================
// MOVABLE HOLIDAYS
// =============================================================================

// EasterSunday computes Easter Sunday for a year using the anonymous
// Gregorian (Gauss) algorithm. Deterministic for any 4-digit year.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// SwedishMidsummerDay returns the Saturday between June 20 and 26
// inclusive. A Saturday always exists in a 7-day window; the fallback is
// unreachable but keeps the function total.
func SwedishMidsummerDay(year int) time.Time {
	for day := 20; day <= 26; day++ {
		candidate := time.Date(year, time.June, day, 0, 0, 0, 0, time.UTC)
		if candidate.Weekday() == time.Saturday {
			return candidate
		}
	}
	return time.Date(year, time.June, 20, 0, 0, 0, 0, time.UTC)
}

// SwedishMidsummerEve returns the Friday between June 19 and 25
// inclusive, falling back to the day before SwedishMidsummerDay.
func SwedishMidsummerEve(year int) time.Time {
	for day := 19; day <= 25; day++ {
		candidate := time.Date(year, time.June, day, 0, 0, 0, 0, time.UTC)
		if candidate.Weekday() == time.Friday {
			return candidate
		}
	}
	return AddDays(SwedishMidsummerDay(year), -1)
}

// =============================================================================
// DATE PARSING AND FORMATTING
// =============================================================================

// ParseDate parses an ISO (YYYY-MM-DD) or localized (DD.MM.YYYY) date.
// Impossible calendar dates (2024-02-30) are rejected; the returned error
// wraps ErrMalformedDate and is meant to be treated as "field invalid",
// never as a fatal condition.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(isoDateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(displayDateLayout, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, value)
}

// FormatISODate renders a civil date as YYYY-MM-DD.
func FormatISODate(t time.Time) string {
	return t.Format(isoDateLayout)
}

// FormatDisplayDate renders a civil date in the localized DD.MM.YYYY form.
func FormatDisplayDate(t time.Time) string {
	return t.Format(displayDateLayout)
}

// =============================================================================
// TIME OF DAY
// =============================================================================

var timeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ParseTimeOfDay converts a strict zero-padded "HH:mm" string to minutes
// since midnight. "24:00" maps to MinutesPerDay. Returns ok=false for
// anything else; callers surface that as a validation failure.
func ParseTimeOfDay(value string) (int, bool) {
	if value == "24:00" {
		return MinutesPerDay, true
	}
	match := timeOfDayPattern.FindStringSubmatch(value)
	if match == nil {
		return 0, false
	}
	hours := int(match[1][0]-'0')*10 + int(match[1][1]-'0')
	minutes := int(match[2][0]-'0')*10 + int(match[2][1]-'0')
	return hours*60 + minutes, true
}

// =============================================================================
// CIVIL DATE HELPERS
// =============================================================================

// DateOnly strips any wall-clock component, leaving midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays moves a civil date by n days.
func AddDays(t time.Time, n int) time.Time {
	return DateOnly(t).AddDate(0, 0, n)
}

// StartOfWeek returns the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	diff := int(t.Weekday()) - int(time.Monday)
	if diff < 0 {
		diff += 7
	}
	return AddDays(t, -diff)
}

// StartOfMonth returns the first day of the month containing t.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
