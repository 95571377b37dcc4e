/*
errors.go - Centralized error values for the schedule engine

PURPOSE:
  All sentinel errors in one place. Nothing in this package panics for
  control flow: parsing returns wrapped sentinels, validation returns
  tagged issues (validate.go), and resolution always succeeds with a
  defined fallback.

USAGE:
  if errors.Is(err, schedule.ErrMalformedDate) {
      // treat as "field invalid", re-prompt the user
  }

SEE ALSO:
  - dates.go: wraps ErrMalformedDate
  - types.go: wraps ErrUnknownScope / ErrInvalidAppliesOn in the codec
  - validate.go: tagged validation issues (not errors.Is material)
*/
package schedule

import "errors"

var (
	// ErrMalformedDate is returned when a date string is neither a valid
	// ISO (YYYY-MM-DD) nor a valid localized (DD.MM.YYYY) calendar date.
	ErrMalformedDate = errors.New("malformed date")

	// ErrUnknownScope is returned when decoding a rule whose scope tag is
	// not one of the four known scopes.
	ErrUnknownScope = errors.New("unknown rule scope")

	// ErrInvalidAppliesOn is returned when a rule's applicability payload
	// does not carry the fields its scope tag requires.
	ErrInvalidAppliesOn = errors.New("applies-on payload does not match scope")
)
