package calendar

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

// ErrInvalidDate is returned when a (year, month, day) triple does not
// exist in the target calendar, e.g. February 29 in a noleap calendar.
var ErrInvalidDate = errors.New("invalid calendar date")

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// DateError reports the offending components and calendar.
type DateError struct {
	Kind  Kind
	Year  int
	Month int
	Day   int
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %04d-%02d-%02d for %s calendar", e.Year, e.Month, e.Day, e.Kind)
}

func (e *DateError) Unwrap() error {
	return ErrInvalidDate
}
