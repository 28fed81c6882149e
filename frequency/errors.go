package frequency

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

// ErrInvalidSpec is returned when a frequency specification cannot be
// resolved: unknown alias, malformed [keyword, payload] pair,
// non-consecutive or out-of-range season months, wrong-length date pair,
// or an unparsable raw resampling rule. Always raised at resolution time,
// never deferred to bounds computation.
var ErrInvalidSpec = errors.New("invalid frequency specification")

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidSpecError names the offending input and why it was rejected.
type InvalidSpecError struct {
	Spec   string
	Reason string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid frequency specification %s: %s", e.Spec, e.Reason)
}

func (e *InvalidSpecError) Unwrap() error {
	return ErrInvalidSpec
}

func invalidSpec(spec any, format string, args ...any) error {
	return &InvalidSpecError{
		Spec:   fmt.Sprintf("%v", spec),
		Reason: fmt.Sprintf(format, args...),
	}
}
