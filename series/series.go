/*
Package series provides the time-indexed array engine the frequency model
operates on: a 1-D series of float64 samples over a calendar-aware time
axis, with resampling, selection and per-period bounds.

PURPOSE:
  This is the collaborator a frequency resolves against. A consumer builds
  a Series from its dataset, resamples it with a rule and optional
  Selector, then hands the result to the frequency's post-processing step
  which rewrites the time coordinate and emits Bounds.

KEY CONCEPTS IN THIS FILE (series.go):
  - Series:   immutable-by-convention (time, value) pairs, sorted by time
  - Selector: restricts which samples feed an output period (month set or
              wraparound date bounds) without removing them from the axis
  - Select:   the clipping primitive - physically drops samples
  - Bounds:   per-period (start, end) pairs co-indexed with a time axis

SEE ALSO:
  - offset.go:   resampling-rule tokens and period arithmetic
  - resample.go: the grouping/aggregation step
*/
package series

import (
	"fmt"

	"github.com/warp/climate-engine/calendar"
)

// =============================================================================
// SERIES
// =============================================================================

// Series is a single variable sampled over a time axis. All timestamps
// share one calendar kind and are sorted ascending.
type Series struct {
	Name   string
	Units  string
	Times  []calendar.Date
	Values []float64
}

// New validates and builds a series. The time axis must be non-empty,
// sorted ascending, uniform in calendar kind and co-indexed with values.
func New(name, units string, times []calendar.Date, values []float64) (*Series, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("series %q: empty time axis", name)
	}
	if len(times) != len(values) {
		return nil, fmt.Errorf("series %q: %d timestamps for %d values", name, len(times), len(values))
	}
	kind := times[0].Kind()
	for i, t := range times {
		if t.Kind() != kind {
			return nil, fmt.Errorf("series %q: mixed calendars %s and %s", name, kind, t.Kind())
		}
		if i > 0 && t.Before(times[i-1]) {
			return nil, fmt.Errorf("series %q: time axis not sorted at index %d", name, i)
		}
	}
	return &Series{Name: name, Units: units, Times: times, Values: values}, nil
}

func (s *Series) Len() int { return len(s.Times) }

// Kind returns the calendar of the time axis, taken from the first
// timestamp. All timestamps share it (enforced by New).
func (s *Series) Kind() calendar.Kind { return s.Times[0].Kind() }

// WithTimes returns a new series sharing values but carrying a rewritten
// time axis. The receiver is left untouched.
func (s *Series) WithTimes(times []calendar.Date) (*Series, error) {
	if len(times) != len(s.Values) {
		return nil, fmt.Errorf("series %q: cannot rewrite %d timestamps onto %d values",
			s.Name, len(times), len(s.Values))
	}
	values := make([]float64, len(s.Values))
	copy(values, s.Values)
	return &Series{Name: s.Name, Units: s.Units, Times: times, Values: values}, nil
}

// =============================================================================
// BOUNDS
// =============================================================================

// Bound is the closed [Start, End] extent of one output period.
type Bound struct {
	Start calendar.Date `json:"start"`
	End   calendar.Date `json:"end"`
}

// Bounds is co-indexed with a resampled time axis.
type Bounds []Bound

// =============================================================================
// SELECTOR - in-resample restriction (the "indexer")
// =============================================================================

// MonthDay is a calendar day without a year, for season date bounds.
type MonthDay struct {
	Month int
	Day   int
}

func (md MonthDay) String() string { return fmt.Sprintf("%02d-%02d", md.Month, md.Day) }

// before orders month-days within one year.
func (md MonthDay) before(o MonthDay) bool {
	return md.Month < o.Month || (md.Month == o.Month && md.Day < o.Day)
}

// DateBounds selects the days between Start and End inclusive, every year.
// Start after End means the window wraps the year boundary.
type DateBounds struct {
	Start MonthDay
	End   MonthDay
}

// Selector restricts which samples feed a resampling period. Exactly one
// of Months and Bounds is set.
type Selector struct {
	Months []int
	Bounds *DateBounds
}

// Keep reports whether a timestamp passes the selector.
func (sel *Selector) Keep(d calendar.Date) bool {
	if sel == nil {
		return true
	}
	if sel.Bounds != nil {
		md := MonthDay{Month: d.Month(), Day: d.Day()}
		b := *sel.Bounds
		if b.End.before(b.Start) { // wraps the year boundary
			return !md.before(b.Start) || !b.End.before(md)
		}
		return !md.before(b.Start) && !b.End.before(md)
	}
	for _, m := range sel.Months {
		if d.Month() == m {
			return true
		}
	}
	return false
}

// =============================================================================
// SELECT - the clipping primitive
// =============================================================================

// Select returns a new series containing only the samples the selector
// keeps. Used for clipped seasons, where out-of-season samples must not
// exist at all (spell counting breaks across foreign months otherwise).
func Select(s *Series, sel Selector) *Series {
	times := make([]calendar.Date, 0, s.Len())
	values := make([]float64, 0, s.Len())
	for i, t := range s.Times {
		if sel.Keep(t) {
			times = append(times, t)
			values = append(values, s.Values[i])
		}
	}
	return &Series{Name: s.Name, Units: s.Units, Times: times, Values: values}
}
