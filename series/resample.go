/*
resample.go - Time resampling: one output row per period

PURPOSE:
  Groups a series into periods defined by an Offset, optionally restricts
  which samples feed each period through a Selector, and reduces every
  group to a single value. Output rows are labeled at period start, which
  is what the frequency post-processors expect to rewrite.

CONTRACT:
  - Input series is never mutated; a fresh series is allocated per call.
  - Periods with no contributing samples are not emitted. The time axes
    handled here are dense (daily or hourly model output), so an empty
    period only occurs when a Selector excludes a partial leading or
    trailing period, where no meaningful aggregate exists anyway.
*/
package series

import "github.com/warp/climate-engine/calendar"

// ReduceFunc collapses the samples of one period into a single value.
// It is never called with an empty slice.
type ReduceFunc func(values []float64) float64

// Resample aggregates the series into one row per period.
func Resample(s *Series, o Offset, sel *Selector, reduce ReduceFunc) (*Series, error) {
	if s.Len() == 0 {
		return &Series{Name: s.Name, Units: s.Units}, nil
	}

	var (
		outTimes  []calendar.Date
		outValues []float64
		bucket    []float64
	)

	cur := o.PeriodStart(s.Times[0])
	next := o.Next(cur)

	flush := func() {
		if len(bucket) > 0 {
			outTimes = append(outTimes, cur)
			outValues = append(outValues, reduce(bucket))
			bucket = nil
		}
	}

	for i, t := range s.Times {
		for !t.Before(next) {
			flush()
			cur = next
			next = o.Next(cur)
		}
		if sel.Keep(t) {
			bucket = append(bucket, s.Values[i])
		}
	}
	flush()

	return &Series{Name: s.Name, Units: s.Units, Times: outTimes, Values: outValues}, nil
}
