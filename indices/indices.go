/*
Package indices orchestrates one climate index computation: clip,
resample, rebuild bounds.

PURPOSE:
  This is the consumer side of the frequency contract, kept deliberately
  thin. The full index catalog (threshold indices, percentile indices,
  multi-variable indices) is out of scope; what lives here is the exact
  call sequence any index implementation follows:

  1. Resolve the user's frequency specification.
  2. If the frequency clips, drop out-of-season samples first.
  3. Resample with the base rule and the indexer, reducing each period.
  4. Run the post-processor: midpoint time coordinate + bounds.

SEE ALSO:
  - frequency/: the resolution and bounds machinery
  - reducers.go: the per-period reductions
*/
package indices

import (
	"github.com/warp/climate-engine/frequency"
	"github.com/warp/climate-engine/series"
)

// Result is one completed computation.
type Result struct {
	Series    *series.Series
	Bounds    series.Bounds
	Frequency *frequency.Frequency
}

// Compute runs one index computation over the series. The input series
// is never mutated.
func Compute(s *series.Series, spec any, r Reducer) (*Result, error) {
	f, err := frequency.Resolve(spec)
	if err != nil {
		return nil, err
	}

	input := s
	if f.TimeClipping != nil {
		input = f.TimeClipping(input)
	}

	args := f.BuildResampleArgs()
	offset, err := series.ParseOffset(args.Freq)
	if err != nil {
		return nil, err
	}
	resampled, err := series.Resample(input, offset, args.Selector, r.Fn)
	if err != nil {
		return nil, err
	}

	out, bounds, err := f.PostProcessing(resampled)
	if err != nil {
		return nil, err
	}
	return &Result{Series: out, Bounds: bounds, Frequency: f}, nil
}
