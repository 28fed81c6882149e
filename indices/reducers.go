/*
reducers.go - Per-period reduction functions

PURPOSE:
  A Reducer collapses the samples of one resampled period into the index
  value for that period. The statistical reducers lean on gonum; Sum
  accumulates in decimal because precipitation-style totals over decades
  of daily samples drift visibly in float64.
*/
package indices

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/warp/climate-engine/series"
)

// Reducer is a named per-period reduction.
type Reducer struct {
	Name string
	Fn   series.ReduceFunc
}

// Mean averages the period's samples.
func Mean() Reducer {
	return Reducer{Name: "mean", Fn: func(vs []float64) float64 {
		return stat.Mean(vs, nil)
	}}
}

// Min takes the period minimum.
func Min() Reducer {
	return Reducer{Name: "min", Fn: floats.Min}
}

// Max takes the period maximum.
func Max() Reducer {
	return Reducer{Name: "max", Fn: floats.Max}
}

// Sum totals the period's samples with exact decimal accumulation.
func Sum() Reducer {
	return Reducer{Name: "sum", Fn: func(vs []float64) float64 {
		total := decimal.Zero
		for _, v := range vs {
			total = total.Add(decimal.NewFromFloat(v))
		}
		f, _ := total.Float64()
		return f
	}}
}

// Quantile takes the p-th quantile (0 < p < 1) with linear interpolation.
// The period's samples are sorted on a copy; inputs are never mutated.
func Quantile(p float64) Reducer {
	return Reducer{Name: fmt.Sprintf("q%g", p*100), Fn: func(vs []float64) float64 {
		sorted := append([]float64(nil), vs...)
		sort.Float64s(sorted)
		return stat.Quantile(p, stat.LinInterp, sorted, nil)
	}}
}

// SpellAbove counts the longest run of consecutive samples strictly above
// the threshold. This reducer is why clipped seasons exist: with foreign
// months still present in the series, a spell could span the gap between
// two season occurrences and be counted as one run.
func SpellAbove(threshold float64) Reducer {
	return Reducer{Name: fmt.Sprintf("spell_above_%g", threshold), Fn: func(vs []float64) float64 {
		longest, run := 0, 0
		for _, v := range vs {
			if v > threshold {
				run++
				if run > longest {
					longest = run
				}
			} else {
				run = 0
			}
		}
		return float64(longest)
	}}
}

// ByName resolves "mean", "min", "max", "sum" and "qNN" quantile names.
// SpellAbove needs a threshold and is constructed directly.
func ByName(name string) (Reducer, error) {
	switch strings.ToLower(name) {
	case "mean", "":
		return Mean(), nil
	case "min":
		return Min(), nil
	case "max":
		return Max(), nil
	case "sum":
		return Sum(), nil
	}
	if q, ok := strings.CutPrefix(strings.ToLower(name), "q"); ok {
		if p, err := strconv.ParseFloat(q, 64); err == nil && p > 0 && p < 100 {
			return Quantile(p / 100), nil
		}
	}
	return Reducer{}, fmt.Errorf("unknown reducer %q; use mean, min, max, sum or qNN", name)
}
