/*
Package frequency maps user-facing resampling specifications onto concrete
resampling rules, pre-filters and time-bounds reconstruction.

PURPOSE:
  Climate index computation aggregates a daily or hourly series into one
  value per period (month, year, season). Users describe the period in
  many shapes: a keyword alias ("DJF", "monthly"), a raw rule token
  ("3MS"), or a [keyword, payload] pair for custom month sets and
  seasons. This package normalizes all of them into a Frequency.

KEY CONCEPTS IN THIS FILE (frequency.go):
  - Frequency: immutable descriptor bundling the base resampling rule, an
    optional in-resample restriction (Indexer), an optional pre-filter
    (TimeClipping) and the bounds post-processor
  - ResampleArgs: what a consumer feeds the series engine

INVARIANT:
  At most one of Indexer and TimeClipping is set. Plain calendar
  frequencies carry neither. They are mutually exclusive because they are
  two renditions of the same season window: Indexer windows samples during
  resampling, TimeClipping removes them beforehand (needed by
  spell-counting indices, which foreign months would corrupt).

USAGE:
  f, err := frequency.Resolve("DJF")
  args := f.BuildResampleArgs()
  out, _ := series.Resample(s, offset, args.Selector, reduce)
  out, bounds, err := f.PostProcessing(out)

SEE ALSO:
  - catalog.go: the well-known frequencies
  - resolve.go: heterogeneous spec resolution
  - bounds.go:  the time-bounds builders
*/
package frequency

import (
	"strings"

	"github.com/warp/climate-engine/series"
)

// PostProcessor rewrites the time coordinate of a resampled series to
// per-period midpoints and emits the matching bounds. It allocates a new
// series and never mutates its input.
type PostProcessor func(resampled *series.Series) (*series.Series, series.Bounds, error)

// Clipper drops out-of-season samples ahead of resampling.
type Clipper func(*series.Series) *series.Series

// Frequency is an immutable resampling descriptor. Catalog entries are
// shared across callers and must never be modified; ad-hoc frequencies
// are built fresh per resolution.
type Frequency struct {
	// Name is the catalog key ("DJF", "MONTH"). Empty for ad-hoc values.
	Name string

	// BaseRule is the resampling-rule token fed to the series engine.
	BaseRule string

	// Aliases are case-insensitive strings users may type to select
	// this frequency.
	Aliases []string

	// Units labels the natural unit of one resampled period.
	Units string

	// Indexer, when set, restricts which samples feed each period.
	Indexer *series.Selector

	// TimeClipping, when set, removes out-of-season samples before
	// resampling. Mutually exclusive with Indexer.
	TimeClipping Clipper

	// PostProcessing rewrites the resampled time coordinate and emits
	// per-period bounds.
	PostProcessing PostProcessor

	description string
}

// ResampleArgs is what a consumer passes to the series engine.
type ResampleArgs struct {
	Freq     string
	Selector *series.Selector
}

// BuildResampleArgs returns the rule and, when present, the indexer.
func (f *Frequency) BuildResampleArgs() ResampleArgs {
	return ResampleArgs{Freq: f.BaseRule, Selector: f.Indexer}
}

// ruleWords maps rule-token components to human words for derived
// descriptions.
var ruleWords = map[string]string{
	"YS": "annual", "Y": "annual", "AS": "annual", "A": "annual",
	"MS": "monthly", "M": "monthly",
	"QS": "seasonal", "Q": "seasonal",
	"H": "hourly", "D": "daily", "W": "weekly",
	"JAN": "January starting", "FEB": "February starting",
	"MAR": "March starting", "APR": "April starting",
	"MAY": "May starting", "JUN": "June starting",
	"JUL": "July starting", "AUG": "August starting",
	"SEP": "September starting", "OCT": "October starting",
	"NOV": "November starting", "DEC": "December starting",
}

// Description returns the explicit label when one was set, otherwise a
// label derived from the rule token ("YS-DEC" -> "annual December
// starting").
func (f *Frequency) Description() string {
	if f.description != "" {
		return f.description
	}
	parts := strings.Split(f.BaseRule, "-")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if w, ok := ruleWords[strings.ToUpper(p)]; ok {
			words = append(words, w)
		} else {
			words = append(words, p)
		}
	}
	return strings.Join(words, " ")
}

// monthNames is used for season units ("june_august_seasons").
var monthNames = [13]string{"",
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}
