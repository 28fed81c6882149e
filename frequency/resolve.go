/*
resolve.go - Heterogeneous frequency specification resolution

PURPOSE:
  Resolve accepts every specification shape a caller (or a JSON API
  payload) can produce and returns a Frequency, failing fast with an
  InvalidSpecError on anything malformed:

  - a Frequency (returned as-is)
  - an alias string, matched case-insensitively against the catalog
  - a raw rule token ("3MS", "W"), validated by parsing it as an offset
  - a [keyword, payload] pair, keyword one of "month"/"months" (month
    set), "season" (windowed season) or "clipped_season" (season whose
    out-of-season samples are physically dropped before resampling)

  Season payloads are either consecutive month numbers (single 12->1
  wrap allowed, possibly split into two lists) or two date strings.

  Typed constructors (FromMonths, SeasonOfMonths, SeasonBetweenDates)
  cover programmatic callers who know the shape statically.

DESIGN:
  Every resolution of a non-catalog spec builds a FRESH Frequency value.
  Nothing here ever writes to a catalog entry.
*/
package frequency

import (
	"fmt"
	"strings"

	"github.com/warp/climate-engine/series"
)

const listSpecHint = `a list specification must be [keyword, payload], e.g. ["season", [1, 2, 3]]`

// Resolve normalizes any supported specification shape into a Frequency.
func Resolve(spec any) (*Frequency, error) {
	switch v := spec.(type) {
	case *Frequency:
		return v, nil
	case Frequency:
		f := v
		return &f, nil
	case string:
		return fromString(v)
	case []any:
		return fromList(v)
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return fromList(items)
	}
	return nil, invalidSpec(spec,
		"unsupported type %T; use an alias string, a rule token, or a [keyword, payload] pair", spec)
}

// fromString matches catalog names and aliases first, then falls back to
// treating the query as a raw resampling rule.
func fromString(query string) (*Frequency, error) {
	for _, f := range catalog {
		if strings.EqualFold(query, f.Name) {
			return f, nil
		}
		for _, alias := range f.Aliases {
			if strings.EqualFold(query, alias) {
				return f, nil
			}
		}
	}

	o, err := series.ParseOffset(query)
	if err != nil {
		return nil, invalidSpec(query,
			"not a known alias and not a valid resampling rule; known aliases: %s",
			strings.Join(AllAliases(), ", "))
	}
	return &Frequency{
		BaseRule:       o.String(),
		Units:          o.String(),
		description:    "time series sampled on " + query,
		PostProcessing: regularBoundsUpdater(o),
	}, nil
}

func fromList(items []any) (*Frequency, error) {
	if len(items) < 2 {
		return nil, invalidSpec(items, listSpecHint)
	}
	keyword, ok := items[0].(string)
	if !ok {
		return nil, invalidSpec(items, listSpecHint)
	}
	switch strings.ToLower(keyword) {
	case "month", "months":
		months, err := monthsFromPayload(items[1])
		if err != nil {
			return nil, err
		}
		return FromMonths(months)
	case "season":
		return seasonFromPayload(items[1], false)
	case "clipped_season":
		return seasonFromPayload(items[1], true)
	}
	return nil, invalidSpec(items,
		`unknown keyword %q; use one of "month", "months", "season", "clipped_season"`, keyword)
}

// =============================================================================
// TYPED CONSTRUCTORS
// =============================================================================

// FromMonths builds a monthly frequency restricted to the given months.
// Unlike a season the months need not be consecutive.
func FromMonths(months []int) (*Frequency, error) {
	if len(months) == 0 {
		return nil, invalidSpec(months, "at least one month is required")
	}
	for _, m := range months {
		if m < 1 || m > 12 {
			return nil, invalidSpec(months, "month %d is out of range [1, 12]", m)
		}
	}
	o, _ := series.ParseOffset("MS")
	return &Frequency{
		BaseRule:       "MS",
		Units:          "months",
		description:    fmt.Sprintf("monthly time series (months: %v)", months),
		Indexer:        &series.Selector{Months: months},
		PostProcessing: regularBoundsUpdater(o),
	}, nil
}

// SeasonOfMonths builds a seasonal frequency from consecutive months.
// Clipped seasons drop out-of-season samples ahead of resampling instead
// of windowing them during it.
func SeasonOfMonths(months []int, clipped bool) (*Frequency, error) {
	se, err := seasonFromMonths(months)
	if err != nil {
		return nil, err
	}
	sel := &series.Selector{Months: append([]int(nil), months...)}
	return newSeasonal(se, sel, clipped,
		fmt.Sprintf("seasonal time series (season: %v)", months)), nil
}

// SeasonBetweenDates builds a seasonal frequency from two free-text
// dates such as "19 july" and "14 august". The end day is the parsed
// day-of-month, not the end of its month.
func SeasonBetweenDates(begin, end string, clipped bool) (*Frequency, error) {
	se, err := seasonBetweenDates([]string{begin, end})
	if err != nil {
		return nil, err
	}
	b := series.DateBounds{
		Start: series.MonthDay{Month: se.StartMonth, Day: se.StartDay},
		End:   series.MonthDay{Month: se.EndMonth, Day: se.EndDay},
	}
	sel := &series.Selector{Bounds: &b}
	return newSeasonal(se, sel, clipped,
		fmt.Sprintf("seasonal time series (season: from %s to %s)", b.Start, b.End)), nil
}

func newSeasonal(se Season, sel *series.Selector, clipped bool, description string) *Frequency {
	f := &Frequency{
		BaseRule:       "YS-" + series.AnchorName(se.StartMonth),
		Units:          fmt.Sprintf("%s_%s_seasons", monthNames[se.StartMonth], monthNames[se.EndMonth]),
		description:    description,
		PostProcessing: seasonalBoundsUpdater(se),
	}
	if clipped {
		keep := *sel
		f.TimeClipping = func(s *series.Series) *series.Series {
			return series.Select(s, keep)
		}
	} else {
		f.Indexer = sel
	}
	return f
}

// =============================================================================
// PAYLOAD NORMALIZATION
// =============================================================================

// seasonFromPayload dispatches on the payload shape: month numbers,
// a two-list wraparound split, or two date strings.
func seasonFromPayload(payload any, clipped bool) (*Frequency, error) {
	switch v := payload.(type) {
	case []string:
		if len(v) != 2 {
			return nil, invalidSpec(payload, seasonErrReason)
		}
		return SeasonBetweenDates(v[0], v[1], clipped)
	case []int:
		return SeasonOfMonths(v, clipped)
	case [][]int:
		var months []int
		for _, part := range v {
			months = append(months, part...)
		}
		return SeasonOfMonths(months, clipped)
	case []any:
		if len(v) == 0 {
			return nil, invalidSpec(payload, seasonErrReason)
		}
		if _, ok := v[0].(string); ok {
			dates := make([]string, 0, len(v))
			for _, e := range v {
				s, ok := e.(string)
				if !ok {
					return nil, invalidSpec(payload, seasonErrReason)
				}
				dates = append(dates, s)
			}
			if len(dates) != 2 {
				return nil, invalidSpec(payload, seasonErrReason)
			}
			return SeasonBetweenDates(dates[0], dates[1], clipped)
		}
		if nested(v) {
			var months []int
			for _, part := range v {
				ms, err := monthsFromPayload(part)
				if err != nil {
					return nil, err
				}
				months = append(months, ms...)
			}
			return SeasonOfMonths(months, clipped)
		}
		months, err := monthsFromPayload(payload)
		if err != nil {
			return nil, err
		}
		return SeasonOfMonths(months, clipped)
	}
	return nil, invalidSpec(payload, seasonErrReason)
}

func nested(items []any) bool {
	switch items[0].(type) {
	case []any, []int:
		return true
	}
	return false
}

// monthsFromPayload reads a month list from native or JSON-decoded
// shapes. JSON numbers arrive as float64.
func monthsFromPayload(payload any) ([]int, error) {
	switch v := payload.(type) {
	case []int:
		return append([]int(nil), v...), nil
	case int:
		return []int{v}, nil
	case float64:
		return []int{int(v)}, nil
	case []any:
		months := make([]int, 0, len(v))
		for _, e := range v {
			switch n := e.(type) {
			case int:
				months = append(months, n)
			case float64:
				if n != float64(int(n)) {
					return nil, invalidSpec(payload, "month %v is not an integer", n)
				}
				months = append(months, int(n))
			default:
				return nil, invalidSpec(payload, "month %v is not an integer", e)
			}
		}
		return months, nil
	case []float64:
		months := make([]int, 0, len(v))
		for _, n := range v {
			months = append(months, int(n))
		}
		return months, nil
	}
	return nil, invalidSpec(payload, "cannot read a month list from %T", payload)
}
