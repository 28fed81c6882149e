/*
catalog.go - The well-known frequencies

PURPOSE:
  An explicit, immutable catalog built once at package init: the four
  calendar frequencies and the six conventional seasons. Entries are
  plain values in a plain slice - no reflective discovery - and are
  shared read-only across all callers, so they are safe to use
  concurrently and must never be mutated.
*/
package frequency

import (
	"github.com/warp/climate-engine/series"
)

var (
	djfMonths    = []int{12, 1, 2}
	mamMonths    = []int{3, 4, 5}
	jjaMonths    = []int{6, 7, 8}
	sonMonths    = []int{9, 10, 11}
	ondjfmMonths = []int{10, 11, 12, 1, 2, 3}
	amjjasMonths = []int{4, 5, 6, 7, 8, 9}
)

// The catalog entries. Treat as read-only.
var (
	// Hour resamples to hourly values.
	Hour = regularEntry("HOUR", "H", "hourly", "hours", "hour", "h", "hourly")

	// Day resamples to daily values.
	Day = regularEntry("DAY", "D", "daily", "days", "daily", "day", "days", "d")

	// Month resamples to monthly values.
	Month = regularEntry("MONTH", "MS", "monthly", "months", "month", "monthly", "MS")

	// Year resamples to yearly values.
	Year = regularEntry("YEAR", "YS", "annual", "years", "year", "yearly", "annual", "YS")

	// DJF resamples to the winter season, December to February included.
	DJF = seasonEntry("DJF", "winter", "winter", djfMonths)

	// MAM resamples to the spring season, March to May included.
	MAM = seasonEntry("MAM", "spring", "spring", mamMonths)

	// JJA resamples to the summer season, June to August included.
	JJA = seasonEntry("JJA", "summer", "summer", jjaMonths)

	// SON resamples to the autumn season, September to November included.
	SON = seasonEntry("SON", "autumn", "autumn", sonMonths)

	// ONDJFM resamples to the winter half-year, October to March included.
	ONDJFM = seasonEntry("ONDJFM", "winter half-year", "half_year_winter", ondjfmMonths)

	// AMJJAS resamples to the summer half-year, April to September included.
	AMJJAS = seasonEntry("AMJJAS", "summer half-year", "half_year_summer", amjjasMonths)
)

var catalog = []*Frequency{
	Hour, Day, Month, Year,
	DJF, MAM, JJA, SON, ONDJFM, AMJJAS,
}

var seasonal = []*Frequency{DJF, MAM, JJA, SON, ONDJFM, AMJJAS}

// Catalog returns the well-known frequencies in registration order.
func Catalog() []*Frequency {
	out := make([]*Frequency, len(catalog))
	copy(out, catalog)
	return out
}

// Seasonal reports whether f is one of the six catalog seasons.
func Seasonal(f *Frequency) bool {
	for _, s := range seasonal {
		if f == s {
			return true
		}
	}
	return false
}

// AllAliases returns every name and alias a user may type, for error
// messages guiding correction.
func AllAliases() []string {
	var out []string
	for _, f := range catalog {
		out = append(out, f.Name)
		out = append(out, f.Aliases...)
	}
	return out
}

func regularEntry(name, rule, description, units string, aliases ...string) *Frequency {
	o, err := series.ParseOffset(rule)
	if err != nil {
		panic("frequency: bad catalog rule " + rule)
	}
	return &Frequency{
		Name:           name,
		BaseRule:       rule,
		Aliases:        aliases,
		Units:          units,
		description:    description,
		PostProcessing: regularBoundsUpdater(o),
	}
}

func seasonEntry(name, description, units string, months []int) *Frequency {
	se, err := seasonFromMonths(months)
	if err != nil {
		panic("frequency: bad catalog season " + name)
	}
	return &Frequency{
		Name:           name,
		BaseRule:       "YS-" + series.AnchorName(se.StartMonth),
		Aliases:        []string{name},
		Units:          units,
		description:    description,
		Indexer:        &series.Selector{Months: months},
		PostProcessing: seasonalBoundsUpdater(se),
	}
}
