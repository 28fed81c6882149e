/*
bounds.go - Time-bounds reconstruction after resampling

PURPOSE:
  Resampling labels each output row at its period start. Climate index
  conventions instead want the time coordinate at the period MIDPOINT,
  with explicit per-period bounds alongside. The two builders here
  produce PostProcessors doing exactly that:

  - seasonalBoundsUpdater: the season case. The resampled axis carries
    one row per season-year; for each year the season start/end dates are
    rebuilt from the season descriptor. A season that wraps the calendar
    year (December-February) ends in the year AFTER its start. An open
    end day rolls to the last day of the end month, derived from the
    series' calendar so leap years and 360-day Decembers come out right.

  - regularBoundsUpdater: the plain case (hourly/daily/monthly/annual/
    custom rule). Every resampled row already is one period, so bounds
    are start = floor(row, day), end = start + one period - one day.

CALENDAR DISPATCH:
  Both builders read the calendar kind once from the series' first
  timestamp and construct every date in that calendar.
*/
package frequency

import (
	"fmt"

	"github.com/warp/climate-engine/calendar"
	"github.com/warp/climate-engine/series"
)

// seasonalBoundsUpdater builds the post-processor for one season.
func seasonalBoundsUpdater(se Season) PostProcessor {
	return func(s *series.Series) (*series.Series, series.Bounds, error) {
		if s.Len() == 0 {
			return &series.Series{Name: s.Name, Units: s.Units}, nil, nil
		}
		kind := s.Kind()

		// One row per season-year: the distinct years of the resampled
		// axis, in chronological order.
		years := make([]int, 0, s.Len())
		for _, t := range s.Times {
			if len(years) == 0 || t.Year() != years[len(years)-1] {
				years = append(years, t.Year())
			}
		}
		if len(years) != s.Len() {
			return nil, nil, fmt.Errorf(
				"seasonal bounds: %d season-years for %d resampled rows", len(years), s.Len())
		}

		times := make([]calendar.Date, 0, len(years))
		bounds := make(series.Bounds, 0, len(years))
		for _, year := range years {
			endYear := year
			if se.Wraps() {
				endYear = year + 1
			}
			start, err := calendar.New(kind, year, se.StartMonth, se.StartDay)
			if err != nil {
				return nil, nil, err
			}
			end, err := seasonEnd(kind, endYear, se)
			if err != nil {
				return nil, nil, err
			}
			times = append(times, calendar.Midpoint(start, end))
			bounds = append(bounds, series.Bound{Start: start, End: end})
		}

		out, err := s.WithTimes(times)
		if err != nil {
			return nil, nil, err
		}
		return out, bounds, nil
	}
}

// seasonEnd resolves the season's end date in a given year. An open end
// day (0) rolls to the last day of the end month in the series' calendar.
func seasonEnd(kind calendar.Kind, year int, se Season) (calendar.Date, error) {
	day := se.EndDay
	if day == 0 {
		day = calendar.DaysIn(kind, year, se.EndMonth)
	}
	return calendar.New(kind, year, se.EndMonth, day)
}

// regularBoundsUpdater builds the post-processor for non-seasonal rules.
// Resampled rows are period starts, so no year enumeration is needed.
func regularBoundsUpdater(o series.Offset) PostProcessor {
	return func(s *series.Series) (*series.Series, series.Bounds, error) {
		times := make([]calendar.Date, 0, s.Len())
		bounds := make(series.Bounds, 0, s.Len())
		for _, t := range s.Times {
			start := t.FloorDay()
			end := o.Next(start).AddDays(-1)
			times = append(times, calendar.Midpoint(start, end))
			bounds = append(bounds, series.Bound{Start: start, End: end})
		}
		out, err := s.WithTimes(times)
		if err != nil {
			return nil, nil, err
		}
		return out, bounds, nil
	}
}
