/*
bounds_test.go - Time-bounds reconstruction tests

PURPOSE:
  Validates the post-processing contract: after resampling, the time
  coordinate is rewritten to period midpoints and bounds are emitted per
  period, with correct handling of season wraparound across the year
  boundary and of each supported calendar's month lengths.
*/
package frequency_test

import (
	"testing"

	"github.com/warp/climate-engine/calendar"
	"github.com/warp/climate-engine/frequency"
	"github.com/warp/climate-engine/series"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func mustDate(t *testing.T, kind calendar.Kind, y, m, d int) calendar.Date {
	t.Helper()
	date, err := calendar.New(kind, y, m, d)
	if err != nil {
		t.Fatal(err)
	}
	return date
}

// dailySeries spans startY-01-01 through endY-12-<last> with constant 1s.
func dailySeries(t *testing.T, kind calendar.Kind, startY, endY int) *series.Series {
	t.Helper()
	var times []calendar.Date
	var values []float64
	cur := mustDate(t, kind, startY, 1, 1)
	end := mustDate(t, kind, endY, 12, calendar.DaysIn(kind, endY, 12))
	for !cur.After(end) {
		times = append(times, cur)
		values = append(values, 1)
		cur = cur.AddDays(1)
	}
	s, err := series.New("pr", "mm", times, values)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func meanOf(vs []float64) float64 {
	var total float64
	for _, v := range vs {
		total += v
	}
	return total / float64(len(vs))
}

// runFrequency resamples with the frequency's args and applies its
// post-processing, i.e. the documented consumer sequence.
func runFrequency(t *testing.T, f *frequency.Frequency, s *series.Series) (*series.Series, series.Bounds) {
	t.Helper()
	if f.TimeClipping != nil {
		s = f.TimeClipping(s)
	}
	args := f.BuildResampleArgs()
	o, err := series.ParseOffset(args.Freq)
	if err != nil {
		t.Fatalf("catalog rule %q does not parse: %v", args.Freq, err)
	}
	resampled, err := series.Resample(s, o, args.Selector, meanOf)
	if err != nil {
		t.Fatal(err)
	}
	out, bounds, err := f.PostProcessing(resampled)
	if err != nil {
		t.Fatal(err)
	}
	if len(bounds) != out.Len() {
		t.Fatalf("%d bounds for %d rows", len(bounds), out.Len())
	}
	return out, bounds
}

func findBoundStartingIn(t *testing.T, out *series.Series, bounds series.Bounds, year int) (calendar.Date, series.Bound) {
	t.Helper()
	for i, b := range bounds {
		if b.Start.Year() == year {
			return out.Times[i], b
		}
	}
	t.Fatalf("no period starting in %d", year)
	return calendar.Date{}, series.Bound{}
}

// =============================================================================
// SEASONAL BOUNDS
// =============================================================================

func TestSeasonalBounds_WraparoundSeasonEndsNextYear(t *testing.T) {
	// GIVEN: three years of daily data and the DJF season
	s := dailySeries(t, calendar.Standard, 2000, 2002)
	f, err := frequency.Resolve([]any{"season", []int{12, 1, 2}})
	if err != nil {
		t.Fatal(err)
	}

	// WHEN: resampling and rebuilding bounds
	out, bounds := runFrequency(t, f, s)

	// THEN: the season-year 2000 runs from Dec 1 2000 to Feb 28 2001
	// (2001 is not a leap year), and its midpoint is strictly inside
	mid, b := findBoundStartingIn(t, out, bounds, 2000)
	if got := b.Start.String(); got != "2000-12-01" {
		t.Errorf("season start = %s, want 2000-12-01", got)
	}
	if got := b.End.String(); got != "2001-02-28" {
		t.Errorf("season end = %s, want 2001-02-28", got)
	}
	if !b.Start.Before(mid) || !mid.Before(b.End) {
		t.Errorf("midpoint %s not strictly between %s and %s", mid, b.Start, b.End)
	}

	// AND: a season ending in a leap year runs through Feb 29
	_, bLeap := findBoundStartingIn(t, out, bounds, 1999)
	if got := bLeap.End.String(); got != "2000-02-29" {
		t.Errorf("leap-year season end = %s, want 2000-02-29", got)
	}
}

func TestSeasonalBounds_NonWrappingSeasonStaysInYear(t *testing.T) {
	s := dailySeries(t, calendar.Standard, 2001, 2001)

	out, bounds := runFrequency(t, frequency.JJA, s)

	_, b := findBoundStartingIn(t, out, bounds, 2001)
	if b.Start.String() != "2001-06-01" || b.End.String() != "2001-08-31" {
		t.Errorf("JJA 2001 = [%s, %s], want [2001-06-01, 2001-08-31]", b.Start, b.End)
	}
}

func TestSeasonalBounds_FollowTheSeriesCalendar(t *testing.T) {
	// The end-of-February roll depends on the calendar of the data.
	cases := []struct {
		kind calendar.Kind
		want string
	}{
		{calendar.NoLeap, "2001-02-28"},
		{calendar.AllLeap, "2001-02-29"},
		{calendar.Day360, "2001-02-30"},
	}
	for _, c := range cases {
		s := dailySeries(t, c.kind, 2000, 2001)
		f, err := frequency.Resolve([]any{"season", []int{12, 1, 2}})
		if err != nil {
			t.Fatal(err)
		}
		out, bounds := runFrequency(t, f, s)
		_, b := findBoundStartingIn(t, out, bounds, 2000)
		if got := b.End.String(); got != c.want {
			t.Errorf("%s: DJF end = %s, want %s", c.kind, got, c.want)
		}
	}
}

func TestSeasonalBounds_ExplicitEndDayIsNotRolled(t *testing.T) {
	// A date-string season pins the end day to the parsed day-of-month.
	s := dailySeries(t, calendar.Standard, 2001, 2001)
	f, err := frequency.Resolve([]any{"season", []string{"19 july", "14 august"}})
	if err != nil {
		t.Fatal(err)
	}

	out, bounds := runFrequency(t, f, s)

	_, b := findBoundStartingIn(t, out, bounds, 2001)
	if b.Start.String() != "2001-07-19" || b.End.String() != "2001-08-14" {
		t.Errorf("date season = [%s, %s], want [2001-07-19, 2001-08-14]", b.Start, b.End)
	}
}

// =============================================================================
// REGULAR BOUNDS
// =============================================================================

func TestRegularBounds_MonthlyPeriods(t *testing.T) {
	s := dailySeries(t, calendar.Standard, 2001, 2001)

	out, bounds := runFrequency(t, frequency.Month, s)

	if out.Len() != 12 {
		t.Fatalf("got %d rows, want 12", out.Len())
	}
	if bounds[0].Start.String() != "2001-01-01" || bounds[0].End.String() != "2001-01-31" {
		t.Errorf("January = [%s, %s], want [2001-01-01, 2001-01-31]", bounds[0].Start, bounds[0].End)
	}
	if bounds[1].End.String() != "2001-02-28" {
		t.Errorf("February end = %s, want 2001-02-28", bounds[1].End)
	}
	if got := out.Times[0].String(); got != "2001-01-16" {
		t.Errorf("January midpoint = %s, want 2001-01-16", got)
	}
}

func TestRegularBounds_AnnualPeriods(t *testing.T) {
	s := dailySeries(t, calendar.NoLeap, 2001, 2002)

	out, bounds := runFrequency(t, frequency.Year, s)

	if out.Len() != 2 {
		t.Fatalf("got %d rows, want 2", out.Len())
	}
	if bounds[0].Start.String() != "2001-01-01" || bounds[0].End.String() != "2001-12-31" {
		t.Errorf("year 2001 = [%s, %s]", bounds[0].Start, bounds[0].End)
	}
}

func TestRegularBounds_AdHocRule(t *testing.T) {
	s := dailySeries(t, calendar.Standard, 2001, 2001)
	f, err := frequency.Resolve("3MS")
	if err != nil {
		t.Fatal(err)
	}

	out, bounds := runFrequency(t, f, s)

	if out.Len() != 4 {
		t.Fatalf("got %d rows, want 4", out.Len())
	}
	if bounds[0].Start.String() != "2001-01-01" || bounds[0].End.String() != "2001-03-31" {
		t.Errorf("Q1 = [%s, %s], want [2001-01-01, 2001-03-31]", bounds[0].Start, bounds[0].End)
	}
}

// =============================================================================
// IDEMPOTENCE
// =============================================================================

func TestPostProcessing_LeavesTheCatalogEntryUntouched(t *testing.T) {
	// GIVEN: the shared DJF catalog entry and its observable state
	before := struct {
		rule, units, desc string
		months            []int
	}{
		rule:   frequency.DJF.BaseRule,
		units:  frequency.DJF.Units,
		desc:   frequency.DJF.Description(),
		months: append([]int(nil), frequency.DJF.Indexer.Months...),
	}

	// WHEN: running the full pipeline repeatedly
	s := dailySeries(t, calendar.Standard, 2000, 2002)
	out1, bounds1 := runFrequency(t, frequency.DJF, s)
	out2, bounds2 := runFrequency(t, frequency.DJF, s)

	// THEN: outputs agree and the catalog entry is unchanged
	if out1.Len() != out2.Len() {
		t.Errorf("repeated runs disagree: %d vs %d rows", out1.Len(), out2.Len())
	}
	for i := range bounds1 {
		if !bounds1[i].Start.Equal(bounds2[i].Start) || !bounds1[i].End.Equal(bounds2[i].End) {
			t.Errorf("bounds %d differ between runs", i)
		}
	}
	if frequency.DJF.BaseRule != before.rule ||
		frequency.DJF.Units != before.units ||
		frequency.DJF.Description() != before.desc ||
		!equalInts(frequency.DJF.Indexer.Months, before.months) {
		t.Error("post-processing mutated the shared catalog entry")
	}
}
