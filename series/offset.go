/*
offset.go - Resampling-rule tokens and period arithmetic

PURPOSE:
  Parses rule tokens ("H", "D", "W", "MS", "3MS", "YS", "YS-DEC", "QS-OCT",
  legacy "AS"/"A"/"M"/"Y" aliases) into an Offset and provides the period
  arithmetic resampling and bounds reconstruction are built on:
  - PeriodStart: floor a timestamp to the start of its period
  - Next:        advance a period start to the following period start

ANCHORING:
  Year and quarter rules accept a month anchor ("YS-DEC" = years starting
  in December). This is how seasons that wrap the calendar year boundary
  get one output row per season-year: DJF resamples on YS-DEC, so December
  2000 and January 2001 land in the same period.
*/
package series

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/warp/climate-engine/calendar"
)

// ErrBadRule is returned when a rule token cannot be parsed.
var ErrBadRule = errors.New("unrecognized resampling rule")

// Unit is the base period of an offset.
type Unit string

const (
	UnitHour    Unit = "H"
	UnitDay     Unit = "D"
	UnitWeek    Unit = "W"
	UnitMonth   Unit = "MS"
	UnitQuarter Unit = "QS"
	UnitYear    Unit = "YS"
)

// Offset is a parsed resampling rule: N base periods, optionally anchored.
type Offset struct {
	N      int
	Unit   Unit
	Anchor int // anchor month for year/quarter units, 1-12
}

var monthAbbrev = [13]string{"",
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

// AnchorName returns the "JAN".."DEC" abbreviation for a month number.
func AnchorName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthAbbrev[month]
}

var unitAliases = map[string]Unit{
	"H": UnitHour,
	"D": UnitDay,
	"W": UnitWeek,
	"M": UnitMonth, "MS": UnitMonth,
	"Q": UnitQuarter, "QS": UnitQuarter,
	"Y": UnitYear, "A": UnitYear, "YS": UnitYear, "AS": UnitYear,
}

// ParseOffset validates and parses a rule token.
func ParseOffset(token string) (Offset, error) {
	t := strings.ToUpper(strings.TrimSpace(token))
	if t == "" {
		return Offset{}, fmt.Errorf("%w: empty token", ErrBadRule)
	}

	n := 1
	i := 0
	for i < len(t) && t[i] >= '0' && t[i] <= '9' {
		i++
	}
	if i > 0 {
		v, err := strconv.Atoi(t[:i])
		if err != nil || v < 1 {
			return Offset{}, fmt.Errorf("%w: %q", ErrBadRule, token)
		}
		n = v
	}

	base, anchorName, anchored := strings.Cut(t[i:], "-")
	unit, ok := unitAliases[base]
	if !ok {
		return Offset{}, fmt.Errorf("%w: %q", ErrBadRule, token)
	}

	anchor := 1
	if anchored {
		if unit != UnitYear && unit != UnitQuarter {
			return Offset{}, fmt.Errorf("%w: %q (only year and quarter rules take a month anchor)", ErrBadRule, token)
		}
		m := 0
		for i, name := range monthAbbrev {
			if name == anchorName {
				m = i
				break
			}
		}
		if m == 0 {
			return Offset{}, fmt.Errorf("%w: %q (unknown anchor month %q)", ErrBadRule, token, anchorName)
		}
		anchor = m
	}

	return Offset{N: n, Unit: unit, Anchor: anchor}, nil
}

// String renders the canonical token.
func (o Offset) String() string {
	var b strings.Builder
	if o.N > 1 {
		b.WriteString(strconv.Itoa(o.N))
	}
	b.WriteString(string(o.Unit))
	if (o.Unit == UnitYear || o.Unit == UnitQuarter) && o.Anchor > 1 {
		b.WriteString("-")
		b.WriteString(monthAbbrev[o.Anchor])
	}
	return b.String()
}

// =============================================================================
// PERIOD ARITHMETIC
// =============================================================================

// PeriodStart floors a timestamp to the start of its base period.
// Multiples (N > 1) are anchored by the caller: Resample anchors at the
// first sample's period start and advances with Next.
func (o Offset) PeriodStart(d calendar.Date) calendar.Date {
	switch o.Unit {
	case UnitHour:
		floored := d.FloorDay()
		return floored.Add(time.Duration(d.Hour()) * time.Hour)
	case UnitDay:
		return d.FloorDay()
	case UnitWeek:
		return d.FloorDay().AddDays(-weekdayOffset(d))
	case UnitMonth:
		start, _ := calendar.New(d.Kind(), d.Year(), d.Month(), 1)
		return start
	case UnitQuarter:
		k := mod(d.Month()-o.Anchor, 3)
		y, m := normalizeMonth(d.Year(), d.Month()-k)
		start, _ := calendar.New(d.Kind(), y, m, 1)
		return start
	case UnitYear:
		y := d.Year()
		if d.Month() < o.Anchor {
			y--
		}
		start, _ := calendar.New(d.Kind(), y, o.Anchor, 1)
		return start
	}
	return d
}

// Next returns the start of the period following the given period start.
func (o Offset) Next(start calendar.Date) calendar.Date {
	switch o.Unit {
	case UnitHour:
		return start.Add(time.Duration(o.N) * time.Hour)
	case UnitDay:
		return start.AddDays(o.N)
	case UnitWeek:
		return start.AddDays(7 * o.N)
	case UnitMonth:
		return addMonths(start, o.N)
	case UnitQuarter:
		return addMonths(start, 3*o.N)
	case UnitYear:
		next, _ := calendar.New(start.Kind(), start.Year()+o.N, start.Month(), 1)
		return next
	}
	return start
}

// addMonths shifts a first-of-month date by n months.
func addMonths(start calendar.Date, n int) calendar.Date {
	y, m := normalizeMonth(start.Year(), start.Month()+n)
	d, _ := calendar.New(start.Kind(), y, m, 1)
	return d
}

func normalizeMonth(year, month int) (int, int) {
	m := mod(month-1, 12) + 1
	year += (month - m) / 12
	return year, m
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// weekdayOffset returns days back to the start of the week. 2001-01-01 is
// a Monday in the standard calendar; fixed calendars have no real weekday,
// so their week grid is anchored on the same date by convention.
func weekdayOffset(d calendar.Date) int {
	ref, _ := calendar.New(d.Kind(), 2001, 1, 1)
	days := int(d.FloorDay().Sub(ref).Hours() / 24)
	return mod(days, 7)
}
