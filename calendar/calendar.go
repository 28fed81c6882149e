/*
Package calendar provides date arithmetic over the calendar systems used by
climate model output.

PURPOSE:
  Climate datasets come in two incompatible families of time representations:
  - Standard timestamps (Gregorian, what time.Time implements)
  - Fixed scientific calendars (noleap, all_leap, 360_day, julian) where
    month lengths follow the model's simplified calendar, not the real one

  The two families are not interoperable: "2001-02-30" is a valid 360_day
  date and an invalid standard one, and the number of days between two
  dates depends on which calendar they live in.

KEY CONCEPTS:
  - Kind: which calendar a date belongs to
  - Date: a tagged union over the two families. The tag is carried by the
    value, so arithmetic never has to re-inspect what it is working with.

DESIGN PRINCIPLES:
  1. The calendar kind is chosen ONCE per dataset (from its first
     timestamp) and threaded through every computation explicitly.
  2. Construction validates: an out-of-range day for the target calendar
     is rejected with a DateError, never silently normalized.
  3. Dates are immutable values; every operation returns a new Date.

USAGE:
  d, err := calendar.New(calendar.NoLeap, 2001, 2, 28)
  end := d.AddDays(1)                 // 2001-03-01, noleap has no Feb 29
  mid := calendar.Midpoint(d, end)

SEE ALSO:
  - series/: time axes built from these dates
  - frequency/: bounds reconstruction keyed off Date.Kind()
*/
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// CALENDAR KIND
// =============================================================================

// Kind identifies the calendar system a Date belongs to.
type Kind string

const (
	// Standard is the proleptic Gregorian calendar, backed by time.Time.
	Standard Kind = "standard"

	// Julian has a leap year every fourth year, without the Gregorian
	// century corrections.
	Julian Kind = "julian"

	// NoLeap (365_day) never has a February 29.
	NoLeap Kind = "noleap"

	// AllLeap (366_day) always has a February 29.
	AllLeap Kind = "all_leap"

	// Day360 has twelve 30-day months.
	Day360 Kind = "360_day"
)

// Fixed reports whether the kind is one of the fixed scientific calendars
// (everything except Standard).
func (k Kind) Fixed() bool { return k != Standard }

// Valid reports whether k names a supported calendar.
func (k Kind) Valid() bool {
	switch k {
	case Standard, Julian, NoLeap, AllLeap, Day360:
		return true
	}
	return false
}

// =============================================================================
// DATE - tagged union over standard and fixed-calendar dates
// =============================================================================

// Date is a point in time in a specific calendar system.
// The zero value is not a usable date; construct via New, NewAt or FromTime.
type Date struct {
	kind Kind

	// Standard variant.
	ts time.Time

	// Fixed variant, minute resolution.
	year, month, day int
	hour, minute     int
}

// New builds a day-resolution date in the given calendar.
func New(kind Kind, year, month, day int) (Date, error) {
	return NewAt(kind, year, month, day, 0, 0)
}

// NewAt builds a minute-resolution date in the given calendar.
func NewAt(kind Kind, year, month, day, hour, minute int) (Date, error) {
	if !kind.Valid() {
		return Date{}, &DateError{Kind: kind, Year: year, Month: month, Day: day}
	}
	if month < 1 || month > 12 || day < 1 || day > DaysIn(kind, year, month) ||
		hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Date{}, &DateError{Kind: kind, Year: year, Month: month, Day: day}
	}
	if kind == Standard {
		return Date{
			kind: Standard,
			ts:   time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC),
		}, nil
	}
	return Date{kind: kind, year: year, month: month, day: day, hour: hour, minute: minute}, nil
}

// FromTime wraps a timestamp as a standard-calendar date (UTC).
func FromTime(t time.Time) Date {
	return Date{kind: Standard, ts: t.UTC()}
}

// Accessors
func (d Date) Kind() Kind { return d.kind }

func (d Date) Year() int {
	if d.kind == Standard {
		return d.ts.Year()
	}
	return d.year
}

func (d Date) Month() int {
	if d.kind == Standard {
		return int(d.ts.Month())
	}
	return d.month
}

func (d Date) Day() int {
	if d.kind == Standard {
		return d.ts.Day()
	}
	return d.day
}

func (d Date) Hour() int {
	if d.kind == Standard {
		return d.ts.Hour()
	}
	return d.hour
}

func (d Date) Minute() int {
	if d.kind == Standard {
		return d.ts.Minute()
	}
	return d.minute
}

// =============================================================================
// ARITHMETIC
// =============================================================================

const minutesPerDay = 24 * 60

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	if d.kind == Standard {
		return Date{kind: Standard, ts: d.ts.AddDate(0, 0, n)}
	}
	return fromAbsMinutes(d.kind, d.absMinutes()+int64(n)*minutesPerDay)
}

// Add returns the date shifted by a duration. Fixed-calendar dates carry
// minute resolution, so sub-minute components are truncated.
func (d Date) Add(dur time.Duration) Date {
	if d.kind == Standard {
		return Date{kind: Standard, ts: d.ts.Add(dur)}
	}
	return fromAbsMinutes(d.kind, d.absMinutes()+int64(dur/time.Minute))
}

// Sub returns d - o. Both dates must belong to the same calendar.
func (d Date) Sub(o Date) time.Duration {
	if d.kind == Standard {
		return d.ts.Sub(o.ts)
	}
	return time.Duration(d.absMinutes()-o.absMinutes()) * time.Minute
}

// FloorDay truncates the date to midnight.
func (d Date) FloorDay() Date {
	if d.kind == Standard {
		y, m, dd := d.ts.Date()
		return Date{kind: Standard, ts: time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)}
	}
	d.hour, d.minute = 0, 0
	return d
}

// Compare returns -1, 0 or 1 ordering d against o within the same calendar.
func (d Date) Compare(o Date) int {
	if d.kind == Standard {
		return d.ts.Compare(o.ts)
	}
	a, b := d.absMinutes(), o.absMinutes()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }
func (d Date) Equal(o Date) bool  { return d.Compare(o) == 0 }

// Midpoint returns start + (end-start)/2.
func Midpoint(start, end Date) Date {
	return start.Add(end.Sub(start) / 2)
}

// =============================================================================
// CALENDAR TABLES
// =============================================================================

var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func leap(kind Kind, year int) bool {
	switch kind {
	case Julian:
		return year%4 == 0
	case AllLeap:
		return true
	}
	return false
}

// DaysIn returns the length of a month in the given calendar.
// For the standard calendar the length is derived through time arithmetic
// so leap years need no special casing here.
func DaysIn(kind Kind, year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	switch kind {
	case Standard:
		// Day 0 of the next month is the last day of this one.
		return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	case Day360:
		return 30
	}
	if month == 2 && leap(kind, year) {
		return 29
	}
	return monthDays[month]
}

func daysInYear(kind Kind, year int) int64 {
	switch kind {
	case Day360:
		return 360
	case AllLeap:
		return 366
	case Julian:
		if leap(Julian, year) {
			return 366
		}
		return 365
	}
	return 365 // NoLeap
}

// daysBeforeYear counts days from 0001-01-01 to year-01-01. Fixed calendars
// only; years are assumed >= 1, which holds for any geophysical time axis.
func daysBeforeYear(kind Kind, year int) int64 {
	y := int64(year - 1)
	switch kind {
	case Day360:
		return 360 * y
	case AllLeap:
		return 366 * y
	case Julian:
		return 365*y + y/4
	}
	return 365 * y // NoLeap
}

func daysBeforeMonth(kind Kind, year, month int) int64 {
	var n int64
	for m := 1; m < month; m++ {
		n += int64(DaysIn(kind, year, m))
	}
	return n
}

// absMinutes maps a fixed-calendar date onto a linear minute scale anchored
// at 0001-01-01 00:00 of its own calendar.
func (d Date) absMinutes() int64 {
	days := daysBeforeYear(d.kind, d.year) +
		daysBeforeMonth(d.kind, d.year, d.month) +
		int64(d.day-1)
	return days*minutesPerDay + int64(d.hour)*60 + int64(d.minute)
}

func fromAbsMinutes(kind Kind, abs int64) Date {
	days := abs / minutesPerDay
	rem := abs % minutesPerDay
	if rem < 0 {
		days--
		rem += minutesPerDay
	}

	year := int(days/366) + 1
	for daysBeforeYear(kind, year+1) <= days {
		year++
	}
	dayOfYear := days - daysBeforeYear(kind, year)

	month := 1
	for month < 12 && dayOfYear >= daysBeforeMonth(kind, year, month+1) {
		month++
	}
	day := int(dayOfYear-daysBeforeMonth(kind, year, month)) + 1

	return Date{
		kind:   kind,
		year:   year,
		month:  month,
		day:    day,
		hour:   int(rem / 60),
		minute: int(rem % 60),
	}
}

// =============================================================================
// FORMATTING & PARSING
// =============================================================================

// String renders "YYYY-MM-DD" at day resolution, "YYYY-MM-DD HH:MM" otherwise.
func (d Date) String() string {
	if d.Hour() == 0 && d.Minute() == 0 && (d.kind != Standard || d.ts.Second() == 0 && d.ts.Nanosecond() == 0) {
		return fmt.Sprintf("%04d-%02d-%02d", d.Year(), d.Month(), d.Day())
	}
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d", d.Year(), d.Month(), d.Day(), d.Hour(), d.Minute())
}

// MarshalJSON renders the date as its String form.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

var parseLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse reads a "YYYY-MM-DD[ HH:MM]" string into a date of the given
// calendar, validating the day against that calendar's month lengths.
// Fixed calendars cannot go through time.Parse: 2001-02-30 is a real
// 360_day date but an invalid Gregorian one.
func Parse(kind Kind, s string) (Date, error) {
	if kind == Standard {
		for _, layout := range parseLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return FromTime(t), nil
			}
		}
		return Date{}, fmt.Errorf("calendar: cannot parse %q as a date", s)
	}

	var y, mo, d, h, min int
	text := strings.Replace(s, "T", " ", 1)
	if n, _ := fmt.Sscanf(text, "%d-%d-%d %d:%d", &y, &mo, &d, &h, &min); n >= 3 {
		return NewAt(kind, y, mo, d, h, min)
	}
	return Date{}, fmt.Errorf("calendar: cannot parse %q as a %s date", s, kind)
}
