/*
season.go - Normalizing heterogeneous season specifications

PURPOSE:
  Users describe a season three ways:
  - an ordered list of consecutive month numbers, allowed to wrap once
    from December to January: [12, 1, 2]
  - two month lists to concatenate, the wraparound split out explicitly:
    [[12], [1, 2]]
  - two free-text dates: ["19 july", "14 august"]

  All three normalize to a Season of (start month, start day, end month,
  end day). The month forms leave the end day open (0), which the bounds
  builder later rolls to the last day of the end month; the date form
  pins it to the parsed day.

VALIDATION:
  Month lists must be consecutive: every step is +1, except a single
  December-to-January wrap. Any violation reports the one fixed
  diagnostic (seasonErrReason) so users see the accepted shapes.
*/
package frequency

import (
	"fmt"
	"strings"
	"time"
)

const seasonErrReason = "a season must be made of either consecutive integers" +
	" for months such as [1, 2, 3] or two date strings such as" +
	` ["19 july", "14 august"]`

// Season is the normalized descriptor. EndDay == 0 means "roll to the
// last day of EndMonth".
type Season struct {
	StartMonth int
	StartDay   int
	EndMonth   int
	EndDay     int
}

// Wraps reports whether the season crosses the year boundary, in which
// case its end falls in the calendar year after its start.
func (s Season) Wraps() bool { return s.StartMonth > s.EndMonth }

// seasonFromMonths validates a consecutive month list.
func seasonFromMonths(months []int) (Season, error) {
	if len(months) == 0 {
		return Season{}, invalidSpec(months, seasonErrReason)
	}
	for _, m := range months {
		if m < 1 || m > 12 {
			return Season{}, invalidSpec(months, seasonErrReason)
		}
	}
	for i := 0; i < len(months)-1; i++ {
		a, b := months[i], months[i+1]
		if b != a+1 && !(a == 12 && b == 1) {
			return Season{}, invalidSpec(months, seasonErrReason)
		}
	}
	return Season{
		StartMonth: months[0],
		StartDay:   1,
		EndMonth:   months[len(months)-1],
	}, nil
}

// seasonBetweenDates parses the two-date form. Exactly two dates are
// required; the end day comes from the parsed date, not month end.
func seasonBetweenDates(dates []string) (Season, error) {
	if len(dates) != 2 {
		return Season{}, invalidSpec(dates, seasonErrReason)
	}
	begin, err := parseSeasonDate(dates[0])
	if err != nil {
		return Season{}, invalidSpec(dates, "cannot read date %q: %v", dates[0], err)
	}
	end, err := parseSeasonDate(dates[1])
	if err != nil {
		return Season{}, invalidSpec(dates, "cannot read date %q: %v", dates[1], err)
	}
	return Season{
		StartMonth: int(begin.Month()),
		StartDay:   begin.Day(),
		EndMonth:   int(end.Month()),
		EndDay:     end.Day(),
	}, nil
}

// seasonDateLayouts is the accepted grammar for free-text season dates.
// The year component, where present, is ignored: a season repeats yearly.
var seasonDateLayouts = []string{
	"2 January",
	"January 2",
	"2 Jan",
	"Jan 2",
	"2006-01-02",
	"01-02",
}

func parseSeasonDate(text string) (time.Time, error) {
	normalized := titleMonths(strings.TrimSpace(text))
	for _, layout := range seasonDateLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", text)
}

// titleMonths uppercases the first letter of each word so "19 july"
// matches time.Parse's "2 January" layout.
func titleMonths(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
