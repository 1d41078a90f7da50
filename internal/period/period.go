// Package period resolves calendar periods: the bounds of a day, week, month, year or
// custom window around an anchor date, their labels, and stepping between them.
//
// Every calculation is a pure function of its inputs. The first day of the week is an
// explicit setting rather than a locale default, so results are deterministic.
package period

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/ledger/internal/dateutils"
	"fjacquet/ledger/internal/ledgererror"
)

// Granularity is the unit of a period
type Granularity string

const (
	Daily   Granularity = "DAILY"
	Weekly  Granularity = "WEEKLY"
	Monthly Granularity = "MONTHLY"
	Yearly  Granularity = "YEARLY"
	Custom  Granularity = "CUSTOM"
)

// Granularities lists every supported granularity
var Granularities = []Granularity{Daily, Weekly, Monthly, Yearly, Custom}

// ParseGranularity parses a granularity name case-insensitively. "day", "week", "month"
// and "year" are accepted as aliases.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DAILY", "DAY":
		return Daily, nil
	case "WEEKLY", "WEEK":
		return Weekly, nil
	case "MONTHLY", "MONTH":
		return Monthly, nil
	case "YEARLY", "YEAR":
		return Yearly, nil
	case "CUSTOM":
		return Custom, nil
	default:
		return "", &ledgererror.InvalidPeriodError{Granularity: s, Reason: "unknown granularity"}
	}
}

// Range is an inclusive span of calendar days. Start and End are UTC midnights.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewRange builds a Range from two dates, dropping their clock part.
// It fails when end is before start.
func NewRange(start, end time.Time) (Range, error) {
	s := dateutils.TruncateToDay(start)
	e := dateutils.TruncateToDay(end)
	if e.Before(s) {
		return Range{}, &ledgererror.InvalidPeriodError{
			Granularity: string(Custom),
			Reason:      fmt.Sprintf("end %s is before start %s", dateutils.ToISODate(e), dateutils.ToISODate(s)),
		}
	}
	return Range{Start: s, End: e}, nil
}

// ParseRange builds a Range from two YYYY-MM-DD strings
func ParseRange(start, end string) (Range, error) {
	s, err := dateutils.ParseISODate(start)
	if err != nil {
		return Range{}, &ledgererror.InvalidPeriodError{Granularity: string(Custom), Reason: err.Error()}
	}
	e, err := dateutils.ParseISODate(end)
	if err != nil {
		return Range{}, &ledgererror.InvalidPeriodError{Granularity: string(Custom), Reason: err.Error()}
	}
	return NewRange(s, e)
}

// Days returns the number of calendar days in the range, both ends included
func (r Range) Days() int {
	return dateutils.DaysInclusive(r.Start, r.End)
}

// Contains reports whether the calendar day of t lies inside the range
func (r Range) Contains(t time.Time) bool {
	return dateutils.InRange(t, r.Start, r.End)
}

// IsZero reports whether the range is unset
func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Shift moves the whole range by days
func (r Range) Shift(days int) Range {
	return Range{Start: r.Start.AddDate(0, 0, days), End: r.End.AddDate(0, 0, days)}
}

func (r Range) String() string {
	return dateutils.ToISODate(r.Start) + ".." + dateutils.ToISODate(r.End)
}

// Selection bundles the inputs that identify one period
type Selection struct {
	Anchor      time.Time
	Granularity Granularity
	Custom      *Range
}

// Settings carries the calendar conventions injected into the resolver
type Settings struct {
	WeekStart time.Weekday
}

// DefaultSettings starts weeks on Monday
func DefaultSettings() Settings {
	return Settings{WeekStart: time.Monday}
}
