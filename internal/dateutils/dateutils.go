// Package dateutils provides the calendar-date helpers used by the ledger engine.
//
// All helpers work on calendar dates: values are normalized to midnight UTC so that
// comparisons never depend on the process time zone.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date layouts
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutTimestamp = time.RFC3339
)

const secondsPerDay = 24 * 60 * 60

// time layouts accepted after the date part of a stored date
var timeSuffixLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", DateLayoutFull}

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString trims a date string and collapses inner whitespace
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseISODate parses a YYYY-MM-DD string into a UTC calendar date.
// A trailing time component ("2024-03-05T10:00:00Z" or "2024-03-05 10:00:00") is tolerated
// and dropped, since stored transactions sometimes carry one. Any other suffix is an error.
func ParseISODate(dateStr string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(cleaned) > len(DateLayoutISO) {
		if !hasTimeSuffix(cleaned) {
			return time.Time{}, fmt.Errorf("unable to parse date %q: unexpected trailing text", dateStr)
		}
		cleaned = cleaned[:len(DateLayoutISO)]
	}
	t, err := time.Parse(DateLayoutISO, cleaned)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q: %w", dateStr, err)
	}
	return t, nil
}

func hasTimeSuffix(s string) bool {
	if s[len(DateLayoutISO)] != 'T' && s[len(DateLayoutISO)] != ' ' {
		return false
	}
	for _, layout := range timeSuffixLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// MustParseISODate is ParseISODate for literals known to be valid. It panics otherwise.
func MustParseISODate(dateStr string) time.Time {
	t, err := ParseISODate(dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// TruncateToDay drops the clock part of t and moves it to UTC, keeping the calendar day
// as seen in t's own location.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// StartOfYear returns January 1st of the date's year
func StartOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// EndOfYear returns December 31st of the date's year
func EndOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the first day of the 7-day week containing date, where weeks
// begin on weekStart.
func StartOfWeek(date time.Time, weekStart time.Weekday) time.Time {
	day := TruncateToDay(date)
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// EndOfWeek returns the last day of the week starting on weekStart that contains date
func EndOfWeek(date time.Time, weekStart time.Weekday) time.Time {
	return StartOfWeek(date, weekStart).AddDate(0, 0, 6)
}

// AddMonthsClamped moves date by n months and lands on the 1st of the target month.
// Stepping from Jan 31 therefore never overflows into March.
func AddMonthsClamped(date time.Time, n int) time.Time {
	return StartOfMonth(date).AddDate(0, n, 0)
}

// AddYearsClamped moves date by n years and lands on the 1st of the same month, which
// keeps Feb 29 from rolling into March in non-leap years.
func AddYearsClamped(date time.Time, n int) time.Time {
	return StartOfMonth(date).AddDate(n, 0, 0)
}

// DaysInclusive counts the calendar days in [start, end]. It returns 0 when end is
// before start.
func DaysInclusive(start, end time.Time) int {
	s := TruncateToDay(start)
	e := TruncateToDay(end)
	if e.Before(s) {
		return 0
	}
	// Unix seconds rather than Duration, which saturates around 292 years
	return int((e.Unix()-s.Unix())/secondsPerDay) + 1
}

// CompareDates compares two dates and returns:
//
//	-1 if date1 is before date2
//	 0 if date1 is equal to date2
//	 1 if date1 is after date2
func CompareDates(date1, date2 time.Time) int {
	date1 = TruncateToDay(date1)
	date2 = TruncateToDay(date2)

	switch {
	case date1.Before(date2):
		return -1
	case date1.After(date2):
		return 1
	default:
		return 0
	}
}

// InRange reports whether date falls in [start, end], comparing calendar days only
func InRange(date, start, end time.Time) bool {
	return CompareDates(date, start) >= 0 && CompareDates(date, end) <= 0
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday parses an English weekday name ("monday", "Mon") case-insensitively
func ParseWeekday(name string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if day, ok := weekdays[key]; ok {
		return day, nil
	}
	if len(key) >= 3 {
		for full, day := range weekdays {
			if strings.HasPrefix(full, key) {
				return day, nil
			}
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday: %q", name)
}
