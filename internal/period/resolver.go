package period

import (
	"fmt"
	"time"

	"fjacquet/ledger/internal/dateutils"
	"fjacquet/ledger/internal/ledgererror"
	"fjacquet/ledger/internal/logging"
)

const (
	layoutDay      = "Jan 2, 2006"
	layoutDayShort = "Jan 2"
	layoutMonth    = "January 2006"
	layoutYear     = "2006"
)

// Resolver computes period bounds, labels and steps for fixed Settings.
type Resolver struct {
	settings Settings
	logger   logging.Logger
}

// NewResolver creates a Resolver. A nil logger discards the fallback notices.
func NewResolver(settings Settings, logger logging.Logger) *Resolver {
	return &Resolver{
		settings: settings,
		logger:   logging.OrDiscard(logger),
	}
}

// Settings returns the calendar conventions in use
func (r *Resolver) Settings() Settings {
	return r.settings
}

// BoundsOf returns the period of granularity g containing anchor.
// CUSTOM returns custom verbatim; without a custom range it falls back to the calendar
// month of anchor and logs a warning.
func (r *Resolver) BoundsOf(anchor time.Time, g Granularity, custom *Range) Range {
	bounds, err := r.StrictBoundsOf(anchor, g, custom)
	if err != nil {
		r.logger.WithError(err).Warn("Unable to resolve period, using the calendar month",
			logging.F(logging.FieldGranularity, string(g)),
			logging.F(logging.FieldPeriod, dateutils.ToISODate(anchor)))
		return r.monthBounds(anchor)
	}
	return bounds
}

// StrictBoundsOf is BoundsOf without the CUSTOM fallback: a missing custom range or an
// unknown granularity is reported as *ledgererror.InvalidPeriodError.
func (r *Resolver) StrictBoundsOf(anchor time.Time, g Granularity, custom *Range) (Range, error) {
	day := dateutils.TruncateToDay(anchor)
	switch g {
	case Daily:
		return Range{Start: day, End: day}, nil
	case Weekly:
		return Range{
			Start: dateutils.StartOfWeek(day, r.settings.WeekStart),
			End:   dateutils.EndOfWeek(day, r.settings.WeekStart),
		}, nil
	case Monthly:
		return r.monthBounds(day), nil
	case Yearly:
		return Range{Start: dateutils.StartOfYear(day), End: dateutils.EndOfYear(day)}, nil
	case Custom:
		if custom == nil {
			return Range{}, &ledgererror.InvalidPeriodError{Granularity: string(g), Reason: "no custom range supplied"}
		}
		return *custom, nil
	default:
		return Range{}, &ledgererror.InvalidPeriodError{Granularity: string(g), Reason: "unknown granularity"}
	}
}

func (r *Resolver) monthBounds(anchor time.Time) Range {
	return Range{Start: dateutils.StartOfMonth(anchor), End: dateutils.EndOfMonth(anchor)}
}

// Step moves anchor one period forward or backward.
// Monthly and yearly steps land on the 1st of the target month. CUSTOM moves by the
// inclusive length of custom, or by one month when no range is given.
func (r *Resolver) Step(anchor time.Time, g Granularity, forward bool, custom *Range) time.Time {
	day := dateutils.TruncateToDay(anchor)
	sign := 1
	if !forward {
		sign = -1
	}

	switch g {
	case Daily:
		return day.AddDate(0, 0, sign)
	case Weekly:
		return day.AddDate(0, 0, 7*sign)
	case Yearly:
		return dateutils.AddYearsClamped(day, sign)
	case Custom:
		if custom != nil {
			return day.AddDate(0, 0, custom.Days()*sign)
		}
		return dateutils.AddMonthsClamped(day, sign)
	default:
		return dateutils.AddMonthsClamped(day, sign)
	}
}

// StepRange shifts a custom window by its own length, keeping its size.
// It is the companion of Step for callers that hold the custom range itself.
func (r *Resolver) StepRange(custom Range, forward bool) Range {
	days := custom.Days()
	if !forward {
		days = -days
	}
	return custom.Shift(days)
}

// PreviousPeriod returns the period immediately before the one containing anchor.
// For CUSTOM it is the contiguous window of the same length ending the day before
// custom starts.
func (r *Resolver) PreviousPeriod(anchor time.Time, g Granularity, custom *Range) Range {
	if g == Custom && custom != nil {
		end := custom.Start.AddDate(0, 0, -1)
		start := end.AddDate(0, 0, -(custom.Days() - 1))
		return Range{Start: start, End: end}
	}
	return r.BoundsOf(r.Step(anchor, g, false, custom), g, custom)
}

// Label returns a human label for the period containing anchor:
// "Mar 5, 2024", "Mar 4 - 10, 2024", "March 2024" or "2024".
// Month names are always English.
func (r *Resolver) Label(anchor time.Time, g Granularity, custom *Range) string {
	bounds := r.BoundsOf(anchor, g, custom)
	switch g {
	case Daily:
		return bounds.Start.Format(layoutDay)
	case Yearly:
		return bounds.Start.Format(layoutYear)
	case Weekly:
		return RangeLabel(bounds)
	case Custom:
		if custom == nil {
			return bounds.Start.Format(layoutMonth)
		}
		return RangeLabel(bounds)
	default:
		return bounds.Start.Format(layoutMonth)
	}
}

// RangeLabel renders "<start> - <end>", dropping the month and year from the start when
// the end repeats them.
func RangeLabel(rg Range) string {
	s, e := rg.Start, rg.End
	switch {
	case dateutils.CompareDates(s, e) == 0:
		return s.Format(layoutDay)
	case s.Year() == e.Year() && s.Month() == e.Month():
		return fmt.Sprintf("%s - %d, %d", s.Format(layoutDayShort), e.Day(), e.Year())
	case s.Year() == e.Year():
		return fmt.Sprintf("%s - %s", s.Format(layoutDayShort), e.Format(layoutDay))
	default:
		return fmt.Sprintf("%s - %s", s.Format(layoutDay), e.Format(layoutDay))
	}
}
