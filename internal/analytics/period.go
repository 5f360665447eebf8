package analytics

import (
	"fmt"
	"strings"
	"time"
)

// PeriodKind selects how a reference day is widened into an interval.
type PeriodKind string

const (
	PeriodToday  PeriodKind = "today"
	PeriodMTD    PeriodKind = "mtd"
	PeriodYTD    PeriodKind = "ytd"
	PeriodMonth  PeriodKind = "month"
	PeriodYear   PeriodKind = "year"
	PeriodCustom PeriodKind = "custom"
)

// Selector is a period choice. Start and End are only read for PeriodCustom.
type Selector struct {
	Kind  PeriodKind
	Start time.Time
	End   time.Time
}

// Interval is an inclusive range of calendar days.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains compares by calendar day; both bounds are inclusive.
func (iv Interval) Contains(day time.Time) bool {
	day = Day(day)
	return !day.Before(iv.Start) && !day.After(iv.End)
}

// Days is the inclusive number of days in the interval.
func (iv Interval) Days() int {
	return int(iv.End.Sub(iv.Start).Hours()/24) + 1
}

// ResolvePeriod turns a selector into an inclusive day interval relative to
// the reference day.
func ResolvePeriod(today time.Time, sel Selector) Interval {
	today = Day(today)
	switch sel.Kind {
	case PeriodMTD:
		return Interval{Start: time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), End: today}
	case PeriodYTD:
		return Interval{Start: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), End: today}
	case PeriodMonth:
		return MonthInterval(today.Year(), today.Month())
	case PeriodYear:
		return Interval{
			Start: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC),
		}
	case PeriodCustom:
		return Interval{Start: Day(sel.Start), End: Day(sel.End)}
	default:
		return Interval{Start: today, End: today}
	}
}

// MonthInterval covers every day of the given month.
func MonthInterval(year int, month time.Month) Interval {
	return Interval{
		Start: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, month, DaysInMonth(year, month), 0, 0, 0, 0, time.UTC),
	}
}

// ParsePeriodKind accepts the short names used in query strings.
func ParsePeriodKind(v string) (PeriodKind, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "today", "1d":
		return PeriodToday, nil
	case "mtd", "month-to-date":
		return PeriodMTD, nil
	case "ytd", "year-to-date":
		return PeriodYTD, nil
	case "month":
		return PeriodMonth, nil
	case "year":
		return PeriodYear, nil
	}
	return "", fmt.Errorf("unknown period %q", v)
}
