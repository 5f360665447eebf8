package analytics

import (
	"errors"
	"fmt"
	"time"

	"wavesflow-backend/internal/domain"
)

// ErrInvalidDate is returned when a record's date field cannot be read as a
// calendar day. Aggregates never skip such records silently.
var ErrInvalidDate = errors.New("invalid date")

// ParseDay reads a YYYY-MM-DD value into a UTC midnight time. A time-of-day
// suffix ("2025-09-07T10:30:00", "2025-09-07 10:30") is ignored.
func ParseDay(value string) (time.Time, error) {
	v := value
	if len(v) > len(domain.DateLayout) && (v[10] == 'T' || v[10] == ' ') {
		v = v[:10]
	}
	t, err := time.Parse(domain.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

// Day truncates t to its calendar day in t's own location, returned as UTC
// midnight so days from different zones compare by date only.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDay(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// DaysInMonth accounts for leap years.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseMonth reads a YYYY-MM value.
func ParseMonth(value string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: month %q", ErrInvalidDate, value)
	}
	return t.Year(), t.Month(), nil
}
