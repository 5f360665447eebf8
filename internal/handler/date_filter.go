package handler

import (
	"fmt"
	"net/http"
	"time"

	"wavesflow-backend/internal/analytics"
	"wavesflow-backend/internal/domain"
)

func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseMonthQuery reads ?month=YYYY-MM. An empty value is returned as is.
func parseMonthQuery(r *http.Request) (string, error) {
	value := r.URL.Query().Get("month")
	if value == "" {
		return "", nil
	}
	if _, _, err := analytics.ParseMonth(value); err != nil {
		return "", fmt.Errorf("invalid month (use YYYY-MM)")
	}
	return value, nil
}

// monthBounds returns the first and last day of a YYYY-MM month.
func monthBounds(month string) (string, string, error) {
	year, mon, err := analytics.ParseMonth(month)
	if err != nil {
		return "", "", err
	}
	iv := analytics.MonthInterval(year, mon)
	return analytics.FormatDay(iv.Start), analytics.FormatDay(iv.End), nil
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}

func parseDay(value string) (time.Time, error) {
	return time.Parse(domain.DateLayout, value)
}
