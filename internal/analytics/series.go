package analytics

import "time"

// DailyPoint is one calendar day of a month. Total is nil when nothing was
// recorded that day.
type DailyPoint struct {
	Day   int    `json:"day"`
	Total *int64 `json:"total"`
}

// SeriesStats summarise the non-nil points of a series.
type SeriesStats struct {
	Max     int64   `json:"max"`
	Min     int64   `json:"min"`
	Average float64 `json:"average"`
}

// BuildDailySeries buckets records into every day of the month. Records dated
// outside the month are ignored.
func BuildDailySeries[T Entry](records []T, year int, month time.Month) ([]DailyPoint, SeriesStats, error) {
	n := DaysInMonth(year, month)
	sums := make([]int64, n)
	for _, rec := range records {
		day, err := ParseDay(rec.EntryDate())
		if err != nil {
			return nil, SeriesStats{}, err
		}
		if day.Year() != year || day.Month() != month {
			continue
		}
		sums[day.Day()-1] += rec.EntryAmount()
	}

	points := make([]DailyPoint, n)
	for i, sum := range sums {
		points[i] = DailyPoint{Day: i + 1}
		if sum != 0 {
			v := sum
			points[i].Total = &v
		}
	}
	return points, Stats(points), nil
}

// Stats reports zeros when no point carries a value.
func Stats(points []DailyPoint) SeriesStats {
	var (
		st    SeriesStats
		sum   int64
		count int
	)
	for _, p := range points {
		if p.Total == nil {
			continue
		}
		v := *p.Total
		if count == 0 || v > st.Max {
			st.Max = v
		}
		if count == 0 || v < st.Min {
			st.Min = v
		}
		sum += v
		count++
	}
	if count > 0 {
		st.Average = float64(sum) / float64(count)
	}
	return st
}
