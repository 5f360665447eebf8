package analytics

import (
	"time"

	"wavesflow-backend/internal/domain"
)

// DayRollup is the floor-coverage view of one day. Absent is derived as the
// relevant staff not marked Present or Late, whether or not they have an
// explicit Absent record.
type DayRollup struct {
	Date         string         `json:"date"`
	Present      int            `json:"present"`
	Late         int            `json:"late"`
	Absent       int            `json:"absent"`
	Total        int            `json:"total"`
	PresentStaff []domain.Staff `json:"-"`
	LateStaff    []domain.Staff `json:"-"`
	AbsentStaff  []domain.Staff `json:"-"`
}

// RollupAttendanceForDay counts relevant staff by status for day. Records for
// staff outside the relevant set are ignored, and only the first record per
// staff member counts.
func RollupAttendanceForDay(records []domain.Attendance, relevant []domain.Staff, day time.Time) (DayRollup, error) {
	day = Day(day)
	status := make(map[string]domain.AttendanceStatus, len(relevant))
	for _, rec := range records {
		d, err := ParseDay(rec.Date)
		if err != nil {
			return DayRollup{}, err
		}
		if !d.Equal(day) {
			continue
		}
		if _, seen := status[rec.StaffID]; seen {
			continue
		}
		status[rec.StaffID] = rec.Status
	}

	out := DayRollup{
		Date:         FormatDay(day),
		Total:        len(relevant),
		PresentStaff: make([]domain.Staff, 0),
		LateStaff:    make([]domain.Staff, 0),
		AbsentStaff:  make([]domain.Staff, 0),
	}
	for _, s := range relevant {
		switch status[s.ID] {
		case domain.AttendancePresent:
			out.PresentStaff = append(out.PresentStaff, s)
		case domain.AttendanceLate:
			out.LateStaff = append(out.LateStaff, s)
		default:
			out.AbsentStaff = append(out.AbsentStaff, s)
		}
	}
	out.Present = len(out.PresentStaff)
	out.Late = len(out.LateStaff)
	out.Absent = out.Total - out.Present - out.Late
	return out, nil
}

// StaffTally counts explicit attendance records only. Days without a record
// are not counted as absent here.
type StaffTally struct {
	Present   int `json:"present"`
	Late      int `json:"late"`
	Absent    int `json:"absent"`
	TotalDays int `json:"totalDays"`
}

// TallyStaffAttendance counts one staff member's records within iv.
func TallyStaffAttendance(records []domain.Attendance, staffID string, iv Interval) (StaffTally, error) {
	sum, err := FilterAndSum(records, iv, func(a domain.Attendance) bool { return a.StaffID == staffID })
	if err != nil {
		return StaffTally{}, err
	}
	var t StaffTally
	for _, a := range sum.Filtered {
		switch a.Status {
		case domain.AttendancePresent:
			t.Present++
		case domain.AttendanceLate:
			t.Late++
		case domain.AttendanceAbsent:
			t.Absent++
		}
	}
	t.TotalDays = sum.Count
	return t, nil
}

// PresentByDay counts Present or Late records per day of the month, keyed by
// YYYY-MM-DD.
func PresentByDay(records []domain.Attendance, year int, month time.Month) (map[string]int, error) {
	sum, err := FilterAndSum(records, MonthInterval(year, month))
	if err != nil {
		return nil, err
	}
	out := make(map[string]int)
	for _, a := range sum.Filtered {
		if a.Status == domain.AttendancePresent || a.Status == domain.AttendanceLate {
			d, _ := ParseDay(a.Date)
			out[FormatDay(d)]++
		}
	}
	return out, nil
}

// FindAttendance returns the record for (staffID, day), if any.
func FindAttendance(records []domain.Attendance, staffID string, day time.Time) (domain.Attendance, bool, error) {
	day = Day(day)
	for _, a := range records {
		if a.StaffID != staffID {
			continue
		}
		d, err := ParseDay(a.Date)
		if err != nil {
			return domain.Attendance{}, false, err
		}
		if d.Equal(day) {
			return a, true, nil
		}
	}
	return domain.Attendance{}, false, nil
}
