package analytics

import (
	"errors"
	"testing"
	"time"

	"wavesflow-backend/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseDay_IgnoresTimeOfDay(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"2025-09-07", "2025-09-07"},
		{"2025-09-07T23:59:59", "2025-09-07"},
		{"2025-09-07 00:00", "2025-09-07"},
	}
	for _, tc := range cases {
		got, err := ParseDay(tc.in)
		if err != nil {
			t.Fatalf("ParseDay(%q) error: %v", tc.in, err)
		}
		if FormatDay(got) != tc.expected {
			t.Fatalf("ParseDay(%q) expected %s, got %s", tc.in, tc.expected, FormatDay(got))
		}
	}
	if _, err := ParseDay("07/09/2025"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestResolvePeriod(t *testing.T) {
	today := time.Date(2025, 9, 10, 18, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	cases := []struct {
		sel   Selector
		start string
		end   string
	}{
		{Selector{Kind: PeriodToday}, "2025-09-10", "2025-09-10"},
		{Selector{Kind: PeriodMTD}, "2025-09-01", "2025-09-10"},
		{Selector{Kind: PeriodYTD}, "2025-01-01", "2025-09-10"},
		{Selector{Kind: PeriodMonth}, "2025-09-01", "2025-09-30"},
		{Selector{Kind: PeriodYear}, "2025-01-01", "2025-12-31"},
		{Selector{Kind: PeriodCustom, Start: day("2025-08-15"), End: day("2025-08-20")}, "2025-08-15", "2025-08-20"},
	}
	for _, tc := range cases {
		iv := ResolvePeriod(today, tc.sel)
		if FormatDay(iv.Start) != tc.start || FormatDay(iv.End) != tc.end {
			t.Fatalf("%s: expected [%s,%s], got [%s,%s]", tc.sel.Kind, tc.start, tc.end, FormatDay(iv.Start), FormatDay(iv.End))
		}
	}
}

func TestParsePeriodKind(t *testing.T) {
	if k, err := ParsePeriodKind("MTD"); err != nil || k != PeriodMTD {
		t.Fatalf("expected mtd, got %q (%v)", k, err)
	}
	if k, err := ParsePeriodKind(""); err != nil || k != PeriodToday {
		t.Fatalf("expected today for empty, got %q (%v)", k, err)
	}
	if _, err := ParsePeriodKind("fortnight"); err == nil {
		t.Fatalf("expected error for unknown period")
	}
}

func TestFilterAndSum_MonthToDate(t *testing.T) {
	sales := []domain.Sale{
		{ID: "1", Date: "2025-09-07", Amount: 5000},
		{ID: "2", Date: "2025-09-07", Amount: 2500},
		{ID: "3", Date: "2025-09-10", Amount: 1000},
		{ID: "4", Date: "2025-08-31", Amount: 9999},
	}
	iv := ResolvePeriod(day("2025-09-10"), Selector{Kind: PeriodMTD})
	sum, err := FilterAndSum(sales, iv)
	if err != nil {
		t.Fatalf("FilterAndSum error: %v", err)
	}
	if sum.Total != 8500 || sum.Count != 3 {
		t.Fatalf("expected total 8500 count 3, got %d / %d", sum.Total, sum.Count)
	}
	if sum.Count != len(sum.Filtered) || SumAmounts(sum.Filtered) != sum.Total {
		t.Fatalf("summary is inconsistent: %+v", sum)
	}
}

func TestFilterAndSum_InclusiveBoundsAndPredicates(t *testing.T) {
	sales := []domain.Sale{
		{ID: "start", Date: "2025-09-01", Amount: 100, TherapistID: "2", PaymentMethod: domain.PaymentCash},
		{ID: "end", Date: "2025-09-05", Amount: 200, TherapistID: "2", PaymentMethod: domain.PaymentUPI},
		{ID: "other", Date: "2025-09-03", Amount: 400, TherapistID: "3", PaymentMethod: domain.PaymentCash},
	}
	iv := Interval{Start: day("2025-09-01"), End: day("2025-09-05")}

	sum, err := FilterAndSum(sales, iv, func(s domain.Sale) bool { return s.TherapistID == "2" })
	if err != nil {
		t.Fatalf("FilterAndSum error: %v", err)
	}
	if sum.Count != 2 || sum.Total != 300 {
		t.Fatalf("expected both boundary records once, got %+v", sum)
	}

	sum, err = FilterAndSum(sales, iv,
		func(s domain.Sale) bool { return s.TherapistID == "2" },
		func(s domain.Sale) bool { return s.PaymentMethod == domain.PaymentCash },
	)
	if err != nil {
		t.Fatalf("FilterAndSum error: %v", err)
	}
	if sum.Count != 1 || sum.Filtered[0].ID != "start" {
		t.Fatalf("expected predicates to AND, got %+v", sum.Filtered)
	}
}

func TestFilterAndSum_EmptyAndMalformed(t *testing.T) {
	iv := Interval{Start: day("2025-09-01"), End: day("2025-09-30")}
	sum, err := FilterAndSum([]domain.Expense(nil), iv)
	if err != nil {
		t.Fatalf("FilterAndSum error: %v", err)
	}
	if sum.Total != 0 || sum.Count != 0 || sum.Filtered == nil {
		t.Fatalf("expected empty non-nil summary, got %+v", sum)
	}

	_, err = FilterAndSum([]domain.Expense{{Date: "2025-09-02", Amount: 10}, {Date: "not-a-date", Amount: 5}}, iv)
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func therapistKey(s domain.Sale) string { return s.TherapistID }

func TestRank_StableTieBreak(t *testing.T) {
	sales := []domain.Sale{
		{TherapistID: "A", Amount: 3000, Date: "2025-09-01"},
		{TherapistID: "B", Amount: 5000, Date: "2025-09-01"},
		{TherapistID: "A", Amount: 2000, Date: "2025-09-02"},
		{TherapistID: "C", Amount: 3000, Date: "2025-09-02"},
	}
	got := Rank(sales, therapistKey, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}
	if got[0].Key != "A" || got[0].Total != 5000 || got[0].Sessions != 2 {
		t.Fatalf("expected A first on tie (first encountered), got %+v", got[0])
	}
	if got[1].Key != "B" || got[1].Total != 5000 || got[1].Sessions != 1 {
		t.Fatalf("expected B second, got %+v", got[1])
	}
}

func TestRank_OrderAndTruncation(t *testing.T) {
	sales := []domain.Sale{
		{TherapistID: "A", Amount: 100},
		{TherapistID: "B", Amount: 300},
		{TherapistID: "C", Amount: 200},
	}
	for _, n := range []int{1, 2, 3, 5} {
		got := Rank(sales, therapistKey, n)
		want := n
		if want > 3 {
			want = 3
		}
		if len(got) != want {
			t.Fatalf("topN=%d: expected %d groups, got %d", n, want, len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i-1].Total <= got[i].Total {
				t.Fatalf("topN=%d: not strictly descending: %+v", n, got)
			}
		}
	}
	if got := Rank(sales, therapistKey, 0); len(got) != 3 {
		t.Fatalf("topN=0 should keep all groups, got %d", len(got))
	}
	if got := Rank([]domain.Sale{}, therapistKey, 3); len(got) != 0 {
		t.Fatalf("expected no groups for empty input, got %+v", got)
	}
}

func TestRankSeeded_IncludesZeroGroups(t *testing.T) {
	sales := []domain.Sale{
		{TherapistID: "C", Amount: 300},
		{TherapistID: "X", Amount: 50},
	}
	got := RankSeeded(sales, therapistKey, 0, []string{"A", "B", "C", "A"})
	keys := make([]string, 0, len(got))
	for _, g := range got {
		keys = append(keys, g.Key)
	}
	want := []string{"C", "X", "A", "B"}
	if len(keys) != len(want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, keys)
		}
	}
	if got[2].Total != 0 || got[2].Sessions != 0 {
		t.Fatalf("seeded group should be zero, got %+v", got[2])
	}
}

func TestRankBySessions(t *testing.T) {
	sales := []domain.Sale{
		{TherapyType: "Swedish", Amount: 9000},
		{TherapyType: "Thai Oil", Amount: 100},
		{TherapyType: "Thai Oil", Amount: 100},
		{TherapyType: "Deep", Amount: 100},
	}
	got := RankBySessions(sales, func(s domain.Sale) string { return s.TherapyType }, 2)
	if len(got) != 2 || got[0].Key != "Thai Oil" || got[1].Key != "Swedish" {
		t.Fatalf("unexpected ranking: %+v", got)
	}
}

func TestBuildDailySeries_Completeness(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2025, time.September, 30},
		{2025, time.October, 31},
		{2024, time.February, 29},
		{2025, time.February, 28},
	}
	for _, tc := range cases {
		points, _, err := BuildDailySeries([]domain.Sale{}, tc.year, tc.month)
		if err != nil {
			t.Fatalf("BuildDailySeries error: %v", err)
		}
		if len(points) != tc.days {
			t.Fatalf("%d-%02d: expected %d points, got %d", tc.year, tc.month, tc.days, len(points))
		}
		if points[0].Day != 1 || points[len(points)-1].Day != tc.days {
			t.Fatalf("%d-%02d: days not numbered 1..N", tc.year, tc.month)
		}
	}
}

func TestBuildDailySeries_SingleDay(t *testing.T) {
	sales := []domain.Sale{
		{Date: "2025-09-07", Amount: 5000},
		{Date: "2025-09-07", Amount: 2500},
		{Date: "2025-10-01", Amount: 1},
	}
	points, stats, err := BuildDailySeries(sales, 2025, time.September)
	if err != nil {
		t.Fatalf("BuildDailySeries error: %v", err)
	}
	if len(points) != 30 {
		t.Fatalf("expected 30 points, got %d", len(points))
	}
	for _, p := range points {
		if p.Day == 7 {
			if p.Total == nil || *p.Total != 7500 {
				t.Fatalf("expected day 7 total 7500, got %v", p.Total)
			}
			continue
		}
		if p.Total != nil {
			t.Fatalf("expected nil total on day %d, got %d", p.Day, *p.Total)
		}
	}
	if stats.Max != 7500 || stats.Min != 7500 || stats.Average != 7500 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestBuildDailySeries_Stats(t *testing.T) {
	sales := []domain.Sale{
		{Date: "2025-09-01", Amount: 1000},
		{Date: "2025-09-02", Amount: 3000},
		{Date: "2025-09-15", Amount: 2000},
	}
	_, stats, err := BuildDailySeries(sales, 2025, time.September)
	if err != nil {
		t.Fatalf("BuildDailySeries error: %v", err)
	}
	if stats.Max != 3000 || stats.Min != 1000 || stats.Average != 2000 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	_, stats, err = BuildDailySeries([]domain.Sale{}, 2025, time.September)
	if err != nil {
		t.Fatalf("BuildDailySeries error: %v", err)
	}
	if stats != (SeriesStats{}) {
		t.Fatalf("expected zero stats, got %+v", stats)
	}

	if _, _, err := BuildDailySeries([]domain.Sale{{Date: "bad"}}, 2025, time.September); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestProfitAndGoal(t *testing.T) {
	if p := Profit(1000, 2500); p != -1500 {
		t.Fatalf("expected -1500, got %d", p)
	}
	if g := GoalProgress(4500000, 3000000); g != 150 {
		t.Fatalf("expected 150%%, got %v", g)
	}
	if g := GoalProgress(100, 0); g != 0 {
		t.Fatalf("expected 0 for zero goal, got %v", g)
	}
}

func TestAverageDailyProfit(t *testing.T) {
	days := DaysElapsed(day("2025-09-01"), day("2025-09-10"))
	if days != 10 {
		t.Fatalf("expected 10 elapsed days, got %d", days)
	}
	if avg := AverageDailyProfit(50000, days); avg != 5000 {
		t.Fatalf("expected 5000, got %v", avg)
	}
	if avg := AverageDailyProfit(50000, 0); avg != 0 {
		t.Fatalf("expected 0 for zero days, got %v", avg)
	}
}

func TestProjectMilestone(t *testing.T) {
	p, ok := ProjectMilestone(50000, 10000000)
	if !ok {
		t.Fatalf("expected a projection")
	}
	if p.DaysNeeded != 200 || p.Years != 0 || p.Months != 6 || p.Days != 20 {
		t.Fatalf("unexpected projection: %+v", p)
	}

	p, ok = ProjectMilestone(3000, 10000000)
	if !ok || p.DaysNeeded != 3334 || p.Years != 9 || p.Months != 1 || p.Days != 19 {
		t.Fatalf("unexpected projection: %+v", p)
	}

	for _, rate := range []float64{0, -10} {
		if _, ok := ProjectMilestone(rate, 10000000); ok {
			t.Fatalf("rate %v should have no ETA", rate)
		}
	}

	prev := -1
	for _, rate := range []float64{1000, 2500, 10000, 50000, 75000} {
		p, _ := ProjectMilestone(rate, 10000000)
		if prev >= 0 && p.DaysNeeded > prev {
			t.Fatalf("higher rate %v gave longer projection %d > %d", rate, p.DaysNeeded, prev)
		}
		prev = p.DaysNeeded
	}
}

func TestPacePercent(t *testing.T) {
	cases := []struct {
		rate     float64
		expected float64
	}{
		{25000, 50},
		{100000, 100},
		{-500, 0},
	}
	for _, tc := range cases {
		if got := PacePercent(tc.rate, 50000); got != tc.expected {
			t.Fatalf("PacePercent(%v) expected %v, got %v", tc.rate, tc.expected, got)
		}
	}
}

func therapists(n int) []domain.Staff {
	out := make([]domain.Staff, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.Staff{ID: string(rune('0' + i)), FullName: "T" + string(rune('0'+i)), Role: domain.RoleTherapist})
	}
	return out
}

func TestRollupAttendanceForDay(t *testing.T) {
	staff := therapists(6)
	records := []domain.Attendance{
		{StaffID: "1", Date: "2025-09-10", Status: domain.AttendancePresent},
		{StaffID: "2", Date: "2025-09-10", Status: domain.AttendancePresent},
		{StaffID: "3", Date: "2025-09-10", Status: domain.AttendancePresent},
		{StaffID: "4", Date: "2025-09-10", Status: domain.AttendancePresent},
		{StaffID: "5", Date: "2025-09-10", Status: domain.AttendanceLate},
		{StaffID: "6", Date: "2025-09-09", Status: domain.AttendancePresent},
		{StaffID: "manager", Date: "2025-09-10", Status: domain.AttendancePresent},
	}
	r, err := RollupAttendanceForDay(records, staff, day("2025-09-10"))
	if err != nil {
		t.Fatalf("RollupAttendanceForDay error: %v", err)
	}
	if r.Present != 4 || r.Late != 1 || r.Absent != 1 {
		t.Fatalf("expected 4/1/1, got %d/%d/%d", r.Present, r.Late, r.Absent)
	}
	if r.Present+r.Late+r.Absent != r.Total {
		t.Fatalf("counts do not add up to %d", r.Total)
	}
	if len(r.AbsentStaff) != 1 || r.AbsentStaff[0].ID != "6" {
		t.Fatalf("expected staff 6 absent, got %+v", r.AbsentStaff)
	}
}

func TestRollupAttendanceForDay_ExplicitAbsentAndDuplicates(t *testing.T) {
	staff := therapists(3)
	records := []domain.Attendance{
		{StaffID: "1", Date: "2025-09-10", Status: domain.AttendanceAbsent},
		{StaffID: "2", Date: "2025-09-10", Status: domain.AttendanceLate},
		{StaffID: "2", Date: "2025-09-10", Status: domain.AttendancePresent},
	}
	r, err := RollupAttendanceForDay(records, staff, day("2025-09-10"))
	if err != nil {
		t.Fatalf("RollupAttendanceForDay error: %v", err)
	}
	if r.Present != 0 || r.Late != 1 || r.Absent != 2 {
		t.Fatalf("expected 0/1/2, got %d/%d/%d", r.Present, r.Late, r.Absent)
	}

	empty, err := RollupAttendanceForDay(nil, nil, day("2025-09-10"))
	if err != nil || empty.Total != 0 || empty.Absent != 0 {
		t.Fatalf("expected empty rollup, got %+v (%v)", empty, err)
	}
}

func TestTallyStaffAttendance_ExplicitRecordsOnly(t *testing.T) {
	records := []domain.Attendance{
		{StaffID: "2", Date: "2025-09-01", Status: domain.AttendancePresent},
		{StaffID: "2", Date: "2025-09-02", Status: domain.AttendanceLate},
		{StaffID: "2", Date: "2025-09-03", Status: domain.AttendanceAbsent},
		{StaffID: "2", Date: "2025-09-04", Status: domain.AttendancePresent},
		{StaffID: "3", Date: "2025-09-04", Status: domain.AttendancePresent},
		{StaffID: "2", Date: "2025-08-30", Status: domain.AttendancePresent},
	}
	iv := ResolvePeriod(day("2025-09-10"), Selector{Kind: PeriodMTD})
	got, err := TallyStaffAttendance(records, "2", iv)
	if err != nil {
		t.Fatalf("TallyStaffAttendance error: %v", err)
	}
	want := StaffTally{Present: 2, Late: 1, Absent: 1, TotalDays: 4}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestPresentByDay(t *testing.T) {
	records := []domain.Attendance{
		{StaffID: "1", Date: "2025-09-10", Status: domain.AttendancePresent},
		{StaffID: "2", Date: "2025-09-10", Status: domain.AttendanceLate},
		{StaffID: "3", Date: "2025-09-10", Status: domain.AttendanceAbsent},
		{StaffID: "1", Date: "2025-09-11", Status: domain.AttendancePresent},
		{StaffID: "1", Date: "2025-10-01", Status: domain.AttendancePresent},
	}
	got, err := PresentByDay(records, 2025, time.September)
	if err != nil {
		t.Fatalf("PresentByDay error: %v", err)
	}
	if got["2025-09-10"] != 2 || got["2025-09-11"] != 1 || len(got) != 2 {
		t.Fatalf("unexpected counts: %v", got)
	}
}
