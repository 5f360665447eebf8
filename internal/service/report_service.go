package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"wavesflow-backend/internal/analytics"
	"wavesflow-backend/internal/domain"
	"wavesflow-backend/internal/ports"
)

// EarliestMonth is always offered by the sales report, even before any sale.
const EarliestMonth = "2025-09"

var (
	ErrStaffNotFound = errors.New("staff not found")
	ErrInvalidRange  = errors.New("range must be mtd or ytd")
)

var reportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "wavesflow_report_duration_seconds",
	Help:    "Time spent building a report from a store snapshot.",
	Buckets: prometheus.DefBuckets,
}, []string{"report"})

// Targets are the business figures reports measure against.
type Targets struct {
	MonthlySalesGoal int64
	ProfitMilestone  int64
	MilestonePace    int64
}

// ReportService derives every dashboard view from a fresh snapshot of the store.
type ReportService struct {
	Store    ports.EntityStore
	Logger   *slog.Logger
	Location *time.Location
	Targets  Targets
	Now      func() time.Time
}

type SaleView struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	Amount        int64     `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	TherapyType   string    `json:"therapyType"`
	TherapistID   string    `json:"therapistId"`
	TherapistName string    `json:"therapistName"`
	RoomID        string    `json:"roomId"`
	RoomName      string    `json:"roomName"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Date          string    `json:"date"`
}

type StaffView struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type PeriodFigures struct {
	Sales    int64 `json:"sales"`
	Expenses int64 `json:"expenses"`
	Profit   int64 `json:"profit"`
	Count    int   `json:"count"`
}

type LeaderboardEntry struct {
	StaffID  string `json:"staffId"`
	FullName string `json:"fullName"`
	Total    int64  `json:"total"`
	Sessions int    `json:"sessions"`
}

type AttendanceBoard struct {
	analytics.DayRollup
	PresentStaff []StaffView `json:"presentStaff"`
	LateStaff    []StaffView `json:"lateStaff"`
	AbsentStaff  []StaffView `json:"absentStaff"`
}

type MilestoneView struct {
	Target             int64                 `json:"target"`
	DaysElapsed        int                   `json:"daysElapsed"`
	AverageDailyProfit float64               `json:"averageDailyProfit"`
	Reachable          bool                  `json:"reachable"`
	Projection         *analytics.Projection `json:"projection"`
	PacePercent        float64               `json:"pacePercent"`
}

type DashboardReport struct {
	Date           string               `json:"date"`
	Range          analytics.PeriodKind `json:"range"`
	Today          PeriodFigures        `json:"today"`
	MonthToDate    PeriodFigures        `json:"monthToDate"`
	YearToDate     PeriodFigures        `json:"yearToDate"`
	CustomersToday int                  `json:"customersToday"`
	RecentSales    []SaleView           `json:"recentSales"`
	Attendance     AttendanceBoard      `json:"attendance"`
	TopTherapists  []LeaderboardEntry   `json:"topTherapists"`
	TopTherapies   []analytics.Group    `json:"topTherapies"`
	GoalTarget     int64                `json:"goalTarget"`
	GoalProgress   float64              `json:"goalProgress"`
	Milestone      MilestoneView        `json:"milestone"`
}

type SalesReport struct {
	Month             string                 `json:"month"`
	Total             int64                  `json:"total"`
	Sessions          int                    `json:"sessions"`
	Daily             []analytics.DailyPoint `json:"daily"`
	Stats             analytics.SeriesStats  `json:"stats"`
	TopTherapists     []analytics.Group      `json:"topTherapists"`
	TopTherapies      []analytics.Group      `json:"topTherapies"`
	TopPaymentMethods []analytics.Group      `json:"topPaymentMethods"`
	AvailableMonths   []string               `json:"availableMonths"`
	Sales             []SaleView             `json:"sales"`
}

type StaffSalesSummary struct {
	Total            int64             `json:"total"`
	Services         int               `json:"services"`
	AverageSale      float64           `json:"averageSale"`
	PaymentBreakdown []analytics.Group `json:"paymentBreakdown"`
	TopTherapies     []analytics.Group `json:"topTherapies"`
	RecentSales      []SaleView        `json:"recentSales"`
	TeamTotal        int64             `json:"teamTotal"`
	Contribution     float64           `json:"contribution"`
}

type StaffReport struct {
	Staff        StaffView            `json:"staff"`
	Date         string               `json:"date"`
	Range        analytics.PeriodKind `json:"range"`
	TodayStatus  string               `json:"todayStatus"`
	TodayRecord  *domain.Attendance   `json:"-"`
	MonthToDate  analytics.StaffTally `json:"monthToDate"`
	YearToDate   analytics.StaffTally `json:"yearToDate"`
	SalesSummary StaffSalesSummary    `json:"salesSummary"`
}

type CategoryShare struct {
	Category string  `json:"category"`
	Total    int64   `json:"total"`
	Percent  float64 `json:"percent"`
}

type ExpenseReport struct {
	Month         string                 `json:"month"`
	Total         int64                  `json:"total"`
	Count         int                    `json:"count"`
	ActiveDays    int                    `json:"activeDays"`
	AveragePerDay float64                `json:"averagePerDay"`
	Categories    []CategoryShare        `json:"categories"`
	Daily         []analytics.DailyPoint `json:"daily"`
}

type AttendanceCalendar struct {
	Month string         `json:"month"`
	Days  map[string]int `json:"days"`
}

func (s ReportService) Dashboard(ctx context.Context, rng analytics.PeriodKind) (*DashboardReport, error) {
	defer observe("dashboard", time.Now())
	board, err := leaderboardPeriod(rng)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	today := s.Today()
	todayIv := analytics.ResolvePeriod(today, analytics.Selector{Kind: analytics.PeriodToday})
	mtdIv := analytics.ResolvePeriod(today, analytics.Selector{Kind: analytics.PeriodMTD})
	ytdIv := analytics.ResolvePeriod(today, analytics.Selector{Kind: analytics.PeriodYTD})

	out := &DashboardReport{Date: analytics.FormatDay(today), Range: rng}
	var todaySales analytics.Summary[domain.Sale]
	if out.Today, todaySales, err = periodFigures(snap, todayIv); err != nil {
		return nil, err
	}
	if out.MonthToDate, _, err = periodFigures(snap, mtdIv); err != nil {
		return nil, err
	}
	if out.YearToDate, _, err = periodFigures(snap, ytdIv); err != nil {
		return nil, err
	}

	out.CustomersToday = distinctCustomers(todaySales.Filtered)
	out.RecentSales = saleViews(mostRecent(todaySales.Filtered, 3), snap)

	therapists := domain.StaffWithRole(snap.Staff, domain.RoleTherapist)
	rollup, err := analytics.RollupAttendanceForDay(snap.Attendance, therapists, today)
	if err != nil {
		return nil, err
	}
	out.Attendance = newAttendanceBoard(rollup)

	boardIv := analytics.ResolvePeriod(today, analytics.Selector{Kind: board})
	if out.TopTherapists, err = topTherapists(snap, boardIv, therapists, 3); err != nil {
		return nil, err
	}
	boardSales, err := analytics.FilterAndSum(snap.Sales, boardIv)
	if err != nil {
		return nil, err
	}
	out.TopTherapies = analytics.Rank(boardSales.Filtered, therapyKey, 3)

	out.GoalTarget = s.Targets.MonthlySalesGoal
	out.GoalProgress = analytics.GoalProgress(out.MonthToDate.Sales, s.Targets.MonthlySalesGoal)
	out.Milestone = s.milestone(out.MonthToDate.Profit, mtdIv.Start, today)
	return out, nil
}

// SalesReport covers one calendar month given as YYYY-MM. An empty month
// selects the newest month that has sales.
func (s ReportService) SalesReport(ctx context.Context, month string) (*SalesReport, error) {
	defer observe("sales", time.Now())
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	months, err := AvailableMonths(snap.Sales)
	if err != nil {
		return nil, err
	}
	if month == "" {
		month = months[0]
	}
	year, mon, err := analytics.ParseMonth(month)
	if err != nil {
		return nil, err
	}

	sum, err := analytics.FilterAndSum(snap.Sales, analytics.MonthInterval(year, mon))
	if err != nil {
		return nil, err
	}
	daily, stats, err := analytics.BuildDailySeries(sum.Filtered, year, mon)
	if err != nil {
		return nil, err
	}

	// Sales whose therapist no longer resolves are left off the name board.
	resolved := make([]domain.Sale, 0, len(sum.Filtered))
	names := make(map[string]string, len(snap.Staff))
	for _, sale := range sum.Filtered {
		st, ok := domain.FindStaff(snap.Staff, sale.TherapistID)
		if !ok {
			continue
		}
		names[sale.TherapistID] = st.FullName
		resolved = append(resolved, sale)
	}

	return &SalesReport{
		Month:    month,
		Total:    sum.Total,
		Sessions: sum.Count,
		Daily:    daily,
		Stats:    stats,
		TopTherapists: analytics.Rank(resolved, func(sale domain.Sale) string {
			return names[sale.TherapistID]
		}, 5),
		TopTherapies:      analytics.Rank(sum.Filtered, therapyKey, 5),
		TopPaymentMethods: analytics.Rank(sum.Filtered, paymentKey, 3),
		AvailableMonths:   months,
		Sales:             saleViews(mostRecent(sum.Filtered, 0), snap),
	}, nil
}

func (s ReportService) StaffReport(ctx context.Context, staffID string, rng analytics.PeriodKind) (*StaffReport, error) {
	defer observe("staff", time.Now())
	board, err := leaderboardPeriod(rng)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	member, ok := domain.FindStaff(snap.Staff, staffID)
	if !ok {
		return nil, ErrStaffNotFound
	}
	today := s.Today()
	out := &StaffReport{
		Staff:       newStaffView(member),
		Date:        analytics.FormatDay(today),
		Range:       rng,
		TodayStatus: string(domain.AttendanceAbsent),
	}

	rec, found, err := analytics.FindAttendance(snap.Attendance, member.ID, today)
	if err != nil {
		return nil, err
	}
	if found {
		out.TodayStatus = string(rec.Status)
		out.TodayRecord = &rec
	}
	mtdIv := analytics.ResolvePeriod(today, analytics.Selector{Kind: analytics.PeriodMTD})
	ytdIv := analytics.ResolvePeriod(today, analytics.Selector{Kind: analytics.PeriodYTD})
	if out.MonthToDate, err = analytics.TallyStaffAttendance(snap.Attendance, member.ID, mtdIv); err != nil {
		return nil, err
	}
	if out.YearToDate, err = analytics.TallyStaffAttendance(snap.Attendance, member.ID, ytdIv); err != nil {
		return nil, err
	}

	iv := analytics.ResolvePeriod(today, analytics.Selector{Kind: board})
	team, err := analytics.FilterAndSum(snap.Sales, iv)
	if err != nil {
		return nil, err
	}
	own, err := analytics.FilterAndSum(team.Filtered, iv, func(sale domain.Sale) bool {
		return sale.TherapistID == member.ID
	})
	if err != nil {
		return nil, err
	}
	summary := StaffSalesSummary{
		Total:            own.Total,
		Services:         own.Count,
		PaymentBreakdown: analytics.Rank(own.Filtered, paymentKey, 0),
		TopTherapies:     analytics.RankBySessions(own.Filtered, therapyKey, 3),
		RecentSales:      saleViews(mostRecent(own.Filtered, 5), snap),
		TeamTotal:        team.Total,
	}
	if own.Count > 0 {
		summary.AverageSale = float64(own.Total) / float64(own.Count)
	}
	if team.Total > 0 {
		summary.Contribution = float64(own.Total) / float64(team.Total) * 100
	}
	out.SalesSummary = summary
	return out, nil
}

func (s ReportService) ExpenseReport(ctx context.Context, month string) (*ExpenseReport, error) {
	defer observe("expenses", time.Now())
	year, mon, err := s.monthOrCurrent(month)
	if err != nil {
		return nil, err
	}
	expenses, err := s.Store.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	sum, err := analytics.FilterAndSum(expenses, analytics.MonthInterval(year, mon))
	if err != nil {
		return nil, err
	}
	daily, _, err := analytics.BuildDailySeries(sum.Filtered, year, mon)
	if err != nil {
		return nil, err
	}

	days := make(map[string]struct{})
	for _, e := range sum.Filtered {
		d, _ := analytics.ParseDay(e.Date)
		days[analytics.FormatDay(d)] = struct{}{}
	}
	out := &ExpenseReport{
		Month:      fmt.Sprintf("%04d-%02d", year, int(mon)),
		Total:      sum.Total,
		Count:      sum.Count,
		ActiveDays: len(days),
		Categories: make([]CategoryShare, 0),
		Daily:      daily,
	}
	if out.ActiveDays > 0 {
		out.AveragePerDay = float64(sum.Total) / float64(out.ActiveDays)
	}
	for _, g := range analytics.Rank(sum.Filtered, func(e domain.Expense) string { return e.Category }, 0) {
		share := CategoryShare{Category: g.Key, Total: g.Total}
		if sum.Total > 0 {
			share.Percent = float64(g.Total) / float64(sum.Total) * 100
		}
		out.Categories = append(out.Categories, share)
	}
	return out, nil
}

// AttendanceDay is the floor board for one day over every staff member.
func (s ReportService) AttendanceDay(ctx context.Context, date string) (*AttendanceBoard, error) {
	defer observe("attendance_day", time.Now())
	day, err := analytics.ParseDay(date)
	if err != nil {
		return nil, err
	}
	staff, err := s.Store.ListStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("load staff: %w", err)
	}
	records, err := s.Store.ListAttendance(ctx)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	rollup, err := analytics.RollupAttendanceForDay(records, staff, day)
	if err != nil {
		return nil, err
	}
	board := newAttendanceBoard(rollup)
	return &board, nil
}

func (s ReportService) AttendanceCalendar(ctx context.Context, month string) (*AttendanceCalendar, error) {
	defer observe("attendance_calendar", time.Now())
	year, mon, err := s.monthOrCurrent(month)
	if err != nil {
		return nil, err
	}
	records, err := s.Store.ListAttendance(ctx)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	days, err := analytics.PresentByDay(records, year, mon)
	if err != nil {
		return nil, err
	}
	return &AttendanceCalendar{Month: fmt.Sprintf("%04d-%02d", year, int(mon)), Days: days}, nil
}

// SalesForMonth returns the month's sales newest first, for exports.
func (s ReportService) SalesForMonth(ctx context.Context, month string) ([]SaleView, error) {
	year, mon, err := s.monthOrCurrent(month)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	sum, err := analytics.FilterAndSum(snap.Sales, analytics.MonthInterval(year, mon))
	if err != nil {
		return nil, err
	}
	return saleViews(mostRecent(sum.Filtered, 0), snap), nil
}

// Today is the reference day in the business time zone.
func (s ReportService) Today() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	t := now()
	if s.Location != nil {
		t = t.In(s.Location)
	}
	return analytics.Day(t)
}

// AvailableMonths lists EarliestMonth and every month with a sale, newest first.
func AvailableMonths(sales []domain.Sale) ([]string, error) {
	set := map[string]struct{}{EarliestMonth: {}}
	for _, sale := range sales {
		d, err := analytics.ParseDay(sale.Date)
		if err != nil {
			return nil, err
		}
		set[d.Format("2006-01")] = struct{}{}
	}
	months := make([]string, 0, len(set))
	for m := range set {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months, nil
}

func (s ReportService) milestone(mtdProfit int64, monthStart, today time.Time) MilestoneView {
	days := analytics.DaysElapsed(monthStart, today)
	avg := analytics.AverageDailyProfit(mtdProfit, days)
	out := MilestoneView{
		Target:             s.Targets.ProfitMilestone,
		DaysElapsed:        days,
		AverageDailyProfit: avg,
		PacePercent:        analytics.PacePercent(avg, float64(s.Targets.MilestonePace)),
	}
	if p, ok := analytics.ProjectMilestone(avg, s.Targets.ProfitMilestone); ok {
		out.Reachable = true
		out.Projection = &p
	}
	return out
}

func (s ReportService) monthOrCurrent(month string) (int, time.Month, error) {
	if month == "" {
		today := s.Today()
		return today.Year(), today.Month(), nil
	}
	return analytics.ParseMonth(month)
}

func (s ReportService) snapshot(ctx context.Context) (domain.Snapshot, error) {
	var (
		snap domain.Snapshot
		err  error
	)
	if snap.Sales, err = s.Store.ListSales(ctx); err != nil {
		return snap, fmt.Errorf("load sales: %w", err)
	}
	if snap.Expenses, err = s.Store.ListExpenses(ctx); err != nil {
		return snap, fmt.Errorf("load expenses: %w", err)
	}
	if snap.Attendance, err = s.Store.ListAttendance(ctx); err != nil {
		return snap, fmt.Errorf("load attendance: %w", err)
	}
	if snap.Staff, err = s.Store.ListStaff(ctx); err != nil {
		return snap, fmt.Errorf("load staff: %w", err)
	}
	if snap.Rooms, err = s.Store.ListRooms(ctx); err != nil {
		return snap, fmt.Errorf("load rooms: %w", err)
	}
	if snap.Therapies, err = s.Store.ListTherapies(ctx); err != nil {
		return snap, fmt.Errorf("load therapies: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Debug("snapshot loaded", "sales", len(snap.Sales), "expenses", len(snap.Expenses), "attendance", len(snap.Attendance))
	}
	return snap, nil
}

func leaderboardPeriod(rng analytics.PeriodKind) (analytics.PeriodKind, error) {
	switch rng {
	case analytics.PeriodMTD:
		return analytics.PeriodMonth, nil
	case analytics.PeriodYTD:
		return analytics.PeriodYear, nil
	}
	return "", ErrInvalidRange
}

func periodFigures(snap domain.Snapshot, iv analytics.Interval) (PeriodFigures, analytics.Summary[domain.Sale], error) {
	sales, err := analytics.FilterAndSum(snap.Sales, iv)
	if err != nil {
		return PeriodFigures{}, sales, err
	}
	expenses, err := analytics.FilterAndSum(snap.Expenses, iv)
	if err != nil {
		return PeriodFigures{}, sales, err
	}
	return PeriodFigures{
		Sales:    sales.Total,
		Expenses: expenses.Total,
		Profit:   analytics.Profit(sales.Total, expenses.Total),
		Count:    sales.Count,
	}, sales, nil
}

func topTherapists(snap domain.Snapshot, iv analytics.Interval, therapists []domain.Staff, topN int) ([]LeaderboardEntry, error) {
	ids := make([]string, 0, len(therapists))
	isTherapist := make(map[string]bool, len(therapists))
	for _, t := range therapists {
		ids = append(ids, t.ID)
		isTherapist[t.ID] = true
	}
	sum, err := analytics.FilterAndSum(snap.Sales, iv, func(sale domain.Sale) bool {
		return isTherapist[sale.TherapistID]
	})
	if err != nil {
		return nil, err
	}
	groups := analytics.RankSeeded(sum.Filtered, func(sale domain.Sale) string { return sale.TherapistID }, topN, ids)
	out := make([]LeaderboardEntry, 0, len(groups))
	for _, g := range groups {
		st, _ := domain.FindStaff(therapists, g.Key)
		out = append(out, LeaderboardEntry{StaffID: g.Key, FullName: st.FullName, Total: g.Total, Sessions: g.Sessions})
	}
	return out, nil
}

// distinctCustomers keys customers by phone; a sale without a usable phone
// counts as its own customer.
func distinctCustomers(sales []domain.Sale) int {
	seen := make(map[string]struct{}, len(sales))
	for _, sale := range sales {
		key := strings.TrimSpace(sale.CustomerPhone)
		if key == "" || key == "-" {
			key = "sale:" + sale.ID
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}

// mostRecent orders by start time, newest first. n <= 0 keeps every sale.
func mostRecent(sales []domain.Sale, n int) []domain.Sale {
	out := make([]domain.Sale, len(sales))
	copy(out, sales)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func saleViews(sales []domain.Sale, snap domain.Snapshot) []SaleView {
	out := make([]SaleView, 0, len(sales))
	for _, sale := range sales {
		v := SaleView{
			ID:            sale.ID,
			CustomerName:  sale.CustomerName,
			CustomerPhone: sale.CustomerPhone,
			Amount:        sale.Amount,
			PaymentMethod: string(sale.PaymentMethod),
			TherapyType:   sale.TherapyType,
			TherapistID:   sale.TherapistID,
			RoomID:        sale.RoomID,
			StartTime:     sale.StartTime,
			EndTime:       sale.EndTime,
			Date:          sale.Date,
		}
		if st, ok := domain.FindStaff(snap.Staff, sale.TherapistID); ok {
			v.TherapistName = st.FullName
		}
		if rm, ok := domain.FindRoom(snap.Rooms, sale.RoomID); ok {
			v.RoomName = rm.Name
		}
		out = append(out, v)
	}
	return out
}

func newStaffView(s domain.Staff) StaffView {
	return StaffView{ID: s.ID, FullName: s.FullName, Role: string(s.Role)}
}

func staffViews(staff []domain.Staff) []StaffView {
	out := make([]StaffView, 0, len(staff))
	for _, s := range staff {
		out = append(out, newStaffView(s))
	}
	return out
}

func newAttendanceBoard(r analytics.DayRollup) AttendanceBoard {
	return AttendanceBoard{
		DayRollup:    r,
		PresentStaff: staffViews(r.PresentStaff),
		LateStaff:    staffViews(r.LateStaff),
		AbsentStaff:  staffViews(r.AbsentStaff),
	}
}

func therapyKey(sale domain.Sale) string { return sale.TherapyType }

func paymentKey(sale domain.Sale) string { return string(sale.PaymentMethod) }

func observe(report string, start time.Time) {
	reportDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
}
