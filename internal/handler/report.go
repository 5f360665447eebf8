package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"wavesflow-backend/internal/analytics"
	"wavesflow-backend/internal/service"
)

type Reports interface {
	Dashboard(ctx context.Context, rng analytics.PeriodKind) (*service.DashboardReport, error)
	SalesReport(ctx context.Context, month string) (*service.SalesReport, error)
	StaffReport(ctx context.Context, staffID string, rng analytics.PeriodKind) (*service.StaffReport, error)
	ExpenseReport(ctx context.Context, month string) (*service.ExpenseReport, error)
	AttendanceDay(ctx context.Context, date string) (*service.AttendanceBoard, error)
	AttendanceCalendar(ctx context.Context, month string) (*service.AttendanceCalendar, error)
}

type ReportHandler struct {
	Service Reports
}

func (h ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/dashboard", h.dashboard)
	r.Get("/reports/sales", h.sales)
	r.Get("/reports/staff/{id}", h.staff)
	r.Get("/reports/expenses", h.expenses)
	r.Get("/reports/attendance/calendar", h.attendanceCalendar)
	r.Get("/reports/attendance/{date}", h.attendanceDay)
}

func (h ReportHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	rng, ok := rangeQuery(w, r)
	if !ok {
		return
	}
	rep, err := h.Service.Dashboard(r.Context(), rng)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h ReportHandler) sales(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonthQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rep, err := h.Service.SalesReport(r.Context(), month)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h ReportHandler) staff(w http.ResponseWriter, r *http.Request) {
	rng, ok := rangeQuery(w, r)
	if !ok {
		return
	}
	rep, err := h.Service.StaffReport(r.Context(), chi.URLParam(r, "id"), rng)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h ReportHandler) expenses(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonthQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rep, err := h.Service.ExpenseReport(r.Context(), month)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h ReportHandler) attendanceCalendar(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonthQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rep, err := h.Service.AttendanceCalendar(r.Context(), month)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h ReportHandler) attendanceDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := parseDay(date); err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	rep, err := h.Service.AttendanceDay(r.Context(), date)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// rangeQuery reads ?range=mtd|ytd, defaulting to mtd.
func rangeQuery(w http.ResponseWriter, r *http.Request) (analytics.PeriodKind, bool) {
	v := r.URL.Query().Get("range")
	if v == "" {
		return analytics.PeriodMTD, true
	}
	kind, err := analytics.ParsePeriodKind(v)
	if err != nil || (kind != analytics.PeriodMTD && kind != analytics.PeriodYTD) {
		writeError(w, http.StatusBadRequest, "range must be mtd or ytd")
		return "", false
	}
	return kind, true
}
