package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"wavesflow-backend/internal/domain"
)

type AttendanceStore interface {
	List(ctx context.Context) ([]domain.Attendance, error)
	Upsert(ctx context.Context, a domain.Attendance) (*domain.Attendance, error)
	Update(ctx context.Context, a domain.Attendance) (*domain.Attendance, error)
	Delete(ctx context.Context, id string) error
}

type AttendanceHandler struct {
	Repo AttendanceStore
}

func (h AttendanceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/attendance", h.list)
	r.Post("/attendance", h.record)
	r.Put("/attendance/{id}", h.update)
	r.Delete("/attendance/{id}", h.delete)
}

type attendanceRequest struct {
	StaffID     string  `json:"staffId"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	CheckInTime *string `json:"checkInTime"`
	Notes       *string `json:"notes"`
}

func (req attendanceRequest) toDomain() (domain.Attendance, string) {
	a := domain.Attendance{
		StaffID:     req.StaffID,
		Date:        req.Date,
		Status:      domain.AttendanceStatus(req.Status),
		CheckInTime: blankToNil(req.CheckInTime),
		Notes:       blankToNil(req.Notes),
	}
	if !a.Status.Valid() {
		return a, "status must be Present, Late or Absent"
	}
	return a, ""
}

func (h AttendanceHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	q := r.URL.Query()
	date, staffID := q.Get("date"), q.Get("staffId")
	resp := make([]map[string]any, 0, len(items))
	for _, a := range items {
		if (date != "" && a.Date != date) || (staffID != "" && a.StaffID != staffID) {
			continue
		}
		resp = append(resp, toAttendanceJSON(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

// record creates or replaces the record for (staffId, date).
func (h AttendanceHandler) record(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	a, msg := req.toDomain()
	if msg == "" && a.StaffID == "" {
		msg = "staffId is required"
	}
	if msg == "" {
		if _, err := parseDay(a.Date); err != nil {
			msg = "date must be YYYY-MM-DD"
		}
	}
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	saved, err := h.Repo.Upsert(r.Context(), a)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAttendanceJSON(*saved))
}

func (h AttendanceHandler) update(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	a, msg := req.toDomain()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	a.ID = chi.URLParam(r, "id")
	saved, err := h.Repo.Update(r.Context(), a)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAttendanceJSON(*saved))
}

func (h AttendanceHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func toAttendanceJSON(a domain.Attendance) map[string]any {
	return map[string]any{
		"id":          a.ID,
		"staffId":     a.StaffID,
		"date":        a.Date,
		"status":      string(a.Status),
		"checkInTime": a.CheckInTime,
		"notes":       a.Notes,
	}
}

func blankToNil(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	s := strings.TrimSpace(*v)
	return &s
}
