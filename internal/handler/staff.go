package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"wavesflow-backend/internal/domain"
)

type StaffStore interface {
	List(ctx context.Context) ([]domain.Staff, error)
	Get(ctx context.Context, id string) (*domain.Staff, error)
	Save(ctx context.Context, s domain.Staff) (*domain.Staff, error)
	Delete(ctx context.Context, id string) error
}

type StaffHandler struct {
	Repo StaffStore
}

func (h StaffHandler) RegisterRoutes(r chi.Router) {
	r.Get("/staff", h.list)
	r.Post("/staff", h.create)
	r.Get("/staff/{id}", h.get)
	r.Put("/staff/{id}", h.update)
	r.Delete("/staff/{id}", h.delete)
}

type staffRequest struct {
	FullName        string `json:"fullName"`
	Role            string `json:"role"`
	ExperienceYears int    `json:"experienceYears"`
	PhoneNumber     string `json:"phoneNumber"`
	Gender          string `json:"gender"`
}

func (req staffRequest) toDomain(id string) (domain.Staff, string) {
	s := domain.Staff{
		ID:              id,
		FullName:        strings.TrimSpace(req.FullName),
		Role:            domain.StaffRole(req.Role),
		ExperienceYears: req.ExperienceYears,
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		Gender:          domain.Gender(req.Gender),
	}
	switch {
	case s.FullName == "":
		return s, "fullName is required"
	case !s.Role.Valid():
		return s, "role must be Manager, Therapist or Receptionist"
	case !s.Gender.Valid():
		return s, "gender must be Male or Female"
	case s.ExperienceYears < 0:
		return s, "experienceYears must not be negative"
	}
	return s, ""
}

func (h StaffHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	role := r.URL.Query().Get("role")
	if role != "" {
		items = domain.StaffWithRole(items, domain.StaffRole(role))
	}
	resp := make([]map[string]any, 0, len(items))
	for _, s := range items {
		resp = append(resp, toStaffJSON(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h StaffHandler) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.Repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStaffJSON(*s))
}

func (h StaffHandler) create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "", http.StatusCreated)
}

func (h StaffHandler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Repo.Get(r.Context(), id); err != nil {
		writeFailure(w, err)
		return
	}
	h.save(w, r, id, http.StatusOK)
}

func (h StaffHandler) save(w http.ResponseWriter, r *http.Request, id string, status int) {
	var req staffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	s, msg := req.toDomain(id)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	saved, err := h.Repo.Save(r.Context(), s)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, status, toStaffJSON(*saved))
}

func (h StaffHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func toStaffJSON(s domain.Staff) map[string]any {
	return map[string]any{
		"id":              s.ID,
		"fullName":        s.FullName,
		"role":            string(s.Role),
		"experienceYears": s.ExperienceYears,
		"phoneNumber":     s.PhoneNumber,
		"gender":          string(s.Gender),
	}
}
