package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"wavesflow-backend/internal/domain"
)

type RoomStore interface {
	List(ctx context.Context) ([]domain.Room, error)
	Save(ctx context.Context, rm domain.Room) (*domain.Room, error)
	Delete(ctx context.Context, id string) error
}

type TherapyStore interface {
	List(ctx context.Context) ([]domain.Therapy, error)
	Save(ctx context.Context, t domain.Therapy) (*domain.Therapy, error)
	Delete(ctx context.Context, id string) error
}

// CatalogHandler serves the room and therapy reference lists.
type CatalogHandler struct {
	Rooms     RoomStore
	Therapies TherapyStore
}

func (h CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/rooms", h.listRooms)
	r.Post("/rooms", h.saveRoom)
	r.Put("/rooms/{id}", h.saveRoom)
	r.Delete("/rooms/{id}", h.deleteRoom)

	r.Get("/therapies", h.listTherapies)
	r.Post("/therapies", h.saveTherapy)
	r.Put("/therapies/{id}", h.saveTherapy)
	r.Delete("/therapies/{id}", h.deleteTherapy)
}

func (h CatalogHandler) listRooms(w http.ResponseWriter, r *http.Request) {
	items, err := h.Rooms.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, rm := range items {
		resp = append(resp, map[string]any{"id": rm.ID, "name": rm.Name})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h CatalogHandler) saveRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	id := chi.URLParam(r, "id")
	saved, err := h.Rooms.Save(r.Context(), domain.Room{ID: id, Name: name})
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, createdOrOK(id), map[string]any{"id": saved.ID, "name": saved.Name})
}

func (h CatalogHandler) deleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.Rooms.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h CatalogHandler) listTherapies(w http.ResponseWriter, r *http.Request) {
	items, err := h.Therapies.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, t := range items {
		resp = append(resp, toTherapyJSON(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h CatalogHandler) saveTherapy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Duration int    `json:"duration"`
		Price    int64  `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	t := domain.Therapy{
		ID:       chi.URLParam(r, "id"),
		Name:     strings.TrimSpace(req.Name),
		Duration: req.Duration,
		Price:    req.Price,
	}
	if t.Name == "" || t.Duration <= 0 || t.Price < 0 {
		writeError(w, http.StatusBadRequest, "name, positive duration and non-negative price are required")
		return
	}
	saved, err := h.Therapies.Save(r.Context(), t)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, createdOrOK(t.ID), toTherapyJSON(*saved))
}

func (h CatalogHandler) deleteTherapy(w http.ResponseWriter, r *http.Request) {
	if err := h.Therapies.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func toTherapyJSON(t domain.Therapy) map[string]any {
	return map[string]any{
		"id":       t.ID,
		"name":     t.Name,
		"duration": t.Duration,
		"price":    t.Price,
	}
}

func createdOrOK(id string) int {
	if id == "" {
		return http.StatusCreated
	}
	return http.StatusOK
}
