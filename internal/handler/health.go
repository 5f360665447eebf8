package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"wavesflow-backend/internal/ports"
)

// HealthHandler exposes a readiness probe.
type HealthHandler struct {
	DB ports.HealthChecker
}

func (h HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

func (h HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, db := "ok", "up"
	code := http.StatusOK
	if err := h.DB.Health(ctx); err != nil {
		status, db = "degraded", err.Error()
		code = http.StatusServiceUnavailable
	}
	writeRawJSON(w, code, map[string]string{
		"status":   status,
		"database": db,
	})
}
