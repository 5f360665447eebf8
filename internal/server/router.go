package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"wavesflow-backend/internal/config"
	"wavesflow-backend/internal/handler"
)

// NewRouter wires HTTP routes and middleware.
func NewRouter(cfg config.Config,
	logger *slog.Logger,
	health handler.HealthHandler,
	docs handler.DocsHandler,
	auth handler.AuthHandler,
	staff handler.StaffHandler,
	catalog handler.CatalogHandler,
	sales handler.SaleHandler,
	expenses handler.ExpenseHandler,
	attendance handler.AttendanceHandler,
	reports handler.ReportHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	health.RegisterRoutes(r)
	docs.RegisterRoutes(r)
	r.Method("GET", "/metrics", promhttp.Handler())
	r.Group(func(lr chi.Router) {
		lr.Use(httprate.LimitByIP(10, 1*time.Minute))
		auth.RegisterRoutes(lr)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(cfg.JWTSecret))
		auth.RegisterProtectedRoutes(pr)
		staff.RegisterRoutes(pr)
		catalog.RegisterRoutes(pr)
		sales.RegisterRoutes(pr)
		expenses.RegisterRoutes(pr)
		attendance.RegisterRoutes(pr)
		reports.RegisterRoutes(pr)
	})

	return r
}
