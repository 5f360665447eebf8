package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wavesflow-backend/internal/config"
	"wavesflow-backend/internal/db"
	"wavesflow-backend/internal/handler"
	"wavesflow-backend/internal/repository"
	"wavesflow-backend/internal/server"
	"wavesflow-backend/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	if err := pg.Migrate(ctx); err != nil {
		logger.Error("failed to apply schema", "err", err)
		os.Exit(1)
	}

	// repositories
	store := repository.NewStore(pg)

	// services
	authSvc := service.AuthService{Config: cfg, Logger: logger}
	reports := service.ReportService{
		Store:    store,
		Logger:   logger,
		Location: cfg.Location(),
		Targets: service.Targets{
			MonthlySalesGoal: cfg.MonthlySalesGoal,
			ProfitMilestone:  cfg.ProfitMilestone,
			MilestonePace:    cfg.MilestonePace,
		},
		Now: time.Now,
	}

	// handlers
	healthHandler := handler.HealthHandler{DB: pg}
	docsHandler := handler.DocsHandler{}
	authHandler := handler.AuthHandler{Service: authSvc}
	staffHandler := handler.StaffHandler{Repo: store.Staff}
	catalogHandler := handler.CatalogHandler{Rooms: store.Rooms, Therapies: store.Therapies}
	saleHandler := handler.SaleHandler{Repo: store.Sales, Reports: reports}
	expenseHandler := handler.ExpenseHandler{Repo: store.Expenses}
	attendanceHandler := handler.AttendanceHandler{Repo: store.Attendance}
	reportHandler := handler.ReportHandler{Service: reports}

	router := server.NewRouter(cfg, logger, healthHandler, docsHandler, authHandler, staffHandler, catalogHandler,
		saleHandler, expenseHandler, attendanceHandler, reportHandler)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
