// Command ingest loads historical sales and expense sheets into the database
// and seeds the reference catalog.
//
//	ingest seed
//	ingest sales [-clear] sheet.csv|sheet.xlsx
//	ingest expenses [-clear] expenses.csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"wavesflow-backend/internal/config"
	"wavesflow-backend/internal/db"
	"wavesflow-backend/internal/ingest"
	"wavesflow-backend/internal/repository"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.LoadDatabase()
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

	store := repository.NewStore(pg)
	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "seed":
		err = seed(ctx, store, logger)
	case "sales":
		err = importSales(ctx, store, logger, args)
	case "expenses":
		err = importExpenses(ctx, store, logger, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error(cmd+" failed", "err", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ingest seed | sales [-clear] <file.csv|file.xlsx> | expenses [-clear] <file.csv>")
}

func seed(ctx context.Context, store repository.Store, logger *slog.Logger) error {
	staff, err := store.Staff.EnsureStaff(ctx, repository.DefaultTherapistNames)
	if err != nil {
		return fmt.Errorf("staff: %w", err)
	}
	rooms, err := store.Rooms.EnsureRooms(ctx, repository.DefaultRoomNames)
	if err != nil {
		return fmt.Errorf("rooms: %w", err)
	}
	if err := store.Therapies.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("therapies: %w", err)
	}
	logger.Info("seed complete", "staff_added", len(staff), "rooms_added", len(rooms))
	return nil
}

func parseFileArgs(name string, args []string) (string, bool, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	reset := fs.Bool("clear", false, "delete existing rows before importing")
	if err := fs.Parse(args); err != nil {
		return "", false, err
	}
	if fs.NArg() != 1 {
		return "", false, errors.New("expected exactly one input file")
	}
	return fs.Arg(0), *reset, nil
}

func readRecords(path string) ([]ingest.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ingest.ReadXLSX(f)
	case ".csv":
		return ingest.ReadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

func logRowErrors(logger *slog.Logger, failed []ingest.RowError) {
	for _, e := range failed {
		logger.Warn("skipping row", "row", e.Row, "err", e.Err)
	}
}

func importSales(ctx context.Context, store repository.Store, logger *slog.Logger, args []string) error {
	path, reset, err := parseFileArgs("sales", args)
	if err != nil {
		return err
	}
	records, err := readRecords(path)
	if err != nil {
		return err
	}
	staff, err := store.Staff.List(ctx)
	if err != nil {
		return fmt.Errorf("load staff: %w", err)
	}
	rooms, err := store.Rooms.List(ctx)
	if err != nil {
		return fmt.Errorf("load rooms: %w", err)
	}

	sales, failed := ingest.Resolver{Staff: staff, Rooms: rooms}.Sales(records)
	logRowErrors(logger, failed)
	if reset {
		n, err := store.Sales.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("clear sales: %w", err)
		}
		logger.Info("cleared sales", "deleted", n)
	}
	if err := store.Sales.CreateMany(ctx, sales); err != nil {
		return fmt.Errorf("insert sales: %w", err)
	}
	logger.Info("sales imported", "file", path, "rows", len(records), "imported", len(sales), "skipped", len(failed))
	return nil
}

func importExpenses(ctx context.Context, store repository.Store, logger *slog.Logger, args []string) error {
	path, reset, err := parseFileArgs("expenses", args)
	if err != nil {
		return err
	}
	records, err := readRecords(path)
	if err != nil {
		return err
	}

	expenses, failed := ingest.Expenses(records)
	logRowErrors(logger, failed)
	if reset {
		n, err := store.Expenses.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("clear expenses: %w", err)
		}
		logger.Info("cleared expenses", "deleted", n)
	}
	if err := store.Expenses.CreateMany(ctx, expenses); err != nil {
		return fmt.Errorf("insert expenses: %w", err)
	}
	logger.Info("expenses imported", "file", path, "rows", len(records), "imported", len(expenses), "skipped", len(failed))
	return nil
}
