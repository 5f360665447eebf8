package ports

import (
	"context"

	"wavesflow-backend/internal/domain"
)

// HealthChecker is used to probe dependencies.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// EntityStore returns full current collections; reports read nothing else.
type EntityStore interface {
	ListSales(ctx context.Context) ([]domain.Sale, error)
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
	ListAttendance(ctx context.Context) ([]domain.Attendance, error)
	ListStaff(ctx context.Context) ([]domain.Staff, error)
	ListRooms(ctx context.Context) ([]domain.Room, error)
	ListTherapies(ctx context.Context) ([]domain.Therapy, error)
}
