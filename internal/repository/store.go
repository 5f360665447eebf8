package repository

import (
	"context"

	"wavesflow-backend/internal/db"
	"wavesflow-backend/internal/domain"
)

// Store exposes the full entity collections to the report layer.
type Store struct {
	Sales      SaleRepository
	Expenses   ExpenseRepository
	Attendance AttendanceRepository
	Staff      StaffRepository
	Rooms      RoomRepository
	Therapies  TherapyRepository
}

func NewStore(pg *db.Postgres) Store {
	return Store{
		Sales:      SaleRepository{DB: pg},
		Expenses:   ExpenseRepository{DB: pg},
		Attendance: AttendanceRepository{DB: pg},
		Staff:      StaffRepository{DB: pg},
		Rooms:      RoomRepository{DB: pg},
		Therapies:  TherapyRepository{DB: pg},
	}
}

func (s Store) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.Sales.List(ctx)
}

func (s Store) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	return s.Expenses.List(ctx)
}

func (s Store) ListAttendance(ctx context.Context) ([]domain.Attendance, error) {
	return s.Attendance.List(ctx)
}

func (s Store) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	return s.Staff.List(ctx)
}

func (s Store) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.Rooms.List(ctx)
}

func (s Store) ListTherapies(ctx context.Context) ([]domain.Therapy, error) {
	return s.Therapies.List(ctx)
}
