package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"wavesflow-backend/internal/db"
	"wavesflow-backend/internal/domain"
)

type ExpenseRepository struct {
	DB *db.Postgres
}

func (r ExpenseRepository) List(ctx context.Context) ([]domain.Expense, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, description, category, amount, expense_date
		FROM expenses
		ORDER BY expense_date DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	return collectExpenses(rows)
}

// ListFiltered mirrors List with optional inclusive YYYY-MM-DD bounds.
func (r ExpenseRepository) ListFiltered(ctx context.Context, start, end *string) ([]domain.Expense, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, description, category, amount, expense_date
		FROM expenses
		WHERE ($1::text IS NULL OR expense_date >= $1)
		  AND ($2::text IS NULL OR expense_date <= $2)
		ORDER BY expense_date DESC, id DESC
	`, start, end)
	if err != nil {
		return nil, err
	}
	return collectExpenses(rows)
}

func (r ExpenseRepository) Create(ctx context.Context, e domain.Expense) (*domain.Expense, error) {
	var out domain.Expense
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO expenses (id, description, category, amount, expense_date)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, description, category, amount, expense_date
	`, newID(e.ID), e.Description, e.Category, e.Amount, e.Date).Scan(
		&out.ID, &out.Description, &out.Category, &out.Amount, &out.Date,
	)
	return &out, err
}

// CreateMany inserts all expenses in one transaction.
func (r ExpenseRepository) CreateMany(ctx context.Context, expenses []domain.Expense) error {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i, e := range expenses {
		if _, err := tx.Exec(ctx, `
			INSERT INTO expenses (id, description, category, amount, expense_date)
			VALUES ($1,$2,$3,$4,$5)
		`, newID(e.ID), e.Description, e.Category, e.Amount, e.Date); err != nil {
			return fmt.Errorf("insert expense %d: %w", i+1, err)
		}
	}
	return tx.Commit(ctx)
}

func (r ExpenseRepository) Update(ctx context.Context, e domain.Expense) (*domain.Expense, error) {
	var out domain.Expense
	err := r.DB.Pool.QueryRow(ctx, `
		UPDATE expenses SET description=$2, category=$3, amount=$4, expense_date=$5
		WHERE id=$1
		RETURNING id, description, category, amount, expense_date
	`, e.ID, e.Description, e.Category, e.Amount, e.Date).Scan(
		&out.ID, &out.Description, &out.Category, &out.Amount, &out.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r ExpenseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM expenses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r ExpenseRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM expenses`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func collectExpenses(rows pgx.Rows) ([]domain.Expense, error) {
	defer rows.Close()
	var items []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Category, &e.Amount, &e.Date); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
