package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"wavesflow-backend/internal/db"
	"wavesflow-backend/internal/domain"
)

type SaleRepository struct {
	DB *db.Postgres
}

const saleColumns = `id, customer_name, customer_phone, amount, payment_method, therapy_type,
	therapist_id, room_id, start_time, end_time, sale_date`

func (r SaleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+saleColumns+`
		FROM sales
		ORDER BY sale_date DESC, start_time DESC
	`)
	if err != nil {
		return nil, err
	}
	return collectSales(rows)
}

// ListBetween returns sales dated within [start, end], both YYYY-MM-DD.
func (r SaleRepository) ListBetween(ctx context.Context, start, end string) ([]domain.Sale, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+saleColumns+`
		FROM sales
		WHERE sale_date >= $1 AND sale_date <= $2
		ORDER BY sale_date DESC, start_time DESC
	`, start, end)
	if err != nil {
		return nil, err
	}
	return collectSales(rows)
}

func (r SaleRepository) Get(ctx context.Context, id string) (*domain.Sale, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id=$1`, id)
	s, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r SaleRepository) Create(ctx context.Context, s domain.Sale) (*domain.Sale, error) {
	s.ID = newID(s.ID)
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING `+saleColumns,
		saleArgs(s)...)
	return scanSale(row)
}

// CreateMany inserts all sales in one transaction.
func (r SaleRepository) CreateMany(ctx context.Context, sales []domain.Sale) error {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, s := range sales {
		s.ID = newID(s.ID)
		batch.Queue(`INSERT INTO sales (`+saleColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`, saleArgs(s)...)
	}
	br := tx.SendBatch(ctx, batch)
	for i := range sales {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("insert sale %d: %w", i+1, err)
		}
	}
	if err := br.Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r SaleRepository) Update(ctx context.Context, s domain.Sale) (*domain.Sale, error) {
	args := saleArgs(s)
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE sales SET
			customer_name=$2, customer_phone=$3, amount=$4, payment_method=$5, therapy_type=$6,
			therapist_id=$7, room_id=$8, start_time=$9, end_time=$10, sale_date=$11
		WHERE id=$1
		RETURNING `+saleColumns,
		args...)
	out, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (r SaleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM sales WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r SaleRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM sales`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func saleArgs(s domain.Sale) []any {
	return []any{
		s.ID, s.CustomerName, s.CustomerPhone, s.Amount, string(s.PaymentMethod), s.TherapyType,
		s.TherapistID, s.RoomID, s.StartTime, s.EndTime, s.Date,
	}
}

func collectSales(rows pgx.Rows) ([]domain.Sale, error) {
	defer rows.Close()
	var items []domain.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	return items, rows.Err()
}

func scanSale(row scanner) (*domain.Sale, error) {
	var (
		s      domain.Sale
		method string
	)
	if err := row.Scan(
		&s.ID, &s.CustomerName, &s.CustomerPhone, &s.Amount, &method, &s.TherapyType,
		&s.TherapistID, &s.RoomID, &s.StartTime, &s.EndTime, &s.Date,
	); err != nil {
		return nil, err
	}
	s.PaymentMethod = domain.PaymentMethod(method)
	return &s, nil
}
