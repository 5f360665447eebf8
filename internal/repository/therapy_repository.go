package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"wavesflow-backend/internal/db"
	"wavesflow-backend/internal/domain"
)

type TherapyRepository struct {
	DB *db.Postgres
}

func (r TherapyRepository) List(ctx context.Context) ([]domain.Therapy, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, duration, price
		FROM therapies
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Therapy
	for rows.Next() {
		var t domain.Therapy
		if err := rows.Scan(&t.ID, &t.Name, &t.Duration, &t.Price); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r TherapyRepository) Get(ctx context.Context, id string) (*domain.Therapy, error) {
	var t domain.Therapy
	err := r.DB.Pool.QueryRow(ctx, `SELECT id, name, duration, price FROM therapies WHERE id=$1`, id).
		Scan(&t.ID, &t.Name, &t.Duration, &t.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r TherapyRepository) Save(ctx context.Context, t domain.Therapy) (*domain.Therapy, error) {
	var out domain.Therapy
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO therapies (id, name, duration, price)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, duration=EXCLUDED.duration, price=EXCLUDED.price
		RETURNING id, name, duration, price
	`, newID(t.ID), t.Name, t.Duration, t.Price).Scan(&out.ID, &out.Name, &out.Duration, &out.Price)
	return &out, err
}

func (r TherapyRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM therapies WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
