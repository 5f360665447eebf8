package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"wavesflow-backend/internal/db"
	"wavesflow-backend/internal/domain"
)

type RoomRepository struct {
	DB *db.Postgres
}

func (r RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.DB.Pool.Query(ctx, `SELECT id, name FROM rooms ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Room
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.Name); err != nil {
			return nil, err
		}
		items = append(items, rm)
	}
	return items, rows.Err()
}

func (r RoomRepository) Get(ctx context.Context, id string) (*domain.Room, error) {
	var rm domain.Room
	err := r.DB.Pool.QueryRow(ctx, `SELECT id, name FROM rooms WHERE id=$1`, id).Scan(&rm.ID, &rm.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rm, nil
}

func (r RoomRepository) Save(ctx context.Context, rm domain.Room) (*domain.Room, error) {
	var out domain.Room
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO rooms (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name
	`, newID(rm.ID), rm.Name).Scan(&out.ID, &out.Name)
	return &out, err
}

func (r RoomRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM rooms WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
