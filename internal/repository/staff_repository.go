package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"wavesflow-backend/internal/db"
	"wavesflow-backend/internal/domain"
)

type StaffRepository struct {
	DB *db.Postgres
}

const staffColumns = `id, full_name, role, experience_years, phone_number, gender`

func (r StaffRepository) List(ctx context.Context) ([]domain.Staff, error) {
	rows, err := r.DB.Pool.Query(ctx, `SELECT `+staffColumns+` FROM staff ORDER BY full_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	return items, rows.Err()
}

func (r StaffRepository) Get(ctx context.Context, id string) (*domain.Staff, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE id=$1`, id)
	s, err := scanStaff(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// Save inserts a new member when ID is empty or unknown, otherwise updates it.
func (r StaffRepository) Save(ctx context.Context, s domain.Staff) (*domain.Staff, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO staff (`+staffColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET
			full_name=EXCLUDED.full_name,
			role=EXCLUDED.role,
			experience_years=EXCLUDED.experience_years,
			phone_number=EXCLUDED.phone_number,
			gender=EXCLUDED.gender
		RETURNING `+staffColumns+`
	`, newID(s.ID), s.FullName, string(s.Role), s.ExperienceYears, s.PhoneNumber, string(s.Gender))
	return scanStaff(row)
}

func (r StaffRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM staff WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanStaff(row scanner) (*domain.Staff, error) {
	var (
		s            domain.Staff
		role, gender string
	)
	if err := row.Scan(&s.ID, &s.FullName, &role, &s.ExperienceYears, &s.PhoneNumber, &gender); err != nil {
		return nil, err
	}
	s.Role = domain.StaffRole(role)
	s.Gender = domain.Gender(gender)
	return &s, nil
}
