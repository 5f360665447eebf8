package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"wavesflow-backend/internal/db"
	"wavesflow-backend/internal/domain"
)

type AttendanceRepository struct {
	DB *db.Postgres
}

const attendanceColumns = `id, staff_id, attendance_date, status, check_in_time, notes`

func (r AttendanceRepository) List(ctx context.Context) ([]domain.Attendance, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance
		ORDER BY attendance_date DESC, staff_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// Upsert writes the record for (staff, date). A new row gets the
// staffId-date key; an existing row keeps its id and takes the new fields.
func (r AttendanceRepository) Upsert(ctx context.Context, a domain.Attendance) (*domain.Attendance, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO attendance (`+attendanceColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (staff_id, attendance_date)
		DO UPDATE SET status=EXCLUDED.status, check_in_time=EXCLUDED.check_in_time, notes=EXCLUDED.notes
		RETURNING `+attendanceColumns,
		domain.AttendanceID(a.StaffID, a.Date), a.StaffID, a.Date, string(a.Status), a.CheckInTime, a.Notes)
	return scanAttendance(row)
}

// Update changes an existing record by id.
func (r AttendanceRepository) Update(ctx context.Context, a domain.Attendance) (*domain.Attendance, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE attendance SET status=$2, check_in_time=$3, notes=$4
		WHERE id=$1
		RETURNING `+attendanceColumns,
		a.ID, string(a.Status), a.CheckInTime, a.Notes)
	out, err := scanAttendance(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (r AttendanceRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM attendance WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAttendance(row scanner) (*domain.Attendance, error) {
	var (
		a             domain.Attendance
		status        string
		checkIn, note pgtype.Text
	)
	if err := row.Scan(&a.ID, &a.StaffID, &a.Date, &status, &checkIn, &note); err != nil {
		return nil, err
	}
	a.Status = domain.AttendanceStatus(status)
	if checkIn.Valid {
		a.CheckInTime = &checkIn.String
	}
	if note.Valid {
		a.Notes = &note.String
	}
	return &a, nil
}
