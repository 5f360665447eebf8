package repository

import (
	"errors"

	"github.com/google/uuid"
	"wavesflow-backend/internal/db"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// IsDuplicate detects unique constraint violation.
func IsDuplicate(err error) bool {
	return db.IsUniqueViolation(err)
}

// IsMissingReference detects a write pointing at a staff or room that does not exist.
func IsMissingReference(err error) bool {
	return db.IsForeignKeyViolation(err)
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

type scanner interface {
	Scan(dest ...any) error
}
