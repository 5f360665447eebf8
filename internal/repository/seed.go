package repository

import (
	"context"

	"github.com/google/uuid"
	"wavesflow-backend/internal/domain"
)

// DefaultTherapistNames are the therapists found on the paper sales sheets.
var DefaultTherapistNames = []string{
	"Riya", "Aliya", "Bella", "Nora", "Kriti", "Muskan", "Maya", "Honey", "Maria", "Priya",
}

// DefaultRoomNames are the rooms found on the paper sales sheets.
var DefaultRoomNames = []string{
	"Japanese", "VIP", "Vip Royal", "VVIP", "Couple", "Family", "Semi-VIP", "Thai",
	"Classic", "Thaira", "Chill", "Captain", "Cholea", "Temp/Cln", "Chair",
}

var defaultTherapies = []domain.Therapy{
	{Name: "Deep Tissue", Duration: 60, Price: 2500},
	{Name: "Swedish", Duration: 60, Price: 2200},
	{Name: "Aromatherapy", Duration: 90, Price: 3000},
	{Name: "Hot Stone", Duration: 75, Price: 2800},
	{Name: "Semi VIP", Duration: 60, Price: 5000},
	{Name: "Deep", Duration: 60, Price: 10000},
	{Name: "Vietnamese", Duration: 60, Price: 3500},
	{Name: "Thai Oil", Duration: 70, Price: 2500},
	{Name: "VVIP", Duration: 60, Price: 20000},
}

// EnsureStaff adds a Therapist for each name not already present (case-insensitive).
// It returns the names that were added.
func (r StaffRepository) EnsureStaff(ctx context.Context, names []string) ([]string, error) {
	var added []string
	for _, name := range names {
		tag, err := r.DB.Pool.Exec(ctx, `
			INSERT INTO staff (id, full_name, role, experience_years, phone_number, gender)
			VALUES ($1, $2, $3, 0, '', $4)
			ON CONFLICT ((lower(full_name))) DO NOTHING
		`, "staff-"+uuid.NewString(), name, string(domain.RoleTherapist), string(domain.GenderFemale))
		if err != nil {
			return added, err
		}
		if tag.RowsAffected() > 0 {
			added = append(added, name)
		}
	}
	return added, nil
}

// EnsureRooms adds each room not already present (case-insensitive).
func (r RoomRepository) EnsureRooms(ctx context.Context, names []string) ([]string, error) {
	var added []string
	for _, name := range names {
		tag, err := r.DB.Pool.Exec(ctx, `
			INSERT INTO rooms (id, name)
			VALUES ($1, $2)
			ON CONFLICT ((lower(name))) DO NOTHING
		`, "room-"+uuid.NewString(), name)
		if err != nil {
			return added, err
		}
		if tag.RowsAffected() > 0 {
			added = append(added, name)
		}
	}
	return added, nil
}

func (r TherapyRepository) SeedDefaults(ctx context.Context) error {
	for _, t := range defaultTherapies {
		_, err := r.DB.Pool.Exec(ctx, `
			INSERT INTO therapies (id, name, duration, price)
			SELECT $1, $2, $3, $4
			WHERE NOT EXISTS (SELECT 1 FROM therapies WHERE lower(name) = lower($2))
		`, uuid.NewString(), t.Name, t.Duration, t.Price)
		if err != nil {
			return err
		}
	}
	return nil
}
