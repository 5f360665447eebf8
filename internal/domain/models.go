package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Enumerations
const (
	RoleManager      StaffRole = "Manager"
	RoleTherapist    StaffRole = "Therapist"
	RoleReceptionist StaffRole = "Receptionist"

	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"

	PaymentUPI    PaymentMethod = "UPI"
	PaymentCash   PaymentMethod = "Cash"
	PaymentCard   PaymentMethod = "Card"
	PaymentMember PaymentMethod = "Member"

	AttendancePresent AttendanceStatus = "Present"
	AttendanceLate    AttendanceStatus = "Late"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

// DateLayout is the calendar-day format used by every `date` field.
const DateLayout = "2006-01-02"

type StaffRole string
type Gender string
type PaymentMethod string
type AttendanceStatus string

func (r StaffRole) Valid() bool {
	switch r {
	case RoleManager, RoleTherapist, RoleReceptionist:
		return true
	}
	return false
}

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentUPI, PaymentCash, PaymentCard, PaymentMember:
		return true
	}
	return false
}

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceLate, AttendanceAbsent:
		return true
	}
	return false
}

// ParsePaymentMethod matches a payment mode case-insensitively.
func ParsePaymentMethod(v string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "upi":
		return PaymentUPI, nil
	case "cash":
		return PaymentCash, nil
	case "card":
		return PaymentCard, nil
	case "member":
		return PaymentMember, nil
	}
	return "", fmt.Errorf("invalid payment method: %q", v)
}

type Staff struct {
	ID              string
	FullName        string
	Role            StaffRole
	ExperienceYears int
	PhoneNumber     string
	Gender          Gender
}

type Room struct {
	ID   string
	Name string
}

type Therapy struct {
	ID       string
	Name     string
	Duration int
	Price    int64
}

// Sale is a single therapy session. TherapyType is free text and need not
// match a Therapy catalog entry.
type Sale struct {
	ID            string
	CustomerName  string
	CustomerPhone string
	Amount        int64
	PaymentMethod PaymentMethod
	TherapyType   string
	TherapistID   string
	RoomID        string
	StartTime     time.Time
	EndTime       time.Time
	Date          string
}

type Expense struct {
	ID          string
	Description string
	Category    string
	Amount      int64
	Date        string
}

type Attendance struct {
	ID          string
	StaffID     string
	Date        string
	Status      AttendanceStatus
	CheckInTime *string
	Notes       *string
}

// Snapshot is a point-in-time copy of every collection the reports read.
type Snapshot struct {
	Sales      []Sale
	Expenses   []Expense
	Attendance []Attendance
	Staff      []Staff
	Rooms      []Room
	Therapies  []Therapy
}

func (s Sale) EntryDate() string        { return s.Date }
func (s Sale) EntryAmount() int64       { return s.Amount }
func (e Expense) EntryDate() string     { return e.Date }
func (e Expense) EntryAmount() int64    { return e.Amount }
func (a Attendance) EntryDate() string  { return a.Date }
func (a Attendance) EntryAmount() int64 { return 0 }

// AttendanceID is the key assigned to a newly inserted attendance row.
func AttendanceID(staffID, date string) string {
	return staffID + "-" + date
}

var (
	ErrInvalidSale    = errors.New("invalid sale")
	ErrInvalidExpense = errors.New("invalid expense")
)

// Validate enforces the sale invariants every write path must respect:
// Member sessions carry no amount, every other payment carries a positive one.
func (s Sale) Validate() error {
	if !s.PaymentMethod.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidSale, s.PaymentMethod)
	}
	if s.PaymentMethod == PaymentMember {
		if s.Amount != 0 {
			return fmt.Errorf("%w: member sessions must have amount 0", ErrInvalidSale)
		}
	} else if s.Amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than 0", ErrInvalidSale)
	}
	if s.TherapistID == "" {
		return fmt.Errorf("%w: therapist is required", ErrInvalidSale)
	}
	if s.RoomID == "" {
		return fmt.Errorf("%w: room is required", ErrInvalidSale)
	}
	if _, err := time.Parse(DateLayout, s.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidSale)
	}
	if !s.StartTime.IsZero() && !s.EndTime.IsZero() && s.EndTime.Before(s.StartTime) {
		return fmt.Errorf("%w: end time before start time", ErrInvalidSale)
	}
	return nil
}

func (e Expense) Validate() error {
	if e.Amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than 0", ErrInvalidExpense)
	}
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidExpense)
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidExpense)
	}
	return nil
}

// FindStaff returns the first staff member with the given id.
func FindStaff(staff []Staff, id string) (Staff, bool) {
	for _, s := range staff {
		if s.ID == id {
			return s, true
		}
	}
	return Staff{}, false
}

// FindStaffByName matches full names case-insensitively; first match wins.
func FindStaffByName(staff []Staff, name string) (Staff, bool) {
	name = strings.TrimSpace(name)
	for _, s := range staff {
		if strings.EqualFold(s.FullName, name) {
			return s, true
		}
	}
	return Staff{}, false
}

func FindRoom(rooms []Room, id string) (Room, bool) {
	for _, r := range rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

// FindRoomByName matches room names case-insensitively; first match wins.
func FindRoomByName(rooms []Room, name string) (Room, bool) {
	name = strings.TrimSpace(name)
	for _, r := range rooms {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return Room{}, false
}

// StaffWithRole filters staff by role, keeping input order.
func StaffWithRole(staff []Staff, role StaffRole) []Staff {
	out := make([]Staff, 0, len(staff))
	for _, s := range staff {
		if s.Role == role {
			out = append(out, s)
		}
	}
	return out
}
