// Package ingest turns exported spreadsheet rows into sales and expenses.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"wavesflow-backend/internal/analytics"
	"wavesflow-backend/internal/domain"
)

// Sales sheet columns.
const (
	ColSalesDate = "Sales Date"
	ColCustomer  = "Customer"
	ColPhone     = "Phone Number"
	ColPayment   = "Payment Mode"
	ColAmount    = "Amount"
	ColTherapist = "Therapist"
	ColRoom      = "Room"
	ColSchedule  = "CheckIn:Checkout"
	ColTherapy   = "Therapy"
)

// Expense sheet columns.
const (
	ColDate        = "Date"
	ColCategory    = "Category"
	ColDescription = "Description"
)

const salesDateLayout = "2 Jan 2006"

var ErrEmptyAmount = errors.New("amount is empty")

// Record is one data row keyed by header name, values trimmed.
type Record map[string]string

// RowError ties a failure to its 1-based data row.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string { return fmt.Sprintf("row %d: %v", e.Row, e.Err) }

func (e RowError) Unwrap() error { return e.Err }

// ReadCSV reads a headed CSV, skipping blank lines.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return toRecords(rows), nil
}

// ReadXLSX reads the first sheet of a workbook the same way as ReadCSV.
func ReadXLSX(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return toRecords(rows), nil
}

func toRecords(rows [][]string) []Record {
	if len(rows) == 0 {
		return nil
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	out := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		blank := true
		for i, h := range header {
			if i >= len(row) {
				break
			}
			v := strings.TrimSpace(row[i])
			if v != "" {
				blank = false
			}
			rec[h] = v
		}
		if !blank {
			out = append(out, rec)
		}
	}
	return out
}

// ParseSalesDate reads "28 Sep 2025" into YYYY-MM-DD.
func ParseSalesDate(v string) (string, error) {
	t, err := time.Parse(salesDateLayout, strings.Join(strings.Fields(v), " "))
	if err != nil {
		return "", fmt.Errorf("sales date %q: want e.g. 28 Sep 2025", v)
	}
	return t.Format(domain.DateLayout), nil
}

// ParseAmount accepts thousand separators and decimals, rounding to whole units.
func ParseAmount(v string) (int64, error) {
	v = strings.ReplaceAll(strings.TrimSpace(v), ",", "")
	if v == "" {
		return 0, ErrEmptyAmount
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", v, err)
	}
	return d.Round(0).IntPart(), nil
}

// NormalizePhone maps the "-" placeholder to empty.
func NormalizePhone(v string) string {
	v = strings.TrimSpace(v)
	if v == "-" {
		return ""
	}
	return v
}

// ParseSchedule reads "12:00 PM - 1:00 AM" on date. An end not after the
// start is taken to be on the next day.
func ParseSchedule(date, v string) (time.Time, time.Time, error) {
	parts := strings.Split(v, "-")
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("schedule %q: want h:mm AM - h:mm PM", v)
	}
	start, err := parseClock(date, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseClock(date, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}

func parseClock(date, v string) (time.Time, error) {
	clock := strings.ToUpper(strings.Join(strings.Fields(v), " "))
	t, err := time.Parse(domain.DateLayout+" 3:04 PM", date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("time %q: want h:mm AM/PM", strings.TrimSpace(v))
	}
	return t, nil
}

// Resolver maps sheet names onto catalog ids, case-insensitively, first match wins.
type Resolver struct {
	Staff []domain.Staff
	Rooms []domain.Room
}

func (r Resolver) Sale(rec Record) (domain.Sale, error) {
	date, err := ParseSalesDate(rec[ColSalesDate])
	if err != nil {
		return domain.Sale{}, err
	}
	start, end, err := ParseSchedule(date, rec[ColSchedule])
	if err != nil {
		return domain.Sale{}, err
	}
	method, err := domain.ParsePaymentMethod(rec[ColPayment])
	if err != nil {
		return domain.Sale{}, err
	}
	var amount int64
	if a := rec[ColAmount]; a != "" {
		if amount, err = ParseAmount(a); err != nil {
			return domain.Sale{}, err
		}
	}
	therapist, ok := domain.FindStaffByName(r.Staff, rec[ColTherapist])
	if !ok {
		return domain.Sale{}, fmt.Errorf("staff member not found: %q", rec[ColTherapist])
	}
	room, ok := domain.FindRoomByName(r.Rooms, rec[ColRoom])
	if !ok {
		return domain.Sale{}, fmt.Errorf("room not found: %q", rec[ColRoom])
	}

	s := domain.Sale{
		CustomerName:  orDefault(rec[ColCustomer], "Unknown"),
		CustomerPhone: NormalizePhone(rec[ColPhone]),
		Amount:        amount,
		PaymentMethod: method,
		TherapyType:   orDefault(rec[ColTherapy], "Unknown"),
		TherapistID:   therapist.ID,
		RoomID:        room.ID,
		StartTime:     start,
		EndTime:       end,
		Date:          date,
	}
	return s, s.Validate()
}

// Expense reads a Date/Category/Description/Amount row. The category is kept verbatim.
func Expense(rec Record) (domain.Expense, error) {
	day, err := analytics.ParseDay(rec[ColDate])
	if err != nil {
		return domain.Expense{}, err
	}
	amount, err := ParseAmount(rec[ColAmount])
	if err != nil {
		return domain.Expense{}, err
	}
	e := domain.Expense{
		Description: rec[ColDescription],
		Category:    orDefault(rec[ColCategory], "Other"),
		Amount:      amount,
		Date:        analytics.FormatDay(day),
	}
	return e, e.Validate()
}

// Sales converts every record, collecting failures instead of stopping.
func (r Resolver) Sales(records []Record) ([]domain.Sale, []RowError) {
	return convert(records, r.Sale)
}

// Expenses converts every record, collecting failures instead of stopping.
func Expenses(records []Record) ([]domain.Expense, []RowError) {
	return convert(records, Expense)
}

func convert[T any](records []Record, fn func(Record) (T, error)) ([]T, []RowError) {
	out := make([]T, 0, len(records))
	var failed []RowError
	for i, rec := range records {
		v, err := fn(rec)
		if err != nil {
			failed = append(failed, RowError{Row: i + 1, Err: err})
			continue
		}
		out = append(out, v)
	}
	return out, failed
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}
