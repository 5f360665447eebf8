package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"
	"wavesflow-backend/internal/domain"
	"wavesflow-backend/internal/service"
)

// sheet is a header row plus data rows shared by the csv and xlsx writers.
type sheet struct {
	Header []string
	Rows   [][]any
	Widths []float64
}

func salesSheet(items []service.SaleView) sheet {
	s := sheet{
		Header: []string{"Sl No", "Customer", "Customer Phone Number", "Payment Mode", "Amount", "Therapist", "Room", "CheckIn:Checkout", "Therapy"},
		Widths: []float64{8, 24, 20, 14, 12, 18, 14, 22, 20},
	}
	for i, v := range items {
		schedule := fmt.Sprintf("%s - %s", v.StartTime.Format("3:04 PM"), v.EndTime.Format("3:04 PM"))
		s.Rows = append(s.Rows, []any{
			i + 1, v.CustomerName, v.CustomerPhone, v.PaymentMethod, v.Amount,
			v.TherapistName, v.RoomName, schedule, v.TherapyType,
		})
	}
	return s
}

func expensesSheet(items []domain.Expense) sheet {
	s := sheet{
		Header: []string{"Sl No", "Date", "Description", "Category", "Amount"},
		Widths: []float64{8, 12, 32, 18, 12},
	}
	for i, e := range items {
		s.Rows = append(s.Rows, []any{i + 1, e.Date, e.Description, e.Category, e.Amount})
	}
	return s
}

func writeExport(w http.ResponseWriter, format, name, title string, s sheet) {
	switch format {
	case "csv":
		data, err := s.csv()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", name))
		_, _ = w.Write(data)
	case "xlsx", "excel":
		data, err := s.xlsx(title)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", name))
		_, _ = w.Write(data)
	default:
		writeError(w, http.StatusBadRequest, "invalid format (use csv or xlsx)")
	}
}

func (s sheet) csv() ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write(s.Header)
	for _, row := range s.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = fmt.Sprint(v)
		}
		_ = w.Write(rec)
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (s sheet) xlsx(title string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	index, err := f.NewSheet(title)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for c, v := range s.Header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(title, cell, v)
	}
	for r, row := range s.Rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(title, cell, v)
		}
	}
	for c, width := range s.Widths {
		col, _ := excelize.ColumnNumberToName(c + 1)
		_ = f.SetColWidth(title, col, col, width)
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	last, _ := excelize.CoordinatesToCellName(len(s.Header), 1)
	_ = f.SetCellStyle(title, "A1", last, style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
