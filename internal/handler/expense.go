package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"wavesflow-backend/internal/domain"
)

type ExpenseStore interface {
	ListFiltered(ctx context.Context, start, end *string) ([]domain.Expense, error)
	Create(ctx context.Context, e domain.Expense) (*domain.Expense, error)
	Update(ctx context.Context, e domain.Expense) (*domain.Expense, error)
	Delete(ctx context.Context, id string) error
}

type ExpenseHandler struct {
	Repo ExpenseStore
}

func (h ExpenseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/expenses", h.list)
	r.Post("/expenses", h.create)
	r.Get("/expenses/export", h.export)
	r.Put("/expenses/{id}", h.update)
	r.Delete("/expenses/{id}", h.delete)
}

type expenseRequest struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      int64  `json:"amount"`
	Date        string `json:"date"`
}

func (req expenseRequest) toDomain(id string) (domain.Expense, error) {
	e := domain.Expense{
		ID:          id,
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Amount:      req.Amount,
		Date:        req.Date,
	}
	if e.Category == "" {
		e.Category = "Other"
	}
	return e, e.Validate()
}

// bounds reads either ?month=YYYY-MM or ?startDate=&endDate=.
func (h ExpenseHandler) bounds(r *http.Request) (*string, *string, error) {
	month, err := parseMonthQuery(r)
	if err != nil {
		return nil, nil, err
	}
	if month != "" {
		start, end, err := monthBounds(month)
		if err != nil {
			return nil, nil, err
		}
		return &start, &end, nil
	}
	startDate, err := parseDateQuery(r, "startDate")
	if err != nil {
		return nil, nil, fmt.Errorf("invalid startDate")
	}
	endDate, err := parseDateQuery(r, "endDate")
	if err != nil {
		return nil, nil, fmt.Errorf("invalid endDate")
	}
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return nil, nil, fmt.Errorf("startDate must be before endDate")
	}
	return formatDatePtr(startDate), formatDatePtr(endDate), nil
}

func (h ExpenseHandler) list(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.bounds(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	items, err := h.Repo.ListFiltered(r.Context(), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, e := range items {
		resp = append(resp, toExpenseJSON(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ExpenseHandler) create(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	e, err := req.toDomain("")
	if err != nil {
		writeFailure(w, err)
		return
	}
	created, err := h.Repo.Create(r.Context(), e)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseJSON(*created))
}

func (h ExpenseHandler) update(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	e, err := req.toDomain(chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	updated, err := h.Repo.Update(r.Context(), e)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseJSON(*updated))
}

func (h ExpenseHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h ExpenseHandler) export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	start, end, err := h.bounds(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	items, err := h.Repo.ListFiltered(r.Context(), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	suffix := time.Now().Format("20060102_150405")
	if start != nil && end != nil {
		suffix = strings.ReplaceAll(*start, "-", "") + "_" + strings.ReplaceAll(*end, "-", "")
	}
	writeExport(w, format, "expenses_"+suffix, "Expenses", expensesSheet(items))
}

func toExpenseJSON(e domain.Expense) map[string]any {
	return map[string]any{
		"id":          e.ID,
		"description": e.Description,
		"category":    e.Category,
		"amount":      e.Amount,
		"date":        e.Date,
	}
}
