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
	"wavesflow-backend/internal/service"
)

type SaleStore interface {
	List(ctx context.Context) ([]domain.Sale, error)
	ListBetween(ctx context.Context, start, end string) ([]domain.Sale, error)
	Get(ctx context.Context, id string) (*domain.Sale, error)
	Create(ctx context.Context, s domain.Sale) (*domain.Sale, error)
	Update(ctx context.Context, s domain.Sale) (*domain.Sale, error)
	Delete(ctx context.Context, id string) error
}

// MonthSales lists a month's sales with therapist and room names resolved.
type MonthSales interface {
	SalesForMonth(ctx context.Context, month string) ([]service.SaleView, error)
}

type SaleHandler struct {
	Repo    SaleStore
	Reports MonthSales
}

func (h SaleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sales", h.list)
	r.Post("/sales", h.create)
	r.Get("/sales/export", h.export)
	r.Get("/sales/{id}", h.get)
	r.Put("/sales/{id}", h.update)
	r.Delete("/sales/{id}", h.delete)
}

type saleRequest struct {
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	Amount        int64     `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	TherapyType   string    `json:"therapyType"`
	TherapistID   string    `json:"therapistId"`
	RoomID        string    `json:"roomId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Date          string    `json:"date"`
}

func (req saleRequest) toDomain(id string) (domain.Sale, error) {
	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("%w: %v", domain.ErrInvalidSale, err)
	}
	phone := strings.TrimSpace(req.CustomerPhone)
	if phone == "-" {
		phone = ""
	}
	s := domain.Sale{
		ID:            id,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: phone,
		Amount:        req.Amount,
		PaymentMethod: method,
		TherapyType:   strings.TrimSpace(req.TherapyType),
		TherapistID:   req.TherapistID,
		RoomID:        req.RoomID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Date:          req.Date,
	}
	if s.Date == "" && !s.StartTime.IsZero() {
		s.Date = s.StartTime.Format(domain.DateLayout)
	}
	return s, s.Validate()
}

func (h SaleHandler) list(w http.ResponseWriter, r *http.Request) {
	startDate, err := parseDateQuery(r, "startDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startDate")
		return
	}
	endDate, err := parseDateQuery(r, "endDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid endDate")
		return
	}
	var items []domain.Sale
	if startDate != nil && endDate != nil {
		if startDate.After(*endDate) {
			writeError(w, http.StatusBadRequest, "startDate must be before endDate")
			return
		}
		items, err = h.Repo.ListBetween(r.Context(), *formatDatePtr(startDate), *formatDatePtr(endDate))
	} else {
		items, err = h.Repo.List(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, s := range items {
		resp = append(resp, toSaleJSON(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h SaleHandler) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.Repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSaleJSON(*s))
}

func (h SaleHandler) create(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	s, err := req.toDomain("")
	if err != nil {
		writeFailure(w, err)
		return
	}
	created, err := h.Repo.Create(r.Context(), s)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSaleJSON(*created))
}

func (h SaleHandler) update(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	s, err := req.toDomain(chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	updated, err := h.Repo.Update(r.Context(), s)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSaleJSON(*updated))
}

func (h SaleHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h SaleHandler) export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	month, err := parseMonthQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	items, err := h.Reports.SalesForMonth(r.Context(), month)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	name := fmt.Sprintf("sales_%s_%s", month, time.Now().Format("20060102"))
	writeExport(w, format, name, "Sales", salesSheet(items))
}

func toSaleJSON(s domain.Sale) map[string]any {
	return map[string]any{
		"id":            s.ID,
		"customerName":  s.CustomerName,
		"customerPhone": s.CustomerPhone,
		"amount":        s.Amount,
		"paymentMethod": string(s.PaymentMethod),
		"therapyType":   s.TherapyType,
		"therapistId":   s.TherapistID,
		"roomId":        s.RoomID,
		"startTime":     s.StartTime.Format(time.RFC3339),
		"endTime":       s.EndTime.Format(time.RFC3339),
		"date":          s.Date,
	}
}
