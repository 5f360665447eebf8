package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"wavesflow-backend/internal/analytics"
	"wavesflow-backend/internal/domain"
	"wavesflow-backend/internal/repository"
	"wavesflow-backend/internal/service"
)

type apiError struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
}

type apiResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Data    any       `json:"data"`
	Error   *apiError `json:"error,omitempty"`
}

func writeRawJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if status >= 400 {
		writeRawJSON(w, status, apiResponse{
			Status: "error",
			Data:   payload,
			Error: &apiError{
				Code:   status,
				Status: http.StatusText(status),
			},
		})
		return
	}
	writeRawJSON(w, status, apiResponse{
		Status: "ok",
		Data:   payload,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	if status < 400 {
		status = http.StatusInternalServerError
	}
	writeRawJSON(w, status, apiResponse{
		Status:  "error",
		Message: message,
		Error: &apiError{
			Code:   status,
			Status: http.StatusText(status),
		},
	})
}

func writeErrorWithErr(w http.ResponseWriter, status int, message string, err error) {
	if err == nil {
		writeError(w, status, message)
		return
	}
	if message == "" {
		writeError(w, status, err.Error())
		return
	}
	writeError(w, status, message+": "+err.Error())
}

// writeFailure maps store, validation and report errors onto HTTP statuses.
func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrStaffNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case repository.IsDuplicate(err):
		writeError(w, http.StatusConflict, "name already exists")
	case repository.IsMissingReference(err):
		writeError(w, http.StatusConflict, "referenced staff or room does not exist, or record is still referenced")
	case errors.Is(err, domain.ErrInvalidSale), errors.Is(err, domain.ErrInvalidExpense),
		errors.Is(err, service.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, analytics.ErrInvalidDate):
		// A bad query parameter is caught before reaching the store, so this
		// is a malformed stored record.
		writeErrorWithErr(w, http.StatusUnprocessableEntity, "stored record has an invalid date", err)
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
