package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Urushihara24/exportum/internal/domain"
)

// WriteJSON writes a JSON response with the given status code and data.
// Sets Content-Type to application/json before writing the status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data) // Write error intentionally ignored in response helper
}

// errorResponse is the standard error response format.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a standard error response with the given status code,
// error code, and human-readable message.
func WriteError(w http.ResponseWriter, status int, errorCode, message string) {
	WriteJSON(w, status, errorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// ParseJSON decodes the request body as JSON into v.
// It validates that the Content-Type header is application/json and
// returns an error for missing/incorrect content type or malformed JSON.
func ParseJSON(r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("Request body must be valid JSON with Content-Type: application/json")
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("Request body must be valid JSON with Content-Type: application/json")
	}

	return nil
}

// MapDomainError writes the HTTP error response for a domain error:
// validation → 400, not-found → 404, ownership → 403, capacity and
// state conflicts → 409.
func MapDomainError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		WriteError(w, http.StatusBadRequest, "validation_error", ve.Message)
		return
	}

	var ce *domain.CapacityError
	if errors.As(err, &ce) {
		WriteError(w, http.StatusConflict, "capacity_exceeded", ce.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrBatchNotFound),
		errors.Is(err, domain.ErrPoolNotFound):
		WriteError(w, http.StatusNotFound, err.Error(), "resource not found")
	case errors.Is(err, domain.ErrBatchNotOwned),
		errors.Is(err, domain.ErrPoolNotOwned):
		WriteError(w, http.StatusForbidden, err.Error(), "not the owner of this resource")
	case errors.Is(err, domain.ErrBatchNotActive),
		errors.Is(err, domain.ErrPoolNotOpen),
		errors.Is(err, domain.ErrCommodityMismatch),
		errors.Is(err, domain.ErrInvalidTransition):
		WriteError(w, http.StatusConflict, err.Error(), "operation not allowed in the current state")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}
