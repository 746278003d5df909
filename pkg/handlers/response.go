package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ledgersense-io/ledgersense-engine/pkg/apperrors"
)

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// WriteAppError maps the engine's sentinel errors onto HTTP statuses and
// writes the error response. Unrecognized errors become a 500 with a generic
// message so internals never leak to clients.
func WriteAppError(w http.ResponseWriter, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrEmptyDataset):
		return ErrorResponse(w, http.StatusBadRequest, "empty_dataset", apperrors.ErrEmptyDataset.Error())
	case errors.Is(err, apperrors.ErrUnsupportedFormat):
		return ErrorResponse(w, http.StatusBadRequest, "unsupported_format", apperrors.ErrUnsupportedFormat.Error())
	case errors.Is(err, apperrors.ErrFileTooLarge):
		return ErrorResponse(w, http.StatusRequestEntityTooLarge, "file_too_large", apperrors.ErrFileTooLarge.Error())
	default:
		return ErrorResponse(w, http.StatusInternalServerError, "internal_error", "analysis failed")
	}
}
