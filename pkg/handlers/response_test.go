package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ledgersense-io/ledgersense-engine/pkg/apperrors"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	if err := WriteJSON(rec, http.StatusCreated, map[string]string{"key": "value"}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["key"] != "value" {
		t.Errorf("expected key=value, got %s", body["key"])
	}
}

func TestErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()

	if err := ErrorResponse(rec, http.StatusBadRequest, "bad_input", "something was wrong"); err != nil {
		t.Fatalf("ErrorResponse failed: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "bad_input" {
		t.Errorf("expected error=bad_input, got %s", body["error"])
	}
	if body["message"] != "something was wrong" {
		t.Errorf("expected message to round-trip, got %s", body["message"])
	}
}

func TestWriteAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "empty dataset",
			err:        apperrors.ErrEmptyDataset,
			wantStatus: http.StatusBadRequest,
			wantCode:   "empty_dataset",
		},
		{
			name:       "unsupported format",
			err:        apperrors.ErrUnsupportedFormat,
			wantStatus: http.StatusBadRequest,
			wantCode:   "unsupported_format",
		},
		{
			name:       "file too large",
			err:        apperrors.ErrFileTooLarge,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   "file_too_large",
		},
		{
			name:       "unrecognized error",
			err:        errors.New("pipeline detonated"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := WriteAppError(rec, tt.err); err != nil {
				t.Fatalf("WriteAppError failed: %v", err)
			}

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["error"] != tt.wantCode {
				t.Errorf("expected error code %s, got %s", tt.wantCode, body["error"])
			}
			if tt.wantCode == "internal_error" && body["message"] == "pipeline detonated" {
				t.Error("internal error details must not leak to clients")
			}
		})
	}
}
