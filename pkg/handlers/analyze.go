package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ledgersense-io/ledgersense-engine/pkg/apperrors"
	"github.com/ledgersense-io/ledgersense-engine/pkg/dataset"
	"github.com/ledgersense-io/ledgersense-engine/pkg/services"
)

// AnalyzeHandler handles dataset analysis HTTP requests. It accepts either a
// multipart CSV upload or a JSON column payload and returns the full
// analysis report.
type AnalyzeHandler struct {
	analysisService services.DatasetAnalysisService
	maxUploadBytes  int64
	logger          *zap.Logger
}

// NewAnalyzeHandler creates a new analyze handler. maxUploadBytes caps the
// size of accepted CSV uploads.
func NewAnalyzeHandler(
	analysisService services.DatasetAnalysisService,
	maxUploadBytes int64,
	logger *zap.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysisService: analysisService,
		maxUploadBytes:  maxUploadBytes,
		logger:          logger,
	}
}

// RegisterRoutes registers the analyze handler's routes on the given mux.
func (h *AnalyzeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/analyze", h.Analyze)
}

// Analyze handles POST /api/v1/analyze requests.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_content_type", "malformed Content-Type header")
		return
	}

	var ds *dataset.Dataset
	switch mediaType {
	case "multipart/form-data":
		ds, err = h.datasetFromUpload(w, r)
	case "application/json":
		ds, err = h.datasetFromJSON(r)
	default:
		_ = ErrorResponse(w, http.StatusUnsupportedMediaType, "unsupported_media_type",
			"expected multipart/form-data or application/json")
		return
	}
	if err != nil {
		h.logger.Debug("Rejected analysis request", zap.Error(err))
		_ = WriteAppError(w, err)
		return
	}

	report, err := h.analysisService.AnalyzeDataset(r.Context(), ds)
	if err != nil {
		h.logger.Warn("Dataset analysis failed",
			zap.String("dataset", ds.Name),
			zap.Error(err))
		_ = WriteAppError(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, report); err != nil {
		h.logger.Error("Failed to encode analysis report", zap.Error(err))
	}
}

// datasetFromUpload reads the "file" part of a multipart upload as CSV.
func (h *AnalyzeHandler) datasetFromUpload(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, error) {
	if r.ContentLength > h.maxUploadBytes {
		return nil, apperrors.ErrFileTooLarge
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "too large") {
			return nil, apperrors.ErrFileTooLarge
		}
		return nil, apperrors.ErrUnsupportedFormat
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, apperrors.ErrUnsupportedFormat
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		return nil, apperrors.ErrUnsupportedFormat
	}
	if header.Size > h.maxUploadBytes {
		return nil, apperrors.ErrFileTooLarge
	}

	name := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	return dataset.ReadCSV(file, name)
}

// datasetFromJSON decodes a JSON analysis request body.
func (h *AnalyzeHandler) datasetFromJSON(r *http.Request) (*dataset.Dataset, error) {
	var req dataset.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, apperrors.ErrUnsupportedFormat
	}
	return req.ToDataset(), nil
}
