package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ledgersense-io/ledgersense-engine/pkg/models"
	"github.com/ledgersense-io/ledgersense-engine/pkg/registry"
)

// ConceptsResponse for GET /api/v1/concepts
type ConceptsResponse struct {
	Version  string                      `json:"version"`
	Concepts []*models.ConceptDefinition `json:"concepts"`
	Total    int                         `json:"total"`
}

// ConceptsHandler exposes the loaded concept registry read-only.
type ConceptsHandler struct {
	registry *registry.Registry
	logger   *zap.Logger
}

// NewConceptsHandler creates a new concepts handler.
func NewConceptsHandler(reg *registry.Registry, logger *zap.Logger) *ConceptsHandler {
	return &ConceptsHandler{registry: reg, logger: logger}
}

// RegisterRoutes registers the concepts handler's routes on the given mux.
func (h *ConceptsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/concepts", h.List)
}

// List handles GET /api/v1/concepts requests.
func (h *ConceptsHandler) List(w http.ResponseWriter, r *http.Request) {
	defs := h.registry.Definitions()
	response := ConceptsResponse{
		Version:  h.registry.Version(),
		Concepts: defs,
		Total:    len(defs),
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode concepts response", zap.Error(err))
	}
}
