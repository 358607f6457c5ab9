package handler

import (
	"net/http"

	"flowershop/internal/model"
	"flowershop/internal/service"

	"github.com/rs/zerolog"
)

// CatalogHandler handles the catalog JSON endpoints.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// GetAll handles GET /api/catalog requests.
func (h *CatalogHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.service.Catalog(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, model.ErrCodeCatalogUnavailable, err.Error(), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, catalog)
}

// Revalidate handles POST /api/revalidate requests.
func (h *CatalogHandler) Revalidate(w http.ResponseWriter, r *http.Request) {
	h.service.Revalidate()
	h.logger.Info().Msg("catalog revalidation requested")
	writeJSON(w, http.StatusOK, model.RelayResponse{OK: true})
}
