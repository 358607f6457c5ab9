package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"flowershop/internal/model"
	"flowershop/internal/service"

	"github.com/rs/zerolog"
)

// RelayHandler handles the JSON submission endpoints.
type RelayHandler struct {
	service service.RelayService
	logger  zerolog.Logger
}

// NewRelayHandler creates a new relay handler.
func NewRelayHandler(service service.RelayService, logger zerolog.Logger) *RelayHandler {
	return &RelayHandler{
		service: service,
		logger:  logger.With().Str("handler", "relay").Logger(),
	}
}

// Lead handles POST /api/lead requests.
func (h *RelayHandler) Lead(w http.ResponseWriter, r *http.Request) {
	var req model.LeadRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.submit(w, r, req.Submission())
}

// Order handles POST /api/order requests.
func (h *RelayHandler) Order(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.submit(w, r, req.Submission())
}

func (h *RelayHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, err.Error(), h.logger)
		return false
	}
	return true
}

func (h *RelayHandler) submit(w http.ResponseWriter, r *http.Request, sub model.Submission) {
	err := h.service.Submit(r.Context(), sub)
	if err == nil {
		writeJSON(w, http.StatusOK, model.RelayResponse{OK: true})
		return
	}

	if verr, ok := model.AsValidationError(err); ok {
		writeError(w, http.StatusBadRequest, model.ErrCodeBadRequest, verr.Error(), h.logger)
		return
	}

	if errors.Is(err, model.ErrRelayNotConfigured) {
		writeError(w, http.StatusInternalServerError, model.ErrCodeRelayNotConfigured, err.Error(), h.logger)
		return
	}

	writeError(w, http.StatusInternalServerError, model.ErrCodeSendFailed, err.Error(), h.logger)
}
