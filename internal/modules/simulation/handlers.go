package simulation

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/fudosan-media/invest-simulator/internal/apperrors"
)

// maxBodyBytes bounds the request body; base64 images dominate the payload.
const maxBodyBytes = 1 << 20

// Handler handles simulation HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
	devMode bool
}

// NewHandler creates a new simulation handler
func NewHandler(service *Service, devMode bool, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "simulation").Logger(),
		devMode: devMode,
	}
}

// HandleSimulate handles POST /run - execute a simulation
func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		apperrors.WriteError(w, r, apperrors.Wrap(apperrors.CodeBadFormat, err), h.devMode)
		return
	}

	result, err := h.service.Run(payload)
	if err != nil {
		apperrors.WriteError(w, r, err, h.devMode)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if encodeErr := json.NewEncoder(w).Encode(result); encodeErr != nil {
		h.log.Error().Err(encodeErr).Msg("Failed to encode simulation result")
	}
}
