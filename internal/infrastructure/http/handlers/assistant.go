package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
)

// AssistantHandlers handles the assistant profile configuration.
type AssistantHandlers struct {
	assistant inbound.AssistantService
	logger    *zap.Logger
}

// NewAssistantHandlers creates the assistant handler set.
func NewAssistantHandlers(assistant inbound.AssistantService, logger *zap.Logger) *AssistantHandlers {
	return &AssistantHandlers{assistant: assistant, logger: logger}
}

// GetActive handles GET /api/v1/assistant.
func (h *AssistantHandlers) GetActive(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.assistant.GetActive(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toAssistantDTO(cfg))
}

// Create handles POST /api/v1/assistant.
func (h *AssistantHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.SaveAssistantCommand
	if err := decodeAndValidate(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	cfg, err := h.assistant.Create(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, toAssistantDTO(cfg))
}

// Update handles PUT /api/v1/assistant/{id}.
func (h *AssistantHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var cmd inbound.SaveAssistantCommand
	if err := decodeAndValidate(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	cfg, err := h.assistant.Update(r.Context(), id, cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toAssistantDTO(cfg))
}
