package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/config"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/http/middleware"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
	apperrors "github.com/eusilvaluiz/sabor-sem-limites-app/pkg/errors"
)

// ChatHandlers handles the assistant conversation endpoints, both the
// plain JSON exchanges and the streaming WebSocket variant.
type ChatHandlers struct {
	chat        inbound.ChatService
	streamDelay time.Duration
	upgrader    websocket.Upgrader
	logger      *zap.Logger
}

// NewChatHandlers creates the chat handler set.
func NewChatHandlers(chat inbound.ChatService, cfg *config.Config, logger *zap.Logger) *ChatHandlers {
	allowed := make(map[string]bool, len(cfg.Server.AllowedOrigins))
	for _, origin := range cfg.Server.AllowedOrigins {
		allowed[origin] = true
	}

	return &ChatHandlers{
		chat:        chat,
		streamDelay: cfg.AI.StreamDelay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin] || allowed["*"]
			},
		},
		logger: logger,
	}
}

type sendMessageRequest struct {
	ConversationID *uuid.UUID `json:"conversationId,omitempty"`
	Text           string     `json:"text" validate:"required,min=1"`
}

type chatTurnResponse struct {
	Conversation conversationDTO `json:"conversation"`
	UserMessage  messageDTO      `json:"userMessage"`
	AIMessage    messageDTO      `json:"aiMessage"`
}

// SendMessage handles POST /api/v1/chat/messages.
func (h *ChatHandlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	var req sendMessageRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	turn, err := h.chat.SendMessage(r.Context(), inbound.SendMessageCommand{
		UserID:         userID,
		ConversationID: req.ConversationID,
		Text:           req.Text,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, chatTurnResponse{
		Conversation: toConversationDTO(turn.Conversation),
		UserMessage:  toMessageDTO(turn.UserMessage),
		AIMessage:    toMessageDTO(turn.AIMessage),
	})
}

// ListConversations handles GET /api/v1/chat/conversations.
func (h *ChatHandlers) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	conversations, err := h.chat.ListConversations(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toConversationDTOs(conversations))
}

// GetMessages handles GET /api/v1/chat/conversations/{id}/messages.
func (h *ChatHandlers) GetMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	conversationID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	messages, err := h.chat.GetMessages(r.Context(), userID, conversationID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toMessageDTOs(messages))
}

// DeleteConversation handles DELETE /api/v1/chat/conversations/{id}.
func (h *ChatHandlers) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	conversationID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.chat.DeleteConversation(r.Context(), userID, conversationID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type recipeMessageRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// SendRecipeMessage handles POST /api/v1/chat/recipes/{recipeId}/messages.
func (h *ChatHandlers) SendRecipeMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	recipeID, err := pathID(r, "recipeId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req recipeMessageRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	aiMessage, err := h.chat.SendRecipeMessage(r.Context(), inbound.SendRecipeMessageCommand{
		UserID:   userID,
		RecipeID: recipeID,
		Text:     req.Text,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toMessageDTO(aiMessage))
}

// GetRecipeMessages handles GET /api/v1/chat/recipes/{recipeId}/messages.
func (h *ChatHandlers) GetRecipeMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	recipeID, err := pathID(r, "recipeId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	messages, err := h.chat.GetRecipeMessages(r.Context(), userID, recipeID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toMessageDTOs(messages))
}

// ClearRecipeMessages handles DELETE /api/v1/chat/recipes/{recipeId}/messages.
func (h *ChatHandlers) ClearRecipeMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	recipeID, err := pathID(r, "recipeId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.chat.ClearRecipeMessages(r.Context(), userID, recipeID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
