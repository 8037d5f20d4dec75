package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/http/middleware"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
	apperrors "github.com/eusilvaluiz/sabor-sem-limites-app/pkg/errors"
)

// streamChunkSize is the number of runes sent per WebSocket frame
// while replaying the assistant reply.
const streamChunkSize = 4

type streamFrame struct {
	Type         string           `json:"type"`
	Text         string           `json:"text,omitempty"`
	Message      string           `json:"message,omitempty"`
	Conversation *conversationDTO `json:"conversation,omitempty"`
	UserMessage  *messageDTO      `json:"userMessage,omitempty"`
	AIMessage    *messageDTO      `json:"aiMessage,omitempty"`
}

// Stream handles GET /api/v1/chat/stream. Each inbound frame runs a
// full chat turn; the assistant reply is replayed in small chunks so
// the SPA can render its typewriter effect from real data.
func (h *ChatHandlers) Stream(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		var req sendMessageRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		if req.Text == "" {
			h.writeStreamError(conn, apperrors.NewBadRequestError("Message text required"))
			continue
		}

		turn, err := h.chat.SendMessage(r.Context(), inbound.SendMessageCommand{
			UserID:         userID,
			ConversationID: req.ConversationID,
			Text:           req.Text,
		})
		if err != nil {
			h.writeStreamError(conn, err)
			continue
		}

		if err := h.streamReply(conn, turn); err != nil {
			h.logger.Warn("WebSocket stream interrupted", zap.Error(err))
			return
		}
	}
}

func (h *ChatHandlers) streamReply(conn wsConn, turn *inbound.ChatTurn) error {
	runes := []rune(turn.AIMessage.Text)
	for i := 0; i < len(runes); i += streamChunkSize {
		end := i + streamChunkSize
		if end > len(runes) {
			end = len(runes)
		}

		if err := conn.WriteJSON(streamFrame{Type: "chunk", Text: string(runes[i:end])}); err != nil {
			return err
		}
		if h.streamDelay > 0 && end < len(runes) {
			time.Sleep(h.streamDelay)
		}
	}

	conversation := toConversationDTO(turn.Conversation)
	userMessage := toMessageDTO(turn.UserMessage)
	aiMessage := toMessageDTO(turn.AIMessage)
	return conn.WriteJSON(streamFrame{
		Type:         "done",
		Conversation: &conversation,
		UserMessage:  &userMessage,
		AIMessage:    &aiMessage,
	})
}

func (h *ChatHandlers) writeStreamError(conn wsConn, err error) {
	appErr := apperrors.Wrap(err, "Request failed")
	if writeErr := conn.WriteJSON(streamFrame{Type: "error", Message: appErr.Message}); writeErr != nil {
		h.logger.Warn("Failed to write WebSocket error frame", zap.Error(writeErr))
	}
}

// wsConn is the subset of *websocket.Conn the stream uses, split out
// so tests can drive the chunking without a live connection.
type wsConn interface {
	WriteJSON(v interface{}) error
}
