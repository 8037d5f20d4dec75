package chat

import (
	"time"

	"github.com/google/uuid"
)

// ConversationCreatedEvent is published when the first message of an
// exchange creates a conversation.
type ConversationCreatedEvent struct {
	ConversationID uuid.UUID
	UserID         uuid.UUID
	Title          string
	At             time.Time
}

func (e ConversationCreatedEvent) EventName() string     { return "conversation.created" }
func (e ConversationCreatedEvent) OccurredAt() time.Time { return e.At }

// ConversationDeletedEvent is published after a conversation and all
// of its messages are removed.
type ConversationDeletedEvent struct {
	ConversationID uuid.UUID
	UserID         uuid.UUID
	At             time.Time
}

func (e ConversationDeletedEvent) EventName() string     { return "conversation.deleted" }
func (e ConversationDeletedEvent) OccurredAt() time.Time { return e.At }
