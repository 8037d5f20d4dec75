// Package chat contains the conversational assistant domain model:
// conversations and the messages addressed to them.
//
// Messages use two disjoint addressing schemes. A general message
// belongs to a conversation and never references a recipe; a
// recipe-scoped message references a recipe directly and never
// belongs to a conversation.
package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes the message addressing schemes.
type Kind string

const (
	KindGeneral  Kind = "general"
	KindRecipe   Kind = "recipe"
	KindFunction Kind = "function"
)

// Direction marks who produced a message.
type Direction string

const (
	DirectionUser Direction = "user"
	DirectionAI   Direction = "ai"
)

// TitleMaxLen is the number of leading characters of the first user
// message kept as the conversation title.
const TitleMaxLen = 25

// Conversation groups general-purpose chat messages for one user.
// The title is derived from the first message and immutable after
// creation; updated_at advances on every new message so conversation
// lists sort most-recent-first.
type Conversation struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewConversation creates a conversation titled after the first
// user message.
func NewConversation(userID uuid.UUID, firstMessage string) (*Conversation, error) {
	if strings.TrimSpace(firstMessage) == "" {
		return nil, ErrEmptyMessage
	}

	now := time.Now()
	return &Conversation{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     DeriveTitle(firstMessage),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// DeriveTitle truncates the first message to TitleMaxLen characters,
// appending an ellipsis only when something was cut.
func DeriveTitle(firstMessage string) string {
	runes := []rune(firstMessage)
	if len(runes) <= TitleMaxLen {
		return firstMessage
	}
	return string(runes[:TitleMaxLen]) + "..."
}

// Message is a single chat utterance, from the user or the assistant.
type Message struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Kind           Kind
	Direction      Direction
	Text           string
	ThreadID       *string
	RecipeID       *uuid.UUID
	Context        map[string]interface{}
	ConversationID *uuid.UUID
	CreatedAt      time.Time
}

// NewGeneralMessage creates a conversation-addressed message. The
// thread token is the opaque continuity handle for the completion
// endpoint and may be nil on the first turn.
func NewGeneralMessage(userID, conversationID uuid.UUID, direction Direction, text string, threadID *string) (*Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	if conversationID == uuid.Nil {
		return nil, ErrMissingConversation
	}

	convID := conversationID
	return &Message{
		ID:             uuid.New(),
		UserID:         userID,
		Kind:           KindGeneral,
		Direction:      direction,
		Text:           text,
		ThreadID:       threadID,
		ConversationID: &convID,
		CreatedAt:      time.Now(),
	}, nil
}

// NewRecipeMessage creates a recipe-addressed message. No thread
// token is carried; each recipe question is answered statelessly with
// the recipe content as context.
func NewRecipeMessage(userID, recipeID uuid.UUID, direction Direction, text string, context map[string]interface{}) (*Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	if recipeID == uuid.Nil {
		return nil, ErrMissingRecipe
	}

	rid := recipeID
	return &Message{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      KindRecipe,
		Direction: direction,
		Text:      text,
		RecipeID:  &rid,
		Context:   context,
		CreatedAt: time.Now(),
	}, nil
}
