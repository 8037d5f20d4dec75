// Package assistant contains the chatbot presentation configuration
// managed from the admin screens.
package assistant

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AvatarType selects how the assistant avatar is rendered.
type AvatarType string

const (
	AvatarEmoji AvatarType = "emoji"
	AvatarImage AvatarType = "image"
)

// ErrTitleRequired is returned when a config is saved without a title.
var ErrTitleRequired = errors.New("assistant title is required")

// Config is the active chatbot configuration. At most one config is
// active at a time; activating a new one deactivates the rest.
type Config struct {
	ID             uuid.UUID
	Title          string
	Description    string
	AssistantID    *string
	AvatarType     AvatarType
	AvatarEmoji    string
	AvatarColor    string
	AvatarImageURL *string
	Suggestions    []string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// New creates an assistant configuration.
func New(title, description string) (*Config, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}

	now := time.Now()
	return &Config{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		AvatarType:  AvatarEmoji,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Default returns the built-in configuration used when none has been
// stored yet.
func Default() *Config {
	now := time.Now()
	return &Config{
		ID:          uuid.New(),
		Title:       "Chef LéIA",
		Description: "Your personal assistant for nutrition, diets and healthy eating",
		AvatarType:  AvatarEmoji,
		AvatarEmoji: "👩‍🍳",
		AvatarColor: "#ec4899",
		Suggestions: []string{
			"How many calories should I eat per day?",
			"What are the best protein sources?",
			"How do I plan a healthy weekly menu?",
			"Do I need vitamin supplements?",
		},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
