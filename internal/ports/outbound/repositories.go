// Package outbound defines the interfaces for outbound ports (secondary/driven adapters).
// These are the interfaces that the application uses to interact with external systems.
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/assistant"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/category"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/chat"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/favorite"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/recipe"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/user"
	"github.com/google/uuid"
)

// ErrNotFound is returned by repositories when a record does not exist.
// Services map it to the entity-specific not-found error.
var ErrNotFound = errors.New("record not found")

// CategoryRepository defines the interface for category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, c *category.Category) error
	Update(ctx context.Context, c *category.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error)
	// FindAll returns categories ordered by name.
	FindAll(ctx context.Context) ([]*category.Category, error)
	SearchByName(ctx context.Context, term string) ([]*category.Category, error)
}

// RecipeRepository defines the interface for recipe persistence.
// Reads denormalize the category name onto the recipe; a dangling
// category reference yields an empty name.
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	Update(ctx context.Context, r *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	// FindAll returns recipes ordered by creation time, newest first.
	FindAll(ctx context.Context) ([]*recipe.Recipe, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*recipe.Recipe, error)
	// Search matches the term against title, description and ingredients.
	Search(ctx context.Context, term string) ([]*recipe.Recipe, error)
}

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindAll(ctx context.Context) ([]*user.User, error)
	// Search matches the term against name and email.
	Search(ctx context.Context, term string) ([]*user.User, error)
}

// FavoriteRepository defines the interface for favorite persistence.
// Add returns favorite.ErrAlreadyFavorite on a uniqueness violation.
type FavoriteRepository interface {
	Add(ctx context.Context, f *favorite.Favorite) error
	Remove(ctx context.Context, userID, recipeID uuid.UUID) error
	Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	// ListByUser returns favorites with their recipe payload,
	// most recently favorited first. A user with no favorites yields
	// an empty slice, not an error.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*favorite.FavoriteRecipe, error)
}

// ConversationRepository defines the interface for conversation persistence.
type ConversationRepository interface {
	Create(ctx context.Context, c *chat.Conversation) error
	FindByID(ctx context.Context, id uuid.UUID) (*chat.Conversation, error)
	// FindByUser returns conversations ordered by updated_at, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*chat.Conversation, error)
	// Touch advances updated_at so conversation lists re-sort.
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
	// Delete removes the conversation and all of its messages.
	Delete(ctx context.Context, id uuid.UUID) error
}

// MessageRepository defines the interface for chat message persistence.
type MessageRepository interface {
	Create(ctx context.Context, m *chat.Message) error
	// FindByConversation returns messages ordered by creation time ascending.
	FindByConversation(ctx context.Context, conversationID uuid.UUID) ([]*chat.Message, error)
	// FindByUserRecipe returns recipe-scoped history ascending.
	FindByUserRecipe(ctx context.Context, userID, recipeID uuid.UUID) ([]*chat.Message, error)
	DeleteByUserRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
}

// AssistantConfigRepository defines the interface for chatbot
// configuration persistence.
type AssistantConfigRepository interface {
	// FindActive returns the active config or ErrNotFound.
	FindActive(ctx context.Context) (*assistant.Config, error)
	// Create deactivates any active config before inserting.
	Create(ctx context.Context, c *assistant.Config) error
	Update(ctx context.Context, c *assistant.Config) error
}
