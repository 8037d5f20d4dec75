package inbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/assistant"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/category"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/chat"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/favorite"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/recipe"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/user"
)

// CategoryService exposes category browsing and administration.
type CategoryService interface {
	List(ctx context.Context) ([]*category.Category, error)
	Search(ctx context.Context, query string) ([]*category.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error)
	Create(ctx context.Context, cmd CreateCategoryCommand) (*category.Category, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCategoryCommand) (*category.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateCategoryCommand struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

type UpdateCategoryCommand struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// RecipeService exposes recipe browsing, search and administration.
type RecipeService interface {
	List(ctx context.Context) ([]*recipe.Recipe, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*recipe.Recipe, error)
	Search(ctx context.Context, query string) ([]*recipe.Recipe, error)
	GetByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	Create(ctx context.Context, cmd CreateRecipeCommand) (*recipe.Recipe, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateRecipeCommand) (*recipe.Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateRecipeCommand struct {
	Title        string     `json:"title" validate:"required,min=1,max=200"`
	Description  string     `json:"description"`
	ImageURL     *string    `json:"imageUrl,omitempty"`
	CategoryID   *uuid.UUID `json:"categoryId,omitempty"`
	Servings     int        `json:"servings" validate:"required,min=1"`
	Difficulty   string     `json:"difficulty" validate:"required,oneof=easy medium hard"`
	GlutenFree   bool       `json:"glutenFree"`
	LactoseFree  bool       `json:"lactoseFree"`
	Ingredients  string     `json:"ingredients"`
	Instructions string     `json:"instructions"`
	CreatedBy    uuid.UUID  `json:"-"`
}

type UpdateRecipeCommand struct {
	Title        string     `json:"title" validate:"required,min=1,max=200"`
	Description  string     `json:"description"`
	ImageURL     *string    `json:"imageUrl,omitempty"`
	CategoryID   *uuid.UUID `json:"categoryId,omitempty"`
	Servings     int        `json:"servings" validate:"required,min=1"`
	Difficulty   string     `json:"difficulty" validate:"required,oneof=easy medium hard"`
	GlutenFree   bool       `json:"glutenFree"`
	LactoseFree  bool       `json:"lactoseFree"`
	Ingredients  string     `json:"ingredients"`
	Instructions string     `json:"instructions"`
}

// UserService exposes authentication and user administration.
type UserService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*user.User, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
	Search(ctx context.Context, query string) ([]*user.User, error)
	Create(ctx context.Context, cmd CreateUserCommand) (*user.User, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateUserCommand) (*user.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type RegisterCommand struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type CreateUserCommand struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	Role      string  `json:"role" validate:"required,oneof=admin user"`
}

type UpdateUserCommand struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password,omitempty" validate:"omitempty,min=8"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	Role      string  `json:"role" validate:"required,oneof=admin user"`
}

// AuthResult bundles the authenticated user with a signed token.
type AuthResult struct {
	User  *user.User
	Token string
}

// FavoriteService exposes per-user favorite management.
type FavoriteService interface {
	// Toggle flips the favorite state and returns the new state
	// (true when the recipe is now favorited).
	Toggle(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	Add(ctx context.Context, userID, recipeID uuid.UUID) error
	Remove(ctx context.Context, userID, recipeID uuid.UUID) error
	IsFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*favorite.FavoriteRecipe, error)
}

// ChatService exposes the assistant conversation flows.
type ChatService interface {
	// SendMessage runs a full general-chat turn: conversation
	// creation when needed, user message persistence, completion,
	// and assistant message persistence.
	SendMessage(ctx context.Context, cmd SendMessageCommand) (*ChatTurn, error)

	// SendRecipeMessage runs a recipe-scoped turn with no
	// conversation threading.
	SendRecipeMessage(ctx context.Context, cmd SendRecipeMessageCommand) (*chat.Message, error)

	ListConversations(ctx context.Context, userID uuid.UUID) ([]*chat.Conversation, error)
	GetMessages(ctx context.Context, userID, conversationID uuid.UUID) ([]*chat.Message, error)
	GetRecipeMessages(ctx context.Context, userID, recipeID uuid.UUID) ([]*chat.Message, error)
	DeleteConversation(ctx context.Context, userID, conversationID uuid.UUID) error
	ClearRecipeMessages(ctx context.Context, userID, recipeID uuid.UUID) error
}

type SendMessageCommand struct {
	UserID         uuid.UUID
	ConversationID *uuid.UUID
	Text           string `validate:"required,min=1"`
}

type SendRecipeMessageCommand struct {
	UserID   uuid.UUID
	RecipeID uuid.UUID
	Text     string `validate:"required,min=1"`
}

// ChatTurn is the outcome of one general-chat exchange. Conversation
// is always populated, including for the first turn where it was
// just created.
type ChatTurn struct {
	Conversation *chat.Conversation
	UserMessage  *chat.Message
	AIMessage    *chat.Message
}

// RecipeToolsService exposes the recipe utility operations backed by
// the completion client.
type RecipeToolsService interface {
	AdjustServings(ctx context.Context, recipeID uuid.UUID, newServings int) (string, error)
	SubstituteIngredients(ctx context.Context, recipeID uuid.UUID, ingredients []string, reason string) (string, error)
	CalculateNutrition(ctx context.Context, recipeID uuid.UUID) (string, error)
	ConvertUnits(ctx context.Context, recipeID uuid.UUID, fromUnit, toUnit, amount string) (string, error)
}

// AssistantService exposes assistant profile configuration.
type AssistantService interface {
	// GetActive returns the active assistant profile, falling back
	// to the built-in default when none is configured.
	GetActive(ctx context.Context) (*assistant.Config, error)
	Create(ctx context.Context, cmd SaveAssistantCommand) (*assistant.Config, error)
	Update(ctx context.Context, id uuid.UUID, cmd SaveAssistantCommand) (*assistant.Config, error)
}

type SaveAssistantCommand struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description"`
	AssistantID    *string  `json:"assistantId,omitempty"`
	AvatarType     string   `json:"avatarType" validate:"required,oneof=emoji image"`
	AvatarEmoji    *string  `json:"avatarEmoji,omitempty"`
	AvatarColor    *string  `json:"avatarColor,omitempty"`
	AvatarImageURL *string  `json:"avatarImageUrl,omitempty"`
	Suggestions    []string `json:"suggestions"`
}
