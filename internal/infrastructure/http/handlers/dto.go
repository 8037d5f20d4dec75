package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/assistant"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/category"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/chat"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/favorite"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/recipe"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/user"
)

// DTOs mirror the JSON shapes the SPA consumes. Image fields always
// resolve to a usable URL, falling back to the placeholder asset.

type categoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"imageUrl"`
	RecipeCount int       `json:"recipeCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toCategoryDTO(c *category.Category) categoryDTO {
	return categoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		ImageURL:    c.Image(),
		RecipeCount: c.RecipeCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCategoryDTOs(categories []*category.Category) []categoryDTO {
	out := make([]categoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryDTO(c))
	}
	return out
}

type recipeDTO struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ImageURL     string     `json:"imageUrl"`
	CategoryID   *uuid.UUID `json:"categoryId"`
	CategoryName string     `json:"categoryName"`
	Servings     int        `json:"servings"`
	Difficulty   string     `json:"difficulty"`
	GlutenFree   bool       `json:"glutenFree"`
	LactoseFree  bool       `json:"lactoseFree"`
	Ingredients  string     `json:"ingredients"`
	Instructions string     `json:"instructions"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func toRecipeDTO(r *recipe.Recipe) recipeDTO {
	return recipeDTO{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		ImageURL:     r.Image(),
		CategoryID:   r.CategoryID,
		CategoryName: r.DisplayCategory(),
		Servings:     r.Servings,
		Difficulty:   string(r.Difficulty),
		GlutenFree:   r.GlutenFree,
		LactoseFree:  r.LactoseFree,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toRecipeDTOs(recipes []*recipe.Recipe) []recipeDTO {
	out := make([]recipeDTO, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, toRecipeDTO(r))
	}
	return out
}

type userDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatarUrl"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserDTO(u *user.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserDTOs(users []*user.User) []userDTO {
	out := make([]userDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	return out
}

type favoriteRecipeDTO struct {
	recipeDTO
	FavoritedAt time.Time `json:"favoritedAt"`
}

func toFavoriteRecipeDTOs(favorites []*favorite.FavoriteRecipe) []favoriteRecipeDTO {
	out := make([]favoriteRecipeDTO, 0, len(favorites))
	for _, f := range favorites {
		out = append(out, favoriteRecipeDTO{
			recipeDTO:   toRecipeDTO(&f.Recipe),
			FavoritedAt: f.Favorite.CreatedAt,
		})
	}
	return out
}

type conversationDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toConversationDTO(c *chat.Conversation) conversationDTO {
	return conversationDTO{
		ID:        c.ID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toConversationDTOs(conversations []*chat.Conversation) []conversationDTO {
	out := make([]conversationDTO, 0, len(conversations))
	for _, c := range conversations {
		out = append(out, toConversationDTO(c))
	}
	return out
}

type messageDTO struct {
	ID             uuid.UUID              `json:"id"`
	Direction      string                 `json:"direction"`
	Text           string                 `json:"text"`
	ConversationID *uuid.UUID             `json:"conversationId,omitempty"`
	RecipeID       *uuid.UUID             `json:"recipeId,omitempty"`
	Context        map[string]interface{} `json:"context,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
}

func toMessageDTO(m *chat.Message) messageDTO {
	return messageDTO{
		ID:             m.ID,
		Direction:      string(m.Direction),
		Text:           m.Text,
		ConversationID: m.ConversationID,
		RecipeID:       m.RecipeID,
		Context:        m.Context,
		CreatedAt:      m.CreatedAt,
	}
}

func toMessageDTOs(messages []*chat.Message) []messageDTO {
	out := make([]messageDTO, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessageDTO(m))
	}
	return out
}

type assistantDTO struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	AvatarType     string    `json:"avatarType"`
	AvatarEmoji    string    `json:"avatarEmoji"`
	AvatarColor    string    `json:"avatarColor"`
	AvatarImageURL *string   `json:"avatarImageUrl"`
	Suggestions    []string  `json:"suggestions"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toAssistantDTO(c *assistant.Config) assistantDTO {
	return assistantDTO{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		AvatarType:     string(c.AvatarType),
		AvatarEmoji:    c.AvatarEmoji,
		AvatarColor:    c.AvatarColor,
		AvatarImageURL: c.AvatarImageURL,
		Suggestions:    c.Suggestions,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
