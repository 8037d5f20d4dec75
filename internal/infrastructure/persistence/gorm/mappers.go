package gorm

import (
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/assistant"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/category"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/chat"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/favorite"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/recipe"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/user"
)

// Mapping between GORM models and domain entities. These are pure
// functions; repositories own all database access.

func userToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		AvatarURL:    u.AvatarURL,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func userToDomain(m *UserModel) *user.User {
	return &user.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		AvatarURL:    m.AvatarURL,
		Role:         user.ParseRole(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func categoryToModel(c *category.Category) *CategoryModel {
	return &CategoryModel{
		ID:        c.ID,
		Name:      c.Name,
		ImageURL:  c.ImageURL,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func categoryToDomain(m *CategoryModel, recipeCount int) *category.Category {
	return &category.Category{
		ID:          m.ID,
		Name:        m.Name,
		ImageURL:    m.ImageURL,
		RecipeCount: recipeCount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func recipeToModel(r *recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
		CategoryID:   r.CategoryID,
		Servings:     r.Servings,
		Difficulty:   string(r.Difficulty),
		GlutenFree:   r.GlutenFree,
		LactoseFree:  r.LactoseFree,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		CreatedBy:    r.CreatedBy,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func recipeToDomain(m *RecipeModel) *recipe.Recipe {
	r := &recipe.Recipe{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		ImageURL:     m.ImageURL,
		CategoryID:   m.CategoryID,
		Servings:     m.Servings,
		Difficulty:   recipe.Difficulty(m.Difficulty),
		GlutenFree:   m.GlutenFree,
		LactoseFree:  m.LactoseFree,
		Ingredients:  m.Ingredients,
		Instructions: m.Instructions,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Category != nil {
		r.CategoryName = m.Category.Name
	}
	return r
}

func recipesToDomain(models []RecipeModel) []*recipe.Recipe {
	recipes := make([]*recipe.Recipe, 0, len(models))
	for i := range models {
		recipes = append(recipes, recipeToDomain(&models[i]))
	}
	return recipes
}

func favoriteToModel(f *favorite.Favorite) *FavoriteModel {
	return &FavoriteModel{
		ID:        f.ID,
		UserID:    f.UserID,
		RecipeID:  f.RecipeID,
		CreatedAt: f.CreatedAt,
	}
}

func favoriteToDomain(m *FavoriteModel) *favorite.Favorite {
	return &favorite.Favorite{
		ID:        m.ID,
		UserID:    m.UserID,
		RecipeID:  m.RecipeID,
		CreatedAt: m.CreatedAt,
	}
}

func conversationToModel(c *chat.Conversation) *ConversationModel {
	return &ConversationModel{
		ID:        c.ID,
		UserID:    c.UserID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func conversationToDomain(m *ConversationModel) *chat.Conversation {
	return &chat.Conversation{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func messageToModel(msg *chat.Message) *MessageModel {
	return &MessageModel{
		ID:             msg.ID,
		UserID:         msg.UserID,
		Kind:           string(msg.Kind),
		Direction:      string(msg.Direction),
		Text:           msg.Text,
		ThreadID:       msg.ThreadID,
		RecipeID:       msg.RecipeID,
		Context:        JSONField(msg.Context),
		ConversationID: msg.ConversationID,
		CreatedAt:      msg.CreatedAt,
	}
}

func messageToDomain(m *MessageModel) *chat.Message {
	return &chat.Message{
		ID:             m.ID,
		UserID:         m.UserID,
		Kind:           chat.Kind(m.Kind),
		Direction:      chat.Direction(m.Direction),
		Text:           m.Text,
		ThreadID:       m.ThreadID,
		RecipeID:       m.RecipeID,
		Context:        map[string]interface{}(m.Context),
		ConversationID: m.ConversationID,
		CreatedAt:      m.CreatedAt,
	}
}

func assistantToModel(c *assistant.Config) *AssistantConfigModel {
	return &AssistantConfigModel{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		AssistantID:    c.AssistantID,
		AvatarType:     string(c.AvatarType),
		AvatarEmoji:    c.AvatarEmoji,
		AvatarColor:    c.AvatarColor,
		AvatarImageURL: c.AvatarImageURL,
		Suggestions:    StringSlice(c.Suggestions),
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func assistantToDomain(m *AssistantConfigModel) *assistant.Config {
	avatarType := assistant.AvatarEmoji
	if m.AvatarType == string(assistant.AvatarImage) {
		avatarType = assistant.AvatarImage
	}
	return &assistant.Config{
		ID:             m.ID,
		Title:          m.Title,
		Description:    m.Description,
		AssistantID:    m.AssistantID,
		AvatarType:     avatarType,
		AvatarEmoji:    m.AvatarEmoji,
		AvatarColor:    m.AvatarColor,
		AvatarImageURL: m.AvatarImageURL,
		Suggestions:    []string(m.Suggestions),
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
