package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/category"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/chat"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/favorite"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/recipe"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/user"
)

// NewTestUser builds a user with fake but valid data.
func NewTestUser() *user.User {
	now := time.Now()
	return &user.User{
		ID:           uuid.New(),
		Name:         gofakeit.Name(),
		Email:        gofakeit.Email(),
		PasswordHash: fmt.Sprintf("$2a$10$%s", gofakeit.LetterN(53)),
		Role:         user.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewTestAdmin builds an admin user.
func NewTestAdmin() *user.User {
	u := NewTestUser()
	u.Role = user.RoleAdmin
	return u
}

// NewTestCategory builds a category with fake data.
func NewTestCategory() *category.Category {
	now := time.Now()
	return &category.Category{
		ID:        uuid.New(),
		Name:      gofakeit.Dinner(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestRecipe builds a gluten and lactose free recipe with fake data.
func NewTestRecipe() *recipe.Recipe {
	now := time.Now()
	creator := uuid.New()
	return &recipe.Recipe{
		ID:           uuid.New(),
		Title:        gofakeit.Dinner(),
		Description:  gofakeit.Sentence(10),
		Servings:     gofakeit.Number(1, 8),
		Difficulty:   recipe.DifficultyEasy,
		GlutenFree:   true,
		LactoseFree:  true,
		Ingredients:  gofakeit.Sentence(15),
		Instructions: gofakeit.Paragraph(2, 3, 8, "\n"),
		CreatedBy:    &creator,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewTestFavorite builds a favorite pair for the given user and recipe.
func NewTestFavorite(userID, recipeID uuid.UUID) *favorite.Favorite {
	return &favorite.Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
	}
}

// NewTestConversation builds a conversation for the given user.
func NewTestConversation(userID uuid.UUID) *chat.Conversation {
	now := time.Now()
	return &chat.Conversation{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     chat.DeriveTitle(gofakeit.Question()),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
