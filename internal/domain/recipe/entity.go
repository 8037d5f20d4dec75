// Package recipe contains the recipe domain model for the
// gluten/lactose-free recipe catalog.
package recipe

import (
	"strings"
	"time"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/category"
	"github.com/google/uuid"
)

// Difficulty is the preparation difficulty shown on recipe cards.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty validates a difficulty string.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(s)) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", ErrInvalidDifficulty
	}
}

// Recipe represents a published recipe. The category reference is
// nullable and may dangle after a category is deleted; display falls
// back to "no category".
type Recipe struct {
	ID          uuid.UUID
	Title       string
	Description string
	ImageURL    *string
	CategoryID  *uuid.UUID
	// CategoryName is denormalized from the category join on reads.
	// Empty when the recipe has no category or the reference dangles.
	CategoryName string
	Servings     int
	Difficulty   Difficulty
	GlutenFree   bool
	LactoseFree  bool
	Ingredients  string
	Instructions string
	CreatedBy    *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New creates a recipe with a fresh identifier.
func New(title, description string, servings int, difficulty Difficulty, glutenFree, lactoseFree bool, ingredients, instructions string) (*Recipe, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if servings <= 0 {
		return nil, ErrInvalidServings
	}
	if _, err := ParseDifficulty(string(difficulty)); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Recipe{
		ID:           uuid.New(),
		Title:        title,
		Description:  description,
		Servings:     servings,
		Difficulty:   difficulty,
		GlutenFree:   glutenFree,
		LactoseFree:  lactoseFree,
		Ingredients:  ingredients,
		Instructions: instructions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Image returns the stored image URL or the placeholder path.
func (r *Recipe) Image() string {
	if r.ImageURL == nil || *r.ImageURL == "" {
		return category.PlaceholderImage
	}
	return *r.ImageURL
}

// HasCategory reports whether the recipe resolves to a live category.
func (r *Recipe) HasCategory() bool {
	return r.CategoryID != nil && r.CategoryName != ""
}

// DisplayCategory returns the category name shown on cards. Dangling
// or absent references fall back to the "no category" label.
func (r *Recipe) DisplayCategory() string {
	if !r.HasCategory() {
		return "Sem categoria"
	}
	return r.CategoryName
}
