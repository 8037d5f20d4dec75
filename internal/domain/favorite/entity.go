// Package favorite contains the (user, recipe) favorite join model.
// Existence of a row means "favorited"; the pair is unique.
package favorite

import (
	"errors"
	"time"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/recipe"
	"github.com/google/uuid"
)

// ErrAlreadyFavorite is returned by repositories when an insert hits
// the (user, recipe) uniqueness constraint. Callers treat it as
// "already favorited", not as a failure.
var ErrAlreadyFavorite = errors.New("recipe is already a favorite")

// Favorite is a timestamped (user, recipe) pair.
type Favorite struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	RecipeID  uuid.UUID
	CreatedAt time.Time
}

// New creates a favorite pair.
func New(userID, recipeID uuid.UUID) *Favorite {
	return &Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
	}
}

// FavoriteRecipe joins a favorite with its recipe payload for the
// favorites listing.
type FavoriteRecipe struct {
	Favorite Favorite
	Recipe   recipe.Recipe
}
