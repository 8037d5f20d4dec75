// Package category contains the recipe category domain model.
package category

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PlaceholderImage is served whenever a category has no stored image.
const PlaceholderImage = "/placeholder.svg"

// ErrNameRequired is returned when a category is created without a name.
var ErrNameRequired = errors.New("category name is required")

// Category groups recipes and carries a denormalized recipe count
// maintained by the recipe repository.
type Category struct {
	ID          uuid.UUID
	Name        string
	ImageURL    *string
	RecipeCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New creates a category. A nil image is valid; reads resolve it to
// the placeholder path.
func New(name string, imageURL *string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	now := time.Now()
	return &Category{
		ID:        uuid.New(),
		Name:      name,
		ImageURL:  imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Image returns the stored image URL or the placeholder path,
// never an empty string.
func (c *Category) Image() string {
	if c.ImageURL == nil || *c.ImageURL == "" {
		return PlaceholderImage
	}
	return *c.ImageURL
}
