package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/favorite"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
)

// FavoriteRepository implements outbound.FavoriteRepository. The
// (user, recipe) uniqueness violation surfaces as
// favorite.ErrAlreadyFavorite via gorm's translated duplicate error.
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a GORM-backed favorite repository.
func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

var _ outbound.FavoriteRepository = (*FavoriteRepository)(nil)

func (r *FavoriteRepository) Add(ctx context.Context, f *favorite.Favorite) error {
	if err := r.db.WithContext(ctx).Create(favoriteToModel(f)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return favorite.ErrAlreadyFavorite
		}
		return err
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&FavoriteModel{}, "user_id = ? AND recipe_id = ?", userID, recipeID).Error
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&FavoriteModel{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*favorite.FavoriteRecipe, error) {
	var models []FavoriteModel
	if err := r.db.WithContext(ctx).
		Preload("Recipe").
		Preload("Recipe.Category").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&models).Error; err != nil {
		return nil, err
	}

	favorites := make([]*favorite.FavoriteRecipe, 0, len(models))
	for i := range models {
		m := &models[i]
		if m.Recipe == nil {
			// Dangling favorite whose recipe vanished; skip it.
			continue
		}
		favorites = append(favorites, &favorite.FavoriteRecipe{
			Favorite: *favoriteToDomain(m),
			Recipe:   *recipeToDomain(m.Recipe),
		})
	}
	return favorites, nil
}
