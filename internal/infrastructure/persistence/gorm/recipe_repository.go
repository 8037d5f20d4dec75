package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/recipe"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
)

// RecipeRepository implements outbound.RecipeRepository. Reads
// preload the category so the denormalized name travels with the
// recipe; a dangling reference simply yields no preloaded row.
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a GORM-backed recipe repository.
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

var _ outbound.RecipeRepository = (*RecipeRepository)(nil)

func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	return r.db.WithContext(ctx).Create(recipeToModel(rec)).Error
}

func (r *RecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	return r.db.WithContext(ctx).Save(recipeToModel(rec)).Error
}

func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&FavoriteModel{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&MessageModel{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&RecipeModel{}, "id = ?", id).Error
	})
}

func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel
	if err := r.db.WithContext(ctx).
		Preload("Category").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, err
	}
	return recipeToDomain(&model), nil
}

func (r *RecipeRepository) FindAll(ctx context.Context) ([]*recipe.Recipe, error) {
	var models []RecipeModel
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Order("created_at desc").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return recipesToDomain(models), nil
}

func (r *RecipeRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*recipe.Recipe, error) {
	var models []RecipeModel
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("category_id = ?", categoryID).
		Order("created_at desc").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return recipesToDomain(models), nil
}

func (r *RecipeRepository) Search(ctx context.Context, term string) ([]*recipe.Recipe, error) {
	pattern := "%" + term + "%"
	var models []RecipeModel
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(ingredients) LIKE LOWER(?)",
			pattern, pattern, pattern).
		Order("created_at desc").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return recipesToDomain(models), nil
}
