package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/category"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
)

// CategoryRepository implements outbound.CategoryRepository.
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a GORM-backed category repository.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

var _ outbound.CategoryRepository = (*CategoryRepository)(nil)

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	return r.db.WithContext(ctx).Create(categoryToModel(c)).Error
}

func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	return r.db.WithContext(ctx).Save(categoryToModel(c)).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Recipes keep their rows; the category reference goes NULL.
	if err := r.db.WithContext(ctx).
		Model(&RecipeModel{}).
		Where("category_id = ?", id).
		Update("category_id", nil).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&CategoryModel{}, "id = ?", id).Error
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	var model CategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, err
	}

	count, err := r.recipeCount(ctx, id)
	if err != nil {
		return nil, err
	}
	return categoryToDomain(&model, count), nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]*category.Category, error) {
	var models []CategoryModel
	if err := r.db.WithContext(ctx).Order("name asc").Find(&models).Error; err != nil {
		return nil, err
	}

	counts, err := r.recipeCounts(ctx)
	if err != nil {
		return nil, err
	}

	categories := make([]*category.Category, 0, len(models))
	for i := range models {
		categories = append(categories, categoryToDomain(&models[i], counts[models[i].ID]))
	}
	return categories, nil
}

func (r *CategoryRepository) SearchByName(ctx context.Context, term string) ([]*category.Category, error) {
	var models []CategoryModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+term+"%").
		Order("name asc").
		Find(&models).Error; err != nil {
		return nil, err
	}

	counts, err := r.recipeCounts(ctx)
	if err != nil {
		return nil, err
	}

	categories := make([]*category.Category, 0, len(models))
	for i := range models {
		categories = append(categories, categoryToDomain(&models[i], counts[models[i].ID]))
	}
	return categories, nil
}

func (r *CategoryRepository) recipeCount(ctx context.Context, id uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&RecipeModel{}).
		Where("category_id = ?", id).
		Count(&count).Error
	return int(count), err
}

func (r *CategoryRepository) recipeCounts(ctx context.Context) (map[uuid.UUID]int, error) {
	type row struct {
		CategoryID uuid.UUID
		Count      int
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&RecipeModel{}).
		Select("category_id, count(*) as count").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.Count
	}
	return counts, nil
}
