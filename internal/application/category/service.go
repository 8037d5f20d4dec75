// Package category provides the application layer for category
// browsing and administration.
package category

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/category"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/cache"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/pkg/errors"
)

// Service implements the category use cases.
type Service struct {
	repo      outbound.CategoryRepository
	listCache *cache.ReadThrough[[]*category.Category]
	logger    *zap.Logger
}

// NewService creates a new category service.
func NewService(
	repo outbound.CategoryRepository,
	store outbound.CacheStore,
	catalogTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:      repo,
		listCache: cache.NewReadThrough[[]*category.Category](store, logger, catalogTTL),
		logger:    logger.Named("category-service"),
	}
}

var _ inbound.CategoryService = (*Service)(nil)

// List returns all categories ordered by name, served cache-first.
func (s *Service) List(ctx context.Context) ([]*category.Category, error) {
	return s.listCache.Get(ctx, cache.KeyCategories(), func(ctx context.Context) ([]*category.Category, error) {
		categories, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, errors.NewDatabaseError("list categories", err)
		}
		return categories, nil
	})
}

// Search matches the query against category names,
// case-insensitively. A blank query returns everything.
func (s *Service) Search(ctx context.Context, query string) ([]*category.Category, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}

	categories, err := s.repo.SearchByName(ctx, query)
	if err != nil {
		return nil, errors.NewDatabaseError("search categories", err)
	}
	return categories, nil
}

// GetByID returns a single category.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == outbound.ErrNotFound {
			return nil, errors.NewCategoryNotFoundError(id.String())
		}
		return nil, errors.NewDatabaseError("find category", err)
	}
	return cat, nil
}

// Create adds a new category.
func (s *Service) Create(ctx context.Context, cmd inbound.CreateCategoryCommand) (*category.Category, error) {
	cat, err := category.New(cmd.Name, cmd.ImageURL)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.repo.Create(ctx, cat); err != nil {
		return nil, errors.NewDatabaseError("create category", err)
	}

	s.listCache.Invalidate(ctx, cache.KeyCategories())
	s.logger.Info("Category created",
		zap.String("category_id", cat.ID.String()),
		zap.String("name", cat.Name),
	)
	return cat, nil
}

// Update modifies an existing category.
func (s *Service) Update(ctx context.Context, id uuid.UUID, cmd inbound.UpdateCategoryCommand) (*category.Category, error) {
	cat, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Name == "" {
		return nil, errors.NewValidationError(category.ErrNameRequired.Error())
	}
	cat.Name = cmd.Name
	cat.ImageURL = cmd.ImageURL
	cat.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, errors.NewDatabaseError("update category", err)
	}

	s.listCache.Invalidate(ctx, cache.KeyCategories())
	return cat, nil
}

// Delete removes a category. Recipes keep existing with a detached
// category reference.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewDatabaseError("delete category", err)
	}

	s.listCache.Invalidate(ctx, cache.KeyCategories())
	s.logger.Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}
