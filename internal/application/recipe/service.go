// Package recipe provides the application layer for recipe browsing,
// search and administration.
package recipe

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/recipe"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/cache"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/pkg/errors"
)

// Service implements the recipe use cases.
type Service struct {
	repo      outbound.RecipeRepository
	listCache *cache.ReadThrough[[]*recipe.Recipe]
	itemCache *cache.ReadThrough[*recipe.Recipe]
	logger    *zap.Logger
}

// NewService creates a new recipe service.
func NewService(
	repo outbound.RecipeRepository,
	store outbound.CacheStore,
	catalogTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:      repo,
		listCache: cache.NewReadThrough[[]*recipe.Recipe](store, logger, catalogTTL),
		itemCache: cache.NewReadThrough[*recipe.Recipe](store, logger, catalogTTL),
		logger:    logger.Named("recipe-service"),
	}
}

var _ inbound.RecipeService = (*Service)(nil)

// List returns all recipes newest first, served cache-first.
func (s *Service) List(ctx context.Context) ([]*recipe.Recipe, error) {
	return s.listCache.Get(ctx, cache.KeyRecipes(), func(ctx context.Context) ([]*recipe.Recipe, error) {
		recipes, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, errors.NewDatabaseError("list recipes", err)
		}
		return recipes, nil
	})
}

// ListByCategory returns the recipes of one category, newest first.
func (s *Service) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*recipe.Recipe, error) {
	recipes, err := s.repo.FindByCategory(ctx, categoryID)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes by category", err)
	}
	return recipes, nil
}

// Search matches the query against title, description and
// ingredients, case-insensitively. A blank query returns everything.
func (s *Service) Search(ctx context.Context, query string) ([]*recipe.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}

	recipes, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, errors.NewDatabaseError("search recipes", err)
	}
	return recipes, nil
}

// GetByID returns a single recipe, served cache-first.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	return s.itemCache.Get(ctx, cache.KeyRecipe(id), func(ctx context.Context) (*recipe.Recipe, error) {
		r, err := s.repo.FindByID(ctx, id)
		if err != nil {
			if err == outbound.ErrNotFound {
				return nil, errors.NewRecipeNotFoundError(id.String())
			}
			return nil, errors.NewDatabaseError("find recipe", err)
		}
		return r, nil
	})
}

// Create adds a new recipe.
func (s *Service) Create(ctx context.Context, cmd inbound.CreateRecipeCommand) (*recipe.Recipe, error) {
	difficulty, err := recipe.ParseDifficulty(cmd.Difficulty)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	r, err := recipe.New(cmd.Title, cmd.Description, cmd.Servings, difficulty,
		cmd.GlutenFree, cmd.LactoseFree, cmd.Ingredients, cmd.Instructions)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	r.ImageURL = cmd.ImageURL
	r.CategoryID = cmd.CategoryID
	createdBy := cmd.CreatedBy
	r.CreatedBy = &createdBy

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}

	s.invalidate(ctx, r.ID)
	s.logger.Info("Recipe created",
		zap.String("recipe_id", r.ID.String()),
		zap.String("title", r.Title),
	)
	return r, nil
}

// Update modifies an existing recipe.
func (s *Service) Update(ctx context.Context, id uuid.UUID, cmd inbound.UpdateRecipeCommand) (*recipe.Recipe, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == outbound.ErrNotFound {
			return nil, errors.NewRecipeNotFoundError(id.String())
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}

	difficulty, err := recipe.ParseDifficulty(cmd.Difficulty)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if strings.TrimSpace(cmd.Title) == "" {
		return nil, errors.NewValidationError(recipe.ErrTitleRequired.Error())
	}
	if cmd.Servings < 1 {
		return nil, errors.NewValidationError(recipe.ErrInvalidServings.Error())
	}

	r.Title = cmd.Title
	r.Description = cmd.Description
	r.ImageURL = cmd.ImageURL
	r.CategoryID = cmd.CategoryID
	r.Servings = cmd.Servings
	r.Difficulty = difficulty
	r.GlutenFree = cmd.GlutenFree
	r.LactoseFree = cmd.LactoseFree
	r.Ingredients = cmd.Ingredients
	r.Instructions = cmd.Instructions
	r.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, errors.NewDatabaseError("update recipe", err)
	}

	s.invalidate(ctx, r.ID)
	return r, nil
}

// Delete removes a recipe together with its favorites and chat
// history (enforced by the database cascade).
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == outbound.ErrNotFound {
			return errors.NewRecipeNotFoundError(id.String())
		}
		return errors.NewDatabaseError("find recipe", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewDatabaseError("delete recipe", err)
	}

	s.invalidate(ctx, id)
	s.logger.Info("Recipe deleted", zap.String("recipe_id", id.String()))
	return nil
}

func (s *Service) invalidate(ctx context.Context, id uuid.UUID) {
	s.listCache.Invalidate(ctx, cache.KeyRecipes())
	s.itemCache.Invalidate(ctx, cache.KeyRecipe(id))
}
