// Package favorite provides the application layer for per-user
// favorite management.
package favorite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/favorite"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/cache"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/pkg/errors"
)

// Service implements the favorite use cases.
type Service struct {
	repo      outbound.FavoriteRepository
	listCache *cache.ReadThrough[[]*favorite.FavoriteRecipe]
	events    outbound.EventBus
	logger    *zap.Logger
}

// NewService creates a new favorite service.
func NewService(
	repo outbound.FavoriteRepository,
	store outbound.CacheStore,
	personalTTL time.Duration,
	events outbound.EventBus,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:      repo,
		listCache: cache.NewReadThrough[[]*favorite.FavoriteRecipe](store, logger, personalTTL),
		events:    events,
		logger:    logger.Named("favorite-service"),
	}
}

var _ inbound.FavoriteService = (*Service)(nil)

// Toggle flips the favorite state and returns the new state. A
// concurrent duplicate insert counts as a successful favorite.
func (s *Service) Toggle(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	favorited, err := s.repo.Exists(ctx, userID, recipeID)
	if err != nil {
		return false, errors.NewDatabaseError("check favorite", err)
	}

	if favorited {
		if err := s.repo.Remove(ctx, userID, recipeID); err != nil {
			return false, errors.NewDatabaseError("remove favorite", err)
		}
		s.changed(ctx, userID, recipeID, false)
		return false, nil
	}

	if err := s.repo.Add(ctx, favorite.New(userID, recipeID)); err != nil {
		if err != favorite.ErrAlreadyFavorite {
			return false, errors.NewDatabaseError("add favorite", err)
		}
	}
	s.changed(ctx, userID, recipeID, true)
	return true, nil
}

// Add marks the recipe as favorited. Adding an existing favorite is
// a no-op success.
func (s *Service) Add(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := s.repo.Add(ctx, favorite.New(userID, recipeID)); err != nil {
		if err != favorite.ErrAlreadyFavorite {
			return errors.NewDatabaseError("add favorite", err)
		}
	}
	s.changed(ctx, userID, recipeID, true)
	return nil
}

// Remove unmarks the recipe. Removing an absent favorite is a no-op
// success.
func (s *Service) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := s.repo.Remove(ctx, userID, recipeID); err != nil {
		return errors.NewDatabaseError("remove favorite", err)
	}
	s.changed(ctx, userID, recipeID, false)
	return nil
}

// IsFavorite reports whether the user has favorited the recipe.
// Lookup failures read as "not favorited" so recipe pages still
// render when the favorites table is unavailable.
func (s *Service) IsFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	favorited, err := s.repo.Exists(ctx, userID, recipeID)
	if err != nil {
		s.logger.Warn("Favorite lookup failed, reporting not favorited",
			zap.String("user_id", userID.String()),
			zap.String("recipe_id", recipeID.String()),
			zap.Error(err),
		)
		return false, nil
	}
	return favorited, nil
}

// ListByUser returns the user's favorites with recipe payloads,
// served cache-first. No favorites is an empty list, not an error.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*favorite.FavoriteRecipe, error) {
	return s.listCache.Get(ctx, cache.KeyFavorites(userID), func(ctx context.Context) ([]*favorite.FavoriteRecipe, error) {
		favorites, err := s.repo.ListByUser(ctx, userID)
		if err != nil {
			return nil, errors.NewDatabaseError("list favorites", err)
		}
		return favorites, nil
	})
}

func (s *Service) changed(ctx context.Context, userID, recipeID uuid.UUID, favorited bool) {
	s.listCache.Invalidate(ctx, cache.KeyFavorites(userID))
	s.events.Publish(ctx, favorite.ChangedEvent{
		UserID:    userID,
		RecipeID:  recipeID,
		Favorited: favorited,
		At:        time.Now(),
	})
}
