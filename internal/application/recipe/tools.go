package recipe

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/recipe"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/pkg/errors"
)

// ToolsService implements the completion-backed recipe utilities:
// serving adjustment, ingredient substitution, nutrition estimation
// and unit conversion.
type ToolsService struct {
	repo        outbound.RecipeRepository
	completions outbound.CompletionClient
	logger      *zap.Logger
}

// NewToolsService creates a new recipe tools service.
func NewToolsService(
	repo outbound.RecipeRepository,
	completions outbound.CompletionClient,
	logger *zap.Logger,
) *ToolsService {
	return &ToolsService{
		repo:        repo,
		completions: completions,
		logger:      logger.Named("recipe-tools"),
	}
}

var _ inbound.RecipeToolsService = (*ToolsService)(nil)

// AdjustServings rescales the ingredient list to a new serving count.
func (s *ToolsService) AdjustServings(ctx context.Context, recipeID uuid.UUID, newServings int) (string, error) {
	if newServings < 1 {
		return "", errors.NewValidationError(recipe.ErrInvalidServings.Error())
	}

	r, err := s.load(ctx, recipeID)
	if err != nil {
		return "", err
	}

	result, err := s.completions.AdjustServings(ctx, r, newServings)
	if err != nil {
		return "", errors.NewMessageSendError(err)
	}
	return result, nil
}

// SubstituteIngredients suggests replacements that keep the recipe's
// dietary constraints.
func (s *ToolsService) SubstituteIngredients(ctx context.Context, recipeID uuid.UUID, ingredients []string, reason string) (string, error) {
	r, err := s.load(ctx, recipeID)
	if err != nil {
		return "", err
	}

	result, err := s.completions.SubstituteIngredients(ctx, r, ingredients, reason)
	if err != nil {
		return "", errors.NewMessageSendError(err)
	}
	return result, nil
}

// CalculateNutrition estimates per-serving nutritional values.
func (s *ToolsService) CalculateNutrition(ctx context.Context, recipeID uuid.UUID) (string, error) {
	r, err := s.load(ctx, recipeID)
	if err != nil {
		return "", err
	}

	result, err := s.completions.CalculateNutrition(ctx, r)
	if err != nil {
		return "", errors.NewMessageSendError(err)
	}
	return result, nil
}

// ConvertUnits converts measures in the ingredient list.
func (s *ToolsService) ConvertUnits(ctx context.Context, recipeID uuid.UUID, fromUnit, toUnit, amount string) (string, error) {
	r, err := s.load(ctx, recipeID)
	if err != nil {
		return "", err
	}

	result, err := s.completions.ConvertUnits(ctx, r, fromUnit, toUnit, amount)
	if err != nil {
		return "", errors.NewMessageSendError(err)
	}
	return result, nil
}

func (s *ToolsService) load(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == outbound.ErrNotFound {
			return nil, errors.NewRecipeNotFoundError(id.String())
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	return r, nil
}
