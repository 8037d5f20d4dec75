// Package assistant provides the application layer for the chatbot
// presentation configuration.
package assistant

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/assistant"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/cache"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/pkg/errors"
)

// Service implements the assistant configuration use cases.
type Service struct {
	repo        outbound.AssistantConfigRepository
	activeCache *cache.ReadThrough[*assistant.Config]
	logger      *zap.Logger
}

// NewService creates a new assistant service.
func NewService(
	repo outbound.AssistantConfigRepository,
	store outbound.CacheStore,
	catalogTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:        repo,
		activeCache: cache.NewReadThrough[*assistant.Config](store, logger, catalogTTL),
		logger:      logger.Named("assistant-service"),
	}
}

var _ inbound.AssistantService = (*Service)(nil)

// GetActive returns the active profile, falling back to the built-in
// default when none has been stored.
func (s *Service) GetActive(ctx context.Context) (*assistant.Config, error) {
	return s.activeCache.Get(ctx, cache.KeyAssistant(), func(ctx context.Context) (*assistant.Config, error) {
		cfg, err := s.repo.FindActive(ctx)
		if err != nil {
			if err == outbound.ErrNotFound {
				return assistant.Default(), nil
			}
			return nil, errors.NewDatabaseError("find assistant config", err)
		}
		return cfg, nil
	})
}

// Create stores a new profile and activates it, deactivating any
// previous one.
func (s *Service) Create(ctx context.Context, cmd inbound.SaveAssistantCommand) (*assistant.Config, error) {
	cfg, err := assistant.New(cmd.Title, cmd.Description)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	applyCommand(cfg, cmd)

	if err := s.repo.Create(ctx, cfg); err != nil {
		return nil, errors.NewDatabaseError("create assistant config", err)
	}

	s.activeCache.Invalidate(ctx, cache.KeyAssistant())
	s.logger.Info("Assistant config created", zap.String("config_id", cfg.ID.String()))
	return cfg, nil
}

// Update modifies the stored profile.
func (s *Service) Update(ctx context.Context, id uuid.UUID, cmd inbound.SaveAssistantCommand) (*assistant.Config, error) {
	if cmd.Title == "" {
		return nil, errors.NewValidationError(assistant.ErrTitleRequired.Error())
	}

	cfg, err := s.repo.FindActive(ctx)
	if err != nil {
		if err == outbound.ErrNotFound {
			return nil, errors.NewNotFoundError("assistant config")
		}
		return nil, errors.NewDatabaseError("find assistant config", err)
	}
	if cfg.ID != id {
		return nil, errors.NewNotFoundError("assistant config")
	}

	cfg.Title = cmd.Title
	cfg.Description = cmd.Description
	applyCommand(cfg, cmd)
	cfg.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, cfg); err != nil {
		return nil, errors.NewDatabaseError("update assistant config", err)
	}

	s.activeCache.Invalidate(ctx, cache.KeyAssistant())
	return cfg, nil
}

func applyCommand(cfg *assistant.Config, cmd inbound.SaveAssistantCommand) {
	cfg.AssistantID = cmd.AssistantID
	if cmd.AvatarType == string(assistant.AvatarImage) {
		cfg.AvatarType = assistant.AvatarImage
	} else {
		cfg.AvatarType = assistant.AvatarEmoji
	}
	if cmd.AvatarEmoji != nil {
		cfg.AvatarEmoji = *cmd.AvatarEmoji
	}
	if cmd.AvatarColor != nil {
		cfg.AvatarColor = *cmd.AvatarColor
	}
	cfg.AvatarImageURL = cmd.AvatarImageURL
	cfg.Suggestions = cmd.Suggestions
}
