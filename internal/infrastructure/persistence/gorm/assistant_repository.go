package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/assistant"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
)

// AssistantConfigRepository implements outbound.AssistantConfigRepository.
type AssistantConfigRepository struct {
	db *gorm.DB
}

// NewAssistantConfigRepository creates a GORM-backed assistant config repository.
func NewAssistantConfigRepository(db *gorm.DB) *AssistantConfigRepository {
	return &AssistantConfigRepository{db: db}
}

var _ outbound.AssistantConfigRepository = (*AssistantConfigRepository)(nil)

func (r *AssistantConfigRepository) FindActive(ctx context.Context) (*assistant.Config, error) {
	var model AssistantConfigModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("updated_at desc").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, err
	}
	return assistantToDomain(&model), nil
}

// Create deactivates any active config before inserting so at most
// one config is active at a time.
func (r *AssistantConfigRepository) Create(ctx context.Context, c *assistant.Config) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&AssistantConfigModel{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(assistantToModel(c)).Error
	})
}

func (r *AssistantConfigRepository) Update(ctx context.Context, c *assistant.Config) error {
	return r.db.WithContext(ctx).Save(assistantToModel(c)).Error
}
