package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/chat"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
)

// ConversationRepository implements outbound.ConversationRepository.
type ConversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a GORM-backed conversation repository.
func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

var _ outbound.ConversationRepository = (*ConversationRepository)(nil)

func (r *ConversationRepository) Create(ctx context.Context, c *chat.Conversation) error {
	return r.db.WithContext(ctx).Create(conversationToModel(c)).Error
}

func (r *ConversationRepository) FindByID(ctx context.Context, id uuid.UUID) (*chat.Conversation, error) {
	var model ConversationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, err
	}
	return conversationToDomain(&model), nil
}

func (r *ConversationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*chat.Conversation, error) {
	var models []ConversationModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Find(&models).Error; err != nil {
		return nil, err
	}

	conversations := make([]*chat.Conversation, 0, len(models))
	for i := range models {
		conversations = append(conversations, conversationToDomain(&models[i]))
	}
	return conversations, nil
}

func (r *ConversationRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&ConversationModel{}).
		Where("id = ?", id).
		Update("updated_at", at).Error
}

func (r *ConversationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&MessageModel{}, "conversation_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&ConversationModel{}, "id = ?", id).Error
	})
}

// MessageRepository implements outbound.MessageRepository.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a GORM-backed message repository.
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

var _ outbound.MessageRepository = (*MessageRepository)(nil)

func (r *MessageRepository) Create(ctx context.Context, m *chat.Message) error {
	return r.db.WithContext(ctx).Create(messageToModel(m)).Error
}

func (r *MessageRepository) FindByConversation(ctx context.Context, conversationID uuid.UUID) ([]*chat.Message, error) {
	var models []MessageModel
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at asc").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return messagesToDomain(models), nil
}

func (r *MessageRepository) FindByUserRecipe(ctx context.Context, userID, recipeID uuid.UUID) ([]*chat.Message, error) {
	var models []MessageModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Order("created_at asc").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return messagesToDomain(models), nil
}

func (r *MessageRepository) DeleteByUserRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&MessageModel{}, "user_id = ? AND recipe_id = ?", userID, recipeID).Error
}

func messagesToDomain(models []MessageModel) []*chat.Message {
	messages := make([]*chat.Message, 0, len(models))
	for i := range models {
		messages = append(messages, messageToDomain(&models[i]))
	}
	return messages
}
