// Package chat provides the application layer for the assistant:
// general conversations and recipe-scoped exchanges.
package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/chat"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/cache"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/inbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
	"github.com/eusilvaluiz/sabor-sem-limites-app/pkg/errors"
)

// Service implements the chat use cases.
type Service struct {
	conversations outbound.ConversationRepository
	messages      outbound.MessageRepository
	recipes       outbound.RecipeRepository
	completions   outbound.CompletionClient
	events        outbound.EventBus
	listCache     *cache.ReadThrough[[]*chat.Conversation]
	logger        *zap.Logger
}

// NewService creates a new chat service.
func NewService(
	conversations outbound.ConversationRepository,
	messages outbound.MessageRepository,
	recipes outbound.RecipeRepository,
	completions outbound.CompletionClient,
	events outbound.EventBus,
	store outbound.CacheStore,
	personalTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		conversations: conversations,
		messages:      messages,
		recipes:       recipes,
		completions:   completions,
		events:        events,
		listCache:     cache.NewReadThrough[[]*chat.Conversation](store, logger, personalTTL),
		logger:        logger.Named("chat-service"),
	}
}

var _ inbound.ChatService = (*Service)(nil)

// SendMessage runs one general-chat turn. The user message is
// persisted before the completion call; a completion failure
// therefore leaves it in place without an answer, and the client may
// resend.
func (s *Service) SendMessage(ctx context.Context, cmd inbound.SendMessageCommand) (*inbound.ChatTurn, error) {
	conversation, created, err := s.resolveConversation(ctx, cmd)
	if err != nil {
		return nil, err
	}

	threadID, err := s.lastThreadID(ctx, conversation.ID, created)
	if err != nil {
		return nil, err
	}

	// The user row carries the thread token it was sent under, or
	// null on the first turn.
	var userThread *string
	if threadID != "" {
		userThread = &threadID
	}
	userMsg, err := chat.NewGeneralMessage(cmd.UserID, conversation.ID, chat.DirectionUser, cmd.Text, userThread)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return nil, errors.NewDatabaseError("create user message", err)
	}

	reply, err := s.completions.Chat(ctx, cmd.Text, threadID)
	if err != nil {
		s.logger.Error("Completion failed",
			zap.String("conversation_id", conversation.ID.String()),
			zap.Error(err),
		)
		return nil, errors.NewMessageSendError(err)
	}

	aiMsg, err := chat.NewGeneralMessage(cmd.UserID, conversation.ID, chat.DirectionAI, reply.Text, &reply.ThreadID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	now := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.messages.Create(gctx, aiMsg); err != nil {
			return errors.NewDatabaseError("create assistant message", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.conversations.Touch(gctx, conversation.ID, now); err != nil {
			return errors.NewDatabaseError("touch conversation", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	conversation.UpdatedAt = now

	s.listCache.Invalidate(ctx, cache.KeyConversations(cmd.UserID))

	return &inbound.ChatTurn{
		Conversation: conversation,
		UserMessage:  userMsg,
		AIMessage:    aiMsg,
	}, nil
}

// SendRecipeMessage runs one recipe-scoped turn. Each question is
// answered statelessly with the full recipe as context.
func (s *Service) SendRecipeMessage(ctx context.Context, cmd inbound.SendRecipeMessageCommand) (*chat.Message, error) {
	r, err := s.recipes.FindByID(ctx, cmd.RecipeID)
	if err != nil {
		if err == outbound.ErrNotFound {
			return nil, errors.NewRecipeNotFoundError(cmd.RecipeID.String())
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}

	userMsg, err := chat.NewRecipeMessage(cmd.UserID, cmd.RecipeID, chat.DirectionUser, cmd.Text, nil)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return nil, errors.NewDatabaseError("create user message", err)
	}

	answer, err := s.completions.AskAboutRecipe(ctx, r, cmd.Text)
	if err != nil {
		s.logger.Error("Recipe completion failed",
			zap.String("recipe_id", cmd.RecipeID.String()),
			zap.Error(err),
		)
		return nil, errors.NewMessageSendError(err)
	}

	aiMsg, err := chat.NewRecipeMessage(cmd.UserID, cmd.RecipeID, chat.DirectionAI, answer, map[string]interface{}{
		"recipeTitle": r.Title,
	})
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.messages.Create(ctx, aiMsg); err != nil {
		return nil, errors.NewDatabaseError("create assistant message", err)
	}

	return aiMsg, nil
}

// ListConversations returns the user's conversations most recently
// active first, served cache-first.
func (s *Service) ListConversations(ctx context.Context, userID uuid.UUID) ([]*chat.Conversation, error) {
	return s.listCache.Get(ctx, cache.KeyConversations(userID), func(ctx context.Context) ([]*chat.Conversation, error) {
		conversations, err := s.conversations.FindByUser(ctx, userID)
		if err != nil {
			return nil, errors.NewDatabaseError("list conversations", err)
		}
		return conversations, nil
	})
}

// GetMessages returns a conversation's history oldest first.
func (s *Service) GetMessages(ctx context.Context, userID, conversationID uuid.UUID) ([]*chat.Message, error) {
	if _, err := s.ownedConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	messages, err := s.messages.FindByConversation(ctx, conversationID)
	if err != nil {
		return nil, errors.NewDatabaseError("list messages", err)
	}
	return messages, nil
}

// GetRecipeMessages returns the user's history for one recipe,
// oldest first.
func (s *Service) GetRecipeMessages(ctx context.Context, userID, recipeID uuid.UUID) ([]*chat.Message, error) {
	messages, err := s.messages.FindByUserRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipe messages", err)
	}
	return messages, nil
}

// DeleteConversation removes a conversation and its messages.
func (s *Service) DeleteConversation(ctx context.Context, userID, conversationID uuid.UUID) error {
	if _, err := s.ownedConversation(ctx, userID, conversationID); err != nil {
		return err
	}

	if err := s.conversations.Delete(ctx, conversationID); err != nil {
		return errors.NewDatabaseError("delete conversation", err)
	}

	s.listCache.Invalidate(ctx, cache.KeyConversations(userID))
	s.events.Publish(ctx, chat.ConversationDeletedEvent{
		ConversationID: conversationID,
		UserID:         userID,
		At:             time.Now(),
	})
	return nil
}

// ClearRecipeMessages wipes the user's chat history for one recipe.
func (s *Service) ClearRecipeMessages(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := s.messages.DeleteByUserRecipe(ctx, userID, recipeID); err != nil {
		return errors.NewDatabaseError("clear recipe messages", err)
	}
	return nil
}

// resolveConversation loads the addressed conversation or creates a
// new one titled after the message.
func (s *Service) resolveConversation(ctx context.Context, cmd inbound.SendMessageCommand) (*chat.Conversation, bool, error) {
	if cmd.ConversationID != nil {
		conversation, err := s.ownedConversation(ctx, cmd.UserID, *cmd.ConversationID)
		if err != nil {
			return nil, false, err
		}
		return conversation, false, nil
	}

	conversation, err := chat.NewConversation(cmd.UserID, cmd.Text)
	if err != nil {
		return nil, false, errors.NewValidationError(err.Error())
	}
	if err := s.conversations.Create(ctx, conversation); err != nil {
		return nil, false, errors.NewDatabaseError("create conversation", err)
	}

	s.listCache.Invalidate(ctx, cache.KeyConversations(cmd.UserID))
	s.events.Publish(ctx, chat.ConversationCreatedEvent{
		ConversationID: conversation.ID,
		UserID:         cmd.UserID,
		Title:          conversation.Title,
		At:             conversation.CreatedAt,
	})
	return conversation, true, nil
}

func (s *Service) ownedConversation(ctx context.Context, userID, conversationID uuid.UUID) (*chat.Conversation, error) {
	conversation, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		if err == outbound.ErrNotFound {
			return nil, errors.NewConversationNotFoundError(conversationID.String())
		}
		return nil, errors.NewDatabaseError("find conversation", err)
	}
	// Foreign conversations read as not found rather than forbidden.
	if conversation.UserID != userID {
		return nil, errors.NewConversationNotFoundError(conversationID.String())
	}
	return conversation, nil
}

// lastThreadID recovers the completion continuity token from the
// newest assistant message. Fresh conversations have none.
func (s *Service) lastThreadID(ctx context.Context, conversationID uuid.UUID, created bool) (string, error) {
	if created {
		return "", nil
	}

	messages, err := s.messages.FindByConversation(ctx, conversationID)
	if err != nil {
		return "", errors.NewDatabaseError("list messages", err)
	}
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].ThreadID != nil && *messages[i].ThreadID != "" {
			return *messages[i].ThreadID, nil
		}
	}
	return "", nil
}
