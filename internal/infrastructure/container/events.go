package container

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/chat"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/favorite"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/shared"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/cache"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
)

// RegisterEventSubscribers attaches the process-wide event handlers:
// an activity log for every domain event and cache invalidation for
// the per-user keys affected by each one.
func RegisterEventSubscribers(bus outbound.EventBus, store outbound.CacheStore, log *zap.Logger) {
	activity := log.Named("activity")

	logEvent := func(event shared.DomainEvent) {
		activity.Info("Domain event",
			zap.String("event", event.EventName()),
			zap.Time("occurred_at", event.OccurredAt()),
		)
	}

	invalidate := func(key string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Delete(ctx, key); err != nil {
			log.Warn("Failed to invalidate cache key", zap.String("key", key), zap.Error(err))
		}
	}

	bus.Subscribe("favorite.changed", func(event shared.DomainEvent) {
		logEvent(event)
		if e, ok := event.(favorite.ChangedEvent); ok {
			invalidate(cache.KeyFavorites(e.UserID))
		}
	})

	bus.Subscribe("conversation.created", func(event shared.DomainEvent) {
		logEvent(event)
		if e, ok := event.(chat.ConversationCreatedEvent); ok {
			invalidate(cache.KeyConversations(e.UserID))
		}
	})

	bus.Subscribe("conversation.deleted", func(event shared.DomainEvent) {
		logEvent(event)
		if e, ok := event.(chat.ConversationDeletedEvent); ok {
			invalidate(cache.KeyConversations(e.UserID))
		}
	})
}
