// Package eventbus provides an in-process publish/subscribe bus for
// domain events. Handlers run synchronously in Publish order so tests
// can observe effects without sleeping.
package eventbus

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/shared"
)

type subscriber struct {
	id      int
	handler func(shared.DomainEvent)
}

// Bus dispatches domain events to handlers registered by event name.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string][]subscriber
	logger *zap.Logger
}

// New creates an empty bus.
func New(logger *zap.Logger) *Bus {
	return &Bus{
		subs:   make(map[string][]subscriber),
		logger: logger.Named("eventbus"),
	}
}

// Publish delivers the event to every handler subscribed to its name.
// A panicking handler is recovered and logged so one bad subscriber
// cannot take down the publisher.
func (b *Bus) Publish(ctx context.Context, event shared.DomainEvent) {
	b.mu.RLock()
	handlers := make([]subscriber, len(b.subs[event.EventName()]))
	copy(handlers, b.subs[event.EventName()])
	b.mu.RUnlock()

	for _, sub := range handlers {
		b.dispatch(sub, event)
	}
}

// Subscribe registers a handler for one event name and returns a
// function that removes it.
func (b *Bus) Subscribe(eventName string, handler func(shared.DomainEvent)) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[eventName] = append(b.subs[eventName], subscriber{id: id, handler: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[eventName]
		for i, sub := range subs {
			if sub.id == id {
				b.subs[eventName] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

func (b *Bus) dispatch(sub subscriber, event shared.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Event handler panicked",
				zap.String("event", event.EventName()),
				zap.Any("panic", r),
			)
		}
	}()
	sub.handler(event)
}
