package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
)

// ReadThrough implements stale-while-revalidate on top of a
// CacheStore. A hit is served immediately and a background fetch
// refreshes the entry; a miss fetches synchronously and stores the
// result. Fetch failures never clear a previously cached value, so
// readers keep seeing the last known good data.
type ReadThrough[T any] struct {
	store  outbound.CacheStore
	logger *zap.Logger
	ttl    time.Duration
}

// NewReadThrough builds a read-through helper for one value type.
// ttl bounds how long an entry survives without any reader.
func NewReadThrough[T any](store outbound.CacheStore, logger *zap.Logger, ttl time.Duration) *ReadThrough[T] {
	return &ReadThrough[T]{
		store:  store,
		logger: logger.Named("readthrough"),
		ttl:    ttl,
	}
}

// Get returns the value for key, consulting the cache first. fetch
// loads the authoritative value when needed.
func (r *ReadThrough[T]) Get(ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	data, err := r.store.Get(ctx, key)
	if err == nil {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			go r.refresh(key, fetch)
			return cached, nil
		}
		r.logger.Warn("Discarding undecodable cache entry", zap.String("key", key))
	}

	value, err := fetch(ctx)
	if err != nil {
		return zero, err
	}
	r.put(ctx, key, value)
	return value, nil
}

// Invalidate drops the entry so the next read fetches fresh data.
func (r *ReadThrough[T]) Invalidate(ctx context.Context, key string) {
	if err := r.store.Delete(ctx, key); err != nil {
		r.logger.Warn("Cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

// refresh runs detached from the request that triggered it.
func (r *ReadThrough[T]) refresh(key string, fetch func(context.Context) (T, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	value, err := fetch(ctx)
	if err != nil {
		r.logger.Debug("Background refresh failed, keeping stale entry",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	r.put(ctx, key, value)
}

func (r *ReadThrough[T]) put(ctx context.Context, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Warn("Cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.store.Set(ctx, key, data, r.ttl); err != nil {
		r.logger.Warn("Cache store failed", zap.String("key", key), zap.Error(err))
	}
}
