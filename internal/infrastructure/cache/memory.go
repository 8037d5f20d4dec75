package cache

import (
	"context"
	"sync"
	"time"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/ports/outbound"
)

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is an in-process CacheStore used for tests and for
// running without Redis.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]memoryItem
	stop chan struct{}
	once sync.Once
}

// NewMemoryStore creates a memory-backed cache store. A background
// goroutine evicts expired entries every five minutes until Close.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		data: make(map[string]memoryItem),
		stop: make(chan struct{}),
	}
	go s.evictLoop()
	return s
}

// Close stops the eviction goroutine. Safe to call more than once.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

// Get returns outbound.ErrCacheMiss for absent or expired keys.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	item, ok := s.data[key]
	s.mu.RUnlock()

	if !ok || time.Now().After(item.expiresAt) {
		return nil, outbound.ErrCacheMiss
	}
	return item.value, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	s.mu.Lock()
	s.data[key] = memoryItem{value: value, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) evictLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for key, item := range s.data {
				if now.After(item.expiresAt) {
					delete(s.data, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
