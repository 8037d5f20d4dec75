package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/recipe"
	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/shared"
)

// ErrCacheMiss is returned by CacheStore.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// CacheStore is the injected cache interface. Keys are deterministic
// strings built by the cache package; values are whole JSON blobs
// replaced atomically (no partial updates).
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ChatReply is the result of one completion call in the general chat
// path. The thread token is opaque; it is stored alongside the
// assistant message and handed back on the next turn for continuity.
type ChatReply struct {
	Text     string
	ThreadID string
}

// CompletionClient defines the interface to the language-model
// completion endpoint.
type CompletionClient interface {
	// Chat answers a general-purpose message. threadID may be empty
	// on the first turn; the returned reply always carries a token.
	Chat(ctx context.Context, message, threadID string) (*ChatReply, error)

	// AskAboutRecipe answers a question using the full recipe content
	// as context. Stateless per call.
	AskAboutRecipe(ctx context.Context, r *recipe.Recipe, question string) (string, error)

	// AdjustServings rescales the ingredient list to a new serving count.
	AdjustServings(ctx context.Context, r *recipe.Recipe, newServings int) (string, error)

	// SubstituteIngredients suggests replacements that keep the
	// recipe's dietary constraints.
	SubstituteIngredients(ctx context.Context, r *recipe.Recipe, ingredients []string, reason string) (string, error)

	// CalculateNutrition estimates per-serving nutritional values.
	CalculateNutrition(ctx context.Context, r *recipe.Recipe) (string, error)

	// ConvertUnits converts measures in the ingredient list.
	ConvertUnits(ctx context.Context, r *recipe.Recipe, fromUnit, toUnit, amount string) (string, error)
}

// EventBus is the typed in-process pub/sub used instead of stringly
// named UI events. Publish is fire-and-forget; Subscribe returns an
// unsubscribe function.
type EventBus interface {
	Publish(ctx context.Context, event shared.DomainEvent)
	Subscribe(eventName string, handler func(shared.DomainEvent)) (unsubscribe func())
}

// StorageService defines the interface for image/object storage.
type StorageService interface {
	// Upload stores the object and returns its public URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
