package favorite

import (
	"time"

	"github.com/google/uuid"
)

// ChangedEvent is published after a favorite toggle so that other
// components can refresh their own view of the user's favorites.
type ChangedEvent struct {
	UserID    uuid.UUID
	RecipeID  uuid.UUID
	Favorited bool
	At        time.Time
}

func (e ChangedEvent) EventName() string     { return "favorite.changed" }
func (e ChangedEvent) OccurredAt() time.Time { return e.At }
