// Package shared contains domain concepts used across aggregates.
package shared

import "time"

// DomainEvent is implemented by every event the application publishes
// on the in-process event bus.
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}
