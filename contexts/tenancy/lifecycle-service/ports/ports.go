package ports

import (
	"context"
	"time"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for entity and outbox identifiers.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
