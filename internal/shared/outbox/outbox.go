package outbox

// Outbox rows are persisted inside the same DB transaction as state changes.
// The worker relay reads pending rows and publishes to the message bus.

// Row status values shared by every context's outbox table.
const (
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusFailed    = "failed"
)
