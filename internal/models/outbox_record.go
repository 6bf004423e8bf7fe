package models

// OutboxRecord is a usage record waiting in the sink's outbox until a transport accepts it.
// ID is derived from the record content, so re-submitting the same record maps to the same entry.
type OutboxRecord struct {
	ID     string
	Record *UsageRecord
}
