package repository

import (
	"mailflow-backend/internal/message/domain"
)

// Scope filters repository reads by tenant. Empty fields match everything.
type Scope struct {
	CompanyID     string
	ApplicationID string
}

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	// Create persists a new message and assigns its ID and version
	Create(message *domain.Message) error

	// FindByID finds a message by its ID, including soft-deleted ones
	FindByID(id string) (*domain.Message, error)

	// FindByScope finds non-deleted messages for a tenant scope with pagination
	FindByScope(scope Scope, limit, offset int) ([]*domain.Message, int64, error)

	// FindDeliveryCandidates finds non-deleted pending/failed messages in
	// scope whose retry budget is not yet exhausted (retry_count <= max_retries)
	FindDeliveryCandidates(scope Scope) ([]*domain.Message, error)

	// Update writes the message back guarded by its version token. The
	// version is regenerated on success; a stale version yields ErrConflict.
	Update(message *domain.Message) error
}

// HistoryRepository defines the interface for the append-only audit trail
type HistoryRepository interface {
	// Append records one audit entry
	Append(entry *domain.History) error

	// FindByMessageID returns entries for a message in append order
	FindByMessageID(messageID string) ([]*domain.History, error)
}
