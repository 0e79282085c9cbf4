package usecase

import (
	"mailflow-backend/internal/events"
	messagedomain "mailflow-backend/internal/message/domain"
	messagedto "mailflow-backend/internal/message/dto"
	"mailflow-backend/internal/message/repository"
)

// MessageUsecase defines the interface for the message lifecycle engine
type MessageUsecase interface {
	// CreateAndSend persists a new pending message and immediately runs one
	// delivery attempt. Delivery failure is absorbed into the message status;
	// only persistence errors are returned.
	CreateAndSend(req *messagedto.SendMessageRequest) (*messagedomain.Message, error)

	// CreateCached persists a message in the cached state on behalf of the
	// consolidation engine. No delivery attempt is made.
	CreateCached(req *messagedto.SendMessageRequest, cacheKey string) (*messagedomain.Message, error)

	// GetByID retrieves a non-deleted message
	GetByID(id string) (*messagedomain.Message, error)

	// GetHistory retrieves the audit trail of a message
	GetHistory(id string) ([]*messagedomain.History, error)

	// List retrieves messages for a scope. page starts at 1, pageSize must be
	// within [1,100]; anything else is a validation error.
	List(scope repository.Scope, page, pageSize int) ([]*messagedomain.Message, int64, error)

	// SendImmediately runs one delivery attempt on an existing pending message
	SendImmediately(id string) (*messagedomain.Message, error)

	// ProcessPending attempts delivery for every candidate message in scope
	// and returns the number of attempts made
	ProcessPending(scope repository.Scope) (int, error)

	// Retry moves a failed message back to pending and attempts delivery.
	// The retry counter keeps incrementing across manual retries.
	Retry(id string) (*messagedomain.Message, error)

	// UpdateStatus overwrites the status guarded by the version token
	UpdateStatus(id string, status messagedomain.Status, statusMessage, version string) (*messagedomain.Message, error)

	// SoftDelete marks a message deleted guarded by the version token.
	// Returns false without error when the message is missing or already
	// deleted.
	SoftDelete(id, version string) (bool, error)

	// RecordConsolidation appends a consolidation audit entry to a message
	RecordConsolidation(messageID, cacheKey string, messageCount int)

	// SetEventPublisher enables status-change event publishing
	SetEventPublisher(pub events.Publisher)
}
