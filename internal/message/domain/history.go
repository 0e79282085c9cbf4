package domain

import "time"

// History actions recorded by the engines.
const (
	HistoryCreated       = "Created"
	HistorySent          = "Sent"
	HistoryFailedAttempt = "Failed Attempt"
	HistoryFailed        = "Failed"
	HistoryRetried       = "Retried"
	HistoryStatusUpdated = "Status Updated"
	HistorySoftDeleted   = "Soft Deleted"
	HistoryCached        = "Cached"
	HistoryConsolidated  = "Consolidated"
)

// History is one append-only audit entry for a message. Entries are never
// updated or deleted.
type History struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	MessageID string    `json:"message_id" gorm:"index;not null"`
	Action    string    `json:"action" gorm:"not null"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
