package domain

import "time"

// Importance represents the delivery priority requested by the caller
type Importance string

const (
	ImportanceNormal Importance = "normal"
	ImportanceHigh   Importance = "high"
	ImportanceLow    Importance = "low"
)

// Ordinal returns a stable numeric value for fingerprinting
func (i Importance) Ordinal() int {
	switch i {
	case ImportanceHigh:
		return 1
	case ImportanceLow:
		return 2
	default:
		return 0
	}
}

// Valid reports whether the value is one of the known importance levels
func (i Importance) Valid() bool {
	switch i {
	case ImportanceNormal, ImportanceHigh, ImportanceLow:
		return true
	}
	return false
}

// Status represents the current lifecycle state of a message
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
	StatusCached  Status = "cached"
)

// Valid reports whether the value is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSent, StatusFailed, StatusCached:
		return true
	}
	return false
}

// Message is the lifecycle record of one outgoing email. Recipient lists are
// stored as delimited strings exactly as submitted; they are parsed only when
// a message is rendered for the transport.
type Message struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	CompanyID       string     `json:"company_id" gorm:"index:idx_messages_scope"`
	ApplicationID   string     `json:"application_id" gorm:"index:idx_messages_scope"`
	FromAddress     string     `json:"from_address"`
	ToAddresses     string     `json:"to_addresses" gorm:"not null"`
	CCAddresses     string     `json:"cc_addresses,omitempty"`
	BCCAddresses    string     `json:"bcc_addresses,omitempty"`
	Subject         string     `json:"subject"`
	Body            string     `json:"body"`
	Header          string     `json:"header,omitempty"`
	Footer          string     `json:"footer,omitempty"`
	IsBodyHTML      bool       `json:"is_body_html"`
	Importance      Importance `json:"importance" gorm:"default:normal"`
	Status          Status     `json:"status" gorm:"index;default:pending"`
	StatusMessage   string     `json:"status_message"`
	RetryCount      int        `json:"retry_count" gorm:"default:0"`
	MaxRetries      int        `json:"max_retries" gorm:"default:3"`
	LastAttemptedAt *time.Time `json:"last_attempted_at,omitempty"`
	IsDeleted       bool       `json:"is_deleted" gorm:"index;default:false"`
	Version         string     `json:"version" gorm:"not null"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
