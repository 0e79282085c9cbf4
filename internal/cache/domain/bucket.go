package domain

import (
	"time"

	messagedomain "mailflow-backend/internal/message/domain"
)

// Bucket accumulates near-duplicate send requests under one fingerprint
// until its sliding expiry passes and the consolidation engine flushes it.
// The envelope and content snapshot come from the first request that
// established the bucket.
type Bucket struct {
	ID            string                   `json:"id" gorm:"primaryKey"`
	CacheKey      string                   `json:"cache_key" gorm:"index;not null"`
	CompanyID     string                   `json:"company_id"`
	ApplicationID string                   `json:"application_id"`
	FromAddress   string                   `json:"from_address"`
	ToAddresses   string                   `json:"to_addresses"`
	CCAddresses   string                   `json:"cc_addresses,omitempty"`
	BCCAddresses  string                   `json:"bcc_addresses,omitempty"`
	Subject       string                   `json:"subject"`
	Body          string                   `json:"body"`
	Header        string                   `json:"header,omitempty"`
	Footer        string                   `json:"footer,omitempty"`
	IsBodyHTML    bool                     `json:"is_body_html"`
	Importance    messagedomain.Importance `json:"importance" gorm:"default:normal"`
	MessageCount  int                      `json:"message_count" gorm:"default:1"`
	ExpiresAt     time.Time                `json:"expires_at" gorm:"index"`
	IsDeleted     bool                     `json:"is_deleted" gorm:"index;default:false"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// Live reports whether the bucket can still absorb duplicates
func (b *Bucket) Live(now time.Time) bool {
	return !b.IsDeleted && b.ExpiresAt.After(now)
}
