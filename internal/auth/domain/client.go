package domain

import "time"

// Client is an API credential scoped to one company/application pair. The
// scope is used for filtering only, never for authorization decisions beyond
// identifying the tenant.
type Client struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name"`
	CompanyID     string    `json:"company_id" gorm:"index;not null"`
	ApplicationID string    `json:"application_id" gorm:"index;not null"`
	SecretHash    string    `json:"-" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
