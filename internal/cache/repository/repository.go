package repository

import (
	"time"

	"mailflow-backend/internal/cache/domain"
)

// BucketRepository defines the interface for consolidation bucket data access
type BucketRepository interface {
	// Create persists a new bucket and assigns its ID
	Create(bucket *domain.Bucket) error

	// FindByKey finds the newest non-deleted bucket for a fingerprint
	FindByKey(key string) (*domain.Bucket, error)

	// FindExpired finds non-deleted buckets whose expiry has passed
	FindExpired(now time.Time) ([]*domain.Bucket, error)

	// Update writes the bucket back. Duplicate arrivals are deliberately not
	// version-guarded; concurrent increments may under-count.
	Update(bucket *domain.Bucket) error
}
