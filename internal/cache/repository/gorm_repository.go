package repository

import (
	"errors"
	"time"

	"mailflow-backend/internal/cache/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormBucketRepository implements BucketRepository using GORM
type gormBucketRepository struct {
	db *gorm.DB
}

// NewBucketRepository creates a new GORM-based BucketRepository
func NewBucketRepository(db *gorm.DB) BucketRepository {
	return &gormBucketRepository{db: db}
}

func (r *gormBucketRepository) Create(bucket *domain.Bucket) error {
	if bucket.ID == "" {
		bucket.ID = uuid.New().String()
	}
	bucket.CreatedAt = time.Now()
	bucket.UpdatedAt = time.Now()
	return r.db.Create(bucket).Error
}

func (r *gormBucketRepository) FindByKey(key string) (*domain.Bucket, error) {
	var bucket domain.Bucket
	err := r.db.Where("cache_key = ? AND is_deleted = ?", key, false).
		Order("created_at DESC").First(&bucket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bucket, nil
}

func (r *gormBucketRepository) FindExpired(now time.Time) ([]*domain.Bucket, error) {
	var buckets []*domain.Bucket
	err := r.db.Where("expires_at <= ? AND is_deleted = ?", now, false).
		Order("expires_at ASC").Find(&buckets).Error
	return buckets, err
}

func (r *gormBucketRepository) Update(bucket *domain.Bucket) error {
	bucket.UpdatedAt = time.Now()
	return r.db.Save(bucket).Error
}
