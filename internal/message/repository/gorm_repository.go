package repository

import (
	"errors"
	"fmt"
	"time"

	"mailflow-backend/internal/message/domain"
	"mailflow-backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormMessageRepository implements MessageRepository using GORM
type gormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new GORM-based MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) Create(message *domain.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.Version = uuid.New().String()
	message.CreatedAt = time.Now()
	message.UpdatedAt = time.Now()
	return r.db.Create(message).Error
}

func (r *gormMessageRepository) FindByID(id string) (*domain.Message, error) {
	var message domain.Message
	err := r.db.Where("id = ?", id).First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r *gormMessageRepository) FindByScope(scope Scope, limit, offset int) ([]*domain.Message, int64, error) {
	var messages []*domain.Message
	var total int64

	query := r.db.Model(&domain.Message{}).Where("is_deleted = ?", false)
	if scope.CompanyID != "" {
		query = query.Where("company_id = ?", scope.CompanyID)
	}
	if scope.ApplicationID != "" {
		query = query.Where("application_id = ?", scope.ApplicationID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&messages).Error
	return messages, total, err
}

func (r *gormMessageRepository) FindDeliveryCandidates(scope Scope) ([]*domain.Message, error) {
	var messages []*domain.Message

	query := r.db.Where("status IN ?", []domain.Status{domain.StatusPending, domain.StatusFailed}).
		Where("retry_count <= max_retries").
		Where("is_deleted = ?", false)
	if scope.CompanyID != "" {
		query = query.Where("company_id = ?", scope.CompanyID)
	}
	if scope.ApplicationID != "" {
		query = query.Where("application_id = ?", scope.ApplicationID)
	}

	err := query.Order("created_at ASC").Find(&messages).Error
	return messages, err
}

// Update performs a compare-and-swap on the version column. The row is only
// written when the stored version still matches the one the message was
// loaded with; every successful write stamps a fresh version.
func (r *gormMessageRepository) Update(message *domain.Message) error {
	loadedVersion := message.Version
	message.Version = uuid.New().String()
	message.UpdatedAt = time.Now()

	res := r.db.Model(&domain.Message{}).
		Where("id = ? AND version = ?", message.ID, loadedVersion).
		Select("*").Omit("id", "created_at").
		Updates(message)
	if res.Error != nil {
		message.Version = loadedVersion
		return res.Error
	}
	if res.RowsAffected == 0 {
		message.Version = loadedVersion
		return fmt.Errorf("message %s: %w", message.ID, apperrors.ErrConflict)
	}
	return nil
}
