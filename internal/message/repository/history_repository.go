package repository

import (
	"time"

	"mailflow-backend/internal/message/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormHistoryRepository implements HistoryRepository using GORM
type gormHistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new GORM-based HistoryRepository
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &gormHistoryRepository{db: db}
}

func (r *gormHistoryRepository) Append(entry *domain.History) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now()
	return r.db.Create(entry).Error
}

func (r *gormHistoryRepository) FindByMessageID(messageID string) ([]*domain.History, error) {
	var entries []*domain.History
	err := r.db.Where("message_id = ?", messageID).Order("created_at ASC").Find(&entries).Error
	return entries, err
}
