package errsink

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LevelWarning = "warning"
	LevelError   = "error"
)

// ErrorLog is one operational error record. Rows are written for visibility
// only and never read back by the engines.
type ErrorLog struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Level     string    `json:"level" gorm:"index"`
	Source    string    `json:"source" gorm:"index"`
	Message   string    `json:"message"`
	Context   string    `json:"context"`
	CreatedAt time.Time `json:"created_at"`
}

// Sink records operational errors. Recording must never affect control flow,
// so implementations swallow their own failures.
type Sink interface {
	Record(level, source, message, context string)
}

type gormSink struct {
	db *gorm.DB
}

// NewSink creates a database-backed Sink that mirrors every record to the log
func NewSink(db *gorm.DB) Sink {
	return &gormSink{db: db}
}

func (s *gormSink) Record(level, source, message, context string) {
	log.Printf("[ErrorSink] %s %s: %s (%s)", level, source, message, context)

	entry := &ErrorLog{
		ID:        uuid.New().String(),
		Level:     level,
		Source:    source,
		Message:   message,
		Context:   context,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(entry).Error; err != nil {
		log.Printf("[ErrorSink] failed to persist error log entry: %v", err)
	}
}
