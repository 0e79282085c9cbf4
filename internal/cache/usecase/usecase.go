package usecase

import (
	cachedto "mailflow-backend/internal/cache/dto"
	messagedomain "mailflow-backend/internal/message/domain"
	messagedto "mailflow-backend/internal/message/dto"
)

// CacheUsecase defines the interface for the consolidation engine
type CacheUsecase interface {
	// SendOrCache folds the request into a live bucket for its fingerprint,
	// creating the bucket if none exists, and records a cached message
	SendOrCache(req *cachedto.CacheMessageRequest) (*messagedomain.Message, error)

	// FlushExpired sends one consolidated message per expired bucket and
	// returns the number of buckets successfully flushed. Buckets whose
	// consolidated send fails stay expired and are retried on the next call.
	FlushExpired() (int, error)
}

// MessageSender is the slice of the lifecycle engine the consolidation
// engine submits through
type MessageSender interface {
	CreateAndSend(req *messagedto.SendMessageRequest) (*messagedomain.Message, error)
	CreateCached(req *messagedto.SendMessageRequest, cacheKey string) (*messagedomain.Message, error)
	RecordConsolidation(messageID, cacheKey string, messageCount int)
}
