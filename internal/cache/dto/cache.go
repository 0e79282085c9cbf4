package dto

import (
	messagedto "mailflow-backend/internal/message/dto"
)

// CacheMessageRequest is a send request routed through the consolidation
// engine. TTLSeconds controls the sliding window of the bucket; the
// configured default applies when it is zero.
type CacheMessageRequest struct {
	messagedto.SendMessageRequest
	TTLSeconds int `json:"ttl_seconds"`
}
