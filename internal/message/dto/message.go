package dto

import (
	messagedomain "mailflow-backend/internal/message/domain"
)

// SendMessageRequest is the payload for creating (and attempting) a message.
// Recipient fields accept comma- or semicolon-delimited address lists. The
// tenant scope is never bound from the body; handlers fill it in from the
// authenticated client.
type SendMessageRequest struct {
	From       string `json:"from"`
	To         string `json:"to" binding:"required"`
	CC         string `json:"cc"`
	BCC        string `json:"bcc"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Header     string `json:"header"`
	Footer     string `json:"footer"`
	IsBodyHTML bool   `json:"is_body_html"`
	Importance string `json:"importance"`
	MaxRetries *int   `json:"max_retries"`

	CompanyID     string `json:"-"`
	ApplicationID string `json:"-"`
}

// UpdateStatusRequest carries an optimistic-concurrency status overwrite
type UpdateStatusRequest struct {
	Status        string `json:"status" binding:"required"`
	StatusMessage string `json:"status_message"`
	Version       string `json:"version" binding:"required"`
}

// DeleteMessageRequest carries the version token for a soft delete
type DeleteMessageRequest struct {
	Version string `json:"version" binding:"required"`
}

type MessagesResponse struct {
	Messages []*messagedomain.Message `json:"messages"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
	Total    int64                    `json:"total"`
}

type HistoryResponse struct {
	History []*messagedomain.History `json:"history"`
}
