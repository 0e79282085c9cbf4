package delivery

import (
	"errors"
	"net/http"
	"strconv"

	messagedomain "mailflow-backend/internal/message/domain"
	messagedto "mailflow-backend/internal/message/dto"
	"mailflow-backend/internal/message/repository"
	"mailflow-backend/internal/message/usecase"
	"mailflow-backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageUsecase usecase.MessageUsecase
}

func NewMessageHandler(messageUsecase usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{
		messageUsecase: messageUsecase,
	}
}

// scopeFromContext reads the tenant scope injected by the auth middleware
func scopeFromContext(c *gin.Context) repository.Scope {
	return repository.Scope{
		CompanyID:     c.GetString("companyID"),
		ApplicationID: c.GetString("applicationID"),
	}
}

// respondError maps the typed error taxonomy to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// Send creates a message and immediately attempts delivery
// POST /api/messages
func (h *MessageHandler) Send(c *gin.Context) {
	var req messagedto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	scope := scopeFromContext(c)
	req.CompanyID = scope.CompanyID
	req.ApplicationID = scope.ApplicationID

	message, err := h.messageUsecase.CreateAndSend(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetByID returns a single message
// GET /api/messages/:id
func (h *MessageHandler) GetByID(c *gin.Context) {
	message, err := h.messageUsecase.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

// GetHistory returns the audit trail of a message
// GET /api/messages/:id/history
func (h *MessageHandler) GetHistory(c *gin.Context) {
	history, err := h.messageUsecase.GetHistory(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, messagedto.HistoryResponse{History: history})
}

// List returns messages for the authenticated scope
// GET /api/messages?page=1&page_size=20
func (h *MessageHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer"})
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page_size must be an integer"})
		return
	}

	messages, total, err := h.messageUsecase.List(scopeFromContext(c), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, messagedto.MessagesResponse{
		Messages: messages,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

// SendImmediately runs one delivery attempt on an existing pending message
// POST /api/messages/:id/send
func (h *MessageHandler) SendImmediately(c *gin.Context) {
	message, err := h.messageUsecase.SendImmediately(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

// ProcessPending attempts delivery for every candidate message in scope
// POST /api/messages/process-pending
func (h *MessageHandler) ProcessPending(c *gin.Context) {
	attempts, err := h.messageUsecase.ProcessPending(scopeFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attempts": attempts})
}

// Retry moves a failed message back to pending and attempts delivery
// POST /api/messages/:id/retry
func (h *MessageHandler) Retry(c *gin.Context) {
	message, err := h.messageUsecase.Retry(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

// UpdateStatus overwrites the status guarded by the version token
// PATCH /api/messages/:id/status
func (h *MessageHandler) UpdateStatus(c *gin.Context) {
	var req messagedto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messageUsecase.UpdateStatus(c.Param("id"), messagedomain.Status(req.Status), req.StatusMessage, req.Version)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

// SoftDelete marks a message deleted guarded by the version token
// DELETE /api/messages/:id
func (h *MessageHandler) SoftDelete(c *gin.Context) {
	var req messagedto.DeleteMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, err := h.messageUsecase.SoftDelete(c.Param("id"), req.Version)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
