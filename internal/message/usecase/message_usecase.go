package usecase

import (
	"fmt"
	"log"
	"strings"
	"time"

	"mailflow-backend/internal/events"
	messagedomain "mailflow-backend/internal/message/domain"
	messagedto "mailflow-backend/internal/message/dto"
	"mailflow-backend/internal/message/repository"
	"mailflow-backend/pkg/apperrors"
	"mailflow-backend/pkg/errsink"
	"mailflow-backend/pkg/mailer"
)

// messageUsecase implements MessageUsecase. It is the only component that
// mutates message records; delivery outcomes are absorbed into the message
// status and never surface as call failures.
type messageUsecase struct {
	messageRepo       repository.MessageRepository
	historyRepo       repository.HistoryRepository
	transport         mailer.Transport
	sink              errsink.Sink
	publisher         events.Publisher
	defaultMaxRetries int
}

// NewMessageUsecase creates a new instance of messageUsecase
func NewMessageUsecase(messageRepo repository.MessageRepository, historyRepo repository.HistoryRepository, transport mailer.Transport, sink errsink.Sink, defaultMaxRetries int) MessageUsecase {
	if defaultMaxRetries <= 0 {
		defaultMaxRetries = 3
	}
	return &messageUsecase{
		messageRepo:       messageRepo,
		historyRepo:       historyRepo,
		transport:         transport,
		sink:              sink,
		defaultMaxRetries: defaultMaxRetries,
	}
}

func (u *messageUsecase) SetEventPublisher(pub events.Publisher) {
	u.publisher = pub
}

func (u *messageUsecase) CreateAndSend(req *messagedto.SendMessageRequest) (*messagedomain.Message, error) {
	message := u.buildMessage(req, messagedomain.StatusPending)
	message.StatusMessage = "queued for delivery"

	if err := u.messageRepo.Create(message); err != nil {
		return nil, err
	}
	u.appendHistory(message.ID, messagedomain.HistoryCreated, "message accepted for delivery")

	if err := u.deliverAttempt(message); err != nil {
		return nil, err
	}
	return message, nil
}

func (u *messageUsecase) CreateCached(req *messagedto.SendMessageRequest, cacheKey string) (*messagedomain.Message, error) {
	message := u.buildMessage(req, messagedomain.StatusCached)
	message.StatusMessage = "consolidated into cache bucket " + cacheKey

	if err := u.messageRepo.Create(message); err != nil {
		return nil, err
	}
	u.appendHistory(message.ID, messagedomain.HistoryCached, "held for consolidation in bucket "+cacheKey)
	return message, nil
}

func (u *messageUsecase) GetByID(id string) (*messagedomain.Message, error) {
	message, err := u.messageRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if message == nil || message.IsDeleted {
		return nil, fmt.Errorf("message %s: %w", id, apperrors.ErrNotFound)
	}
	return message, nil
}

func (u *messageUsecase) GetHistory(id string) ([]*messagedomain.History, error) {
	if _, err := u.GetByID(id); err != nil {
		return nil, err
	}
	return u.historyRepo.FindByMessageID(id)
}

func (u *messageUsecase) List(scope repository.Scope, page, pageSize int) ([]*messagedomain.Message, int64, error) {
	if page < 1 {
		return nil, 0, fmt.Errorf("page must be at least 1: %w", apperrors.ErrValidation)
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, 0, fmt.Errorf("page_size must be between 1 and 100: %w", apperrors.ErrValidation)
	}
	return u.messageRepo.FindByScope(scope, pageSize, (page-1)*pageSize)
}

func (u *messageUsecase) SendImmediately(id string) (*messagedomain.Message, error) {
	message, err := u.GetByID(id)
	if err != nil {
		return nil, err
	}
	if message.Status != messagedomain.StatusPending {
		return nil, fmt.Errorf("message %s is %s, only pending messages can be sent: %w", id, message.Status, apperrors.ErrInvalidState)
	}

	if err := u.deliverAttempt(message); err != nil {
		return nil, err
	}
	return message, nil
}

func (u *messageUsecase) ProcessPending(scope repository.Scope) (int, error) {
	candidates, err := u.messageRepo.FindDeliveryCandidates(scope)
	if err != nil {
		return 0, err
	}

	attempts := 0
	for _, message := range candidates {
		if message.Status != messagedomain.StatusPending {
			continue
		}

		// A pending message past its retry budget should have been failed on
		// its last attempt; close it out without touching the transport.
		if message.RetryCount > message.MaxRetries {
			oldStatus := message.Status
			message.Status = messagedomain.StatusFailed
			message.StatusMessage = "maximum retry attempts exceeded"
			if err := u.messageRepo.Update(message); err != nil {
				return attempts, err
			}
			u.appendHistory(message.ID, messagedomain.HistoryFailed, "terminally failed without a delivery attempt")
			u.sink.Record(errsink.LevelError, "MessageUsecase",
				fmt.Sprintf("message %s was pending with retry count %d past its budget of %d", message.ID, message.RetryCount, message.MaxRetries),
				"message_id="+message.ID)
			u.publishChange(oldStatus, message)
			continue
		}

		if err := u.deliverAttempt(message); err != nil {
			return attempts, err
		}
		attempts++
	}

	log.Printf("[MessageUsecase] Processed %d pending messages, made %d delivery attempts", len(candidates), attempts)
	return attempts, nil
}

func (u *messageUsecase) Retry(id string) (*messagedomain.Message, error) {
	message, err := u.GetByID(id)
	if err != nil {
		return nil, err
	}
	if message.Status != messagedomain.StatusFailed {
		return nil, fmt.Errorf("message %s is %s, only failed messages can be retried: %w", id, message.Status, apperrors.ErrInvalidState)
	}

	oldStatus := message.Status
	message.Status = messagedomain.StatusPending
	message.StatusMessage = "retry requested"
	if err := u.messageRepo.Update(message); err != nil {
		return nil, err
	}
	u.appendHistory(message.ID, messagedomain.HistoryRetried, fmt.Sprintf("manual retry requested after %d attempts", message.RetryCount))
	u.publishChange(oldStatus, message)

	if err := u.deliverAttempt(message); err != nil {
		return nil, err
	}
	return message, nil
}

func (u *messageUsecase) UpdateStatus(id string, status messagedomain.Status, statusMessage, version string) (*messagedomain.Message, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", status, apperrors.ErrValidation)
	}

	message, err := u.GetByID(id)
	if err != nil {
		return nil, err
	}
	if message.Version != version {
		return nil, fmt.Errorf("message %s: %w", id, apperrors.ErrConflict)
	}

	oldStatus := message.Status
	message.Status = status
	message.StatusMessage = statusMessage
	if err := u.messageRepo.Update(message); err != nil {
		return nil, err
	}
	u.appendHistory(message.ID, messagedomain.HistoryStatusUpdated, fmt.Sprintf("status changed from %s to %s", oldStatus, status))
	u.publishChange(oldStatus, message)
	return message, nil
}

func (u *messageUsecase) SoftDelete(id, version string) (bool, error) {
	message, err := u.messageRepo.FindByID(id)
	if err != nil {
		return false, err
	}
	if message == nil || message.IsDeleted {
		return false, nil
	}
	if message.Version != version {
		return false, fmt.Errorf("message %s: %w", id, apperrors.ErrConflict)
	}

	message.IsDeleted = true
	if err := u.messageRepo.Update(message); err != nil {
		return false, err
	}
	u.appendHistory(message.ID, messagedomain.HistorySoftDeleted, "message soft deleted")
	return true, nil
}

func (u *messageUsecase) RecordConsolidation(messageID, cacheKey string, messageCount int) {
	u.appendHistory(messageID, messagedomain.HistoryConsolidated,
		fmt.Sprintf("consolidates %d messages from bucket %s", messageCount, cacheKey))
}

// deliverAttempt runs one delivery attempt and persists the outcome. The
// returned error is a persistence failure only; transport outcomes are
// folded into the message status.
func (u *messageUsecase) deliverAttempt(message *messagedomain.Message) error {
	oldStatus := message.Status
	message.RetryCount++
	now := time.Now()
	message.LastAttemptedAt = &now

	accepted, sendErr := u.transport.Send(render(message))

	var action, detail string
	switch {
	case sendErr != nil:
		// Unexpected transport failure is not retried automatically
		message.Status = messagedomain.StatusFailed
		message.StatusMessage = "unexpected transport failure: " + sendErr.Error()
		action = messagedomain.HistoryFailed
		detail = message.StatusMessage
	case accepted:
		message.Status = messagedomain.StatusSent
		message.StatusMessage = "delivered"
		action = messagedomain.HistorySent
		detail = fmt.Sprintf("delivered on attempt %d", message.RetryCount)
	default:
		if message.RetryCount > message.MaxRetries {
			message.Status = messagedomain.StatusFailed
			message.StatusMessage = "maximum retry attempts exceeded"
			action = messagedomain.HistoryFailed
		} else {
			message.Status = messagedomain.StatusPending
			message.StatusMessage = "delivery attempt failed"
			action = messagedomain.HistoryFailedAttempt
		}
		detail = fmt.Sprintf("attempt %d of %d was not accepted by the transport", message.RetryCount, message.MaxRetries+1)
	}

	if err := u.messageRepo.Update(message); err != nil {
		return err
	}

	u.appendHistory(message.ID, action, detail)
	if message.Status != messagedomain.StatusSent {
		u.sink.Record(errsink.LevelError, "MessageUsecase",
			fmt.Sprintf("delivery attempt %d for message %s did not succeed", message.RetryCount, message.ID),
			"message_id="+message.ID+" status="+string(message.Status))
	}
	u.publishChange(oldStatus, message)
	return nil
}

func (u *messageUsecase) buildMessage(req *messagedto.SendMessageRequest, status messagedomain.Status) *messagedomain.Message {
	importance := messagedomain.Importance(strings.ToLower(strings.TrimSpace(req.Importance)))
	if !importance.Valid() {
		importance = messagedomain.ImportanceNormal
	}

	maxRetries := u.defaultMaxRetries
	if req.MaxRetries != nil && *req.MaxRetries >= 0 {
		maxRetries = *req.MaxRetries
	}

	return &messagedomain.Message{
		CompanyID:     req.CompanyID,
		ApplicationID: req.ApplicationID,
		FromAddress:   req.From,
		ToAddresses:   req.To,
		CCAddresses:   req.CC,
		BCCAddresses:  req.BCC,
		Subject:       req.Subject,
		Body:          req.Body,
		Header:        req.Header,
		Footer:        req.Footer,
		IsBodyHTML:    req.IsBodyHTML,
		Importance:    importance,
		Status:        status,
		MaxRetries:    maxRetries,
	}
}

// appendHistory writes an audit entry after the state mutation has committed.
// Audit failures are reported to the sink but never roll back the lifecycle.
func (u *messageUsecase) appendHistory(messageID, action, detail string) {
	entry := &messagedomain.History{
		MessageID: messageID,
		Action:    action,
		Detail:    detail,
	}
	if err := u.historyRepo.Append(entry); err != nil {
		u.sink.Record(errsink.LevelWarning, "MessageUsecase",
			fmt.Sprintf("failed to append %q history entry: %v", action, err),
			"message_id="+messageID)
	}
}

func (u *messageUsecase) publishChange(oldStatus messagedomain.Status, message *messagedomain.Message) {
	if u.publisher == nil || oldStatus == message.Status {
		return
	}
	u.publisher.PublishStatusChange(events.StatusEvent{
		MessageID:     message.ID,
		CompanyID:     message.CompanyID,
		ApplicationID: message.ApplicationID,
		OldStatus:     string(oldStatus),
		NewStatus:     string(message.Status),
		StatusMessage: message.StatusMessage,
		Timestamp:     time.Now(),
	})
}
