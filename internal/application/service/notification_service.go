package service

import (
	"context"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/domain/entity"
)

// NotificationService manages recipient-owned notifications
type NotificationService interface {
	Register(ctx context.Context, n *entity.Notification) error
	ListForRecipient(ctx context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id, recipientID int64) error
	MarkAllRead(ctx context.Context, recipientID int64) error
	Clear(ctx context.Context, recipientID int64) error
}

type notificationServiceImpl struct {
	notiRepo port.NotificationRepository
	logger   Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notiRepo port.NotificationRepository, logger Logger) NotificationService {
	return &notificationServiceImpl{notiRepo: notiRepo, logger: logger}
}

// Register stores a new unread notification for its recipient
func (s *notificationServiceImpl) Register(ctx context.Context, n *entity.Notification) error {
	if err := s.notiRepo.Create(ctx, n); err != nil {
		s.logger.Error("Failed to register notification",
			"error", err, "recipient_id", n.RecipientID, "type", n.Type)
		return err
	}

	s.logger.Info("Notification registered",
		"id", n.ID, "recipient_id", n.RecipientID, "type", n.Type)
	return nil
}

// ListForRecipient returns the recipient's notifications newest first
func (s *notificationServiceImpl) ListForRecipient(ctx context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	return s.notiRepo.ListByRecipient(ctx, recipientID, unreadOnly, limit, offset)
}

// MarkRead toggles a single notification to read. Scoped to the recipient
// so one user cannot mark another's rows.
func (s *notificationServiceImpl) MarkRead(ctx context.Context, id, recipientID int64) error {
	return s.notiRepo.MarkRead(ctx, id, recipientID)
}

// MarkAllRead toggles all of the recipient's notifications to read
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, recipientID int64) error {
	return s.notiRepo.MarkAllRead(ctx, recipientID)
}

// Clear removes all of the recipient's notifications
func (s *notificationServiceImpl) Clear(ctx context.Context, recipientID int64) error {
	if err := s.notiRepo.DeleteByRecipient(ctx, recipientID); err != nil {
		s.logger.Error("Failed to clear notifications", "error", err, "recipient_id", recipientID)
		return err
	}
	return nil
}
