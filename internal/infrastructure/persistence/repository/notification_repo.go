package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/domain/entity"
)

// NotificationRepository implements port.NotificationRepository
type NotificationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB, logger *zap.Logger) port.NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new notification
func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (recipient_id, recipient_name, actor_id, title, message, type, url, read)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		n.RecipientID,
		n.RecipientName,
		n.ActorID,
		n.Title,
		n.Message,
		n.Type,
		n.URL,
	)
	if err != nil {
		r.logger.Error("Failed to create notification",
			zap.Int64("recipient_id", n.RecipientID),
			zap.Error(err))
		return fmt.Errorf("failed to create notification: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	n.ID = id
	return nil
}

// ListByRecipient retrieves a recipient's notifications, newest first
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, recipient_id, recipient_name, actor_id, title, message, type, url, read, created_at
		FROM notifications
		WHERE recipient_id = ?
	`
	args := []interface{}{recipientID}

	if unreadOnly {
		query += ` AND read = 0`
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list notifications", zap.Int64("recipient_id", recipientID), zap.Error(err))
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		err := rows.Scan(
			&n.ID,
			&n.RecipientID,
			&n.RecipientName,
			&n.ActorID,
			&n.Title,
			&n.Message,
			&n.Type,
			&n.URL,
			&n.Read,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

// MarkRead marks one of the recipient's notifications as read
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID int64) error {
	query := `UPDATE notifications SET read = 1 WHERE id = ? AND recipient_id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id, recipientID)
	if err != nil {
		r.logger.Error("Failed to mark notification read", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	return nil
}

// MarkAllRead marks every notification of the recipient as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID int64) error {
	query := `UPDATE notifications SET read = 1 WHERE recipient_id = ? AND read = 0`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, recipientID)
	if err != nil {
		r.logger.Error("Failed to mark all notifications read", zap.Int64("recipient_id", recipientID), zap.Error(err))
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	return nil
}

// DeleteByRecipient removes every notification owned by the recipient
func (r *NotificationRepository) DeleteByRecipient(ctx context.Context, recipientID int64) error {
	query := `DELETE FROM notifications WHERE recipient_id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, recipientID)
	if err != nil {
		r.logger.Error("Failed to delete notifications", zap.Int64("recipient_id", recipientID), zap.Error(err))
		return fmt.Errorf("failed to delete notifications: %w", err)
	}

	return nil
}

// Verify interface compliance
var _ port.NotificationRepository = (*NotificationRepository)(nil)
