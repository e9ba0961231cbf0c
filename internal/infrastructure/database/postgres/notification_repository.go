package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"peer-lending/internal/domain/notification"
	"peer-lending/internal/infrastructure/monitoring"
	"peer-lending/internal/pkg/apperrors"
)

type NotificationRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ notification.Repository = (*NotificationRepository)(nil)

func NewNotificationRepository(db DBPool, logger *slog.Logger) *NotificationRepository {
	return &NotificationRepository{db: db, logger: logger.With("component", "NotificationRepository")}
}

func (r *NotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	query := `
        INSERT INTO notifications (id, recipient_id, loan_id, type, message, read, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`
	status := statusSuccess
	startTime := time.Now()

	var loanID any
	if n.LoanID != "" {
		loanID = n.LoanID
	}

	_, err := r.db.Exec(ctx, query, n.ID, n.RecipientID, loanID, string(n.Type), n.Message, n.Read, n.CreatedAt)
	if err != nil {
		status = statusError
	}
	monitoring.RecordDBQuery("SaveNotification", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert notification", "notification_id", n.ID, "error", err)
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]*notification.Notification, error) {
	query := `
        SELECT id, recipient_id, COALESCE(loan_id::text, ''), type, message, read, created_at
        FROM notifications
        WHERE recipient_id = $1
        ORDER BY created_at DESC
        LIMIT $2`
	status := statusSuccess
	startTime := time.Now()
	defer func() {
		monitoring.RecordDBQuery("ListNotificationsByRecipient", status, time.Since(startTime))
	}()

	rows, err := r.db.Query(ctx, query, recipientID, limit)
	if err != nil {
		status = statusError
		r.logger.ErrorContext(ctx, "Failed to query notifications", "recipient_id", recipientID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	list := make([]*notification.Notification, 0)
	for rows.Next() {
		var (
			n       notification.Notification
			msgType string
		)
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.LoanID, &msgType, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			status = statusError
			r.logger.ErrorContext(ctx, "Failed to scan notification row", "recipient_id", recipientID, "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		n.Type = notification.Type(msgType)
		list = append(list, &n)
	}
	if err := rows.Err(); err != nil {
		status = statusError
		r.logger.ErrorContext(ctx, "Error iterating notification rows", "recipient_id", recipientID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return list, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID string) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND read = FALSE`
	status := statusSuccess
	startTime := time.Now()

	var count int
	err := r.db.QueryRow(ctx, query, recipientID).Scan(&count)
	if err != nil {
		status = statusError
	}
	monitoring.RecordDBQuery("CountUnreadNotifications", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to count unread notifications", "recipient_id", recipientID, "error", err)
		return 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return count, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE id = $1 AND recipient_id = $2`
	return r.execOwned(ctx, "MarkNotificationRead", query, id, recipientID)
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	query := `UPDATE notifications SET read = TRUE WHERE recipient_id = $1 AND read = FALSE`
	status := statusSuccess
	startTime := time.Now()

	cmdTag, err := r.db.Exec(ctx, query, recipientID)
	if err != nil {
		status = statusError
	}
	monitoring.RecordDBQuery("MarkAllNotificationsRead", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to mark notifications read", "recipient_id", recipientID, "error", err)
		return 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id, recipientID string) error {
	query := `DELETE FROM notifications WHERE id = $1 AND recipient_id = $2`
	return r.execOwned(ctx, "DeleteNotification", query, id, recipientID)
}

// execOwned runs a statement scoped to one recipient's notification. Touching no row means the
// notification does not exist for that recipient.
func (r *NotificationRepository) execOwned(ctx context.Context, name, query, id, recipientID string) error {
	status := statusSuccess
	startTime := time.Now()

	cmdTag, err := r.db.Exec(ctx, query, id, recipientID)
	if err != nil {
		status = statusError
	}
	monitoring.RecordDBQuery(name, status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Notification statement failed", "operation", name, "notification_id", id, "error", err)
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Notification not found for recipient", "notification_id", id, "recipient_id", recipientID)
		return apperrors.ErrNotFound
	}
	return nil
}
