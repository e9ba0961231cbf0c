package notification

import "context"

type Repository interface {
	Save(ctx context.Context, n *Notification) error

	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]*Notification, error)

	CountUnread(ctx context.Context, recipientID string) (int, error)

	// MarkRead returns apperrors.ErrNotFound when the notification does not belong to the recipient.
	MarkRead(ctx context.Context, id, recipientID string) error

	MarkAllRead(ctx context.Context, recipientID string) (int64, error)

	Delete(ctx context.Context, id, recipientID string) error
}
