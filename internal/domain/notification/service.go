package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"peer-lending/internal/event"
	"peer-lending/internal/infrastructure/monitoring"
	"peer-lending/internal/pkg/apperrors"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type Service interface {
	Notify(ctx context.Context, n Notification) error
	List(ctx context.Context, recipientID string, limit int) (*Inbox, error)
	MarkRead(ctx context.Context, recipientID, notificationID string) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	Delete(ctx context.Context, recipientID, notificationID string) error
}

var _ Service = (*notificationService)(nil)

type notificationService struct {
	repo   Repository
	pub    event.EventPublisher
	push   PushSender
	now    func() time.Time
	logger *slog.Logger
}

// NewNotificationService builds the inbox service. push may be nil when no push channel is configured.
func NewNotificationService(repo Repository, pub event.EventPublisher, push PushSender, logger *slog.Logger) Service {
	if repo == nil || pub == nil {
		panic("notification service dependencies cannot be nil")
	}
	return &notificationService{
		repo:   repo,
		pub:    pub,
		push:   push,
		now:    time.Now,
		logger: logger.With(slog.String("component", "notificationService")),
	}
}

func (s *notificationService) Notify(ctx context.Context, n Notification) error {
	logCtx := s.logger.With(slog.String("recipientID", n.RecipientID), slog.String("type", string(n.Type)))

	if strings.TrimSpace(n.RecipientID) == "" {
		return apperrors.NewValidationError("recipientId", "recipient is required")
	}
	if !n.Type.Valid() {
		return apperrors.NewValidationError("type", fmt.Sprintf("unknown notification type %q", n.Type))
	}
	if strings.TrimSpace(n.Message) == "" {
		return apperrors.NewValidationError("message", "message is required")
	}

	n.ID = uuid.NewString()
	n.Read = false
	n.CreatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, &n); err != nil {
		logCtx.ErrorContext(ctx, "Failed to save notification", slog.Any("error", err))
		monitoring.RecordNotification(string(n.Type), "error")
		return fmt.Errorf("failed to save notification: %w", err)
	}
	monitoring.RecordNotification(string(n.Type), "success")
	logCtx.InfoContext(ctx, "Notification stored", slog.String("notificationID", n.ID))

	createdEvent := event.NotificationCreatedEvent{
		NotificationID: n.ID,
		RecipientID:    n.RecipientID,
		LoanID:         n.LoanID,
		Type:           string(n.Type),
		Message:        n.Message,
		Timestamp:      n.CreatedAt,
	}
	if err := s.pub.PublishNotificationCreated(ctx, createdEvent); err != nil {
		logCtx.ErrorContext(ctx, "Notification stored, but failed to publish event", slog.Any("error", err))
	}

	if s.push != nil {
		if err := s.push.Push(ctx, &n); err != nil {
			logCtx.WarnContext(ctx, "Failed to push notification", slog.Any("error", err))
		}
	}
	return nil
}

func (s *notificationService) List(ctx context.Context, recipientID string, limit int) (*Inbox, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	items, err := s.repo.ListByRecipient(ctx, recipientID, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list notifications", slog.String("recipientID", recipientID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	unread, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to count unread notifications", slog.String("recipientID", recipientID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	if items == nil {
		items = []*Notification{}
	}
	return &Inbox{Notifications: items, UnreadCount: unread}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	if err := s.repo.MarkRead(ctx, notificationID, recipientID); err != nil {
		s.logger.WarnContext(ctx, "Failed to mark notification read",
			slog.String("notificationID", notificationID), slog.Any("error", err))
		return fmt.Errorf("failed to mark notification %s read: %w", notificationID, err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	count, err := s.repo.MarkAllRead(ctx, recipientID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to mark all notifications read", slog.String("recipientID", recipientID), slog.Any("error", err))
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	s.logger.InfoContext(ctx, "Marked notifications read", slog.String("recipientID", recipientID), slog.Int64("count", count))
	return count, nil
}

func (s *notificationService) Delete(ctx context.Context, recipientID, notificationID string) error {
	if err := s.repo.Delete(ctx, notificationID, recipientID); err != nil {
		s.logger.WarnContext(ctx, "Failed to delete notification",
			slog.String("notificationID", notificationID), slog.Any("error", err))
		return fmt.Errorf("failed to delete notification %s: %w", notificationID, err)
	}
	return nil
}
