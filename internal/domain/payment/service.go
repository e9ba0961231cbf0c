package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"peer-lending/internal/domain/loan"
	"peer-lending/internal/domain/notification"
	"peer-lending/internal/event"
	"peer-lending/internal/infrastructure/monitoring"
	"peer-lending/internal/pkg/apperrors"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

type LoanReader interface {
	GetLoan(ctx context.Context, actorID, loanID string) (*loan.Application, error)
}

type NotificationSink interface {
	Notify(ctx context.Context, n notification.Notification) error
}

type PaymentService interface {
	RecordPayment(ctx context.Context, actorID string, in RecordInput) (*Payment, error)
	ListPayments(ctx context.Context, actorID string, filter ListFilter) ([]*Payment, error)
	Summary(ctx context.Context, actorID string) (*Summary, error)
}

var _ PaymentService = (*paymentService)(nil)

type paymentService struct {
	repo   Repository
	loans  LoanReader
	sink   NotificationSink
	pub    event.EventPublisher
	now    func() time.Time
	logger *slog.Logger
}

func NewPaymentService(repo Repository, loans LoanReader, sink NotificationSink, pub event.EventPublisher, logger *slog.Logger) PaymentService {
	if repo == nil || loans == nil || sink == nil || pub == nil || logger == nil {
		panic("payment service dependencies cannot be nil")
	}
	return &paymentService{
		repo:   repo,
		loans:  loans,
		sink:   sink,
		pub:    pub,
		now:    time.Now,
		logger: logger.With(slog.String("component", "paymentService")),
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, actorID string, in RecordInput) (*Payment, error) {
	logCtx := s.logger.With(slog.String("loanID", in.LoanID), slog.String("actorID", actorID))

	if in.Status == "" {
		in.Status = StatusCompleted
	}
	if err := validate(in); err != nil {
		logCtx.WarnContext(ctx, "Payment rejected by validation", slog.Any("error", err))
		return nil, err
	}

	application, err := s.loans.GetLoan(ctx, actorID, in.LoanID)
	if err != nil {
		return nil, err
	}
	if application.Status != loan.StatusApproved {
		logCtx.WarnContext(ctx, "Payment recorded against unapproved loan", slog.String("status", string(application.Status)))
		return nil, apperrors.NewValidationError("loanId", fmt.Sprintf("payments require an approved loan, loan is %s", application.Status))
	}

	now := s.now().UTC()
	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = now
	}
	p := &Payment{
		ID:         uuid.NewString(),
		LoanID:     application.ID,
		PayerID:    application.ApplicantID,
		ReceiverID: application.CreditorID,
		Amount:     in.Amount,
		Method:     in.Method,
		Status:     in.Status,
		Reference:  strings.TrimSpace(in.Reference),
		Notes:      strings.TrimSpace(in.Notes),
		PaidAt:     paidAt.UTC(),
		CreatedAt:  now,
	}

	if err := s.repo.Save(ctx, p); err != nil {
		logCtx.ErrorContext(ctx, "Failed to save payment", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}
	monitoring.RecordPayment(string(p.Method), string(p.Status))
	logCtx.InfoContext(ctx, "Payment recorded", slog.String("paymentID", p.ID), slog.String("amount", p.Amount.String()))

	recorded := event.PaymentRecordedEvent{
		PaymentID:  p.ID,
		LoanID:     p.LoanID,
		PayerID:    p.PayerID,
		ReceiverID: p.ReceiverID,
		Amount:     p.Amount.String(),
		Method:     string(p.Method),
		Status:     string(p.Status),
		Timestamp:  now,
	}
	if err := s.pub.PublishPaymentRecorded(ctx, recorded); err != nil {
		logCtx.ErrorContext(ctx, "Payment saved, but failed to publish event", slog.Any("error", err))
	}

	if p.Status == StatusCompleted {
		n := notification.Notification{
			RecipientID: p.ReceiverID,
			LoanID:      p.LoanID,
			Type:        notification.TypeLoanModified,
			Message:     fmt.Sprintf("Payment of $%s received.", p.Amount.String()),
		}
		if err := s.sink.Notify(ctx, n); err != nil {
			logCtx.ErrorContext(ctx, "Payment saved, but failed to notify receiver", slog.Any("error", err))
		}
	}
	return p, nil
}

func (s *paymentService) ListPayments(ctx context.Context, actorID string, filter ListFilter) ([]*Payment, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.NewValidationError("status", fmt.Sprintf("unknown status %q", filter.Status))
	}
	if filter.Method != "" && !filter.Method.Valid() {
		return nil, apperrors.NewValidationError("method", fmt.Sprintf("unknown method %q", filter.Method))
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}

	payments, err := s.repo.ListByUser(ctx, actorID, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list payments", slog.String("actorID", actorID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if payments == nil {
		payments = []*Payment{}
	}
	return payments, nil
}

func (s *paymentService) Summary(ctx context.Context, actorID string) (*Summary, error) {
	summary, err := s.repo.Summarize(ctx, actorID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to summarize payments", slog.String("actorID", actorID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to summarize payments: %w", err)
	}
	return summary, nil
}

func validate(in RecordInput) error {
	if strings.TrimSpace(in.LoanID) == "" {
		return apperrors.NewValidationError("loanId", "loan is required")
	}
	if err := loan.ValidateMoney("amount", in.Amount); err != nil {
		return err
	}
	if !in.Method.Valid() {
		return apperrors.NewValidationError("method", fmt.Sprintf("unknown method %q", in.Method))
	}
	if !in.Status.Valid() {
		return apperrors.NewValidationError("status", fmt.Sprintf("unknown status %q", in.Status))
	}
	return nil
}
