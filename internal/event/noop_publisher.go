package event

import (
	"context"
	"log/slog"
)

// NoopEventPublisher is used when no broker is configured. Events are only logged.
type NoopEventPublisher struct {
	logger *slog.Logger
}

var _ EventPublisher = (*NoopEventPublisher)(nil)

func NewNoopEventPublisher(logger *slog.Logger) *NoopEventPublisher {
	return &NoopEventPublisher{logger: logger.With("component", "NoopEventPublisher")}
}

func (p *NoopEventPublisher) PublishLoanStatusChanged(ctx context.Context, event LoanStatusChangedEvent) error {
	p.logger.DebugContext(ctx, "Dropping event", "routingKey", RoutingKeyLoanStatusChanged, "loanId", event.LoanID)
	return nil
}

func (p *NoopEventPublisher) PublishLoanOverdue(ctx context.Context, event LoanOverdueEvent) error {
	p.logger.DebugContext(ctx, "Dropping event", "routingKey", RoutingKeyLoanOverdue, "loanId", event.LoanID)
	return nil
}

func (p *NoopEventPublisher) PublishNotificationCreated(ctx context.Context, event NotificationCreatedEvent) error {
	p.logger.DebugContext(ctx, "Dropping event", "routingKey", RoutingKeyNotificationCreated, "notificationId", event.NotificationID)
	return nil
}

func (p *NoopEventPublisher) PublishPaymentRecorded(ctx context.Context, event PaymentRecordedEvent) error {
	p.logger.DebugContext(ctx, "Dropping event", "routingKey", RoutingKeyPaymentRecorded, "paymentId", event.PaymentID)
	return nil
}
