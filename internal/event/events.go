package event

import (
	"context"
	"time"
)

const (
	RoutingKeyLoanStatusChanged   = "loan.status.changed"
	RoutingKeyLoanOverdue         = "loan.overdue"
	RoutingKeyNotificationCreated = "notification.created"
	RoutingKeyPaymentRecorded     = "payment.recorded"
)

type EventPublisher interface {
	PublishLoanStatusChanged(ctx context.Context, event LoanStatusChangedEvent) error
	PublishLoanOverdue(ctx context.Context, event LoanOverdueEvent) error
	PublishNotificationCreated(ctx context.Context, event NotificationCreatedEvent) error
	PublishPaymentRecorded(ctx context.Context, event PaymentRecordedEvent) error
}

type LoanStatusChangedEvent struct {
	LoanID      string    `json:"loanId"`
	ApplicantID string    `json:"applicantId"`
	CreditorID  string    `json:"creditorId"`
	Action      string    `json:"action"`
	OldStatus   string    `json:"oldStatus,omitempty"`
	NewStatus   string    `json:"newStatus"`
	Timestamp   time.Time `json:"timestamp"`
}

type LoanOverdueEvent struct {
	LoanID      string    `json:"loanId"`
	ApplicantID string    `json:"applicantId"`
	CreditorID  string    `json:"creditorId"`
	Amount      string    `json:"amount"`
	PaidAmount  string    `json:"paidAmount"`
	DueDate     time.Time `json:"dueDate"`
	DaysOverdue int       `json:"daysOverdue"`
	Timestamp   time.Time `json:"timestamp"`
}

type NotificationCreatedEvent struct {
	NotificationID string    `json:"notificationId"`
	RecipientID    string    `json:"recipientId"`
	LoanID         string    `json:"loanId,omitempty"`
	Type           string    `json:"type"`
	Message        string    `json:"message"`
	Timestamp      time.Time `json:"timestamp"`
}

type PaymentRecordedEvent struct {
	PaymentID  string    `json:"paymentId"`
	LoanID     string    `json:"loanId"`
	PayerID    string    `json:"payerId"`
	ReceiverID string    `json:"receiverId"`
	Amount     string    `json:"amount"`
	Method     string    `json:"method"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}
