package payment

import (
	"context"

	"peer-lending/internal/domain/loan"
	"peer-lending/internal/domain/notification"
	"peer-lending/internal/event"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Save(ctx context.Context, p *Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID string, filter ListFilter) ([]*Payment, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Payment), args.Error(1)
}

func (m *MockRepository) Summarize(ctx context.Context, userID string) (*Summary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Summary), args.Error(1)
}

type MockLoanReader struct {
	mock.Mock
}

func (m *MockLoanReader) GetLoan(ctx context.Context, actorID, loanID string) (*loan.Application, error) {
	args := m.Called(ctx, actorID, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loan.Application), args.Error(1)
}

type MockSink struct {
	mock.Mock
}

func (m *MockSink) Notify(ctx context.Context, n notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishLoanStatusChanged(ctx context.Context, e event.LoanStatusChangedEvent) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockPublisher) PublishLoanOverdue(ctx context.Context, e event.LoanOverdueEvent) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockPublisher) PublishNotificationCreated(ctx context.Context, e event.NotificationCreatedEvent) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockPublisher) PublishPaymentRecorded(ctx context.Context, e event.PaymentRecordedEvent) error {
	return m.Called(ctx, e).Error(0)
}
