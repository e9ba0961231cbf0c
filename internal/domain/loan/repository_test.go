package loan

import (
	"context"
	"time"

	"peer-lending/internal/domain/notification"
	"peer-lending/internal/event"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, loan *Application) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, loanID string) (*Application, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Application), args.Error(1)
}

func (m *MockRepository) ListByParty(ctx context.Context, userID string, filter ListFilter) ([]*Application, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Application), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, loan *Application, expected Status) error {
	args := m.Called(ctx, loan, expected)
	return args.Error(0)
}

func (m *MockRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]*OverdueLoan, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*OverdueLoan), args.Error(1)
}

type MockNetwork struct {
	mock.Mock
}

func (m *MockNetwork) IsApprovedCreditor(ctx context.Context, applicantID, creditorID string) (bool, error) {
	args := m.Called(ctx, applicantID, creditorID)
	return args.Bool(0), args.Error(1)
}

type MockSink struct {
	mock.Mock
}

func (m *MockSink) Notify(ctx context.Context, n notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
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
