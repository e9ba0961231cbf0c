package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"peer-lending/internal/api/handler/dto"
	"peer-lending/internal/api/middleware"
	"peer-lending/internal/domain/assessment"
	"peer-lending/internal/domain/creditor"
	"peer-lending/internal/domain/loan"
	"peer-lending/internal/domain/notification"
	"peer-lending/internal/domain/payment"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) loanResult(args mock.Arguments) (*loan.Application, error) {
	if l, ok := args.Get(0).(*loan.Application); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) CreateLoan(ctx context.Context, in loan.CreateInput) (*loan.Application, error) {
	return m.loanResult(m.Called(ctx, in))
}

func (m *MockLoanService) GetLoan(ctx context.Context, actorID, loanID string) (*loan.Application, error) {
	return m.loanResult(m.Called(ctx, actorID, loanID))
}

func (m *MockLoanService) ListLoans(ctx context.Context, actorID string, filter loan.ListFilter) ([]*loan.Application, error) {
	args := m.Called(ctx, actorID, filter)
	if loans, ok := args.Get(0).([]*loan.Application); ok {
		return loans, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) Approve(ctx context.Context, actorID, loanID string) (*loan.Application, error) {
	return m.loanResult(m.Called(ctx, actorID, loanID))
}

func (m *MockLoanService) Reject(ctx context.Context, actorID, loanID string) (*loan.Application, error) {
	return m.loanResult(m.Called(ctx, actorID, loanID))
}

func (m *MockLoanService) ProposeModification(ctx context.Context, actorID, loanID string, offer loan.ModificationOffer) (*loan.Application, error) {
	return m.loanResult(m.Called(ctx, actorID, loanID, offer))
}

func (m *MockLoanService) AcceptModification(ctx context.Context, actorID, loanID string) (*loan.Application, error) {
	return m.loanResult(m.Called(ctx, actorID, loanID))
}

func (m *MockLoanService) EstimatePayment(ctx context.Context, actorID, loanID string) (*loan.PaymentEstimate, error) {
	args := m.Called(ctx, actorID, loanID)
	if e, ok := args.Get(0).(*loan.PaymentEstimate); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAssessmentService struct {
	mock.Mock
}

func (m *MockAssessmentService) Assess(ctx context.Context, req assessment.Request) (*assessment.Result, error) {
	args := m.Called(ctx, req)
	if r, ok := args.Get(0).(*assessment.Result); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssessmentService) AssessLoan(ctx context.Context, actorID, loanID string) (*assessment.Result, error) {
	args := m.Called(ctx, actorID, loanID)
	if r, ok := args.Get(0).(*assessment.Result); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, n notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationService) List(ctx context.Context, recipientID string, limit int) (*notification.Inbox, error) {
	args := m.Called(ctx, recipientID, limit)
	if inbox, ok := args.Get(0).(*notification.Inbox); ok {
		return inbox, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	return m.Called(ctx, recipientID, notificationID).Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) Delete(ctx context.Context, recipientID, notificationID string) error {
	return m.Called(ctx, recipientID, notificationID).Error(0)
}

type MockCreditorService struct {
	mock.Mock
}

func (m *MockCreditorService) creditorResult(args mock.Arguments) (*creditor.Creditor, error) {
	if c, ok := args.Get(0).(*creditor.Creditor); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCreditorService) Add(ctx context.Context, ownerID string, in creditor.AddInput) (*creditor.Creditor, error) {
	return m.creditorResult(m.Called(ctx, ownerID, in))
}

func (m *MockCreditorService) Get(ctx context.Context, ownerID, id string) (*creditor.Creditor, error) {
	return m.creditorResult(m.Called(ctx, ownerID, id))
}

func (m *MockCreditorService) List(ctx context.Context, ownerID string, filter creditor.ListFilter) (*creditor.Network, error) {
	args := m.Called(ctx, ownerID, filter)
	if n, ok := args.Get(0).(*creditor.Network); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCreditorService) Update(ctx context.Context, ownerID, id string, in creditor.UpdateInput) (*creditor.Creditor, error) {
	return m.creditorResult(m.Called(ctx, ownerID, id, in))
}

func (m *MockCreditorService) Rate(ctx context.Context, ownerID, id string, rating int) (*creditor.Creditor, error) {
	return m.creditorResult(m.Called(ctx, ownerID, id, rating))
}

func (m *MockCreditorService) Delete(ctx context.Context, ownerID, id string) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *MockCreditorService) IsApprovedCreditor(ctx context.Context, applicantID, creditorID string) (bool, error) {
	args := m.Called(ctx, applicantID, creditorID)
	return args.Bool(0), args.Error(1)
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) RecordPayment(ctx context.Context, actorID string, in payment.RecordInput) (*payment.Payment, error) {
	args := m.Called(ctx, actorID, in)
	if p, ok := args.Get(0).(*payment.Payment); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentService) ListPayments(ctx context.Context, actorID string, filter payment.ListFilter) ([]*payment.Payment, error) {
	args := m.Called(ctx, actorID, filter)
	if p, ok := args.Get(0).([]*payment.Payment); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentService) Summary(ctx context.Context, actorID string) (*payment.Summary, error) {
	args := m.Called(ctx, actorID)
	if s, ok := args.Get(0).(*payment.Summary); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// serve routes a single request through chi so URL params resolve, acting as user when non-empty.
func serve(h http.HandlerFunc, method, pattern, target, body, user string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Method(method, pattern, h)

	var reader io.Reader = http.NoBody
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if user != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), user))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorDetail {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}
