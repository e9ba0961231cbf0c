package loan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"peer-lending/internal/domain/notification"
	"peer-lending/internal/event"
	"peer-lending/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

var serviceNow = time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

type serviceFixture struct {
	repo    *MockRepository
	network *MockNetwork
	sink    *MockSink
	pub     *MockPublisher
	svc     *loanService
}

// newFixture starts with u2 as an approved creditor of u1.
func newFixture() *serviceFixture {
	f := &serviceFixture{
		repo:    new(MockRepository),
		network: new(MockNetwork),
		sink:    new(MockSink),
		pub:     new(MockPublisher),
	}
	f.network.On("IsApprovedCreditor", mock.Anything, "u1", "u2").Return(true, nil).Maybe()
	f.svc = NewLoanService(f.repo, f.network, f.sink, f.pub, logger).(*loanService)
	f.svc.now = func() time.Time { return serviceNow }
	return f
}

func storedLoan(status Status) *Application {
	a := &Application{
		ID:               "loan-1",
		ApplicantID:      "u1",
		CreditorID:       "u2",
		Amount:           decimal.NewFromInt(5000),
		TermMonths:       24,
		InterestRate:     decimal.NewFromInt(5),
		Purpose:          "renovation",
		Status:           status,
		Date:             createdAt,
		DueDate:          createdAt.AddDate(0, 24, 0),
		CreditHistory:    "Average credit",
		MarketConditions: "Stable",
	}
	if status == StatusModified {
		a.Modification = &ModificationOffer{Terms: "Reduce to $4500", RequiresCoMaker: true}
	}
	return a
}

func TestNewLoanService_PanicsOnNilDependency(t *testing.T) {
	assert.Panics(t, func() { NewLoanService(nil, new(MockNetwork), new(MockSink), new(MockPublisher), logger) })
	assert.Panics(t, func() { NewLoanService(new(MockRepository), nil, new(MockSink), new(MockPublisher), logger) })
}

func TestCreateLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and notifies creditor", func(t *testing.T) {
		f := newFixture()
		f.repo.On("Create", ctx, mock.AnythingOfType("*loan.Application")).Return(nil)
		f.pub.On("PublishLoanStatusChanged", ctx, mock.MatchedBy(func(e event.LoanStatusChangedEvent) bool {
			return e.Action == "create" && e.NewStatus == "pending" && e.OldStatus == ""
		})).Return(nil)
		f.sink.On("Notify", ctx, mock.MatchedBy(func(n notification.Notification) bool {
			return n.RecipientID == "u2" &&
				n.Type == notification.TypeNewLoanRequest &&
				n.Message == "You have a new loan request for $5000." &&
				n.LoanID != ""
		})).Return(nil)

		loan, err := f.svc.CreateLoan(ctx, validInput())

		require.NoError(t, err)
		assert.Equal(t, StatusPending, loan.Status)
		assert.Equal(t, serviceNow, loan.Date)
		assert.Equal(t, serviceNow.AddDate(0, 24, 0), loan.DueDate)
		f.repo.AssertExpectations(t)
		f.sink.AssertExpectations(t)
		f.pub.AssertExpectations(t)
	})

	t.Run("validation error skips persistence", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		in.Amount = decimal.Zero

		_, err := f.svc.CreateLoan(ctx, in)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.sink.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("creditor outside the network is rejected", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		in.CreditorID = "stranger"
		f.network.On("IsApprovedCreditor", ctx, "u1", "stranger").Return(false, nil)

		_, err := f.svc.CreateLoan(ctx, in)

		require.ErrorIs(t, err, apperrors.ErrValidation)
		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "creditorId", vErr.Field)
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.sink.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("network lookup failure is surfaced", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		in.CreditorID = "u3"
		f.network.On("IsApprovedCreditor", ctx, "u1", "u3").Return(false, apperrors.ErrDatabase)

		_, err := f.svc.CreateLoan(ctx, in)

		assert.ErrorIs(t, err, apperrors.ErrDatabase)
		assert.NotErrorIs(t, err, apperrors.ErrValidation)
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("validation runs before the network lookup", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		in.Purpose = ""

		_, err := f.svc.CreateLoan(ctx, in)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		f.network.AssertNotCalled(t, "IsApprovedCreditor", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repository failure is surfaced", func(t *testing.T) {
		f := newFixture()
		f.repo.On("Create", ctx, mock.Anything).Return(apperrors.ErrDatabase)

		_, err := f.svc.CreateLoan(ctx, validInput())

		assert.ErrorIs(t, err, apperrors.ErrDatabase)
		f.sink.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("notification failure does not fail creation", func(t *testing.T) {
		f := newFixture()
		f.repo.On("Create", ctx, mock.Anything).Return(nil)
		f.pub.On("PublishLoanStatusChanged", ctx, mock.Anything).Return(errors.New("broker down"))
		f.sink.On("Notify", ctx, mock.Anything).Return(errors.New("inbox down"))

		loan, err := f.svc.CreateLoan(ctx, validInput())

		require.NoError(t, err)
		assert.NotNil(t, loan)
	})
}

func TestGetLoan(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   string
		repoErr error
		wantErr error
	}{
		{"applicant can read", "u1", nil, nil},
		{"creditor can read", "u2", nil, nil},
		{"stranger is forbidden", "u3", nil, apperrors.ErrForbidden},
		{"missing loan", "u1", apperrors.ErrNotFound, apperrors.ErrNotFound},
		{"database failure", "u1", apperrors.ErrDatabase, apperrors.ErrDatabase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.repoErr != nil {
				f.repo.On("GetByID", ctx, "loan-1").Return(nil, tt.repoErr)
			} else {
				f.repo.On("GetByID", ctx, "loan-1").Return(storedLoan(StatusPending), nil)
			}

			loan, err := f.svc.GetLoan(ctx, tt.actor, "loan-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, loan)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "loan-1", loan.ID)
		})
	}
}

func TestListLoans(t *testing.T) {
	ctx := context.Background()

	t.Run("applies default limit", func(t *testing.T) {
		f := newFixture()
		filter := ListFilter{Role: RoleCreditor, Status: StatusPending, Limit: DefaultListLimit}
		f.repo.On("ListByParty", ctx, "u2", filter).Return([]*Application{storedLoan(StatusPending)}, nil)

		loans, err := f.svc.ListLoans(ctx, "u2", ListFilter{Role: RoleCreditor, Status: StatusPending})

		require.NoError(t, err)
		assert.Len(t, loans, 1)
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		f := newFixture()
		f.repo.On("ListByParty", ctx, "u2", ListFilter{Limit: MaxListLimit}).Return(nil, nil)

		loans, err := f.svc.ListLoans(ctx, "u2", ListFilter{Limit: 100_000})

		require.NoError(t, err)
		assert.NotNil(t, loans)
		assert.Empty(t, loans)
	})

	t.Run("unknown role", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.ListLoans(ctx, "u2", ListFilter{Role: "guarantor"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.ListLoans(ctx, "u2", ListFilter{Status: "closed"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestTransitionService(t *testing.T) {
	ctx := context.Background()
	offer := ModificationOffer{Terms: "Reduce to $4500", RequiresCoMaker: true}

	tests := []struct {
		name          string
		from          Status
		actor         string
		action        Action
		wantStatus    Status
		wantRecipient string
		wantType      notification.Type
		wantMessage   string
	}{
		{"creditor approves", StatusPending, "u2", ActionApprove, StatusApproved, "u1", notification.TypeLoanAccepted, "Your loan application has been approved."},
		{"creditor approves modified", StatusModified, "u2", ActionApprove, StatusApproved, "u1", notification.TypeLoanAccepted, "Your loan application has been approved."},
		{"creditor rejects", StatusPending, "u2", ActionReject, StatusRejected, "u1", notification.TypeLoanAccepted, "Your loan application has been declined."},
		{"creditor modifies", StatusPending, "u2", ActionModify, StatusModified, "u1", notification.TypeLoanModified, "Your creditor has modified your loan terms: Reduce to $4500"},
		{"applicant accepts", StatusModified, "u1", ActionAccept, StatusApproved, "u2", notification.TypeLoanAccepted, "The applicant has accepted your modified loan terms."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.repo.On("GetByID", ctx, "loan-1").Return(storedLoan(tt.from), nil)
			f.repo.On("UpdateStatus", ctx, mock.MatchedBy(func(a *Application) bool {
				return a.Status == tt.wantStatus && a.UpdatedAt.Equal(serviceNow)
			}), tt.from).Return(nil)
			f.pub.On("PublishLoanStatusChanged", ctx, mock.MatchedBy(func(e event.LoanStatusChangedEvent) bool {
				return e.OldStatus == string(tt.from) && e.NewStatus == string(tt.wantStatus) && e.Action == string(tt.action)
			})).Return(nil)
			f.sink.On("Notify", ctx, notification.Notification{
				RecipientID: tt.wantRecipient,
				LoanID:      "loan-1",
				Type:        tt.wantType,
				Message:     tt.wantMessage,
			}).Return(nil)

			var (
				loan *Application
				err  error
			)
			switch tt.action {
			case ActionApprove:
				loan, err = f.svc.Approve(ctx, tt.actor, "loan-1")
			case ActionReject:
				loan, err = f.svc.Reject(ctx, tt.actor, "loan-1")
			case ActionModify:
				loan, err = f.svc.ProposeModification(ctx, tt.actor, "loan-1", offer)
			case ActionAccept:
				loan, err = f.svc.AcceptModification(ctx, tt.actor, "loan-1")
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, loan.Status)
			if tt.wantStatus == StatusModified {
				assert.Equal(t, &offer, loan.Modification)
			} else {
				assert.Nil(t, loan.Modification)
			}
			f.repo.AssertExpectations(t)
			f.sink.AssertExpectations(t)
			f.pub.AssertExpectations(t)
		})
	}
}

func TestTransitionService_Authorization(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		from   Status
		actor  string
		action Action
	}{
		{"applicant cannot approve", StatusPending, "u1", ActionApprove},
		{"applicant cannot reject", StatusPending, "u1", ActionReject},
		{"applicant cannot modify", StatusPending, "u1", ActionModify},
		{"creditor cannot accept", StatusModified, "u2", ActionAccept},
		{"stranger cannot approve", StatusPending, "u3", ActionApprove},
		{"stranger cannot accept", StatusModified, "u3", ActionAccept},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.repo.On("GetByID", ctx, "loan-1").Return(storedLoan(tt.from), nil)

			_, err := f.svc.transition(ctx, tt.actor, "loan-1", tt.action, ModificationOffer{Terms: "x"})

			assert.ErrorIs(t, err, apperrors.ErrForbidden)
			f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
			f.sink.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
		})
	}
}

func TestTransitionService_InvalidTransition(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.repo.On("GetByID", ctx, "loan-1").Return(storedLoan(StatusRejected), nil)

	_, err := f.svc.Reject(ctx, "u2", "loan-1")

	var tErr *TransitionError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, StatusRejected, tErr.From)
	assert.Equal(t, ActionReject, tErr.Action)
	f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	f.sink.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestTransitionService_BlankModificationTerms(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.repo.On("GetByID", ctx, "loan-1").Return(storedLoan(StatusPending), nil)

	_, err := f.svc.ProposeModification(ctx, "u2", "loan-1", ModificationOffer{})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTransitionService_LostRace(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.repo.On("GetByID", ctx, "loan-1").Return(storedLoan(StatusPending), nil)
	f.repo.On("UpdateStatus", ctx, mock.Anything, StatusPending).Return(apperrors.ErrConflict)

	_, err := f.svc.Approve(ctx, "u2", "loan-1")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	f.sink.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	f.pub.AssertNotCalled(t, "PublishLoanStatusChanged", mock.Anything, mock.Anything)
}

func TestTransitionService_LoanNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.repo.On("GetByID", ctx, "missing").Return(nil, apperrors.ErrNotFound)

	_, err := f.svc.AcceptModification(ctx, "u1", "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTransitionService_DoesNotMutateLoadedLoan(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	stored := storedLoan(StatusModified)
	f.repo.On("GetByID", ctx, "loan-1").Return(stored, nil)
	f.repo.On("UpdateStatus", ctx, mock.Anything, StatusModified).Return(apperrors.ErrConflict)

	_, err := f.svc.AcceptModification(ctx, "u1", "loan-1")

	require.Error(t, err)
	assert.Equal(t, StatusModified, stored.Status)
	assert.NotNil(t, stored.Modification)
}

func TestEstimatePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("amortized estimate", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByID", ctx, "loan-1").Return(storedLoan(StatusApproved), nil)

		est, err := f.svc.EstimatePayment(ctx, "u1", "loan-1")

		require.NoError(t, err)
		assert.Equal(t, "219.36", est.MonthlyPayment.String())
		assert.Equal(t, "5264.64", est.TotalPayment.String())
		assert.Equal(t, "264.64", est.TotalInterest.String())
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByID", ctx, "loan-1").Return(storedLoan(StatusApproved), nil)

		_, err := f.svc.EstimatePayment(ctx, "u9", "loan-1")

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}
