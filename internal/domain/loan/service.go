package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"peer-lending/internal/domain/notification"
	"peer-lending/internal/event"
	"peer-lending/internal/infrastructure/monitoring"
	"peer-lending/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// NotificationSink receives the counterparty message produced by each successful transition.
type NotificationSink interface {
	Notify(ctx context.Context, n notification.Notification) error
}

// CreditorNetwork answers whether a user may be asked for a loan by an applicant.
type CreditorNetwork interface {
	IsApprovedCreditor(ctx context.Context, applicantID, creditorID string) (bool, error)
}

type PaymentEstimate struct {
	LoanID         string
	MonthlyPayment decimal.Decimal
	TotalPayment   decimal.Decimal
	TotalInterest  decimal.Decimal
}

type LoanService interface {
	CreateLoan(ctx context.Context, in CreateInput) (*Application, error)
	GetLoan(ctx context.Context, actorID, loanID string) (*Application, error)
	ListLoans(ctx context.Context, actorID string, filter ListFilter) ([]*Application, error)
	Approve(ctx context.Context, actorID, loanID string) (*Application, error)
	Reject(ctx context.Context, actorID, loanID string) (*Application, error)
	ProposeModification(ctx context.Context, actorID, loanID string, offer ModificationOffer) (*Application, error)
	AcceptModification(ctx context.Context, actorID, loanID string) (*Application, error)
	EstimatePayment(ctx context.Context, actorID, loanID string) (*PaymentEstimate, error)
}

var _ LoanService = (*loanService)(nil)

type loanService struct {
	repo    Repository
	network CreditorNetwork
	sink    NotificationSink
	pub     event.EventPublisher
	now     func() time.Time
	logger  *slog.Logger
}

func NewLoanService(repo Repository, network CreditorNetwork, sink NotificationSink, pub event.EventPublisher, logger *slog.Logger) LoanService {
	if repo == nil || network == nil || sink == nil || pub == nil || logger == nil {
		panic("loan service dependencies cannot be nil")
	}
	return &loanService{
		repo:    repo,
		network: network,
		sink:    sink,
		pub:     pub,
		now:     time.Now,
		logger:  logger.With(slog.String("component", "loanService")),
	}
}

func (s *loanService) CreateLoan(ctx context.Context, in CreateInput) (*Application, error) {
	s.logger.InfoContext(ctx, "Creating loan application", slog.String("applicantID", in.ApplicantID), slog.String("creditorID", in.CreditorID))

	loan, err := NewApplication(in, s.now().UTC())
	if err != nil {
		s.logger.WarnContext(ctx, "Loan application rejected by validation", slog.Any("error", err))
		monitoring.RecordLoanTransition(string(ActionCreate), outcomeFor(err))
		return nil, err
	}

	approved, err := s.network.IsApprovedCreditor(ctx, loan.ApplicantID, loan.CreditorID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to check creditor network", slog.Any("error", err))
		monitoring.RecordLoanTransition(string(ActionCreate), "error")
		return nil, fmt.Errorf("failed to check creditor network: %w", err)
	}
	if !approved {
		s.logger.WarnContext(ctx, "Loan application names a creditor outside the network",
			slog.String("applicantID", loan.ApplicantID), slog.String("creditorID", loan.CreditorID))
		monitoring.RecordLoanTransition(string(ActionCreate), "validation")
		return nil, apperrors.NewValidationError("creditorId", "creditor is not an approved member of your network")
	}

	if err := s.repo.Create(ctx, loan); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save loan application", slog.Any("error", err))
		monitoring.RecordLoanTransition(string(ActionCreate), "error")
		return nil, fmt.Errorf("failed to save loan application: %w", err)
	}
	monitoring.RecordLoanTransition(string(ActionCreate), "success")
	s.logger.InfoContext(ctx, "Loan application created", slog.String("loanID", loan.ID))

	s.publishStatusChanged(ctx, loan, ActionCreate, "")
	s.notify(ctx, loan, ActionCreate)
	return loan, nil
}

func (s *loanService) GetLoan(ctx context.Context, actorID, loanID string) (*Application, error) {
	loan, err := s.load(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if actorID != loan.ApplicantID && actorID != loan.CreditorID {
		s.logger.WarnContext(ctx, "Loan read by non-party", slog.String("loanID", loanID), slog.String("actorID", actorID))
		return nil, fmt.Errorf("%w: user %s is not a party to loan %s", apperrors.ErrForbidden, actorID, loanID)
	}
	return loan, nil
}

func (s *loanService) ListLoans(ctx context.Context, actorID string, filter ListFilter) ([]*Application, error) {
	if filter.Role != "" && filter.Role != RoleApplicant && filter.Role != RoleCreditor {
		return nil, apperrors.NewValidationError("role", fmt.Sprintf("unknown role %q", filter.Role))
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.NewValidationError("status", fmt.Sprintf("unknown status %q", filter.Status))
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}

	loans, err := s.repo.ListByParty(ctx, actorID, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list loans", slog.String("actorID", actorID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	if loans == nil {
		loans = []*Application{}
	}
	return loans, nil
}

func (s *loanService) Approve(ctx context.Context, actorID, loanID string) (*Application, error) {
	return s.transition(ctx, actorID, loanID, ActionApprove, ModificationOffer{})
}

func (s *loanService) Reject(ctx context.Context, actorID, loanID string) (*Application, error) {
	return s.transition(ctx, actorID, loanID, ActionReject, ModificationOffer{})
}

func (s *loanService) ProposeModification(ctx context.Context, actorID, loanID string, offer ModificationOffer) (*Application, error) {
	return s.transition(ctx, actorID, loanID, ActionModify, offer)
}

func (s *loanService) AcceptModification(ctx context.Context, actorID, loanID string) (*Application, error) {
	return s.transition(ctx, actorID, loanID, ActionAccept, ModificationOffer{})
}

func (s *loanService) EstimatePayment(ctx context.Context, actorID, loanID string) (*PaymentEstimate, error) {
	loan, err := s.GetLoan(ctx, actorID, loanID)
	if err != nil {
		return nil, err
	}

	monthly := EstimateMonthlyPayment(loan.Amount, loan.InterestRate, loan.TermMonths)
	total := monthly.Mul(decimal.NewFromInt(int64(loan.TermMonths)))
	interest := decimal.Zero
	if monthly.IsPositive() {
		interest = total.Sub(loan.Amount)
	}
	return &PaymentEstimate{
		LoanID:         loan.ID,
		MonthlyPayment: monthly,
		TotalPayment:   total,
		TotalInterest:  interest,
	}, nil
}

// transition loads the loan, checks the actor may perform action, applies it to a copy and
// persists the copy conditionally on the status it was loaded with.
func (s *loanService) transition(ctx context.Context, actorID, loanID string, action Action, offer ModificationOffer) (*Application, error) {
	logCtx := s.logger.With(slog.String("loanID", loanID), slog.String("actorID", actorID), slog.String("action", string(action)))

	current, err := s.load(ctx, loanID)
	if err != nil {
		monitoring.RecordLoanTransition(string(action), outcomeFor(err))
		return nil, err
	}

	if err := authorize(current, actorID, action); err != nil {
		logCtx.WarnContext(ctx, "Actor not allowed to change loan", slog.Any("error", err))
		monitoring.RecordLoanTransition(string(action), "forbidden")
		return nil, err
	}

	updated := current.Clone()
	if err := updated.Apply(action, offer); err != nil {
		logCtx.WarnContext(ctx, "Loan transition refused", slog.String("status", string(current.Status)), slog.Any("error", err))
		monitoring.RecordLoanTransition(string(action), outcomeFor(err))
		return nil, err
	}
	updated.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateStatus(ctx, updated, current.Status); err != nil {
		logCtx.ErrorContext(ctx, "Failed to persist loan transition", slog.Any("error", err))
		monitoring.RecordLoanTransition(string(action), outcomeFor(err))
		return nil, fmt.Errorf("failed to %s loan %s: %w", action, loanID, err)
	}
	monitoring.RecordLoanTransition(string(action), "success")
	logCtx.InfoContext(ctx, "Loan transition applied",
		slog.String("from", string(current.Status)), slog.String("to", string(updated.Status)))

	s.publishStatusChanged(ctx, updated, action, current.Status)
	s.notify(ctx, updated, action)
	return updated, nil
}

func (s *loanService) load(ctx context.Context, loanID string) (*Application, error) {
	loan, err := s.repo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Loan not found", slog.String("loanID", loanID))
			return nil, fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
		}
		s.logger.ErrorContext(ctx, "Failed to load loan", slog.String("loanID", loanID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to load loan %s: %w", loanID, err)
	}
	return loan, nil
}

func authorize(loan *Application, actorID string, action Action) error {
	switch action {
	case ActionApprove, ActionReject, ActionModify:
		if actorID != loan.CreditorID {
			return fmt.Errorf("%w: only the creditor may %s loan %s", apperrors.ErrForbidden, action, loan.ID)
		}
	case ActionAccept:
		if actorID != loan.ApplicantID {
			return fmt.Errorf("%w: only the applicant may accept loan %s", apperrors.ErrForbidden, loan.ID)
		}
	}
	return nil
}

// counterpartyNotification builds the message sent after action succeeded on loan.
func counterpartyNotification(loan *Application, action Action) (notification.Notification, bool) {
	n := notification.Notification{LoanID: loan.ID}
	switch action {
	case ActionCreate:
		n.RecipientID = loan.CreditorID
		n.Type = notification.TypeNewLoanRequest
		n.Message = fmt.Sprintf("You have a new loan request for $%s.", loan.Amount.String())
	case ActionModify:
		n.RecipientID = loan.ApplicantID
		n.Type = notification.TypeLoanModified
		terms := ""
		if loan.Modification != nil {
			terms = loan.Modification.Terms
		}
		n.Message = "Your creditor has modified your loan terms: " + terms
	case ActionApprove:
		n.RecipientID = loan.ApplicantID
		n.Type = notification.TypeLoanAccepted
		n.Message = "Your loan application has been approved."
	case ActionReject:
		n.RecipientID = loan.ApplicantID
		n.Type = notification.TypeLoanAccepted
		n.Message = "Your loan application has been declined."
	case ActionAccept:
		n.RecipientID = loan.CreditorID
		n.Type = notification.TypeLoanAccepted
		n.Message = "The applicant has accepted your modified loan terms."
	default:
		return n, false
	}
	return n, true
}

func (s *loanService) notify(ctx context.Context, loan *Application, action Action) {
	n, ok := counterpartyNotification(loan, action)
	if !ok {
		return
	}
	if err := s.sink.Notify(ctx, n); err != nil {
		s.logger.ErrorContext(ctx, "Loan updated, but failed to notify counterparty",
			slog.String("loanID", loan.ID), slog.String("recipientID", n.RecipientID), slog.Any("error", err))
	}
}

func (s *loanService) publishStatusChanged(ctx context.Context, loan *Application, action Action, from Status) {
	evt := event.LoanStatusChangedEvent{
		LoanID:      loan.ID,
		ApplicantID: loan.ApplicantID,
		CreditorID:  loan.CreditorID,
		Action:      string(action),
		OldStatus:   string(from),
		NewStatus:   string(loan.Status),
		Timestamp:   loan.UpdatedAt,
	}
	if err := s.pub.PublishLoanStatusChanged(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Loan updated, but failed to publish status event", slog.String("loanID", loan.ID), slog.Any("error", err))
	}
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return "validation"
	case errors.Is(err, apperrors.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrForbidden):
		return "forbidden"
	case errors.Is(err, apperrors.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
