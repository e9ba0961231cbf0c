package loan

import (
	"fmt"
	"math"
	"strings"
	"time"

	"peer-lending/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusModified Status = "modified"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusModified:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Action string

const (
	ActionCreate  Action = "create"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionModify  Action = "modify"
	ActionAccept  Action = "accept"
)

// ModificationOffer is the creditor's counter-offer. It is only attached to a loan in StatusModified.
type ModificationOffer struct {
	Terms             string
	RequiresCoMaker   bool
	RequiresDocuments bool
}

type Application struct {
	ID               string
	ApplicantID      string
	CreditorID       string
	Amount           decimal.Decimal
	TermMonths       int
	InterestRate     decimal.Decimal
	Purpose          string
	Status           Status
	Date             time.Time
	DueDate          time.Time
	CreditHistory    string
	MarketConditions string
	Modification     *ModificationOffer
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type CreateInput struct {
	ApplicantID      string
	CreditorID       string
	Amount           decimal.Decimal
	TermMonths       int
	InterestRate     decimal.Decimal
	Purpose          string
	CreditHistory    string
	MarketConditions string
}

type TransitionError struct {
	From   Status
	Action Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s a loan in status %s", apperrors.ErrInvalidTransition, e.Action, e.From)
}

func (e *TransitionError) Unwrap() error {
	return apperrors.ErrInvalidTransition
}

// Storage limits of the loan_applications and payments columns.
const (
	MoneyScale    = 2
	RateScale     = 3
	MaxTermMonths = 600
)

var (
	maxMoney = decimal.New(1, 12) // exclusive bound of NUMERIC(14,2)
	maxRate  = decimal.New(1, 4)  // exclusive bound of NUMERIC(7,3)
)

// ValidateMoney checks that amount is positive and storable without rounding.
func ValidateMoney(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.NewValidationError(field, "must be greater than zero")
	}
	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return apperrors.NewValidationError(field, fmt.Sprintf("must have at most %d decimal places", MoneyScale))
	}
	if amount.GreaterThanOrEqual(maxMoney) {
		return apperrors.NewValidationError(field, "must be less than "+maxMoney.String())
	}
	return nil
}

func validateRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return apperrors.NewValidationError("interestRate", "must not be negative")
	}
	if !rate.Equal(rate.Truncate(RateScale)) {
		return apperrors.NewValidationError("interestRate", fmt.Sprintf("must have at most %d decimal places", RateScale))
	}
	if rate.GreaterThanOrEqual(maxRate) {
		return apperrors.NewValidationError("interestRate", "must be less than "+maxRate.String())
	}
	return nil
}

func NewApplication(in CreateInput, now time.Time) (*Application, error) {
	if strings.TrimSpace(in.ApplicantID) == "" {
		return nil, apperrors.NewValidationError("applicantId", "applicant is required")
	}
	if strings.TrimSpace(in.CreditorID) == "" {
		return nil, apperrors.NewValidationError("creditorId", "creditor is required")
	}
	if in.ApplicantID == in.CreditorID {
		return nil, apperrors.NewValidationError("creditorId", "creditor must differ from applicant")
	}
	if err := ValidateMoney("amount", in.Amount); err != nil {
		return nil, err
	}
	if in.TermMonths <= 0 {
		return nil, apperrors.NewValidationError("termMonths", "must be greater than zero")
	}
	if in.TermMonths > MaxTermMonths {
		return nil, apperrors.NewValidationError("termMonths", fmt.Sprintf("must be at most %d", MaxTermMonths))
	}
	if err := validateRate(in.InterestRate); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Purpose) == "" {
		return nil, apperrors.NewValidationError("purpose", "purpose is required")
	}
	if strings.TrimSpace(in.CreditHistory) == "" {
		return nil, apperrors.NewValidationError("creditHistory", "credit history is required")
	}
	if strings.TrimSpace(in.MarketConditions) == "" {
		return nil, apperrors.NewValidationError("marketConditions", "market conditions are required")
	}

	return &Application{
		ID:               uuid.NewString(),
		ApplicantID:      in.ApplicantID,
		CreditorID:       in.CreditorID,
		Amount:           in.Amount,
		TermMonths:       in.TermMonths,
		InterestRate:     in.InterestRate,
		Purpose:          in.Purpose,
		Status:           StatusPending,
		Date:             now,
		DueDate:          now.AddDate(0, in.TermMonths, 0),
		CreditHistory:    in.CreditHistory,
		MarketConditions: in.MarketConditions,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func (a *Application) Approve() error {
	if a.Status != StatusPending && a.Status != StatusModified {
		return &TransitionError{From: a.Status, Action: ActionApprove}
	}
	a.Status = StatusApproved
	a.Modification = nil
	return nil
}

func (a *Application) Reject() error {
	if a.Status != StatusPending && a.Status != StatusModified {
		return &TransitionError{From: a.Status, Action: ActionReject}
	}
	a.Status = StatusRejected
	a.Modification = nil
	return nil
}

func (a *Application) ProposeModification(offer ModificationOffer) error {
	if a.Status != StatusPending {
		return &TransitionError{From: a.Status, Action: ActionModify}
	}
	if strings.TrimSpace(offer.Terms) == "" {
		return apperrors.NewValidationError("modifiedTerms", "modified terms are required")
	}
	a.Status = StatusModified
	a.Modification = &offer
	return nil
}

func (a *Application) AcceptModification() error {
	if a.Status != StatusModified {
		return &TransitionError{From: a.Status, Action: ActionAccept}
	}
	a.Status = StatusApproved
	a.Modification = nil
	return nil
}

// Apply runs the transition named by action. The offer is only used by ActionModify.
func (a *Application) Apply(action Action, offer ModificationOffer) error {
	switch action {
	case ActionApprove:
		return a.Approve()
	case ActionReject:
		return a.Reject()
	case ActionModify:
		return a.ProposeModification(offer)
	case ActionAccept:
		return a.AcceptModification()
	default:
		return fmt.Errorf("%w: unknown action %q", apperrors.ErrInvalidArgument, action)
	}
}

// Clone returns a copy that shares no mutable state with a.
func (a *Application) Clone() *Application {
	c := *a
	if a.Modification != nil {
		m := *a.Modification
		c.Modification = &m
	}
	return &c
}

// Details renders the loan terms in the form handed to an assessment advisor.
func (a *Application) Details() string {
	return fmt.Sprintf("Amount: $%s, Term: %d months, Interest: %s%%, Purpose: %s",
		a.Amount.String(), a.TermMonths, a.InterestRate.String(), a.Purpose)
}

// EstimateMonthlyPayment is the standard amortized installment for the loan terms,
// rounded to cents. It is zero when any of the inputs is not positive.
func EstimateMonthlyPayment(amount decimal.Decimal, annualRatePercent decimal.Decimal, termMonths int) decimal.Decimal {
	if !amount.IsPositive() || !annualRatePercent.IsPositive() || termMonths <= 0 {
		return decimal.Zero
	}
	p := amount.InexactFloat64()
	r := annualRatePercent.InexactFloat64() / 100 / 12
	growth := math.Pow(1+r, float64(termMonths))
	payment := p * r * growth / (growth - 1)
	return decimal.NewFromFloat(payment).Round(2)
}
