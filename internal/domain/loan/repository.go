package loan

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleApplicant Role = "applicant"
	RoleCreditor  Role = "creditor"
)

// ListFilter narrows a party's loans. An empty Role matches loans on either side.
type ListFilter struct {
	Role   Role
	Status Status
	Limit  int
}

// OverdueLoan is an approved loan past its due date together with what has been repaid so far.
type OverdueLoan struct {
	Application *Application
	PaidAmount  decimal.Decimal
}

type Repository interface {
	Create(ctx context.Context, loan *Application) error

	// GetByID returns apperrors.ErrNotFound when no loan has the id.
	GetByID(ctx context.Context, loanID string) (*Application, error)

	ListByParty(ctx context.Context, userID string, filter ListFilter) ([]*Application, error)

	// UpdateStatus persists the status and modification offer of loan only if the stored
	// status still equals expected. A lost race yields apperrors.ErrConflict.
	UpdateStatus(ctx context.Context, loan *Application, expected Status) error

	ListOverdue(ctx context.Context, asOf time.Time) ([]*OverdueLoan, error)
}
