package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

type Method string

const (
	MethodBankTransfer  Method = "bank_transfer"
	MethodCash          Method = "cash"
	MethodCheck         Method = "check"
	MethodDigitalWallet Method = "digital_wallet"
)

func (m Method) Valid() bool {
	switch m {
	case MethodBankTransfer, MethodCash, MethodCheck, MethodDigitalWallet:
		return true
	}
	return false
}

// Payment is a repayment from the loan's applicant (payer) to its creditor (receiver).
type Payment struct {
	ID         string
	LoanID     string
	PayerID    string
	ReceiverID string
	Amount     decimal.Decimal
	Method     Method
	Status     Status
	Reference  string
	Notes      string
	PaidAt     time.Time
	CreatedAt  time.Time
}

type RecordInput struct {
	LoanID    string
	Amount    decimal.Decimal
	Method    Method
	Status    Status
	Reference string
	Notes     string
	PaidAt    time.Time
}

type ListFilter struct {
	Status Status
	Method Method
	Limit  int
}

// Summary aggregates a user's payments. Totals only include completed payments.
type Summary struct {
	TotalCompleted decimal.Decimal
	TotalReceived  decimal.Decimal
	TotalPaid      decimal.Decimal
	CompletedCount int
	PendingCount   int
	FailedCount    int
	CancelledCount int
}
