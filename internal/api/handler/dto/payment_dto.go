package dto

import (
	"time"

	"peer-lending/internal/domain/payment"

	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"250.00"`
	Method    string          `json:"method" enums:"bank_transfer,cash,check,digital_wallet"`
	Status    string          `json:"status,omitempty" enums:"pending,completed,failed,cancelled"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	PaidAt    *time.Time      `json:"paidAt,omitempty"`
}

func (r RecordPaymentRequest) ToInput(loanID string) payment.RecordInput {
	in := payment.RecordInput{
		LoanID:    loanID,
		Amount:    r.Amount,
		Method:    payment.Method(r.Method),
		Status:    payment.Status(r.Status),
		Reference: r.Reference,
		Notes:     r.Notes,
	}
	if r.PaidAt != nil {
		in.PaidAt = *r.PaidAt
	}
	return in
}

type PaymentResponse struct {
	ID         string    `json:"id"`
	LoanID     string    `json:"loanId"`
	PayerID    string    `json:"payerId"`
	ReceiverID string    `json:"receiverId"`
	Amount     string    `json:"amount"`
	Method     string    `json:"method"`
	Status     string    `json:"status"`
	Reference  string    `json:"reference,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	PaidAt     time.Time `json:"paidAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		LoanID:     p.LoanID,
		PayerID:    p.PayerID,
		ReceiverID: p.ReceiverID,
		Amount:     p.Amount.StringFixed(moneyPlaces),
		Method:     string(p.Method),
		Status:     string(p.Status),
		Reference:  p.Reference,
		Notes:      p.Notes,
		PaidAt:     p.PaidAt,
		CreatedAt:  p.CreatedAt,
	}
}

func NewPaymentListResponse(payments []*payment.Payment) []PaymentResponse {
	resp := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, NewPaymentResponse(p))
	}
	return resp
}

type PaymentSummaryResponse struct {
	TotalCompleted string `json:"totalCompleted"`
	TotalReceived  string `json:"totalReceived"`
	TotalPaid      string `json:"totalPaid"`
	CompletedCount int    `json:"completedCount"`
	PendingCount   int    `json:"pendingCount"`
	FailedCount    int    `json:"failedCount"`
	CancelledCount int    `json:"cancelledCount"`
}

func NewPaymentSummaryResponse(s *payment.Summary) PaymentSummaryResponse {
	return PaymentSummaryResponse{
		TotalCompleted: s.TotalCompleted.StringFixed(moneyPlaces),
		TotalReceived:  s.TotalReceived.StringFixed(moneyPlaces),
		TotalPaid:      s.TotalPaid.StringFixed(moneyPlaces),
		CompletedCount: s.CompletedCount,
		PendingCount:   s.PendingCount,
		FailedCount:    s.FailedCount,
		CancelledCount: s.CancelledCount,
	}
}
