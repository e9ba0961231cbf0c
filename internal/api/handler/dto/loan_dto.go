package dto

import (
	"strings"
	"time"

	"peer-lending/internal/domain/loan"

	"github.com/shopspring/decimal"
)

// CreateLoanRequest accepts amounts and rates as JSON numbers or decimal strings.
type CreateLoanRequest struct {
	CreditorID       string          `json:"creditorId"`
	Amount           decimal.Decimal `json:"amount" swaggertype:"string" example:"5000.00"`
	TermMonths       int             `json:"termMonths" example:"24"`
	InterestRate     decimal.Decimal `json:"interestRate" swaggertype:"string" example:"5.5"`
	Purpose          string          `json:"purpose"`
	CreditHistory    string          `json:"creditHistory"`
	MarketConditions string          `json:"marketConditions"`
}

func (r CreateLoanRequest) ToInput(applicantID string) loan.CreateInput {
	return loan.CreateInput{
		ApplicantID:      applicantID,
		CreditorID:       strings.TrimSpace(r.CreditorID),
		Amount:           r.Amount,
		TermMonths:       r.TermMonths,
		InterestRate:     r.InterestRate,
		Purpose:          r.Purpose,
		CreditHistory:    r.CreditHistory,
		MarketConditions: r.MarketConditions,
	}
}

type ModifyLoanRequest struct {
	ModifiedTerms    string `json:"modifiedTerms"`
	RequireCoMaker   bool   `json:"requireCoMaker"`
	RequireDocuments bool   `json:"requireDocuments"`
}

func (r ModifyLoanRequest) ToOffer() loan.ModificationOffer {
	return loan.ModificationOffer{
		Terms:             r.ModifiedTerms,
		RequiresCoMaker:   r.RequireCoMaker,
		RequiresDocuments: r.RequireDocuments,
	}
}

type ModificationResponse struct {
	ModifiedTerms    string `json:"modifiedTerms"`
	RequireCoMaker   bool   `json:"requireCoMaker"`
	RequireDocuments bool   `json:"requireDocuments"`
}

type LoanResponse struct {
	ID               string                `json:"id"`
	ApplicantID      string                `json:"applicantId"`
	CreditorID       string                `json:"creditorId"`
	Amount           string                `json:"amount"`
	TermMonths       int                   `json:"termMonths"`
	InterestRate     string                `json:"interestRate"`
	Purpose          string                `json:"purpose"`
	Status           string                `json:"status"`
	ApplicationDate  time.Time             `json:"applicationDate"`
	DueDate          time.Time             `json:"dueDate"`
	CreditHistory    string                `json:"creditHistory"`
	MarketConditions string                `json:"marketConditions"`
	Modification     *ModificationResponse `json:"modification,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

func NewLoanResponse(l *loan.Application) LoanResponse {
	resp := LoanResponse{
		ID:               l.ID,
		ApplicantID:      l.ApplicantID,
		CreditorID:       l.CreditorID,
		Amount:           l.Amount.StringFixed(moneyPlaces),
		TermMonths:       l.TermMonths,
		InterestRate:     l.InterestRate.String(),
		Purpose:          l.Purpose,
		Status:           string(l.Status),
		ApplicationDate:  l.Date,
		DueDate:          l.DueDate,
		CreditHistory:    l.CreditHistory,
		MarketConditions: l.MarketConditions,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
	if l.Modification != nil {
		resp.Modification = &ModificationResponse{
			ModifiedTerms:    l.Modification.Terms,
			RequireCoMaker:   l.Modification.RequiresCoMaker,
			RequireDocuments: l.Modification.RequiresDocuments,
		}
	}
	return resp
}

func NewLoanListResponse(loans []*loan.Application) []LoanResponse {
	resp := make([]LoanResponse, 0, len(loans))
	for _, l := range loans {
		resp = append(resp, NewLoanResponse(l))
	}
	return resp
}

type EstimateResponse struct {
	LoanID         string `json:"loanId"`
	MonthlyPayment string `json:"monthlyPayment"`
	TotalPayment   string `json:"totalPayment"`
	TotalInterest  string `json:"totalInterest"`
}

func NewEstimateResponse(e *loan.PaymentEstimate) EstimateResponse {
	return EstimateResponse{
		LoanID:         e.LoanID,
		MonthlyPayment: e.MonthlyPayment.StringFixed(moneyPlaces),
		TotalPayment:   e.TotalPayment.StringFixed(moneyPlaces),
		TotalInterest:  e.TotalInterest.StringFixed(moneyPlaces),
	}
}
