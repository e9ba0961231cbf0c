package dto

import (
	"time"

	"peer-lending/internal/domain/creditor"
)

type CreditorProfile struct {
	Name    string `json:"name" example:"Jane Lender"`
	Email   string `json:"email" example:"jane@example.com"`
	Phone   string `json:"phone,omitempty" example:"+1 (555) 123-4567"`
	Company string `json:"company,omitempty" example:"ABC Lending Corp"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

func (p CreditorProfile) toDomain() creditor.Profile {
	return creditor.Profile{
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Company: p.Company,
		Address: p.Address,
		Notes:   p.Notes,
	}
}

// AddCreditorRequest adds the account UserID to the caller's network.
type AddCreditorRequest struct {
	UserID string `json:"userId" example:"user-123"`
	Status string `json:"status,omitempty" enums:"approved,pending"`
	CreditorProfile
}

func (r AddCreditorRequest) ToInput() creditor.AddInput {
	return creditor.AddInput{
		UserID:  r.UserID,
		Status:  creditor.Status(r.Status),
		Profile: r.CreditorProfile.toDomain(),
	}
}

type UpdateCreditorRequest struct {
	Status string `json:"status,omitempty" enums:"approved,pending"`
	CreditorProfile
}

func (r UpdateCreditorRequest) ToInput() creditor.UpdateInput {
	return creditor.UpdateInput{
		Status:  creditor.Status(r.Status),
		Profile: r.CreditorProfile.toDomain(),
	}
}

type RateCreditorRequest struct {
	Rating *int `json:"rating" minimum:"0" maximum:"5"`
}

type CreditorResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Status      string    `json:"status"`
	Rating      int       `json:"rating"`
	TotalLoans  int       `json:"totalLoans"`
	TotalAmount string    `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CreditorProfile
}

func NewCreditorResponse(c *creditor.Creditor) CreditorResponse {
	return CreditorResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Status:      string(c.Status),
		Rating:      c.Rating,
		TotalLoans:  c.TotalLoans,
		TotalAmount: c.TotalAmount.StringFixed(moneyPlaces),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		CreditorProfile: CreditorProfile{
			Name:    c.Profile.Name,
			Email:   c.Profile.Email,
			Phone:   c.Profile.Phone,
			Company: c.Profile.Company,
			Address: c.Profile.Address,
			Notes:   c.Profile.Notes,
		},
	}
}

type NetworkSummaryResponse struct {
	Total         int    `json:"total"`
	Approved      int    `json:"approved"`
	Pending       int    `json:"pending"`
	TotalLoans    int    `json:"totalLoans"`
	TotalAmount   string `json:"totalAmount"`
	AverageRating string `json:"averageRating" example:"3.7"`
}

type NetworkResponse struct {
	Creditors []CreditorResponse     `json:"creditors"`
	Summary   NetworkSummaryResponse `json:"summary"`
}

func NewNetworkResponse(n *creditor.Network) NetworkResponse {
	creditors := make([]CreditorResponse, 0, len(n.Creditors))
	for _, c := range n.Creditors {
		creditors = append(creditors, NewCreditorResponse(c))
	}
	return NetworkResponse{
		Creditors: creditors,
		Summary: NetworkSummaryResponse{
			Total:         n.Summary.Total,
			Approved:      n.Summary.Approved,
			Pending:       n.Summary.Pending,
			TotalLoans:    n.Summary.TotalLoans,
			TotalAmount:   n.Summary.TotalAmount.StringFixed(moneyPlaces),
			AverageRating: n.Summary.AverageRating.StringFixed(1),
		},
	}
}
