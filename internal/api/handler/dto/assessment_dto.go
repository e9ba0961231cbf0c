package dto

import "peer-lending/internal/domain/assessment"

type AssessmentRequest struct {
	LoanDetails      string `json:"loanDetails"`
	CreditHistory    string `json:"creditHistory"`
	MarketConditions string `json:"marketConditions"`
}

func (r AssessmentRequest) ToRequest() assessment.Request {
	return assessment.Request{
		LoanDetails:      r.LoanDetails,
		CreditHistory:    r.CreditHistory,
		MarketConditions: r.MarketConditions,
	}
}

// AssessmentResponse flattens the suggestion; the modification fields are only present for "modify".
type AssessmentResponse struct {
	Recommendation   string `json:"recommendation" enums:"approve,modify,reject"`
	Justification    string `json:"justification"`
	ModifiedTerms    string `json:"modifiedTerms,omitempty"`
	RequireCoMaker   *bool  `json:"requireCoMaker,omitempty"`
	RequireDocuments *bool  `json:"requireDocuments,omitempty"`
}

func NewAssessmentResponse(r *assessment.Result) AssessmentResponse {
	resp := AssessmentResponse{
		Recommendation: string(r.Recommendation),
		Justification:  r.Justification,
	}
	if s := r.Suggestion; s != nil {
		coMaker, documents := s.RequireCoMaker, s.RequireDocuments
		resp.ModifiedTerms = s.ModifiedTerms
		resp.RequireCoMaker = &coMaker
		resp.RequireDocuments = &documents
	}
	return resp
}
