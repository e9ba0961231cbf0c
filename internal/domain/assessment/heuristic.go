package assessment

import (
	"context"
	"strings"
)

const (
	approveJustification = "Strong credit history and favorable conditions support loan approval."
	modifyJustification  = "Moderate credit history suggests modified terms would be appropriate."
	rejectJustification  = "Credit history and risk factors do not support loan approval at this time."
	suggestedTerms       = "Consider reducing loan amount by 10-15% or increasing interest rate by 0.5-1%."

	keywordWeight  = 2
	approveMinimum = 4
)

var (
	positiveKeywords = []string{"good", "excellent", "outstanding", "perfect", "clean"}
	negativeKeywords = []string{"poor", "bad", "default", "late", "missed", "delinquent"}
)

// Heuristic scores the credit history by keyword. Loan details and market conditions are
// validated but do not affect the score.
type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

func (h *Heuristic) Name() string {
	return "heuristic"
}

func (h *Heuristic) Assess(_ context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return decide(Score(req.CreditHistory)), nil
}

// Score adds keywordWeight for each positive keyword found in the history and subtracts it
// for each negative one. Each keyword counts at most once.
func Score(creditHistory string) int {
	history := strings.ToLower(creditHistory)
	score := 0
	for _, kw := range positiveKeywords {
		if strings.Contains(history, kw) {
			score += keywordWeight
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(history, kw) {
			score -= keywordWeight
		}
	}
	return score
}

func decide(score int) *Result {
	switch {
	case score >= approveMinimum:
		return &Result{Recommendation: RecommendationApprove, Justification: approveJustification}
	case score >= 0:
		return &Result{
			Recommendation: RecommendationModify,
			Justification:  modifyJustification,
			Suggestion: &ModificationSuggestion{
				ModifiedTerms:    suggestedTerms,
				RequireCoMaker:   true,
				RequireDocuments: true,
			},
		}
	default:
		return &Result{Recommendation: RecommendationReject, Justification: rejectJustification}
	}
}
