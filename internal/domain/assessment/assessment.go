package assessment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"peer-lending/internal/pkg/apperrors"
)

type Recommendation string

const (
	RecommendationApprove Recommendation = "approve"
	RecommendationModify  Recommendation = "modify"
	RecommendationReject  Recommendation = "reject"
)

func (r Recommendation) Valid() bool {
	switch r {
	case RecommendationApprove, RecommendationModify, RecommendationReject:
		return true
	}
	return false
}

type Request struct {
	LoanDetails      string
	CreditHistory    string
	MarketConditions string
}

// Validate returns an *InputError naming the first blank field.
func (r Request) Validate() error {
	switch {
	case strings.TrimSpace(r.LoanDetails) == "":
		return &InputError{Field: "loanDetails"}
	case strings.TrimSpace(r.CreditHistory) == "":
		return &InputError{Field: "creditHistory"}
	case strings.TrimSpace(r.MarketConditions) == "":
		return &InputError{Field: "marketConditions"}
	}
	return nil
}

// CacheKey identifies a request by the hash of its inputs.
func (r Request) CacheKey() string {
	h := sha256.New()
	for _, part := range []string{r.LoanDetails, r.CreditHistory, r.MarketConditions} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

type ModificationSuggestion struct {
	ModifiedTerms    string `json:"modifiedTerms"`
	RequireCoMaker   bool   `json:"requireCoMaker"`
	RequireDocuments bool   `json:"requireDocuments"`
}

// Result is advisory only. Suggestion is set only for RecommendationModify.
type Result struct {
	Recommendation Recommendation          `json:"recommendation"`
	Justification  string                  `json:"justification"`
	Suggestion     *ModificationSuggestion `json:"suggestion,omitempty"`
}

type InputError struct {
	Field string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s is required", apperrors.ErrInvalidInput, e.Field)
}

func (e *InputError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

type Advisor interface {
	Assess(ctx context.Context, req Request) (*Result, error)
}

// Cache stores results keyed by Request.CacheKey. A miss is reported with found == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (result *Result, found bool, err error)
	Set(ctx context.Context, key string, result *Result, ttl time.Duration) error
}

func sourceOf(a Advisor) string {
	if named, ok := a.(interface{ Name() string }); ok {
		return named.Name()
	}
	return "custom"
}
