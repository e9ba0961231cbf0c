// Package anthropic implements assessment.Advisor on top of the Anthropic Messages API.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"peer-lending/internal/config"
	"peer-lending/internal/domain/assessment"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/xeipuuv/gojsonschema"
)

const systemPrompt = `You help private creditors review peer-to-peer loan applications.
Weigh the loan terms, the applicant's credit history and the market conditions, then answer with a single JSON object and nothing else:
{"recommendation": "approve" | "modify" | "reject", "justification": string, "modifiedTerms": string, "requireCoMaker": boolean, "requireDocuments": boolean}
Recommend approve for a strong history with reasonable terms, modify for a moderate history or slightly unfavorable terms, reject for a poor history or highly unfavorable terms.
Only fill modifiedTerms, requireCoMaker and requireDocuments when recommending modify, and make modifiedTerms a concrete counter-offer.`

var outputSchema = gojsonschema.NewStringLoader(`{
  "type": "object",
  "required": ["recommendation", "justification"],
  "properties": {
    "recommendation": {"type": "string", "enum": ["approve", "modify", "reject"]},
    "justification": {"type": "string", "minLength": 1},
    "modifiedTerms": {"type": "string"},
    "requireCoMaker": {"type": "boolean"},
    "requireDocuments": {"type": "boolean"}
  }
}`)

var ErrInvalidOutput = errors.New("model returned an invalid assessment")

type modelOutput struct {
	Recommendation   assessment.Recommendation `json:"recommendation"`
	Justification    string                    `json:"justification"`
	ModifiedTerms    string                    `json:"modifiedTerms"`
	RequireCoMaker   bool                      `json:"requireCoMaker"`
	RequireDocuments bool                      `json:"requireDocuments"`
}

type Advisor struct {
	client    sdk.Client
	model     string
	maxTokens int64
	timeout   time.Duration
	logger    *slog.Logger
}

var _ assessment.Advisor = (*Advisor)(nil)

func NewAdvisor(cfg config.AssessmentConfig, logger *slog.Logger, opts ...option.RequestOption) *Advisor {
	clientOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey), option.WithMaxRetries(1)}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}
	clientOpts = append(clientOpts, opts...)

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &Advisor{
		client:    sdk.NewClient(clientOpts...),
		model:     cfg.Model,
		maxTokens: maxTokens,
		timeout:   cfg.Timeout,
		logger:    logger.With(slog.String("component", "anthropicAdvisor"), slog.String("model", cfg.Model)),
	}
}

func (a *Advisor) Name() string {
	return "anthropic"
}

func (a *Advisor) Assess(ctx context.Context, req assessment.Request) (*assessment.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	msg, err := a.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(a.model),
		MaxTokens: a.maxTokens,
		System:    []sdk.TextBlockParam{{Text: systemPrompt}},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(userPrompt(req))),
		},
	})
	if err != nil {
		a.logger.ErrorContext(ctx, "Messages API call failed", slog.Any("error", err))
		return nil, fmt.Errorf("anthropic messages call: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	result, err := parseOutput(text.String())
	if err != nil {
		a.logger.WarnContext(ctx, "Discarding model output", slog.Any("error", err))
		return nil, err
	}
	return result, nil
}

func userPrompt(req assessment.Request) string {
	return fmt.Sprintf("Loan application: %s\nApplicant credit history: %s\nMarket conditions: %s",
		req.LoanDetails, req.CreditHistory, req.MarketConditions)
}

// parseOutput extracts the JSON object from the reply, validates it and maps it onto a Result.
func parseOutput(text string) (*assessment.Result, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in reply", ErrInvalidOutput)
	}
	raw := text[start : end+1]

	validation, err := gojsonschema.Validate(outputSchema, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOutput, err)
	}
	if !validation.Valid() {
		errs := make([]string, len(validation.Errors()))
		for i, desc := range validation.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidOutput, strings.Join(errs, "; "))
	}

	var out modelOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOutput, err)
	}

	result := &assessment.Result{
		Recommendation: out.Recommendation,
		Justification:  strings.TrimSpace(out.Justification),
	}
	if out.Recommendation == assessment.RecommendationModify {
		if strings.TrimSpace(out.ModifiedTerms) == "" {
			return nil, fmt.Errorf("%w: modify without modifiedTerms", ErrInvalidOutput)
		}
		result.Suggestion = &assessment.ModificationSuggestion{
			ModifiedTerms:    strings.TrimSpace(out.ModifiedTerms),
			RequireCoMaker:   out.RequireCoMaker,
			RequireDocuments: out.RequireDocuments,
		}
	}
	return result, nil
}
