package assessment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"peer-lending/internal/domain/loan"
	"peer-lending/internal/infrastructure/monitoring"
	"peer-lending/internal/pkg/apperrors"
)

const cacheKeyPrefix = "assessment:"

type AssessmentService interface {
	Assess(ctx context.Context, req Request) (*Result, error)
	AssessLoan(ctx context.Context, actorID, loanID string) (*Result, error)
}

// LoanReader loads a loan on behalf of an actor, enforcing read access.
type LoanReader interface {
	GetLoan(ctx context.Context, actorID, loanID string) (*loan.Application, error)
}

var _ AssessmentService = (*assessmentService)(nil)

type assessmentService struct {
	advisor  Advisor
	fallback Advisor
	cache    Cache
	cacheTTL time.Duration
	loans    LoanReader
	logger   *slog.Logger
}

type Option func(*assessmentService)

// WithCache enables result caching. A nil cache leaves caching off.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(s *assessmentService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithFallback sets the advisor used when the primary advisor fails.
func WithFallback(fallback Advisor) Option {
	return func(s *assessmentService) {
		s.fallback = fallback
	}
}

func NewAssessmentService(advisor Advisor, loans LoanReader, logger *slog.Logger, opts ...Option) AssessmentService {
	if advisor == nil || loans == nil || logger == nil {
		panic("assessment service dependencies cannot be nil")
	}
	s := &assessmentService{
		advisor: advisor,
		loans:   loans,
		logger:  logger.With(slog.String("component", "assessmentService")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *assessmentService) Assess(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		s.logger.WarnContext(ctx, "Assessment request rejected", slog.Any("error", err))
		return nil, err
	}

	key := cacheKeyPrefix + req.CacheKey()
	if cached := s.lookup(ctx, key); cached != nil {
		monitoring.RecordAssessment("cache", string(cached.Recommendation), 0)
		return cached, nil
	}

	result, source, err := s.consult(ctx, req)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, result, source)
	return result, nil
}

func (s *assessmentService) AssessLoan(ctx context.Context, actorID, loanID string) (*Result, error) {
	application, err := s.loans.GetLoan(ctx, actorID, loanID)
	if err != nil {
		return nil, err
	}
	if actorID != application.CreditorID {
		s.logger.WarnContext(ctx, "Assessment requested by non-creditor", slog.String("loanID", loanID), slog.String("actorID", actorID))
		return nil, fmt.Errorf("%w: only the creditor may assess loan %s", apperrors.ErrForbidden, loanID)
	}

	return s.Assess(ctx, Request{
		LoanDetails:      application.Details(),
		CreditHistory:    application.CreditHistory,
		MarketConditions: application.MarketConditions,
	})
}

func (s *assessmentService) consult(ctx context.Context, req Request) (*Result, string, error) {
	source := sourceOf(s.advisor)
	start := time.Now()
	result, err := s.advisor.Assess(ctx, req)
	if err == nil {
		monitoring.RecordAssessment(source, string(result.Recommendation), time.Since(start))
		return result, source, nil
	}

	if errors.Is(err, apperrors.ErrInvalidInput) || s.fallback == nil {
		s.logger.ErrorContext(ctx, "Advisor failed", slog.String("source", source), slog.Any("error", err))
		return nil, "", fmt.Errorf("assessment failed: %w", err)
	}

	fallbackSource := sourceOf(s.fallback)
	s.logger.WarnContext(ctx, "Advisor failed, using fallback",
		slog.String("source", source), slog.String("fallback", fallbackSource), slog.Any("error", err))

	start = time.Now()
	result, err = s.fallback.Assess(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "Fallback advisor failed", slog.String("source", fallbackSource), slog.Any("error", err))
		return nil, "", fmt.Errorf("assessment failed: %w", err)
	}
	monitoring.RecordAssessment(fallbackSource, string(result.Recommendation), time.Since(start))
	return result, fallbackSource, nil
}

func (s *assessmentService) lookup(ctx context.Context, key string) *Result {
	if s.cache == nil {
		return nil
	}
	result, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "Assessment cache lookup failed", slog.Any("error", err))
		return nil
	}
	if !found {
		return nil
	}
	s.logger.DebugContext(ctx, "Assessment served from cache")
	return result
}

func (s *assessmentService) store(ctx context.Context, key string, result *Result, source string) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	// Fallback answers stand in for an unavailable advisor and must not outlive its outage.
	if source != sourceOf(s.advisor) {
		s.logger.DebugContext(ctx, "Skipping cache for fallback assessment", slog.String("source", source))
		return
	}
	if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "Failed to cache assessment", slog.String("source", source), slog.Any("error", err))
	}
}
