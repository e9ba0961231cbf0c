package assessment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"peer-lending/internal/domain/loan"
	"peer-lending/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockAdvisor struct {
	mock.Mock
}

func (m *MockAdvisor) Name() string {
	return "model"
}

func (m *MockAdvisor) Assess(ctx context.Context, req Request) (*Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Result), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (*Result, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*Result), args.Bool(1), args.Error(2)
}

func (m *MockCache) Set(ctx context.Context, key string, result *Result, ttl time.Duration) error {
	args := m.Called(ctx, key, result, ttl)
	return args.Error(0)
}

type MockLoanReader struct {
	mock.Mock
}

func (m *MockLoanReader) GetLoan(ctx context.Context, actorID, loanID string) (*loan.Application, error) {
	args := m.Called(ctx, actorID, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loan.Application), args.Error(1)
}

var validRequest = Request{
	LoanDetails:      details,
	CreditHistory:    "Average credit, no major issues",
	MarketConditions: "Stable market",
}

func TestAssess_UsesAdvisorAndCaches(t *testing.T) {
	ctx := context.Background()
	advisor := new(MockAdvisor)
	cache := new(MockCache)
	svc := NewAssessmentService(advisor, new(MockLoanReader), logger, WithCache(cache, time.Minute))

	want := &Result{Recommendation: RecommendationApprove, Justification: "ok"}
	key := cacheKeyPrefix + validRequest.CacheKey()
	cache.On("Get", ctx, key).Return(nil, false, nil)
	advisor.On("Assess", ctx, validRequest).Return(want, nil)
	cache.On("Set", ctx, key, want, time.Minute).Return(nil)

	got, err := svc.Assess(ctx, validRequest)

	require.NoError(t, err)
	assert.Equal(t, want, got)
	advisor.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestAssess_CacheHit(t *testing.T) {
	ctx := context.Background()
	advisor := new(MockAdvisor)
	cache := new(MockCache)
	svc := NewAssessmentService(advisor, new(MockLoanReader), logger, WithCache(cache, time.Minute))

	cached := &Result{Recommendation: RecommendationReject, Justification: "cached"}
	cache.On("Get", ctx, mock.Anything).Return(cached, true, nil)

	got, err := svc.Assess(ctx, validRequest)

	require.NoError(t, err)
	assert.Equal(t, cached, got)
	advisor.AssertNotCalled(t, "Assess", mock.Anything, mock.Anything)
}

func TestAssess_CacheErrorsAreIgnored(t *testing.T) {
	ctx := context.Background()
	advisor := new(MockAdvisor)
	cache := new(MockCache)
	svc := NewAssessmentService(advisor, new(MockLoanReader), logger, WithCache(cache, time.Minute))

	want := &Result{Recommendation: RecommendationApprove, Justification: "ok"}
	cache.On("Get", ctx, mock.Anything).Return(nil, false, errors.New("redis down"))
	advisor.On("Assess", ctx, validRequest).Return(want, nil)
	cache.On("Set", ctx, mock.Anything, want, time.Minute).Return(errors.New("redis down"))

	got, err := svc.Assess(ctx, validRequest)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAssess_FallsBackToHeuristic(t *testing.T) {
	ctx := context.Background()
	advisor := new(MockAdvisor)
	svc := NewAssessmentService(advisor, new(MockLoanReader), logger, WithFallback(NewHeuristic()))

	advisor.On("Assess", ctx, validRequest).Return(nil, errors.New("model unavailable"))

	got, err := svc.Assess(ctx, validRequest)

	require.NoError(t, err)
	assert.Equal(t, RecommendationModify, got.Recommendation)
	require.NotNil(t, got.Suggestion)
}

func TestAssess_FallbackResultIsNotCached(t *testing.T) {
	ctx := context.Background()
	advisor := new(MockAdvisor)
	cache := new(MockCache)
	svc := NewAssessmentService(advisor, new(MockLoanReader), logger,
		WithCache(cache, time.Minute), WithFallback(NewHeuristic()))

	key := cacheKeyPrefix + validRequest.CacheKey()
	cache.On("Get", ctx, key).Return(nil, false, nil)
	advisor.On("Assess", ctx, validRequest).Return(nil, errors.New("model unavailable")).Once()

	got, err := svc.Assess(ctx, validRequest)
	require.NoError(t, err)
	assert.Equal(t, RecommendationModify, got.Recommendation)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// Once the model recovers, its answer is served and cached.
	recovered := &Result{Recommendation: RecommendationApprove, Justification: "Recovered"}
	advisor.On("Assess", ctx, validRequest).Return(recovered, nil).Once()
	cache.On("Set", ctx, key, recovered, time.Minute).Return(nil)

	got, err = svc.Assess(ctx, validRequest)
	require.NoError(t, err)
	assert.Equal(t, recovered, got)
	cache.AssertExpectations(t)
	advisor.AssertExpectations(t)
}

func TestAssess_AdvisorErrorWithoutFallback(t *testing.T) {
	ctx := context.Background()
	advisor := new(MockAdvisor)
	svc := NewAssessmentService(advisor, new(MockLoanReader), logger)

	advisor.On("Assess", ctx, validRequest).Return(nil, errors.New("model unavailable"))

	_, err := svc.Assess(ctx, validRequest)

	assert.ErrorContains(t, err, "model unavailable")
}

func TestAssess_InvalidInputSkipsAdvisor(t *testing.T) {
	advisor := new(MockAdvisor)
	svc := NewAssessmentService(advisor, new(MockLoanReader), logger, WithFallback(NewHeuristic()))

	_, err := svc.Assess(context.Background(), Request{LoanDetails: details, CreditHistory: "good"})

	var inErr *InputError
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, "marketConditions", inErr.Field)
	advisor.AssertNotCalled(t, "Assess", mock.Anything, mock.Anything)
}

func TestAssess_HeuristicIsDeterministicThroughService(t *testing.T) {
	svc := NewAssessmentService(NewHeuristic(), new(MockLoanReader), logger)

	first, err := svc.Assess(context.Background(), validRequest)
	require.NoError(t, err)
	second, err := svc.Assess(context.Background(), validRequest)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func storedLoan() *loan.Application {
	return &loan.Application{
		ID:               "loan-1",
		ApplicantID:      "u1",
		CreditorID:       "u2",
		Amount:           decimal.NewFromInt(5000),
		TermMonths:       36,
		InterestRate:     decimal.NewFromInt(5),
		Purpose:          "renovation",
		Status:           loan.StatusPending,
		CreditHistory:    "Excellent 5-year history, clean payments",
		MarketConditions: "Stable market",
	}
}

func TestAssessLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("creditor assesses stored loan", func(t *testing.T) {
		advisor := new(MockAdvisor)
		loans := new(MockLoanReader)
		svc := NewAssessmentService(advisor, loans, logger)

		loans.On("GetLoan", ctx, "u2", "loan-1").Return(storedLoan(), nil)
		advisor.On("Assess", ctx, Request{
			LoanDetails:      "Amount: $5000, Term: 36 months, Interest: 5%, Purpose: renovation",
			CreditHistory:    "Excellent 5-year history, clean payments",
			MarketConditions: "Stable market",
		}).Return(&Result{Recommendation: RecommendationApprove, Justification: "ok"}, nil)

		res, err := svc.AssessLoan(ctx, "u2", "loan-1")

		require.NoError(t, err)
		assert.Equal(t, RecommendationApprove, res.Recommendation)
		advisor.AssertExpectations(t)
	})

	t.Run("applicant is forbidden", func(t *testing.T) {
		loans := new(MockLoanReader)
		svc := NewAssessmentService(NewHeuristic(), loans, logger)
		loans.On("GetLoan", ctx, "u1", "loan-1").Return(storedLoan(), nil)

		_, err := svc.AssessLoan(ctx, "u1", "loan-1")

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("loan lookup error is returned", func(t *testing.T) {
		loans := new(MockLoanReader)
		svc := NewAssessmentService(NewHeuristic(), loans, logger)
		loans.On("GetLoan", ctx, "u2", "missing").Return(nil, apperrors.ErrNotFound)

		_, err := svc.AssessLoan(ctx, "u2", "missing")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestNewAssessmentService_PanicsOnNilAdvisor(t *testing.T) {
	assert.Panics(t, func() { NewAssessmentService(nil, new(MockLoanReader), logger) })
}
