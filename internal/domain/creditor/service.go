package creditor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"peer-lending/internal/infrastructure/monitoring"
	"peer-lending/internal/pkg/apperrors"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

type Service interface {
	Add(ctx context.Context, ownerID string, in AddInput) (*Creditor, error)
	Get(ctx context.Context, ownerID, id string) (*Creditor, error)
	List(ctx context.Context, ownerID string, filter ListFilter) (*Network, error)
	Update(ctx context.Context, ownerID, id string, in UpdateInput) (*Creditor, error)
	Rate(ctx context.Context, ownerID, id string, rating int) (*Creditor, error)
	Delete(ctx context.Context, ownerID, id string) error

	// IsApprovedCreditor reports whether creditorID is an approved member of applicantID's network.
	IsApprovedCreditor(ctx context.Context, applicantID, creditorID string) (bool, error)
}

var _ Service = (*creditorService)(nil)

type creditorService struct {
	repo   Repository
	now    func() time.Time
	logger *slog.Logger
}

func NewCreditorService(repo Repository, logger *slog.Logger) Service {
	if repo == nil || logger == nil {
		panic("creditor service dependencies cannot be nil")
	}
	return &creditorService{
		repo:   repo,
		now:    time.Now,
		logger: logger.With(slog.String("component", "creditorService")),
	}
}

func (s *creditorService) Add(ctx context.Context, ownerID string, in AddInput) (*Creditor, error) {
	c, err := New(ownerID, in, s.now().UTC())
	if err != nil {
		s.logger.WarnContext(ctx, "Creditor rejected by validation", slog.String("ownerID", ownerID), slog.Any("error", err))
		monitoring.RecordCreditorChange("add", "rejected")
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		monitoring.RecordCreditorChange("add", outcomeFor(err))
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			s.logger.WarnContext(ctx, "Creditor already in network", slog.String("ownerID", ownerID), slog.String("userID", c.UserID))
			return nil, fmt.Errorf("%w: %s is already in your network", apperrors.ErrAlreadyExists, c.UserID)
		}
		s.logger.ErrorContext(ctx, "Failed to save creditor", slog.String("ownerID", ownerID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to save creditor: %w", err)
	}
	monitoring.RecordCreditorChange("add", "success")
	s.logger.InfoContext(ctx, "Creditor added to network",
		slog.String("ownerID", ownerID), slog.String("creditorID", c.ID), slog.String("status", string(c.Status)))
	return c, nil
}

func (s *creditorService) Get(ctx context.Context, ownerID, id string) (*Creditor, error) {
	c, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.ErrorContext(ctx, "Failed to load creditor", slog.String("creditorID", id), slog.Any("error", err))
		}
		return nil, fmt.Errorf("failed to load creditor %s: %w", id, err)
	}
	return c, nil
}

func (s *creditorService) List(ctx context.Context, ownerID string, filter ListFilter) (*Network, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.NewValidationError("status", fmt.Sprintf("unknown status %q", filter.Status))
	}
	if filter.Band != "" && !filter.Band.Valid() {
		return nil, apperrors.NewValidationError("rating", fmt.Sprintf("unknown rating band %q", filter.Band))
	}
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}

	creditors, err := s.repo.List(ctx, ownerID, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list creditors", slog.String("ownerID", ownerID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to list creditors: %w", err)
	}
	summary, err := s.repo.Summarize(ctx, ownerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to summarize network", slog.String("ownerID", ownerID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to summarize network: %w", err)
	}
	summary.AverageRating = summary.AverageRating.Round(1)
	if creditors == nil {
		creditors = []*Creditor{}
	}
	return &Network{Creditors: creditors, Summary: summary}, nil
}

func (s *creditorService) Update(ctx context.Context, ownerID, id string, in UpdateInput) (*Creditor, error) {
	return s.change(ctx, "update", ownerID, id, func(c *Creditor, now time.Time) error {
		return c.Update(in, now)
	})
}

func (s *creditorService) Rate(ctx context.Context, ownerID, id string, rating int) (*Creditor, error) {
	return s.change(ctx, "rate", ownerID, id, func(c *Creditor, now time.Time) error {
		return c.Rate(rating, now)
	})
}

// change loads the member, applies mutate and persists the result.
func (s *creditorService) change(ctx context.Context, action, ownerID, id string, mutate func(*Creditor, time.Time) error) (*Creditor, error) {
	c, err := s.Get(ctx, ownerID, id)
	if err != nil {
		monitoring.RecordCreditorChange(action, outcomeFor(err))
		return nil, err
	}
	if err := mutate(c, s.now().UTC()); err != nil {
		s.logger.WarnContext(ctx, "Creditor change rejected", slog.String("action", action), slog.String("creditorID", id), slog.Any("error", err))
		monitoring.RecordCreditorChange(action, "rejected")
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save creditor", slog.String("action", action), slog.String("creditorID", id), slog.Any("error", err))
		monitoring.RecordCreditorChange(action, outcomeFor(err))
		return nil, fmt.Errorf("failed to save creditor %s: %w", id, err)
	}
	monitoring.RecordCreditorChange(action, "success")
	s.logger.InfoContext(ctx, "Creditor updated", slog.String("action", action), slog.String("creditorID", id))
	return c, nil
}

func (s *creditorService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		s.logger.WarnContext(ctx, "Failed to delete creditor", slog.String("creditorID", id), slog.Any("error", err))
		monitoring.RecordCreditorChange("delete", outcomeFor(err))
		return fmt.Errorf("failed to delete creditor %s: %w", id, err)
	}
	monitoring.RecordCreditorChange("delete", "success")
	s.logger.InfoContext(ctx, "Creditor removed from network", slog.String("ownerID", ownerID), slog.String("creditorID", id))
	return nil
}

func (s *creditorService) IsApprovedCreditor(ctx context.Context, applicantID, creditorID string) (bool, error) {
	ok, err := s.repo.IsApproved(ctx, applicantID, creditorID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to check creditor network",
			slog.String("applicantID", applicantID), slog.String("creditorID", creditorID), slog.Any("error", err))
		return false, fmt.Errorf("failed to check creditor network: %w", err)
	}
	return ok, nil
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrAlreadyExists):
		return "duplicate"
	case errors.Is(err, apperrors.ErrValidation):
		return "rejected"
	default:
		return "error"
	}
}
