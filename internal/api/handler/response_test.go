package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"peer-lending/internal/domain/assessment"
	"peer-lending/internal/domain/loan"
	"peer-lending/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{"validation", apperrors.NewValidationError("amount", "bad"), http.StatusBadRequest, "VALIDATION_FAILED", "amount"},
		{"wrapped validation", fmt.Errorf("create: %w", apperrors.NewValidationError("termMonths", "bad")), http.StatusBadRequest, "VALIDATION_FAILED", "termMonths"},
		{"assessment input", &assessment.InputError{Field: "loanDetails"}, http.StatusBadRequest, "INVALID_INPUT", "loanDetails"},
		{"invalid argument", fmt.Errorf("%w: bad body", apperrors.ErrInvalidArgument), http.StatusBadRequest, "INVALID_ARGUMENT", ""},
		{"transition", &loan.TransitionError{From: loan.StatusRejected, Action: loan.ActionApprove}, http.StatusConflict, "INVALID_TRANSITION", ""},
		{"bare transition", apperrors.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION", ""},
		{"conflict", fmt.Errorf("update: %w", apperrors.ErrConflict), http.StatusConflict, "CONFLICT", ""},
		{"already exists", apperrors.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS", ""},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED", ""},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "FORBIDDEN", ""},
		{"not found", fmt.Errorf("%w: %w", apperrors.ErrNotFound, errors.New("no rows")), http.StatusNotFound, "NOT_FOUND", ""},
		{"database", fmt.Errorf("%w: timeout", apperrors.ErrDatabase), http.StatusInternalServerError, "INTERNAL", ""},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _, field := statusFor(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantField, field)
		})
	}
}
