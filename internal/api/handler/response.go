package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"peer-lending/internal/api/handler/dto"
	"peer-lending/internal/api/middleware"
	"peer-lending/internal/domain/assessment"
	"peer-lending/internal/domain/loan"
	"peer-lending/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

// resourceIDFromURL reads a UUID path parameter. A malformed id names no resource, so it is a 404.
func resourceIDFromURL(r *http.Request, param string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, param))
	if id == "" {
		return "", fmt.Errorf("%w: %s not found in URL path", apperrors.ErrInvalidArgument, param)
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: %s %q is not a valid id", apperrors.ErrNotFound, param, id)
	}
	return id, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return fmt.Errorf("%w: request body is required", apperrors.ErrInvalidArgument)
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", apperrors.ErrInvalidArgument, err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// respondError maps domain errors onto HTTP statuses. Anything unrecognised is a 500 with a generic message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message, field := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Default().ErrorContext(r.Context(), "Unhandled internal error", "error", err, "path", r.URL.Path)
	}
	respondJSON(w, status, dto.ErrorResponse{
		Error: dto.ErrorDetail{Code: code, Message: message, Field: field},
	})
}

func statusFor(err error) (status int, code, message, field string) {
	var (
		validationErr *apperrors.ValidationError
		inputErr      *assessment.InputError
		transitionErr *loan.TransitionError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, "VALIDATION_FAILED", validationErr.Message, validationErr.Field
	case errors.As(err, &inputErr):
		return http.StatusBadRequest, "INVALID_INPUT", inputErr.Error(), inputErr.Field
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_ARGUMENT", err.Error(), ""
	case errors.As(err, &transitionErr):
		return http.StatusConflict, "INVALID_TRANSITION", transitionErr.Error(), ""
	case errors.Is(err, apperrors.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION", err.Error(), ""
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, "CONFLICT", "The loan was changed by another request. Reload and try again.", ""
	case errors.Is(err, apperrors.ErrAlreadyExists):
		return http.StatusConflict, "ALREADY_EXISTS", "Resource already exists.", ""
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required.", ""
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "You are not allowed to perform this action.", ""
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "Resource not found.", ""
	default:
		return http.StatusInternalServerError, "INTERNAL", "An unexpected error occurred.", ""
	}
}

// actorID returns the authenticated user for the request.
func actorID(r *http.Request) (string, error) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		return "", fmt.Errorf("%w: no authenticated user", apperrors.ErrUnauthorized)
	}
	return id, nil
}

func queryLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, apperrors.NewValidationError("limit", "limit must be a non-negative integer")
	}
	return limit, nil
}
