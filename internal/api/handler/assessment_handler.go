package handler

import (
	"log/slog"
	"net/http"

	"peer-lending/internal/api/handler/dto"
	"peer-lending/internal/domain/assessment"
)

type AssessmentHandler struct {
	service assessment.AssessmentService
	logger  *slog.Logger
}

func NewAssessmentHandler(s assessment.AssessmentService, l *slog.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		service: s,
		logger:  l.With("component", "AssessmentHandler"),
	}
}

// Assess returns an advisory recommendation for free-form loan details.
//
// @Summary Assess loan details
// @Description Advisory only, nothing is stored and no loan changes state.
// @Tags Assessments
// @Accept json
// @Produce json
// @Param request body dto.AssessmentRequest true "Loan details, credit history and market conditions"
// @Success 200 {object} dto.AssessmentResponse "Recommendation"
// @Failure 400 {object} dto.ErrorResponse "A required text field is blank"
// @Failure 500 {object} dto.ErrorResponse "Advisor unavailable"
// @Router /assessments [post]
// @Security BearerAuth
func (h *AssessmentHandler) Assess(w http.ResponseWriter, r *http.Request) {
	if _, err := actorID(r); err != nil {
		respondError(w, r, err)
		return
	}

	var req dto.AssessmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.service.Assess(r.Context(), req.ToRequest())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewAssessmentResponse(result))
}

// AssessLoan assesses a stored loan application.
//
// @Summary Assess a loan application
// @Description Creditor only. Uses the loan's terms, credit history and market conditions.
// @Tags Assessments
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {object} dto.AssessmentResponse "Recommendation"
// @Failure 403 {object} dto.ErrorResponse "Not the creditor"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Router /loans/{loanID}/assessment [post]
// @Security BearerAuth
func (h *AssessmentHandler) AssessLoan(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	loanID, err := getLoanIDFromURL(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.service.AssessLoan(r.Context(), actor, loanID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewAssessmentResponse(result))
}
