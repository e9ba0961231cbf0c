package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"peer-lending/internal/api/handler/dto"
	"peer-lending/internal/domain/loan"
)

type LoanHandler struct {
	service loan.LoanService
	logger  *slog.Logger
}

func NewLoanHandler(s loan.LoanService, l *slog.Logger) *LoanHandler {
	return &LoanHandler{
		service: s,
		logger:  l.With("component", "LoanHandler"),
	}
}

func getLoanIDFromURL(r *http.Request) (string, error) {
	return resourceIDFromURL(r, "loanID")
}

// CreateLoan submits a new loan application on behalf of the authenticated applicant.
//
// @Summary Create a loan application
// @Description The authenticated user becomes the applicant. The creditor must be an approved member of the applicant's network and receives a NEW_LOAN_REQUEST notification.
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body dto.CreateLoanRequest true "Loan application"
// @Success 201 {object} dto.LoanResponse "Loan application created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans [post]
// @Security BearerAuth
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req dto.CreateLoanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := h.service.CreateLoan(r.Context(), req.ToInput(actor))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto.NewLoanResponse(created))
}

// GetLoan returns one loan application.
//
// @Summary Retrieve a loan application
// @Description Only the applicant or the creditor of the loan may read it.
// @Tags Loans
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse "Loan application"
// @Failure 403 {object} dto.ErrorResponse "Not a party to the loan"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{loanID} [get]
// @Security BearerAuth
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	actor, loanID, ok := h.actorAndLoan(w, r)
	if !ok {
		return
	}

	l, err := h.service.GetLoan(r.Context(), actor, loanID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewLoanResponse(l))
}

// ListLoans lists the authenticated user's loans, newest first.
//
// @Summary List loan applications
// @Tags Loans
// @Produce json
// @Param role query string false "Restrict to one side of the loan" Enums(applicant, creditor)
// @Param status query string false "Restrict to one status" Enums(pending, approved, rejected, modified)
// @Param limit query int false "Maximum number of loans"
// @Success 200 {array} dto.LoanResponse "Loan applications"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans [get]
// @Security BearerAuth
func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	q := r.URL.Query()
	filter := loan.ListFilter{
		Role:   loan.Role(strings.ToLower(q.Get("role"))),
		Status: loan.Status(strings.ToLower(q.Get("status"))),
		Limit:  limit,
	}

	loans, err := h.service.ListLoans(r.Context(), actor, filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewLoanListResponse(loans))
}

// Approve approves a pending or modified loan.
//
// @Summary Approve a loan
// @Description Creditor only. The applicant receives a LOAN_ACCEPTED notification.
// @Tags Loans
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse "Approved loan"
// @Failure 403 {object} dto.ErrorResponse "Not the creditor"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Transition not allowed from the current status"
// @Router /loans/{loanID}/approve [post]
// @Security BearerAuth
func (h *LoanHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Approve)
}

// Reject rejects a pending or modified loan.
//
// @Summary Reject a loan
// @Description Creditor only. The applicant is notified that the request was declined.
// @Tags Loans
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse "Rejected loan"
// @Failure 403 {object} dto.ErrorResponse "Not the creditor"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Transition not allowed from the current status"
// @Router /loans/{loanID}/reject [post]
// @Security BearerAuth
func (h *LoanHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Reject)
}

// ProposeModification sends the creditor's counter-offer to the applicant.
//
// @Summary Propose modified terms
// @Description Creditor only, pending loans only. The applicant receives a LOAN_MODIFIED notification.
// @Tags Loans
// @Accept json
// @Produce json
// @Param loanID path string true "Loan ID"
// @Param request body dto.ModifyLoanRequest true "Counter-offer"
// @Success 200 {object} dto.LoanResponse "Modified loan"
// @Failure 400 {object} dto.ErrorResponse "Blank modified terms"
// @Failure 403 {object} dto.ErrorResponse "Not the creditor"
// @Failure 409 {object} dto.ErrorResponse "Transition not allowed from the current status"
// @Router /loans/{loanID}/modify [post]
// @Security BearerAuth
func (h *LoanHandler) ProposeModification(w http.ResponseWriter, r *http.Request) {
	actor, loanID, ok := h.actorAndLoan(w, r)
	if !ok {
		return
	}

	var req dto.ModifyLoanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := h.service.ProposeModification(r.Context(), actor, loanID, req.ToOffer())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewLoanResponse(updated))
}

// AcceptModification accepts the creditor's counter-offer.
//
// @Summary Accept modified terms
// @Description Applicant only, modified loans only. The loan becomes approved and the creditor is notified.
// @Tags Loans
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse "Approved loan"
// @Failure 403 {object} dto.ErrorResponse "Not the applicant"
// @Failure 409 {object} dto.ErrorResponse "Transition not allowed from the current status"
// @Router /loans/{loanID}/accept [post]
// @Security BearerAuth
func (h *LoanHandler) AcceptModification(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.AcceptModification)
}

// EstimatePayment returns the amortized monthly payment for a loan.
//
// @Summary Estimate the monthly payment
// @Tags Loans
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {object} dto.EstimateResponse "Payment estimate"
// @Failure 403 {object} dto.ErrorResponse "Not a party to the loan"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Router /loans/{loanID}/estimate [get]
// @Security BearerAuth
func (h *LoanHandler) EstimatePayment(w http.ResponseWriter, r *http.Request) {
	actor, loanID, ok := h.actorAndLoan(w, r)
	if !ok {
		return
	}

	estimate, err := h.service.EstimatePayment(r.Context(), actor, loanID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewEstimateResponse(estimate))
}

type transitionFunc func(ctx context.Context, actorID, loanID string) (*loan.Application, error)

func (h *LoanHandler) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc) {
	actor, loanID, ok := h.actorAndLoan(w, r)
	if !ok {
		return
	}

	updated, err := fn(r.Context(), actor, loanID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewLoanResponse(updated))
}

func (h *LoanHandler) actorAndLoan(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	actor, err := actorID(r)
	if err != nil {
		respondError(w, r, err)
		return "", "", false
	}
	loanID, err := getLoanIDFromURL(r)
	if err != nil {
		respondError(w, r, err)
		return "", "", false
	}
	return actor, loanID, true
}
