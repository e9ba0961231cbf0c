package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"peer-lending/internal/api/handler/dto"
	"peer-lending/internal/domain/payment"
)

type PaymentHandler struct {
	service payment.PaymentService
	logger  *slog.Logger
}

func NewPaymentHandler(s payment.PaymentService, l *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: s,
		logger:  l.With("component", "PaymentHandler"),
	}
}

// RecordPayment records a repayment against an approved loan.
//
// @Summary Record a payment
// @Description Either party may record a payment. The payer is always the applicant and the receiver the creditor.
// @Tags Payments
// @Accept json
// @Produce json
// @Param loanID path string true "Loan ID"
// @Param request body dto.RecordPaymentRequest true "Payment"
// @Success 201 {object} dto.PaymentResponse "Recorded payment"
// @Failure 400 {object} dto.ErrorResponse "Invalid payment or loan not approved"
// @Failure 403 {object} dto.ErrorResponse "Not a party to the loan"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Router /loans/{loanID}/payments [post]
// @Security BearerAuth
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
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

	var req dto.RecordPaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	p, err := h.service.RecordPayment(r.Context(), actor, req.ToInput(loanID))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto.NewPaymentResponse(p))
}

// ListPayments lists payments the user made or received.
//
// @Summary List payments
// @Tags Payments
// @Produce json
// @Param status query string false "Payment status" Enums(pending, completed, failed, cancelled)
// @Param method query string false "Payment method" Enums(bank_transfer, cash, check, digital_wallet)
// @Param limit query int false "Maximum number of payments"
// @Success 200 {array} dto.PaymentResponse "Payments, newest first"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /payments [get]
// @Security BearerAuth
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
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
	filter := payment.ListFilter{
		Status: payment.Status(strings.ToLower(q.Get("status"))),
		Method: payment.Method(strings.ToLower(q.Get("method"))),
		Limit:  limit,
	}

	payments, err := h.service.ListPayments(r.Context(), actor, filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewPaymentListResponse(payments))
}

// Summary aggregates the user's payments.
//
// @Summary Payment summary
// @Tags Payments
// @Produce json
// @Success 200 {object} dto.PaymentSummaryResponse "Totals and counts"
// @Router /payments/summary [get]
// @Security BearerAuth
func (h *PaymentHandler) Summary(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), actor)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewPaymentSummaryResponse(summary))
}
