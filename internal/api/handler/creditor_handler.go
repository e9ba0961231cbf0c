package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"peer-lending/internal/api/handler/dto"
	"peer-lending/internal/domain/creditor"
	"peer-lending/internal/pkg/apperrors"
)

type CreditorHandler struct {
	service creditor.Service
	logger  *slog.Logger
}

func NewCreditorHandler(s creditor.Service, l *slog.Logger) *CreditorHandler {
	return &CreditorHandler{
		service: s,
		logger:  l.With("component", "CreditorHandler"),
	}
}

// AddCreditor adds an account to the caller's personal creditor network.
//
// @Summary Add a creditor
// @Description Members start approved unless status is pending. Only approved members can receive loan applications.
// @Tags Creditors
// @Accept json
// @Produce json
// @Param request body dto.AddCreditorRequest true "Creditor"
// @Success 201 {object} dto.CreditorResponse "Added creditor"
// @Failure 400 {object} dto.ErrorResponse "Invalid creditor"
// @Failure 409 {object} dto.ErrorResponse "Already in the network"
// @Router /creditors [post]
// @Security BearerAuth
func (h *CreditorHandler) AddCreditor(w http.ResponseWriter, r *http.Request) {
	owner, err := actorID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req dto.AddCreditorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	c, err := h.service.Add(r.Context(), owner, req.ToInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, dto.NewCreditorResponse(c))
}

// ListCreditors returns the caller's network with summary statistics.
//
// @Summary List creditors
// @Tags Creditors
// @Produce json
// @Param status query string false "Membership status" Enums(approved, pending)
// @Param rating query string false "Rating band" Enums(high, medium, low)
// @Param q query string false "Matches name, email or company"
// @Param limit query int false "Maximum number of creditors"
// @Success 200 {object} dto.NetworkResponse "Creditors by name and network summary"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /creditors [get]
// @Security BearerAuth
func (h *CreditorHandler) ListCreditors(w http.ResponseWriter, r *http.Request) {
	owner, err := actorID(r)
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
	filter := creditor.ListFilter{
		Status: creditor.Status(strings.ToLower(q.Get("status"))),
		Band:   creditor.RatingBand(strings.ToLower(q.Get("rating"))),
		Search: q.Get("q"),
		Limit:  limit,
	}

	network, err := h.service.List(r.Context(), owner, filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewNetworkResponse(network))
}

// GetCreditor returns one member of the caller's network.
//
// @Summary Get a creditor
// @Tags Creditors
// @Produce json
// @Param creditorID path string true "Creditor ID"
// @Success 200 {object} dto.CreditorResponse "Creditor"
// @Failure 404 {object} dto.ErrorResponse "Not in the caller's network"
// @Router /creditors/{creditorID} [get]
// @Security BearerAuth
func (h *CreditorHandler) GetCreditor(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.ownerAndCreditor(w, r)
	if !ok {
		return
	}
	c, err := h.service.Get(r.Context(), owner, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCreditorResponse(c))
}

// UpdateCreditor replaces a member's contact details and optionally its status.
//
// @Summary Update a creditor
// @Tags Creditors
// @Accept json
// @Produce json
// @Param creditorID path string true "Creditor ID"
// @Param request body dto.UpdateCreditorRequest true "Creditor details"
// @Success 200 {object} dto.CreditorResponse "Updated creditor"
// @Failure 400 {object} dto.ErrorResponse "Invalid creditor"
// @Failure 404 {object} dto.ErrorResponse "Not in the caller's network"
// @Router /creditors/{creditorID} [put]
// @Security BearerAuth
func (h *CreditorHandler) UpdateCreditor(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.ownerAndCreditor(w, r)
	if !ok {
		return
	}
	var req dto.UpdateCreditorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	c, err := h.service.Update(r.Context(), owner, id, req.ToInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCreditorResponse(c))
}

// RateCreditor sets a member's star rating.
//
// @Summary Rate a creditor
// @Tags Creditors
// @Accept json
// @Produce json
// @Param creditorID path string true "Creditor ID"
// @Param request body dto.RateCreditorRequest true "Rating from 0 to 5"
// @Success 200 {object} dto.CreditorResponse "Rated creditor"
// @Failure 400 {object} dto.ErrorResponse "Rating out of range"
// @Failure 404 {object} dto.ErrorResponse "Not in the caller's network"
// @Router /creditors/{creditorID}/rating [put]
// @Security BearerAuth
func (h *CreditorHandler) RateCreditor(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.ownerAndCreditor(w, r)
	if !ok {
		return
	}
	var req dto.RateCreditorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.Rating == nil {
		respondError(w, r, apperrors.NewValidationError("rating", "rating is required"))
		return
	}

	c, err := h.service.Rate(r.Context(), owner, id, *req.Rating)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCreditorResponse(c))
}

// DeleteCreditor removes a member from the caller's network. Existing loans are kept.
//
// @Summary Remove a creditor
// @Tags Creditors
// @Param creditorID path string true "Creditor ID"
// @Success 204 "Removed"
// @Failure 404 {object} dto.ErrorResponse "Not in the caller's network"
// @Router /creditors/{creditorID} [delete]
// @Security BearerAuth
func (h *CreditorHandler) DeleteCreditor(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.ownerAndCreditor(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), owner, id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CreditorHandler) ownerAndCreditor(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	owner, err := actorID(r)
	if err != nil {
		respondError(w, r, err)
		return "", "", false
	}
	id, err := resourceIDFromURL(r, "creditorID")
	if err != nil {
		respondError(w, r, err)
		return "", "", false
	}
	return owner, id, true
}
