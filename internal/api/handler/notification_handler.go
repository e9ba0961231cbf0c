package handler

import (
	"log/slog"
	"net/http"

	"peer-lending/internal/api/handler/dto"
	"peer-lending/internal/domain/notification"
)

type NotificationHandler struct {
	service notification.Service
	logger  *slog.Logger
}

func NewNotificationHandler(s notification.Service, l *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: s,
		logger:  l.With("component", "NotificationHandler"),
	}
}

// List returns the authenticated user's notifications.
//
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Param limit query int false "Maximum number of notifications"
// @Success 200 {object} dto.InboxResponse "Notifications, newest first, with the unread count"
// @Router /notifications [get]
// @Security BearerAuth
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
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

	inbox, err := h.service.List(r.Context(), actor, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewInboxResponse(inbox))
}

// MarkRead marks one notification as read.
//
// @Summary Mark a notification read
// @Tags Notifications
// @Param notificationID path string true "Notification ID"
// @Success 204 "Marked read"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{notificationID}/read [post]
// @Security BearerAuth
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndNotification(w, r)
	if !ok {
		return
	}
	if err := h.service.MarkRead(r.Context(), actor, id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead marks every notification of the user as read.
//
// @Summary Mark all notifications read
// @Tags Notifications
// @Produce json
// @Success 200 {object} dto.MarkAllReadResponse "Number of notifications updated"
// @Router /notifications/read-all [post]
// @Security BearerAuth
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := h.service.MarkAllRead(r.Context(), actor)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}

// Delete removes one notification.
//
// @Summary Delete a notification
// @Tags Notifications
// @Param notificationID path string true "Notification ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{notificationID} [delete]
// @Security BearerAuth
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndNotification(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) actorAndNotification(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	actor, err := actorID(r)
	if err != nil {
		respondError(w, r, err)
		return "", "", false
	}
	id, err := resourceIDFromURL(r, "notificationID")
	if err != nil {
		respondError(w, r, err)
		return "", "", false
	}
	return actor, id, true
}
