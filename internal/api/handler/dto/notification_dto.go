package dto

import (
	"time"

	"peer-lending/internal/domain/notification"
)

type NotificationResponse struct {
	ID        string    `json:"id"`
	LoanID    string    `json:"loanId,omitempty"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

type InboxResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
}

func NewInboxResponse(inbox *notification.Inbox) InboxResponse {
	resp := InboxResponse{
		Notifications: make([]NotificationResponse, 0, len(inbox.Notifications)),
		UnreadCount:   inbox.UnreadCount,
	}
	for _, n := range inbox.Notifications {
		resp.Notifications = append(resp.Notifications, NotificationResponse{
			ID:        n.ID,
			LoanID:    n.LoanID,
			Type:      string(n.Type),
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return resp
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
