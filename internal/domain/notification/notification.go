package notification

import (
	"context"
	"time"
)

type Type string

const (
	TypeNewLoanRequest Type = "NEW_LOAN_REQUEST"
	TypeLoanModified   Type = "LOAN_MODIFIED"
	TypeLoanAccepted   Type = "LOAN_ACCEPTED"
)

func (t Type) Valid() bool {
	switch t {
	case TypeNewLoanRequest, TypeLoanModified, TypeLoanAccepted:
		return true
	}
	return false
}

type Notification struct {
	ID          string
	RecipientID string
	LoanID      string
	Type        Type
	Message     string
	Read        bool
	CreatedAt   time.Time
}

// Inbox is a recipient's notifications, newest first, with the number still unread.
type Inbox struct {
	Notifications []*Notification
	UnreadCount   int
}

// PushSender delivers a notification outside the application, e.g. to a mobile device.
type PushSender interface {
	Push(ctx context.Context, n *Notification) error
}
