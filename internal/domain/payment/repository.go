package payment

import "context"

type Repository interface {
	Save(ctx context.Context, p *Payment) error

	// ListByUser returns payments where the user is payer or receiver, newest first.
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]*Payment, error)

	Summarize(ctx context.Context, userID string) (*Summary, error)
}
