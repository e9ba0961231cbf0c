package creditor

import "context"

// Repository stores networks. Every lookup is scoped to the owning borrower, and a member
// of someone else's network is reported as apperrors.ErrNotFound.
type Repository interface {
	// Create returns apperrors.ErrAlreadyExists when the account is already in the network.
	Create(ctx context.Context, c *Creditor) error

	GetByID(ctx context.Context, ownerID, id string) (*Creditor, error)

	List(ctx context.Context, ownerID string, filter ListFilter) ([]*Creditor, error)

	Summarize(ctx context.Context, ownerID string) (*Summary, error)

	Update(ctx context.Context, c *Creditor) error

	Delete(ctx context.Context, ownerID, id string) error

	IsApproved(ctx context.Context, ownerID, userID string) (bool, error)
}
