package creditor

import (
	"fmt"
	"strings"
	"time"

	"peer-lending/internal/pkg/apperrors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusApproved Status = "approved"
	StatusPending  Status = "pending"
)

func (s Status) Valid() bool {
	return s == StatusApproved || s == StatusPending
}

const (
	MinRating = 0
	MaxRating = 5

	maxNameLength  = 200
	maxNotesLength = 2000
)

// RatingBand groups star ratings the way the network view filters them.
type RatingBand string

const (
	BandHigh   RatingBand = "high"
	BandMedium RatingBand = "medium"
	BandLow    RatingBand = "low"
)

func (b RatingBand) Valid() bool {
	switch b {
	case BandHigh, BandMedium, BandLow:
		return true
	}
	return false
}

// Bounds returns the inclusive lower and exclusive upper rating of the band.
func (b RatingBand) Bounds() (int, int) {
	switch b {
	case BandHigh:
		return 4, MaxRating + 1
	case BandMedium:
		return 2, 4
	default:
		return MinRating, 2
	}
}

// Creditor is a member of a borrower's personal lending network. OwnerID is the borrower who keeps
// the network; UserID is the member's account and is what loan applications name as creditor.
type Creditor struct {
	ID          string
	OwnerID     string
	UserID      string
	Profile     Profile
	Status      Status
	Rating      int
	TotalLoans  int
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Profile struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Address string
	Notes   string
}

func (p Profile) normalized() Profile {
	return Profile{
		Name:    strings.TrimSpace(p.Name),
		Email:   strings.ToLower(strings.TrimSpace(p.Email)),
		Phone:   strings.TrimSpace(p.Phone),
		Company: strings.TrimSpace(p.Company),
		Address: strings.TrimSpace(p.Address),
		Notes:   strings.TrimSpace(p.Notes),
	}
}

func (p Profile) validate() error {
	if err := validation.Validate(p.Name, validation.Required, validation.RuneLength(1, maxNameLength)); err != nil {
		return apperrors.NewValidationError("name", err.Error())
	}
	if err := validation.Validate(p.Email, validation.Required, is.EmailFormat); err != nil {
		return apperrors.NewValidationError("email", err.Error())
	}
	if err := validation.Validate(p.Notes, validation.RuneLength(0, maxNotesLength)); err != nil {
		return apperrors.NewValidationError("notes", err.Error())
	}
	return nil
}

type AddInput struct {
	UserID  string
	Status  Status
	Profile Profile
}

// UpdateInput replaces the profile. An empty Status keeps the current one.
type UpdateInput struct {
	Status  Status
	Profile Profile
}

type ListFilter struct {
	Status Status
	Band   RatingBand
	Search string
	Limit  int
}

// Summary describes the whole network regardless of list filters. Loan totals count every
// application made to a member; TotalAmount only sums approved ones.
type Summary struct {
	Total         int
	Approved      int
	Pending       int
	TotalLoans    int
	TotalAmount   decimal.Decimal
	AverageRating decimal.Decimal
}

type Network struct {
	Creditors []*Creditor
	Summary   *Summary
}

// New adds a member to ownerID's network. Members start approved unless the input says otherwise.
func New(ownerID string, in AddInput, now time.Time) (*Creditor, error) {
	userID := strings.TrimSpace(in.UserID)
	if strings.TrimSpace(ownerID) == "" {
		return nil, apperrors.NewValidationError("ownerId", "owner is required")
	}
	if userID == "" {
		return nil, apperrors.NewValidationError("userId", "creditor account is required")
	}
	if userID == ownerID {
		return nil, apperrors.NewValidationError("userId", "cannot add yourself to your network")
	}
	status := in.Status
	if status == "" {
		status = StatusApproved
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	profile := in.Profile.normalized()
	if err := profile.validate(); err != nil {
		return nil, err
	}

	return &Creditor{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		UserID:      userID,
		Profile:     profile,
		Status:      status,
		Rating:      MinRating,
		TotalAmount: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (c *Creditor) Update(in UpdateInput, now time.Time) error {
	status := c.Status
	if in.Status != "" {
		if !in.Status.Valid() {
			return apperrors.NewValidationError("status", fmt.Sprintf("unknown status %q", in.Status))
		}
		status = in.Status
	}
	profile := in.Profile.normalized()
	if err := profile.validate(); err != nil {
		return err
	}
	c.Profile = profile
	c.Status = status
	c.UpdatedAt = now
	return nil
}

func (c *Creditor) Rate(rating int, now time.Time) error {
	if err := validation.Validate(rating, validation.Min(MinRating), validation.Max(MaxRating)); err != nil {
		return apperrors.NewValidationError("rating", err.Error())
	}
	c.Rating = rating
	c.UpdatedAt = now
	return nil
}
