package creditor

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, c *Creditor) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, ownerID, id string) (*Creditor, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Creditor), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, ownerID string, filter ListFilter) ([]*Creditor, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Creditor), args.Error(1)
}

func (m *MockRepository) Summarize(ctx context.Context, ownerID string) (*Summary, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Summary), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, c *Creditor) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockRepository) IsApproved(ctx context.Context, ownerID, userID string) (bool, error) {
	args := m.Called(ctx, ownerID, userID)
	return args.Bool(0), args.Error(1)
}
