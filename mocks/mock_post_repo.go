package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tripwise/internal/domain"
	"tripwise/internal/port"
)

// MockPostRepo is a mock implementation of port.PostRepository.
// InTx runs the body against Tx Runs times (default once), which lets tests
// replay a conflicting transaction.
type MockPostRepo struct {
	mock.Mock
	Tx   *MockPostTx
	Runs int
}

func (m *MockPostRepo) InTx(ctx context.Context, fn func(tx port.PostTx) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	runs := m.Runs
	if runs < 1 {
		runs = 1
	}
	var err error
	for i := 0; i < runs; i++ {
		if err = fn(m.Tx); err != nil {
			return err
		}
	}
	return err
}

// MockPostTx is a mock implementation of port.PostTx.
type MockPostTx struct {
	mock.Mock
}

func (m *MockPostTx) GetPost(ctx context.Context, postID uuid.UUID) (*domain.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostTx) HasReaction(ctx context.Context, postID uuid.UUID, userID string, kind domain.ReactionKind) (bool, error) {
	args := m.Called(ctx, postID, userID, kind)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostTx) AddReaction(ctx context.Context, postID uuid.UUID, userID string, kind domain.ReactionKind) error {
	args := m.Called(ctx, postID, userID, kind)
	return args.Error(0)
}

func (m *MockPostTx) RemoveReaction(ctx context.Context, postID uuid.UUID, userID string, kind domain.ReactionKind) error {
	args := m.Called(ctx, postID, userID, kind)
	return args.Error(0)
}

func (m *MockPostTx) SetCounts(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}
