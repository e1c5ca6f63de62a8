package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tripwise/internal/domain"
)

// MockCommunityService is a mock implementation of service.CommunityService.
type MockCommunityService struct {
	mock.Mock
}

func (m *MockCommunityService) ToggleLike(ctx context.Context, postID uuid.UUID, userID string) (*domain.ReactionState, error) {
	args := m.Called(ctx, postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReactionState), args.Error(1)
}

func (m *MockCommunityService) ToggleSave(ctx context.Context, postID uuid.UUID, userID string) (*domain.ReactionState, error) {
	args := m.Called(ctx, postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReactionState), args.Error(1)
}
