package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tripwise/internal/domain"
	"tripwise/internal/service"
)

// MockTeamService is a mock implementation of service.TeamService.
type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) QuitTeam(ctx context.Context, teamID uuid.UUID, userID string) (*service.QuitResult, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuitResult), args.Error(1)
}

func (m *MockTeamService) PromoteAdmin(ctx context.Context, teamID uuid.UUID, callerID, targetID string) (*domain.Team, error) {
	args := m.Called(ctx, teamID, callerID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockTeamService) PostMessage(ctx context.Context, teamID uuid.UUID, userID, body string) (*domain.ChatMessage, error) {
	args := m.Called(ctx, teamID, userID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatMessage), args.Error(1)
}
