package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tripwise/internal/domain"
	"tripwise/internal/port"
)

// MockTeamRepo is a mock implementation of port.TeamRepository.
type MockTeamRepo struct {
	mock.Mock
	Tx *MockTeamTx
}

func (m *MockTeamRepo) GetByID(ctx context.Context, teamID uuid.UUID) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockTeamRepo) CreateMessage(ctx context.Context, msg *domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockTeamRepo) InTx(ctx context.Context, fn func(tx port.TeamTx) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Tx)
}

// MockTeamTx is a mock implementation of port.TeamTx.
type MockTeamTx struct {
	mock.Mock
}

func (m *MockTeamTx) GetTeam(ctx context.Context, teamID uuid.UUID) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockTeamTx) RemoveMember(ctx context.Context, teamID uuid.UUID, userID string) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

func (m *MockTeamTx) SetRole(ctx context.Context, teamID uuid.UUID, userID string, role domain.TeamRole) error {
	args := m.Called(ctx, teamID, userID, role)
	return args.Error(0)
}

func (m *MockTeamTx) DeleteTeam(ctx context.Context, teamID uuid.UUID) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}
