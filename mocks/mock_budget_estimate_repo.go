package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tripwise/internal/domain"
)

// MockBudgetEstimateRepo is a mock implementation of port.BudgetEstimateRepository.
type MockBudgetEstimateRepo struct {
	mock.Mock
}

func (m *MockBudgetEstimateRepo) Upsert(ctx context.Context, est *domain.BudgetEstimate) error {
	args := m.Called(ctx, est)
	return args.Error(0)
}

func (m *MockBudgetEstimateRepo) GetByTemplateID(ctx context.Context, templateID string) (*domain.BudgetEstimate, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetEstimate), args.Error(1)
}
