package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tripwise/internal/budgetexport"
	"tripwise/internal/domain"
	"tripwise/internal/service"
)

// MockBudgetService is a mock implementation of service.BudgetService.
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) EstimateBudget(ctx context.Context, input *service.EstimateBudgetInput) (*domain.BudgetEstimate, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetEstimate), args.Error(1)
}

func (m *MockBudgetService) GetEstimate(ctx context.Context, callerID, templateID string) (*domain.BudgetEstimate, error) {
	args := m.Called(ctx, callerID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetEstimate), args.Error(1)
}

func (m *MockBudgetService) ExportEstimate(ctx context.Context, callerID, templateID string, format budgetexport.Format) (*service.ExportFile, error) {
	args := m.Called(ctx, callerID, templateID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}
