package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tripwise/internal/domain"
)

// MockTripTemplateRepo is a mock implementation of port.TripTemplateRepository.
type MockTripTemplateRepo struct {
	mock.Mock
}

func (m *MockTripTemplateRepo) GetByID(ctx context.Context, id string) (*domain.TripTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TripTemplate), args.Error(1)
}
