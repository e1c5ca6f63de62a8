package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tripwise/internal/domain"
)

// MockReceiptService is a mock implementation of service.ReceiptService.
type MockReceiptService struct {
	mock.Mock
}

func (m *MockReceiptService) ParseReceipt(ctx context.Context, callerID, base64Image string) (*domain.Receipt, error) {
	args := m.Called(ctx, callerID, base64Image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}
