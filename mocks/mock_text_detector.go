package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTextDetector is a mock implementation of port.TextDetector.
type MockTextDetector struct {
	mock.Mock
}

func (m *MockTextDetector) DetectText(ctx context.Context, image []byte) (string, error) {
	args := m.Called(ctx, image)
	return args.String(0), args.Error(1)
}
