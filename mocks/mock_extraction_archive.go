package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tripwise/internal/port"
)

// MockExtractionArchive is a mock implementation of port.ExtractionArchive.
type MockExtractionArchive struct {
	mock.Mock
}

func (m *MockExtractionArchive) Store(ctx context.Context, rec *port.ExtractionRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
