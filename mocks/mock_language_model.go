package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tripwise/internal/port"
)

// MockLanguageModel is a mock implementation of port.LanguageModel.
type MockLanguageModel struct {
	mock.Mock
}

func (m *MockLanguageModel) Complete(ctx context.Context, req port.CompletionRequest) (*port.Completion, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.Completion), args.Error(1)
}
