package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTopicAuthorizer is a mock implementation of service.TopicAuthorizer.
type MockTopicAuthorizer struct {
	mock.Mock
}

func (m *MockTopicAuthorizer) AuthorizeTopic(ctx context.Context, callerID, topic string) error {
	args := m.Called(ctx, callerID, topic)
	return args.Error(0)
}
