package mocks

import (
	"github.com/stretchr/testify/mock"

	"tripwise/internal/domain"
)

// MockEventPublisher is a mock implementation of port.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(topic string, ev domain.Event) int {
	args := m.Called(topic, ev)
	return args.Int(0)
}
