package port

import "tripwise/internal/domain"

// EventPublisher fans events out to realtime subscribers of a topic.
type EventPublisher interface {
	Publish(topic string, ev domain.Event) int
}
