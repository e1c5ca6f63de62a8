// Package realtime fans domain events out to topic subscribers.
package realtime

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"tripwise/internal/domain"
)

// ErrHubStopped is returned by Subscribe after Stop.
var ErrHubStopped = errors.New("realtime hub stopped")

// Hub delivers published events to every current subscriber of a topic.
// Each subscriber has a bounded buffer; when it is full the event is dropped
// for that subscriber and publishers never block.
type Hub struct {
	bufferSize int

	mu      sync.RWMutex
	topics  map[string]map[*Subscription]struct{}
	stopped bool

	dropped atomic.Uint64
}

// NewHub creates a hub whose subscribers buffer up to bufferSize events.
func NewHub(bufferSize int) *Hub {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &Hub{
		bufferSize: bufferSize,
		topics:     make(map[string]map[*Subscription]struct{}),
	}
}

// Start stops the hub when ctx is cancelled.
func (h *Hub) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		h.Stop()
	}()
}

// Stop closes every subscription. It is safe to call more than once.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	h.stopped = true
	for topic, subs := range h.topics {
		for sub := range subs {
			close(sub.ch)
		}
		delete(h.topics, topic)
	}
	log.Info().Uint64("dropped_events", h.dropped.Load()).Msg("realtime hub stopped")
}

// Subscribe registers a new subscriber on topic.
func (h *Hub) Subscribe(topic string) (*Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return nil, ErrHubStopped
	}
	sub := &Subscription{
		topic: topic,
		ch:    make(chan domain.Event, h.bufferSize),
		hub:   h,
	}
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[*Subscription]struct{})
		h.topics[topic] = subs
	}
	subs[sub] = struct{}{}
	return sub, nil
}

// Publish delivers ev to the topic's subscribers and returns how many received it.
func (h *Hub) Publish(topic string, ev domain.Event) int {
	if ev.Topic == "" {
		ev.Topic = topic
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for sub := range h.topics[topic] {
		select {
		case sub.ch <- ev:
			delivered++
		default:
			h.dropped.Add(1)
			log.Warn().Str("topic", topic).Str("event", ev.Type).Msg("subscriber buffer full, event dropped")
		}
	}
	return delivered
}

// Subscribers returns the number of subscribers on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Dropped returns the number of events dropped for slow subscribers.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.topics[sub.topic]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	close(sub.ch)
	if len(subs) == 0 {
		delete(h.topics, sub.topic)
	}
}

// Subscription is one subscriber's view of a topic.
type Subscription struct {
	topic string
	ch    chan domain.Event
	hub   *Hub
	once  sync.Once
}

// Topic returns the subscribed topic.
func (s *Subscription) Topic() string { return s.topic }

// Events is closed after Unsubscribe or when the hub stops.
func (s *Subscription) Events() <-chan domain.Event { return s.ch }

// Unsubscribe detaches the subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() { s.hub.remove(s) })
}
