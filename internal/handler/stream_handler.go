package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripwise/internal/domain"
	"tripwise/internal/logger"
	"tripwise/internal/realtime"
	"tripwise/internal/service"
)

const defaultHeartbeat = 15 * time.Second

// Subscriber opens topic subscriptions. Implemented by *realtime.Hub.
type Subscriber interface {
	Subscribe(topic string) (*realtime.Subscription, error)
}

// StreamHandler pushes realtime events to clients as server-sent events.
type StreamHandler struct {
	hub        Subscriber
	authorizer service.TopicAuthorizer
	heartbeat  time.Duration
}

// NewStreamHandler creates a new StreamHandler. A non-positive heartbeat uses the default.
func NewStreamHandler(hub Subscriber, authorizer service.TopicAuthorizer, heartbeat time.Duration) *StreamHandler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &StreamHandler{hub: hub, authorizer: authorizer, heartbeat: heartbeat}
}

// Stream handles GET /api/v1/stream/:topic
// The subscription lives until the client disconnects or the hub stops.
func (h *StreamHandler) Stream(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	topic := c.Param("topic")

	if err := h.authorizer.AuthorizeTopic(ctx, caller, topic); err != nil {
		HandleError(c, err)
		return
	}

	sub, err := h.hub.Subscribe(topic)
	if err != nil {
		RespondError(c, http.StatusServiceUnavailable, domain.CodeInternal, "realtime updates are unavailable")
		return
	}
	defer sub.Unsubscribe()

	log := logger.For(ctx, "stream")
	log.Debug().Str("topic", topic).Str("caller_id", caller).Msg("subscriber connected")

	// Streams outlive the server write timeout.
	_ = http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{})

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, open := <-sub.Events():
			if !open {
				return false
			}
			c.SSEvent(ev.Type, ev)
			return true
		case <-ticker.C:
			_, err := fmt.Fprint(w, ": heartbeat\n\n")
			return err == nil
		}
	})

	log.Debug().Str("topic", topic).Msg("subscriber disconnected")
}
