package handler_test

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tripwise/internal/domain"
	"tripwise/internal/handler"
	"tripwise/internal/middleware"
	"tripwise/internal/realtime"
	"tripwise/mocks"
)

func streamServer(hub *realtime.Hub, authz *mocks.MockTopicAuthorizer, heartbeat time.Duration) *httptest.Server {
	h := handler.NewStreamHandler(hub, authz, heartbeat)
	r := gin.New()
	r.GET("/stream/:topic", func(c *gin.Context) {
		c.Set(middleware.ContextKeyCallerID, "user-1")
		c.Next()
	}, h.Stream)
	return httptest.NewServer(r)
}

func TestStreamHandler_DeliversEvents(t *testing.T) {
	hub := realtime.NewHub(8)
	defer hub.Stop()
	authz := new(mocks.MockTopicAuthorizer)
	authz.On("AuthorizeTopic", mock.Anything, "user-1", "team:abc").Return(nil)
	srv := streamServer(hub, authz, time.Hour)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/stream/team:abc", http.NoBody)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return hub.Subscribers("team:abc") == 1 }, 2*time.Second, 10*time.Millisecond)
	hub.Publish("team:abc", domain.Event{Type: domain.EventChatMessage, Data: map[string]string{"body": "hi"}})

	reader := bufio.NewReader(resp.Body)
	var lines []string
	for len(lines) < 2 {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	assert.Equal(t, "event:"+domain.EventChatMessage, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "data:"))
	assert.Contains(t, lines[1], `"topic":"team:abc"`)
	assert.Contains(t, lines[1], `"body":"hi"`)

	cancel()
	assert.Eventually(t, func() bool { return hub.Subscribers("team:abc") == 0 }, 2*time.Second, 10*time.Millisecond,
		"disconnecting the client cancels the subscription")
}

func TestStreamHandler_Heartbeat(t *testing.T) {
	hub := realtime.NewHub(8)
	defer hub.Stop()
	authz := new(mocks.MockTopicAuthorizer)
	authz.On("AuthorizeTopic", mock.Anything, "user-1", "post:p1").Return(nil)
	srv := streamServer(hub, authz, 20*time.Millisecond)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/stream/post:p1", http.NoBody)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ": heartbeat\n", line)
}

func TestStreamHandler_HubStopEndsStream(t *testing.T) {
	hub := realtime.NewHub(8)
	authz := new(mocks.MockTopicAuthorizer)
	authz.On("AuthorizeTopic", mock.Anything, "user-1", "post:p1").Return(nil)
	srv := streamServer(hub, authz, time.Hour)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/stream/post:p1")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Eventually(t, func() bool { return hub.Subscribers("post:p1") == 1 }, 2*time.Second, 10*time.Millisecond)
	hub.Stop()

	done := make(chan struct{})
	go func() {
		_, _ = bufio.NewReader(resp.Body).ReadString('\n')
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end after hub stop")
	}
}

func TestStreamHandler_Forbidden(t *testing.T) {
	hub := realtime.NewHub(8)
	defer hub.Stop()
	authz := new(mocks.MockTopicAuthorizer)
	authz.On("AuthorizeTopic", mock.Anything, "user-1", "template:tpl").
		Return(domain.NewCallError(domain.CodePermissionDenied, "caller is not an authorized template user", nil))
	srv := streamServer(hub, authz, time.Hour)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/stream/template:tpl")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, hub.Subscribers("template:tpl"))
}

func TestStreamHandler_HubStopped(t *testing.T) {
	hub := realtime.NewHub(8)
	hub.Stop()
	authz := new(mocks.MockTopicAuthorizer)
	authz.On("AuthorizeTopic", mock.Anything, "user-1", "post:p1").Return(nil)
	srv := streamServer(hub, authz, time.Hour)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/stream/post:p1")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	h := handler.NewHealthHandler(stubPinger{})
	c, w := newContext(http.MethodGet, "/healthz", nil, "")
	h.Liveness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(http.MethodGet, "/readyz", nil, "")
	h.Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	h = handler.NewHealthHandler(stubPinger{err: errors.New("dial tcp: refused")})
	c, w = newContext(http.MethodGet, "/readyz", nil, "")
	h.Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "dial tcp")
}
