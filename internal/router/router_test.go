package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tripwise/internal/domain"
	"tripwise/internal/handler"
	"tripwise/internal/realtime"
	"tripwise/internal/router"
	"tripwise/internal/service"
	"tripwise/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func setupRouter() (*gin.Engine, *mocks.MockAuthService, *mocks.MockCommunityService) {
	authSvc := new(mocks.MockAuthService)
	community := new(mocks.MockCommunityService)
	h := router.Handlers{
		Functions: handler.NewFunctionsHandler(new(mocks.MockReceiptService), new(mocks.MockBudgetService)),
		Budget:    handler.NewBudgetHandler(new(mocks.MockBudgetService)),
		Community: handler.NewCommunityHandler(community),
		Team:      handler.NewTeamHandler(new(mocks.MockTeamService)),
		Stream:    handler.NewStreamHandler(realtime.NewHub(4), new(mocks.MockTopicAuthorizer), 0),
		Health:    handler.NewHealthHandler(okPinger{}),
	}
	return router.Setup(authSvc, []string{"*"}, h), authSvc, community
}

func TestRouter_HealthIsPublic(t *testing.T) {
	r, _, _ := setupRouter()

	for _, path := range []string{"/healthz", "/readyz"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, http.NoBody)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRouter_APIRequiresAuth(t *testing.T) {
	r, _, _ := setupRouter()

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/functions/parseReceiptWithAI"},
		{http.MethodPost, "/api/v1/functions/estimateBudget"},
		{http.MethodGet, "/api/v1/templates/tpl-1/budget"},
		{http.MethodGet, "/api/v1/templates/tpl-1/budget/export"},
		{http.MethodPost, "/api/v1/posts/x/like"},
		{http.MethodPost, "/api/v1/teams/x/quit"},
		{http.MethodGet, "/api/v1/stream/post:x"},
	}
	for _, rt := range routes {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(rt.method, rt.path, http.NoBody)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, rt.path)
	}
}

func TestRouter_AuthenticatedRoute(t *testing.T) {
	r, authSvc, community := setupRouter()
	authSvc.On("ValidateToken", "tok").Return(&service.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}}, nil)
	community.On("ToggleLike", mock.Anything, mock.Anything, "user-1").
		Return(&domain.ReactionState{Post: &domain.Post{LikeCount: 1}, Kind: domain.ReactionLike, Active: true}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/posts/8a7f4c1e-2b0d-4c55-9d3e-6f1a2b3c4d5e/like", http.NoBody)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	community.AssertExpectations(t)
}
