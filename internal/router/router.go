package router

import (
	"github.com/gin-gonic/gin"

	"tripwise/internal/handler"
	"tripwise/internal/middleware"
	"tripwise/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Functions *handler.FunctionsHandler
	Budget    *handler.BudgetHandler
	Community *handler.CommunityHandler
	Team      *handler.TeamHandler
	Stream    *handler.StreamHandler
	Health    *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, allowedOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// Every API route requires a verified caller
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(authSvc))

	functions := v1.Group("/functions")
	functions.POST("/parseReceiptWithAI", h.Functions.ParseReceipt)
	functions.POST("/estimateBudget", h.Functions.EstimateBudget)

	templates := v1.Group("/templates")
	templates.GET("/:id/budget", h.Budget.Get)
	templates.GET("/:id/budget/export", h.Budget.Export)

	posts := v1.Group("/posts")
	posts.POST("/:id/like", h.Community.ToggleLike)
	posts.POST("/:id/save", h.Community.ToggleSave)

	teams := v1.Group("/teams")
	teams.POST("/:id/quit", h.Team.Quit)
	teams.POST("/:id/admins", h.Team.PromoteAdmin)
	teams.POST("/:id/messages", h.Team.PostMessage)

	v1.GET("/stream/:topic", h.Stream.Stream)

	return r
}
