package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripwise/internal/domain"
	"tripwise/internal/service"
)

// CommunityHandler handles post reaction endpoints.
type CommunityHandler struct {
	communityService service.CommunityService
}

// NewCommunityHandler creates a new CommunityHandler.
func NewCommunityHandler(communityService service.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: communityService}
}

// ToggleLike handles POST /api/v1/posts/:id/like
func (h *CommunityHandler) ToggleLike(c *gin.Context) {
	h.toggle(c, h.communityService.ToggleLike)
}

// ToggleSave handles POST /api/v1/posts/:id/save
func (h *CommunityHandler) ToggleSave(c *gin.Context) {
	h.toggle(c, h.communityService.ToggleSave)
}

type toggleFunc func(ctx context.Context, postID uuid.UUID, userID string) (*domain.ReactionState, error)

func (h *CommunityHandler) toggle(c *gin.Context, fn toggleFunc) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, domain.CodeInvalidArgument, "invalid post ID")
		return
	}

	state, err := fn(c.Request.Context(), postID, caller)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, state)
}
