package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripwise/internal/domain"
	"tripwise/internal/service"
)

// TeamHandler handles team membership and chat endpoints.
type TeamHandler struct {
	teamService service.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func parseTeamID(c *gin.Context) (uuid.UUID, bool) {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, domain.CodeInvalidArgument, "invalid team ID")
		return uuid.Nil, false
	}
	return teamID, true
}

// Quit handles POST /api/v1/teams/:id/quit
func (h *TeamHandler) Quit(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	teamID, ok := parseTeamID(c)
	if !ok {
		return
	}

	result, err := h.teamService.QuitTeam(c.Request.Context(), teamID, caller)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// PromoteAdmin handles POST /api/v1/teams/:id/admins
func (h *TeamHandler) PromoteAdmin(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	teamID, ok := parseTeamID(c)
	if !ok {
		return
	}

	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, domain.CodeInvalidArgument, "userId is required")
		return
	}

	team, err := h.teamService.PromoteAdmin(c.Request.Context(), teamID, caller, req.UserID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, team)
}

// PostMessage handles POST /api/v1/teams/:id/messages
func (h *TeamHandler) PostMessage(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	teamID, ok := parseTeamID(c)
	if !ok {
		return
	}

	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, domain.CodeInvalidArgument, "message body is required")
		return
	}

	msg, err := h.teamService.PostMessage(c.Request.Context(), teamID, caller, req.Body)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, msg)
}
