package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"tripwise/internal/domain"
	"tripwise/internal/port"
)

// TopicAuthorizer decides whether a caller may subscribe to a realtime topic.
type TopicAuthorizer interface {
	AuthorizeTopic(ctx context.Context, callerID, topic string) error
}

type topicAuthorizer struct {
	templates port.TripTemplateRepository
	teams     port.TeamRepository
}

// NewTopicAuthorizer creates a new TopicAuthorizer implementation.
func NewTopicAuthorizer(templates port.TripTemplateRepository, teams port.TeamRepository) TopicAuthorizer {
	return &topicAuthorizer{templates: templates, teams: teams}
}

// AuthorizeTopic allows template:{id} to template users, team:{id} to team
// members and post:{id} to any authenticated caller.
func (a *topicAuthorizer) AuthorizeTopic(ctx context.Context, callerID, topic string) error {
	if callerID == "" {
		return domain.NewCallError(domain.CodeUnauthenticated, "authentication required", nil)
	}
	kind, id, ok := strings.Cut(topic, ":")
	if !ok || id == "" {
		return domain.NewCallError(domain.CodeInvalidArgument, "unknown topic", nil)
	}

	switch kind {
	case "template":
		tpl, err := a.templates.GetByID(ctx, id)
		if err != nil {
			return toCallError(ctx, err, "failed to load trip template")
		}
		if !tpl.HasUser(callerID) {
			return toCallError(ctx, domain.ErrNotTemplateUser, "")
		}
		return nil

	case "team":
		teamID, err := uuid.Parse(id)
		if err != nil {
			return domain.NewCallError(domain.CodeInvalidArgument, "invalid team id", err)
		}
		team, err := a.teams.GetByID(ctx, teamID)
		if err != nil {
			return toCallError(ctx, err, "failed to load team")
		}
		if team.Member(callerID) == nil {
			return toCallError(ctx, domain.ErrNotTeamMember, "")
		}
		return nil

	case "post":
		if _, err := uuid.Parse(id); err != nil {
			return domain.NewCallError(domain.CodeInvalidArgument, "invalid post id", err)
		}
		return nil
	}
	return domain.NewCallError(domain.CodeInvalidArgument, "unknown topic", nil)
}
