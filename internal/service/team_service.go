package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"tripwise/internal/domain"
	"tripwise/internal/logger"
	"tripwise/internal/port"
)

// MaxMessageLength bounds a chat message in characters.
const MaxMessageLength = 4000

// QuitResult reports the outcome of leaving a team.
type QuitResult struct {
	TeamID      uuid.UUID `json:"teamId"`
	TeamDeleted bool      `json:"teamDeleted"`
}

// TeamService manages team membership and chat.
type TeamService interface {
	QuitTeam(ctx context.Context, teamID uuid.UUID, userID string) (*QuitResult, error)
	PromoteAdmin(ctx context.Context, teamID uuid.UUID, callerID, targetID string) (*domain.Team, error)
	PostMessage(ctx context.Context, teamID uuid.UUID, userID, body string) (*domain.ChatMessage, error)
}

type teamService struct {
	teams     port.TeamRepository
	publisher port.EventPublisher
}

// NewTeamService creates a new TeamService implementation.
func NewTeamService(teams port.TeamRepository, publisher port.EventPublisher) TeamService {
	return &teamService{teams: teams, publisher: publisher}
}

// TeamTopic returns the realtime topic for a team.
func TeamTopic(teamID uuid.UUID) string {
	return "team:" + teamID.String()
}

// QuitTeam removes the caller from the team. The last member leaving deletes
// the team; the last admin cannot leave while other members remain.
func (s *teamService) QuitTeam(ctx context.Context, teamID uuid.UUID, userID string) (*QuitResult, error) {
	if userID == "" {
		return nil, domain.NewCallError(domain.CodeUnauthenticated, "authentication required", nil)
	}

	var result *QuitResult
	err := s.teams.InTx(ctx, func(tx port.TeamTx) error {
		team, err := tx.GetTeam(ctx, teamID)
		if err != nil {
			return err
		}
		member := team.Member(userID)
		if member == nil {
			return domain.ErrNotTeamMember
		}

		if len(team.Members) == 1 {
			if err := tx.DeleteTeam(ctx, teamID); err != nil {
				return err
			}
			result = &QuitResult{TeamID: teamID, TeamDeleted: true}
			return nil
		}
		if member.Role == domain.TeamRoleAdmin && team.AdminCount() == 1 {
			return domain.ErrLastAdmin
		}
		if err := tx.RemoveMember(ctx, teamID, userID); err != nil {
			return err
		}
		result = &QuitResult{TeamID: teamID}
		return nil
	})
	if err != nil {
		return nil, toCallError(ctx, err, "failed to leave team")
	}

	evType := domain.EventTeamMemberLeft
	if result.TeamDeleted {
		evType = domain.EventTeamDeleted
	}
	s.publisher.Publish(TeamTopic(teamID), domain.Event{
		Type: evType,
		Data: map[string]string{"userId": userID},
	})
	logger.For(ctx, "team").Info().
		Str("team_id", teamID.String()).Bool("team_deleted", result.TeamDeleted).
		Msg("member left team")
	return result, nil
}

// PromoteAdmin grants the admin role to targetID. Only admins may promote.
func (s *teamService) PromoteAdmin(ctx context.Context, teamID uuid.UUID, callerID, targetID string) (*domain.Team, error) {
	if callerID == "" {
		return nil, domain.NewCallError(domain.CodeUnauthenticated, "authentication required", nil)
	}
	if strings.TrimSpace(targetID) == "" {
		return nil, domain.NewCallError(domain.CodeInvalidArgument, "userId is required", nil)
	}

	var team *domain.Team
	err := s.teams.InTx(ctx, func(tx port.TeamTx) error {
		t, err := tx.GetTeam(ctx, teamID)
		if err != nil {
			return err
		}
		caller := t.Member(callerID)
		if caller == nil {
			return domain.ErrNotTeamMember
		}
		if caller.Role != domain.TeamRoleAdmin {
			return domain.ErrNotTeamAdmin
		}
		target := t.Member(targetID)
		if target == nil {
			return domain.ErrTargetNotMember
		}
		if target.Role != domain.TeamRoleAdmin {
			if err := tx.SetRole(ctx, teamID, targetID, domain.TeamRoleAdmin); err != nil {
				return err
			}
			target.Role = domain.TeamRoleAdmin
		}
		team = t
		return nil
	})
	if err != nil {
		return nil, toCallError(ctx, err, "failed to promote member")
	}

	s.publisher.Publish(TeamTopic(teamID), domain.Event{
		Type: domain.EventTeamAdminAdded,
		Data: map[string]string{"userId": targetID, "promotedBy": callerID},
	})
	return team, nil
}

// PostMessage appends a message to the team chat. Only members may post.
func (s *teamService) PostMessage(ctx context.Context, teamID uuid.UUID, userID, body string) (*domain.ChatMessage, error) {
	if userID == "" {
		return nil, domain.NewCallError(domain.CodeUnauthenticated, "authentication required", nil)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.NewCallError(domain.CodeInvalidArgument, "message body is required", nil)
	}
	if utf8.RuneCountInString(body) > MaxMessageLength {
		return nil, domain.NewCallError(domain.CodeInvalidArgument, "message is too long", nil)
	}

	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, toCallError(ctx, err, "failed to load team")
	}
	if team.Member(userID) == nil {
		return nil, toCallError(ctx, domain.ErrNotTeamMember, "")
	}

	msg := &domain.ChatMessage{TeamID: teamID, SenderID: userID, Body: body}
	if err := s.teams.CreateMessage(ctx, msg); err != nil {
		return nil, toCallError(ctx, err, "failed to send message")
	}

	s.publisher.Publish(TeamTopic(teamID), domain.Event{Type: domain.EventChatMessage, Data: msg, At: msg.CreatedAt})
	return msg, nil
}
