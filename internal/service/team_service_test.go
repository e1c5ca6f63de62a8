package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tripwise/internal/domain"
	"tripwise/internal/service"
	"tripwise/mocks"
)

func setupTeamService() (service.TeamService, *mocks.MockTeamRepo, *mocks.MockEventPublisher) {
	repo := &mocks.MockTeamRepo{Tx: new(mocks.MockTeamTx)}
	repo.On("InTx", mock.Anything).Return(nil).Maybe()
	pub := new(mocks.MockEventPublisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(0).Maybe()
	return service.NewTeamService(repo, pub), repo, pub
}

func team(id uuid.UUID, members ...domain.TeamMember) *domain.Team {
	for i := range members {
		members[i].TeamID = id
	}
	return &domain.Team{ID: id, Name: "Lisbon crew", Members: members}
}

func admin(userID string) domain.TeamMember {
	return domain.TeamMember{UserID: userID, Role: domain.TeamRoleAdmin}
}

func member(userID string) domain.TeamMember {
	return domain.TeamMember{UserID: userID, Role: domain.TeamRoleMember}
}

// --- QuitTeam ---

func TestTeamService_QuitTeam_Member(t *testing.T) {
	svc, repo, pub := setupTeamService()
	teamID := uuid.New()
	repo.Tx.On("GetTeam", mock.Anything, teamID).Return(team(teamID, admin("a"), member("b")), nil)
	repo.Tx.On("RemoveMember", mock.Anything, teamID, "b").Return(nil)

	res, err := svc.QuitTeam(context.Background(), teamID, "b")

	require.NoError(t, err)
	assert.False(t, res.TeamDeleted)
	pub.AssertCalled(t, "Publish", "team:"+teamID.String(), mock.MatchedBy(func(ev domain.Event) bool {
		return ev.Type == domain.EventTeamMemberLeft
	}))
}

func TestTeamService_QuitTeam_LastMemberDeletesTeam(t *testing.T) {
	svc, repo, pub := setupTeamService()
	teamID := uuid.New()
	repo.Tx.On("GetTeam", mock.Anything, teamID).Return(team(teamID, admin("a")), nil)
	repo.Tx.On("DeleteTeam", mock.Anything, teamID).Return(nil)

	res, err := svc.QuitTeam(context.Background(), teamID, "a")

	require.NoError(t, err)
	assert.True(t, res.TeamDeleted)
	repo.Tx.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything, mock.Anything)
	pub.AssertCalled(t, "Publish", "team:"+teamID.String(), mock.MatchedBy(func(ev domain.Event) bool {
		return ev.Type == domain.EventTeamDeleted
	}))
}

func TestTeamService_QuitTeam_LastAdminBlocked(t *testing.T) {
	svc, repo, _ := setupTeamService()
	teamID := uuid.New()
	repo.Tx.On("GetTeam", mock.Anything, teamID).Return(team(teamID, admin("a"), member("b")), nil)

	_, err := svc.QuitTeam(context.Background(), teamID, "a")

	assertCallCode(t, err, domain.CodeInvalidArgument)
	repo.Tx.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestTeamService_QuitTeam_AdminWithCoAdmin(t *testing.T) {
	svc, repo, _ := setupTeamService()
	teamID := uuid.New()
	repo.Tx.On("GetTeam", mock.Anything, teamID).Return(team(teamID, admin("a"), admin("b"), member("c")), nil)
	repo.Tx.On("RemoveMember", mock.Anything, teamID, "a").Return(nil)

	_, err := svc.QuitTeam(context.Background(), teamID, "a")
	require.NoError(t, err)
}

func TestTeamService_QuitTeam_NotMember(t *testing.T) {
	svc, repo, _ := setupTeamService()
	teamID := uuid.New()
	repo.Tx.On("GetTeam", mock.Anything, teamID).Return(team(teamID, admin("a")), nil)

	_, err := svc.QuitTeam(context.Background(), teamID, "z")
	assertCallCode(t, err, domain.CodePermissionDenied)
}

func TestTeamService_QuitTeam_TeamNotFound(t *testing.T) {
	svc, repo, _ := setupTeamService()
	teamID := uuid.New()
	repo.Tx.On("GetTeam", mock.Anything, teamID).Return(nil, domain.ErrTeamNotFound)

	_, err := svc.QuitTeam(context.Background(), teamID, "a")
	assertCallCode(t, err, domain.CodeNotFound)
}

// --- PromoteAdmin ---

func TestTeamService_PromoteAdmin(t *testing.T) {
	svc, repo, pub := setupTeamService()
	teamID := uuid.New()
	repo.Tx.On("GetTeam", mock.Anything, teamID).Return(team(teamID, admin("a"), member("b")), nil)
	repo.Tx.On("SetRole", mock.Anything, teamID, "b", domain.TeamRoleAdmin).Return(nil)

	got, err := svc.PromoteAdmin(context.Background(), teamID, "a", "b")

	require.NoError(t, err)
	assert.Equal(t, 2, got.AdminCount())
	pub.AssertCalled(t, "Publish", "team:"+teamID.String(), mock.MatchedBy(func(ev domain.Event) bool {
		return ev.Type == domain.EventTeamAdminAdded
	}))
}

func TestTeamService_PromoteAdmin_AlreadyAdminIsNoop(t *testing.T) {
	svc, repo, _ := setupTeamService()
	teamID := uuid.New()
	repo.Tx.On("GetTeam", mock.Anything, teamID).Return(team(teamID, admin("a"), admin("b")), nil)

	_, err := svc.PromoteAdmin(context.Background(), teamID, "a", "b")

	require.NoError(t, err)
	repo.Tx.AssertNotCalled(t, "SetRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTeamService_PromoteAdmin_Errors(t *testing.T) {
	tests := []struct {
		name     string
		callerID string
		targetID string
		code     domain.ErrorCode
	}{
		{"caller not admin", "b", "c", domain.CodePermissionDenied},
		{"caller not member", "z", "b", domain.CodePermissionDenied},
		{"target not member", "a", "z", domain.CodeInvalidArgument},
		{"empty target", "a", "", domain.CodeInvalidArgument},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, _ := setupTeamService()
			teamID := uuid.New()
			repo.Tx.On("GetTeam", mock.Anything, teamID).Return(team(teamID, admin("a"), member("b"), member("c")), nil).Maybe()

			_, err := svc.PromoteAdmin(context.Background(), teamID, tc.callerID, tc.targetID)

			assertCallCode(t, err, tc.code)
			repo.Tx.AssertNotCalled(t, "SetRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

// --- PostMessage ---

func TestTeamService_PostMessage(t *testing.T) {
	svc, repo, pub := setupTeamService()
	teamID := uuid.New()
	repo.On("GetByID", mock.Anything, teamID).Return(team(teamID, admin("a"), member("b")), nil)
	repo.On("CreateMessage", mock.Anything, mock.MatchedBy(func(m *domain.ChatMessage) bool {
		return m.TeamID == teamID && m.SenderID == "b" && m.Body == "See you at the station"
	})).Return(nil)

	msg, err := svc.PostMessage(context.Background(), teamID, "b", "  See you at the station \n")

	require.NoError(t, err)
	assert.Equal(t, "See you at the station", msg.Body)
	pub.AssertCalled(t, "Publish", "team:"+teamID.String(), mock.MatchedBy(func(ev domain.Event) bool {
		return ev.Type == domain.EventChatMessage
	}))
}

func TestTeamService_PostMessage_Validation(t *testing.T) {
	svc, repo, _ := setupTeamService()
	teamID := uuid.New()

	_, err := svc.PostMessage(context.Background(), teamID, "b", "   ")
	assertCallCode(t, err, domain.CodeInvalidArgument)

	_, err = svc.PostMessage(context.Background(), teamID, "b", strings.Repeat("x", service.MaxMessageLength+1))
	assertCallCode(t, err, domain.CodeInvalidArgument)

	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestTeamService_PostMessage_NotMember(t *testing.T) {
	svc, repo, _ := setupTeamService()
	teamID := uuid.New()
	repo.On("GetByID", mock.Anything, teamID).Return(team(teamID, admin("a")), nil)

	_, err := svc.PostMessage(context.Background(), teamID, "z", "hi")

	assertCallCode(t, err, domain.CodePermissionDenied)
	repo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}
