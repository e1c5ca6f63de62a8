package port

import (
	"context"

	"github.com/google/uuid"

	"tripwise/internal/domain"
)

// TripTemplateRepository reads trip templates and their authorized users.
type TripTemplateRepository interface {
	GetByID(ctx context.Context, id string) (*domain.TripTemplate, error)
}

// BudgetEstimateRepository persists budget estimates, one per template.
type BudgetEstimateRepository interface {
	Upsert(ctx context.Context, est *domain.BudgetEstimate) error
	GetByTemplateID(ctx context.Context, templateID string) (*domain.BudgetEstimate, error)
}

// PostRepository runs community post mutations in retrying transactions.
type PostRepository interface {
	InTx(ctx context.Context, fn func(tx PostTx) error) error
}

// PostTx is the set of operations available inside a post transaction.
type PostTx interface {
	GetPost(ctx context.Context, postID uuid.UUID) (*domain.Post, error)
	HasReaction(ctx context.Context, postID uuid.UUID, userID string, kind domain.ReactionKind) (bool, error)
	AddReaction(ctx context.Context, postID uuid.UUID, userID string, kind domain.ReactionKind) error
	RemoveReaction(ctx context.Context, postID uuid.UUID, userID string, kind domain.ReactionKind) error
	SetCounts(ctx context.Context, post *domain.Post) error
}

// TeamRepository reads teams and runs membership mutations in retrying transactions.
type TeamRepository interface {
	GetByID(ctx context.Context, teamID uuid.UUID) (*domain.Team, error)
	CreateMessage(ctx context.Context, msg *domain.ChatMessage) error
	InTx(ctx context.Context, fn func(tx TeamTx) error) error
}

// TeamTx is the set of operations available inside a team transaction.
type TeamTx interface {
	GetTeam(ctx context.Context, teamID uuid.UUID) (*domain.Team, error)
	RemoveMember(ctx context.Context, teamID uuid.UUID, userID string) error
	SetRole(ctx context.Context, teamID uuid.UUID, userID string, role domain.TeamRole) error
	DeleteTeam(ctx context.Context, teamID uuid.UUID) error
}
