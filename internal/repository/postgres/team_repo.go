package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tripwise/internal/domain"
	"tripwise/internal/port"
)

type teamRepo struct {
	db       *sqlx.DB
	attempts int
}

// NewTeamRepo creates a new PostgreSQL-backed TeamRepository.
func NewTeamRepo(db *sqlx.DB, attempts int) port.TeamRepository {
	return &teamRepo{db: db, attempts: attempts}
}

func (r *teamRepo) GetByID(ctx context.Context, teamID uuid.UUID) (*domain.Team, error) {
	return getTeam(ctx, r.db, teamID, false)
}

func (r *teamRepo) CreateMessage(ctx context.Context, msg *domain.ChatMessage) error {
	msg.ID = uuid.New()
	msg.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_messages (id, team_id, sender_id, body, created_at) VALUES ($1, $2, $3, $4, $5)`,
		msg.ID, msg.TeamID, msg.SenderID, msg.Body, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("teamRepo.CreateMessage: %w", err)
	}
	return nil
}

func (r *teamRepo) InTx(ctx context.Context, fn func(tx port.TeamTx) error) error {
	return RunInTx(ctx, r.db, r.attempts, func(tx *sqlx.Tx) error {
		return fn(&teamTx{tx: tx})
	})
}

// getTeam loads a team and its members. forUpdate locks the team row.
func getTeam(ctx context.Context, q sqlx.QueryerContext, teamID uuid.UUID, forUpdate bool) (*domain.Team, error) {
	query := "SELECT id, name, created_at, updated_at FROM teams WHERE id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}

	var team domain.Team
	if err := sqlx.GetContext(ctx, q, &team, query, teamID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("teamRepo.getTeam: %w", err)
	}

	err := sqlx.SelectContext(ctx, q, &team.Members,
		`SELECT team_id, user_id, role, joined_at FROM team_members
		 WHERE team_id = $1 ORDER BY joined_at`, teamID)
	if err != nil {
		return nil, fmt.Errorf("teamRepo.getTeam members: %w", err)
	}
	return &team, nil
}

type teamTx struct {
	tx *sqlx.Tx
}

func (t *teamTx) GetTeam(ctx context.Context, teamID uuid.UUID) (*domain.Team, error) {
	return getTeam(ctx, t.tx, teamID, true)
}

func (t *teamTx) RemoveMember(ctx context.Context, teamID uuid.UUID, userID string) error {
	result, err := t.tx.ExecContext(ctx,
		"DELETE FROM team_members WHERE team_id = $1 AND user_id = $2", teamID, userID)
	if err != nil {
		return fmt.Errorf("teamRepo.RemoveMember: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotTeamMember
	}
	return nil
}

func (t *teamTx) SetRole(ctx context.Context, teamID uuid.UUID, userID string, role domain.TeamRole) error {
	result, err := t.tx.ExecContext(ctx,
		"UPDATE team_members SET role = $1 WHERE team_id = $2 AND user_id = $3", role, teamID, userID)
	if err != nil {
		return fmt.Errorf("teamRepo.SetRole: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrTargetNotMember
	}
	return nil
}

// DeleteTeam removes the team; members and messages cascade.
func (t *teamTx) DeleteTeam(ctx context.Context, teamID uuid.UUID) error {
	_, err := t.tx.ExecContext(ctx, "DELETE FROM teams WHERE id = $1", teamID)
	if err != nil {
		return fmt.Errorf("teamRepo.DeleteTeam: %w", err)
	}
	return nil
}
