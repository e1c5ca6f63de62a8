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

type postRepo struct {
	db       *sqlx.DB
	attempts int
}

// NewPostRepo creates a new PostgreSQL-backed PostRepository. attempts bounds
// the number of times a conflicting transaction is replayed.
func NewPostRepo(db *sqlx.DB, attempts int) port.PostRepository {
	return &postRepo{db: db, attempts: attempts}
}

func (r *postRepo) InTx(ctx context.Context, fn func(tx port.PostTx) error) error {
	return RunInTx(ctx, r.db, r.attempts, func(tx *sqlx.Tx) error {
		return fn(&postTx{tx: tx})
	})
}

type postTx struct {
	tx *sqlx.Tx
}

func (p *postTx) GetPost(ctx context.Context, postID uuid.UUID) (*domain.Post, error) {
	var post domain.Post
	err := p.tx.GetContext(ctx, &post,
		`SELECT id, author_id, title, body, like_count, save_count, created_at, updated_at
		 FROM posts WHERE id = $1 FOR UPDATE`, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("postRepo.GetPost: %w", err)
	}
	return &post, nil
}

func (p *postTx) HasReaction(ctx context.Context, postID uuid.UUID, userID string, kind domain.ReactionKind) (bool, error) {
	var exists bool
	err := p.tx.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM post_reactions WHERE post_id = $1 AND user_id = $2 AND kind = $3)`,
		postID, userID, kind)
	if err != nil {
		return false, fmt.Errorf("postRepo.HasReaction: %w", err)
	}
	return exists, nil
}

func (p *postTx) AddReaction(ctx context.Context, postID uuid.UUID, userID string, kind domain.ReactionKind) error {
	_, err := p.tx.ExecContext(ctx,
		`INSERT INTO post_reactions (post_id, user_id, kind, created_at) VALUES ($1, $2, $3, $4)`,
		postID, userID, kind, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("postRepo.AddReaction: %w", err)
	}
	return nil
}

func (p *postTx) RemoveReaction(ctx context.Context, postID uuid.UUID, userID string, kind domain.ReactionKind) error {
	_, err := p.tx.ExecContext(ctx,
		"DELETE FROM post_reactions WHERE post_id = $1 AND user_id = $2 AND kind = $3",
		postID, userID, kind)
	if err != nil {
		return fmt.Errorf("postRepo.RemoveReaction: %w", err)
	}
	return nil
}

func (p *postTx) SetCounts(ctx context.Context, post *domain.Post) error {
	post.UpdatedAt = time.Now().UTC()
	_, err := p.tx.ExecContext(ctx,
		"UPDATE posts SET like_count = $1, save_count = $2, updated_at = $3 WHERE id = $4",
		post.LikeCount, post.SaveCount, post.UpdatedAt, post.ID)
	if err != nil {
		return fmt.Errorf("postRepo.SetCounts: %w", err)
	}
	return nil
}
