package service

import (
	"context"

	"github.com/google/uuid"

	"tripwise/internal/domain"
	"tripwise/internal/logger"
	"tripwise/internal/port"
)

// CommunityService toggles per-user reactions on forum posts.
type CommunityService interface {
	ToggleLike(ctx context.Context, postID uuid.UUID, userID string) (*domain.ReactionState, error)
	ToggleSave(ctx context.Context, postID uuid.UUID, userID string) (*domain.ReactionState, error)
}

type communityService struct {
	posts     port.PostRepository
	publisher port.EventPublisher
}

// NewCommunityService creates a new CommunityService implementation.
func NewCommunityService(posts port.PostRepository, publisher port.EventPublisher) CommunityService {
	return &communityService{posts: posts, publisher: publisher}
}

// PostTopic returns the realtime topic for a post.
func PostTopic(postID uuid.UUID) string {
	return "post:" + postID.String()
}

func (s *communityService) ToggleLike(ctx context.Context, postID uuid.UUID, userID string) (*domain.ReactionState, error) {
	return s.toggle(ctx, postID, userID, domain.ReactionLike)
}

func (s *communityService) ToggleSave(ctx context.Context, postID uuid.UUID, userID string) (*domain.ReactionState, error) {
	return s.toggle(ctx, postID, userID, domain.ReactionSave)
}

// toggle flips the caller's reaction and the post counter in one transaction.
// The body may run several times when the transaction conflicts, so it only
// touches tx and the state captured on its final run.
func (s *communityService) toggle(ctx context.Context, postID uuid.UUID, userID string, kind domain.ReactionKind) (*domain.ReactionState, error) {
	if userID == "" {
		return nil, domain.NewCallError(domain.CodeUnauthenticated, "authentication required", nil)
	}

	var state *domain.ReactionState
	err := s.posts.InTx(ctx, func(tx port.PostTx) error {
		post, err := tx.GetPost(ctx, postID)
		if err != nil {
			return err
		}
		active, err := tx.HasReaction(ctx, postID, userID, kind)
		if err != nil {
			return err
		}

		delta := 1
		if active {
			delta = -1
			err = tx.RemoveReaction(ctx, postID, userID, kind)
		} else {
			err = tx.AddReaction(ctx, postID, userID, kind)
		}
		if err != nil {
			return err
		}

		switch kind {
		case domain.ReactionLike:
			post.LikeCount = max(post.LikeCount+delta, 0)
		case domain.ReactionSave:
			post.SaveCount = max(post.SaveCount+delta, 0)
		}
		if err := tx.SetCounts(ctx, post); err != nil {
			return err
		}
		state = &domain.ReactionState{Post: post, Kind: kind, Active: !active}
		return nil
	})
	if err != nil {
		return nil, toCallError(ctx, err, "failed to update reaction")
	}

	logger.For(ctx, "community").Debug().
		Str("post_id", postID.String()).Str("kind", string(kind)).Bool("active", state.Active).
		Msg("reaction toggled")
	s.publisher.Publish(PostTopic(postID), domain.Event{Type: domain.EventPostReaction, Data: state})
	return state, nil
}
