package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tripwise/internal/domain"
	"tripwise/internal/service"
	"tripwise/mocks"
)

func setupCommunityService() (service.CommunityService, *mocks.MockPostRepo, *mocks.MockEventPublisher) {
	repo := &mocks.MockPostRepo{Tx: new(mocks.MockPostTx)}
	repo.On("InTx", mock.Anything).Return(nil).Maybe()
	pub := new(mocks.MockEventPublisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(0).Maybe()
	return service.NewCommunityService(repo, pub), repo, pub
}

func TestCommunityService_ToggleLike_Adds(t *testing.T) {
	svc, repo, pub := setupCommunityService()
	postID := uuid.New()

	repo.Tx.On("GetPost", mock.Anything, postID).Return(&domain.Post{ID: postID, LikeCount: 4, SaveCount: 1}, nil)
	repo.Tx.On("HasReaction", mock.Anything, postID, "user-1", domain.ReactionLike).Return(false, nil)
	repo.Tx.On("AddReaction", mock.Anything, postID, "user-1", domain.ReactionLike).Return(nil)
	repo.Tx.On("SetCounts", mock.Anything, mock.MatchedBy(func(p *domain.Post) bool {
		return p.LikeCount == 5 && p.SaveCount == 1
	})).Return(nil)

	state, err := svc.ToggleLike(context.Background(), postID, "user-1")

	require.NoError(t, err)
	assert.True(t, state.Active)
	assert.Equal(t, 5, state.Post.LikeCount)
	pub.AssertCalled(t, "Publish", "post:"+postID.String(), mock.MatchedBy(func(ev domain.Event) bool {
		return ev.Type == domain.EventPostReaction
	}))
}

func TestCommunityService_ToggleSave_Removes(t *testing.T) {
	svc, repo, _ := setupCommunityService()
	postID := uuid.New()

	repo.Tx.On("GetPost", mock.Anything, postID).Return(&domain.Post{ID: postID, LikeCount: 2, SaveCount: 3}, nil)
	repo.Tx.On("HasReaction", mock.Anything, postID, "user-1", domain.ReactionSave).Return(true, nil)
	repo.Tx.On("RemoveReaction", mock.Anything, postID, "user-1", domain.ReactionSave).Return(nil)
	repo.Tx.On("SetCounts", mock.Anything, mock.Anything).Return(nil)

	state, err := svc.ToggleSave(context.Background(), postID, "user-1")

	require.NoError(t, err)
	assert.False(t, state.Active)
	assert.Equal(t, domain.ReactionSave, state.Kind)
	assert.Equal(t, 2, state.Post.SaveCount)
	assert.Equal(t, 2, state.Post.LikeCount)
	repo.Tx.AssertNotCalled(t, "AddReaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCommunityService_Toggle_CounterNeverNegative(t *testing.T) {
	svc, repo, _ := setupCommunityService()
	postID := uuid.New()

	repo.Tx.On("GetPost", mock.Anything, postID).Return(&domain.Post{ID: postID, LikeCount: 0}, nil)
	repo.Tx.On("HasReaction", mock.Anything, postID, "user-1", domain.ReactionLike).Return(true, nil)
	repo.Tx.On("RemoveReaction", mock.Anything, postID, "user-1", domain.ReactionLike).Return(nil)
	repo.Tx.On("SetCounts", mock.Anything, mock.Anything).Return(nil)

	state, err := svc.ToggleLike(context.Background(), postID, "user-1")

	require.NoError(t, err)
	assert.Equal(t, 0, state.Post.LikeCount)
}

func TestCommunityService_Toggle_ReplayedBodyReadsFreshState(t *testing.T) {
	svc, repo, _ := setupCommunityService()
	repo.Runs = 2
	postID := uuid.New()

	// First run sees no like; a concurrent writer liked meanwhile, so the replay sees it.
	repo.Tx.On("GetPost", mock.Anything, postID).Return(&domain.Post{ID: postID, LikeCount: 0}, nil).Once()
	repo.Tx.On("GetPost", mock.Anything, postID).Return(&domain.Post{ID: postID, LikeCount: 1}, nil).Once()
	repo.Tx.On("HasReaction", mock.Anything, postID, "user-1", domain.ReactionLike).Return(false, nil).Once()
	repo.Tx.On("HasReaction", mock.Anything, postID, "user-1", domain.ReactionLike).Return(true, nil).Once()
	repo.Tx.On("AddReaction", mock.Anything, postID, "user-1", domain.ReactionLike).Return(nil)
	repo.Tx.On("RemoveReaction", mock.Anything, postID, "user-1", domain.ReactionLike).Return(nil)
	repo.Tx.On("SetCounts", mock.Anything, mock.Anything).Return(nil)

	state, err := svc.ToggleLike(context.Background(), postID, "user-1")

	require.NoError(t, err)
	assert.False(t, state.Active, "result reflects the committed run")
	assert.Equal(t, 0, state.Post.LikeCount)
}

func TestCommunityService_Toggle_PostNotFound(t *testing.T) {
	svc, repo, pub := setupCommunityService()
	postID := uuid.New()
	repo.Tx.On("GetPost", mock.Anything, postID).Return(nil, domain.ErrPostNotFound)

	_, err := svc.ToggleLike(context.Background(), postID, "user-1")

	assertCallCode(t, err, domain.CodeNotFound)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCommunityService_Toggle_TxFailure(t *testing.T) {
	repo := &mocks.MockPostRepo{Tx: new(mocks.MockPostTx)}
	repo.On("InTx", mock.Anything).Return(errors.New("transaction failed after 5 attempts"))
	pub := new(mocks.MockEventPublisher)
	svc := service.NewCommunityService(repo, pub)

	_, err := svc.ToggleSave(context.Background(), uuid.New(), "user-1")

	callErr := assertCallCode(t, err, domain.CodeInternal)
	assert.Equal(t, "failed to update reaction", callErr.Message)
}

func TestCommunityService_Toggle_Unauthenticated(t *testing.T) {
	svc, repo, _ := setupCommunityService()

	_, err := svc.ToggleLike(context.Background(), uuid.New(), "")

	assertCallCode(t, err, domain.CodeUnauthenticated)
	repo.AssertNotCalled(t, "InTx", mock.Anything)
}
