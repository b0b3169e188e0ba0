package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/db"
	"github.com/bfriends/backend/internal/pkg/apperrors"
)

// fakeTxRunner executes the transaction body directly with a nil tx. The fake
// repositories below ignore the tx handle.
type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

type fakeVoteRepo struct {
	scores map[int64]int64
	votes  map[int64]*models.Vote
	nextID int64
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{
		scores: make(map[int64]int64),
		votes:  make(map[int64]*models.Vote),
		nextID: 1,
	}
}

func (f *fakeVoteRepo) voteFor(postID int64, userID uuid.UUID) *models.Vote {
	for _, v := range f.votes {
		if v.PostID == postID && v.UserID == userID {
			return v
		}
	}
	return nil
}

func (f *fakeVoteRepo) LockPost(_ context.Context, _ pgx.Tx, postID int64) (int64, error) {
	score, ok := f.scores[postID]
	if !ok {
		return 0, apperrors.ErrPostNotFound
	}
	return score, nil
}

func (f *fakeVoteRepo) GetVoteForUpdate(_ context.Context, _ pgx.Tx, postID int64, userID uuid.UUID) (*models.Vote, error) {
	return f.voteFor(postID, userID), nil
}

func (f *fakeVoteRepo) InsertVote(_ context.Context, _ pgx.Tx, postID int64, userID uuid.UUID, direction models.VoteDirection) error {
	id := f.nextID
	f.nextID++
	f.votes[id] = &models.Vote{ID: id, PostID: postID, UserID: userID, Direction: direction}
	return nil
}

func (f *fakeVoteRepo) UpdateVoteDirection(_ context.Context, _ pgx.Tx, voteID int64, direction models.VoteDirection) error {
	f.votes[voteID].Direction = direction
	return nil
}

func (f *fakeVoteRepo) DeleteVote(_ context.Context, _ pgx.Tx, voteID int64) error {
	delete(f.votes, voteID)
	return nil
}

func (f *fakeVoteRepo) ApplyScoreDelta(_ context.Context, _ pgx.Tx, postID int64, delta int64) (int64, error) {
	f.scores[postID] += delta
	return f.scores[postID], nil
}

func TestResolveVote(t *testing.T) {
	up := models.VoteUp
	down := models.VoteDown

	tests := []struct {
		name       string
		existing   *models.VoteDirection
		requested  models.VoteDirection
		wantAction voteAction
		wantDelta  int64
	}{
		{"fresh upvote", nil, up, voteInsert, 1},
		{"fresh downvote", nil, down, voteInsert, -1},
		{"toggle off upvote", &up, up, voteRemove, -1},
		{"toggle off downvote", &down, down, voteRemove, 1},
		{"switch up to down", &up, down, voteUpdate, -2},
		{"switch down to up", &down, up, voteUpdate, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, delta := resolveVote(tt.existing, tt.requested)
			assert.Equal(t, tt.wantAction, action)
			assert.Equal(t, tt.wantDelta, delta)
		})
	}
}

func TestCastVote_TwoVotersThenSwitch(t *testing.T) {
	repo := newFakeVoteRepo()
	repo.scores[1] = 0
	svc := NewVoteService(repo, fakeTxRunner{})

	alice := uuid.New()
	bob := uuid.New()

	// Alice upvotes: 0 -> 1.
	resp, err := svc.CastVote(context.Background(), 1, alice, models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.VoteScore)
	require.NotNil(t, resp.ViewerVote)
	assert.Equal(t, models.VoteUp, *resp.ViewerVote)

	// Bob downvotes: 1 -> 0.
	resp, err = svc.CastVote(context.Background(), 1, bob, models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.VoteScore)

	// Alice switches to a downvote: 0 -> -2.
	resp, err = svc.CastVote(context.Background(), 1, alice, models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), resp.VoteScore)
	require.NotNil(t, resp.ViewerVote)
	assert.Equal(t, models.VoteDown, *resp.ViewerVote)
}

func TestCastVote_ToggleOff(t *testing.T) {
	repo := newFakeVoteRepo()
	repo.scores[7] = 0
	svc := NewVoteService(repo, fakeTxRunner{})
	user := uuid.New()

	resp, err := svc.CastVote(context.Background(), 7, user, models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.VoteScore)

	// Same direction again removes the vote.
	resp, err = svc.CastVote(context.Background(), 7, user, models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.VoteScore)
	assert.Nil(t, resp.ViewerVote)
	assert.Nil(t, repo.voteFor(7, user))
}

func TestCastVote_RepeatedToggleNeverDrifts(t *testing.T) {
	repo := newFakeVoteRepo()
	repo.scores[3] = 0
	svc := NewVoteService(repo, fakeTxRunner{})
	user := uuid.New()

	for i := 0; i < 4; i++ {
		_, err := svc.CastVote(context.Background(), 3, user, models.VoteDown)
		require.NoError(t, err)
	}
	// Even number of identical casts lands back at zero.
	assert.Equal(t, int64(0), repo.scores[3])
}

func TestCastVote_UnknownPost(t *testing.T) {
	svc := NewVoteService(newFakeVoteRepo(), fakeTxRunner{})

	_, err := svc.CastVote(context.Background(), 99, uuid.New(), models.VoteUp)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestCastVote_InvalidDirection(t *testing.T) {
	svc := NewVoteService(newFakeVoteRepo(), fakeTxRunner{})

	_, err := svc.CastVote(context.Background(), 1, uuid.New(), models.VoteDirection("SIDEWAYS"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
