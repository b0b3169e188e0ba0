package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/app/models/dto"
	"github.com/bfriends/backend/internal/pkg/apperrors"
)

type fakePostRepo struct {
	posts   map[int64]*models.Post
	nextID  int64
	deleted []int64
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[int64]*models.Post), nextID: 1}
}

func (f *fakePostRepo) Create(_ context.Context, post *models.Post) error {
	post.ID = f.nextID
	f.nextID++
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id int64) (*models.Post, error) {
	if post, ok := f.posts[id]; ok {
		return post, nil
	}
	return nil, apperrors.ErrPostNotFound
}

func (f *fakePostRepo) GetAuthorID(_ context.Context, id int64) (*uuid.UUID, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	return post.AuthorID, nil
}

func (f *fakePostRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.posts[id]; !ok {
		return apperrors.ErrPostNotFound
	}
	delete(f.posts, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePostCommentRepo struct {
	comments []models.Comment
}

func (f *fakePostCommentRepo) ListByPost(_ context.Context, _ int64) ([]models.Comment, error) {
	return f.comments, nil
}

type fakePostVoteRepo struct {
	votes map[uuid.UUID]*models.Vote
}

func (f *fakePostVoteRepo) GetUserVote(_ context.Context, _ int64, userID uuid.UUID) (*models.Vote, error) {
	if f.votes == nil {
		return nil, nil
	}
	return f.votes[userID], nil
}

type fakePostCommunityRepo struct {
	communities map[string]*models.Community
}

func (f *fakePostCommunityRepo) GetByName(_ context.Context, name string) (*models.Community, error) {
	if community, ok := f.communities[name]; ok {
		return community, nil
	}
	return nil, apperrors.ErrCommunityNotFound
}

func newTestPostService() (*PostService, *fakePostRepo) {
	posts := newFakePostRepo()
	communities := &fakePostCommunityRepo{communities: map[string]*models.Community{
		"Gaming": {ID: 1, Name: "Gaming"},
	}}
	svc := NewPostService(posts, &fakePostCommentRepo{}, &fakePostVoteRepo{}, communities)
	return svc, posts
}

func TestCreatePost(t *testing.T) {
	svc, repo := newTestPostService()
	author := uuid.New()

	resp, err := svc.Create(context.Background(), author, dto.CreatePostRequest{
		Title:         "  First post  ",
		CommunityName: "Gaming",
	})
	require.NoError(t, err)
	assert.Equal(t, "First post", resp.Title)
	assert.Equal(t, "Gaming", resp.CommunityName)
	assert.Equal(t, int64(0), resp.VoteScore)
	assert.Len(t, repo.posts, 1)
}

func TestCreatePost_EmptyTitle(t *testing.T) {
	svc, _ := newTestPostService()

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreatePostRequest{
		Title:         "   ",
		CommunityName: "Gaming",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmptyTitle)
}

func TestCreatePost_UnknownCommunity(t *testing.T) {
	svc, _ := newTestPostService()

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreatePostRequest{
		Title:         "Hello",
		CommunityName: "Nowhere",
	})
	assert.ErrorIs(t, err, apperrors.ErrCommunityNotFound)
}

func TestGetPostDetail_ViewerVote(t *testing.T) {
	posts := newFakePostRepo()
	author := uuid.New()
	viewer := uuid.New()
	communityName := "Gaming"
	posts.posts[1] = &models.Post{ID: 1, Title: "Hello", AuthorID: &author, CommunityName: &communityName}

	votes := &fakePostVoteRepo{votes: map[uuid.UUID]*models.Vote{
		viewer: {PostID: 1, UserID: viewer, Direction: models.VoteDown},
	}}
	svc := NewPostService(posts, &fakePostCommentRepo{}, votes, &fakePostCommunityRepo{})

	detail, err := svc.GetDetail(context.Background(), 1, &viewer)
	require.NoError(t, err)
	require.NotNil(t, detail.ViewerVote)
	assert.Equal(t, models.VoteDown, *detail.ViewerVote)

	// Anonymous viewers get no vote state.
	detail, err = svc.GetDetail(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Nil(t, detail.ViewerVote)
}

func TestDeletePost_AuthorOnly(t *testing.T) {
	svc, repo := newTestPostService()
	author := uuid.New()
	repo.posts[1] = &models.Post{ID: 1, AuthorID: &author}

	err := svc.Delete(context.Background(), 1, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.Delete(context.Background(), 1, author))
	assert.Contains(t, repo.deleted, int64(1))
}

func TestDeletePost_OrphanedPost(t *testing.T) {
	svc, repo := newTestPostService()
	repo.posts[1] = &models.Post{ID: 1, AuthorID: nil}

	// A post whose author account is gone has no one who may delete it.
	err := svc.Delete(context.Background(), 1, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
