package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/app/models/dto"
	"github.com/bfriends/backend/internal/app/repositories"
	"github.com/bfriends/backend/internal/pkg/apperrors"
)

type fakeFeedRepo struct {
	lastQuery repositories.FeedQuery
	total     int64
	rows      []repositories.FeedRow
}

func (f *fakeFeedRepo) Count(_ context.Context, q repositories.FeedQuery) (int64, error) {
	f.lastQuery = q
	return f.total, nil
}

func (f *fakeFeedRepo) List(_ context.Context, q repositories.FeedQuery) ([]repositories.FeedRow, error) {
	f.lastQuery = q
	return f.rows, nil
}

type fakeFeedUserRepo struct {
	users map[string]*models.User
	hits  []models.User
}

func (f *fakeFeedUserRepo) GetByUserName(_ context.Context, userName string) (*models.User, error) {
	if user, ok := f.users[userName]; ok {
		return user, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeFeedUserRepo) SearchByNameOrHandle(_ context.Context, _ string, _ int) ([]models.User, error) {
	return f.hits, nil
}

type fakeFeedCommunityRepo struct {
	hits []models.Community
}

func (f *fakeFeedCommunityRepo) SearchByName(_ context.Context, _ string, _ int) ([]models.Community, error) {
	return f.hits, nil
}

func newTestFeedService(feedRepo *fakeFeedRepo) *FeedService {
	svc := NewFeedService(feedRepo, &fakeFeedUserRepo{users: map[string]*models.User{}}, &fakeFeedCommunityRepo{}, 5, 10)
	svc.now = func() time.Time {
		// A Wednesday.
		return time.Date(2026, time.March, 18, 9, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestGetGlobalFeed_RecentHasNoWindow(t *testing.T) {
	repo := &fakeFeedRepo{total: 3}
	svc := newTestFeedService(repo)

	_, err := svc.GetGlobalFeed(context.Background(), nil, dto.RankRecent, 1)
	require.NoError(t, err)

	assert.False(t, repo.lastQuery.OrderByScore)
	assert.Nil(t, repo.lastQuery.WindowStart)
	assert.Nil(t, repo.lastQuery.WindowEnd)
}

func TestGetGlobalFeed_TopWeekWindow(t *testing.T) {
	repo := &fakeFeedRepo{total: 1}
	svc := newTestFeedService(repo)

	_, err := svc.GetGlobalFeed(context.Background(), nil, dto.RankTopWeek, 1)
	require.NoError(t, err)

	assert.True(t, repo.lastQuery.OrderByScore)
	require.NotNil(t, repo.lastQuery.WindowStart)
	require.NotNil(t, repo.lastQuery.WindowEnd)
	// The ISO week around Wednesday 2026-03-18 runs Monday the 16th to the 23rd.
	assert.Equal(t, time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC), *repo.lastQuery.WindowStart)
	assert.Equal(t, time.Date(2026, time.March, 23, 0, 0, 0, 0, time.UTC), *repo.lastQuery.WindowEnd)
}

func TestGetGlobalFeed_PageBeyondLastIsEmpty(t *testing.T) {
	// 7 posts at page size 5: page 3 is past the end.
	repo := &fakeFeedRepo{total: 7, rows: nil}
	svc := newTestFeedService(repo)

	feed, err := svc.GetGlobalFeed(context.Background(), nil, dto.RankRecent, 3)
	require.NoError(t, err)

	assert.Empty(t, feed.Items)
	assert.Equal(t, 2, feed.PaginationInfo.TotalPages)
	assert.Equal(t, int64(7), feed.PaginationInfo.TotalItems)
	assert.Equal(t, uint64(10), repo.lastQuery.Offset)
}

func TestGetGlobalFeed_PageZeroNormalizes(t *testing.T) {
	repo := &fakeFeedRepo{total: 2}
	svc := newTestFeedService(repo)

	feed, err := svc.GetGlobalFeed(context.Background(), nil, dto.RankRecent, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, feed.PaginationInfo.CurrentPage)
	assert.Equal(t, uint64(0), repo.lastQuery.Offset)
}

func TestGetCommunityFeed_PassesName(t *testing.T) {
	repo := &fakeFeedRepo{total: 0}
	svc := newTestFeedService(repo)

	feed, err := svc.GetCommunityFeed(context.Background(), nil, "Gaming", dto.RankRecent, 1)
	require.NoError(t, err)

	require.NotNil(t, repo.lastQuery.CommunityName)
	assert.Equal(t, "Gaming", *repo.lastQuery.CommunityName)
	// An unknown community simply matches nothing.
	assert.Empty(t, feed.Items)
	assert.Equal(t, 0, feed.PaginationInfo.TotalPages)
}

func TestGetUserFeed_UnknownHandle(t *testing.T) {
	svc := newTestFeedService(&fakeFeedRepo{})

	_, err := svc.GetUserFeed(context.Background(), nil, "ghost", 1)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestGetUserFeed_FiltersByAuthor(t *testing.T) {
	repo := &fakeFeedRepo{total: 1}
	author := &models.User{ID: uuid.New()}
	userRepo := &fakeFeedUserRepo{users: map[string]*models.User{"alice": author}}
	svc := NewFeedService(repo, userRepo, &fakeFeedCommunityRepo{}, 5, 10)

	_, err := svc.GetUserFeed(context.Background(), nil, "alice", 1)
	require.NoError(t, err)
	require.NotNil(t, repo.lastQuery.AuthorID)
	assert.Equal(t, author.ID, *repo.lastQuery.AuthorID)
}

func TestSearch(t *testing.T) {
	repo := &fakeFeedRepo{total: 1, rows: []repositories.FeedRow{{
		Post:          models.Post{ID: 1, Title: "gophers unite"},
		AuthorID:      uuid.New(),
		CommunityName: "General",
	}}}
	userRepo := &fakeFeedUserRepo{
		users: map[string]*models.User{},
		hits:  []models.User{{FullName: "Gopher Fan"}},
	}
	communityRepo := &fakeFeedCommunityRepo{hits: []models.Community{{Name: "Gophers"}}}
	svc := NewFeedService(repo, userRepo, communityRepo, 5, 10)

	result, err := svc.Search(context.Background(), nil, "  gopher ", nil, 1)
	require.NoError(t, err)

	require.NotNil(t, repo.lastQuery.SearchTerm)
	assert.Equal(t, "gopher", *repo.lastQuery.SearchTerm)
	assert.Nil(t, repo.lastQuery.CommunityName)
	assert.Len(t, result.Posts.Items, 1)
	assert.Equal(t, []dto.RelatedCommunity{{Name: "Gophers"}}, result.RelatedCommunities)
	assert.Len(t, result.RelatedUsers, 1)
	// Searches page at ten, not the regular feed size.
	assert.Equal(t, 10, repo.lastQuery.Limit)
}

func TestSearch_CommunityScope(t *testing.T) {
	repo := &fakeFeedRepo{total: 0}
	svc := newTestFeedService(repo)

	community := "Gaming"
	_, err := svc.Search(context.Background(), nil, "gopher", &community, 1)
	require.NoError(t, err)

	require.NotNil(t, repo.lastQuery.SearchTerm)
	require.NotNil(t, repo.lastQuery.CommunityName)
	assert.Equal(t, "Gaming", *repo.lastQuery.CommunityName)
}

func TestSearch_BlankTermShortCircuits(t *testing.T) {
	repo := &fakeFeedRepo{total: 99}
	svc := newTestFeedService(repo)

	result, err := svc.Search(context.Background(), nil, "   ", nil, 1)
	require.NoError(t, err)
	assert.Empty(t, result.Posts.Items)
	assert.Empty(t, result.RelatedCommunities)
	assert.Empty(t, result.RelatedUsers)
	// The repository is never queried for a blank term.
	assert.Equal(t, int64(0), result.Posts.PaginationInfo.TotalItems)
}

func TestParseRankMode(t *testing.T) {
	assert.Equal(t, dto.RankTopWeek, dto.ParseRankMode("top-week"))
	assert.Equal(t, dto.RankRecent, dto.ParseRankMode("recent"))
	// Unknown values quietly fall back to recent.
	assert.Equal(t, dto.RankRecent, dto.ParseRankMode("top-century"))
	assert.Equal(t, dto.RankRecent, dto.ParseRankMode(""))
}
