package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/app/models/dto"
	"github.com/bfriends/backend/internal/app/repositories"
	"github.com/bfriends/backend/internal/pkg/helpers"
	"github.com/bfriends/backend/internal/pkg/logger"
)

// sidebarLimit caps the related communities and users shown next to search
// results.
const sidebarLimit = 5

// feedRepository runs the ranked feed queries
type feedRepository interface {
	Count(ctx context.Context, q repositories.FeedQuery) (int64, error)
	List(ctx context.Context, q repositories.FeedQuery) ([]repositories.FeedRow, error)
}

// feedUserRepository resolves handles and powers the search sidebar
type feedUserRepository interface {
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	SearchByNameOrHandle(ctx context.Context, term string, limit int) ([]models.User, error)
}

// feedCommunityRepository powers the community side of the search sidebar
type feedCommunityRepository interface {
	SearchByName(ctx context.Context, term string, limit int) ([]models.Community, error)
}

// FeedService assembles ranked, paginated feed pages
type FeedService struct {
	feedRepo       feedRepository
	userRepo       feedUserRepository
	communityRepo  feedCommunityRepository
	pageSize       int
	searchPageSize int
	now            func() time.Time
	log            zerolog.Logger
}

// NewFeedService creates a new FeedService
func NewFeedService(feedRepo feedRepository, userRepo feedUserRepository, communityRepo feedCommunityRepository, pageSize, searchPageSize int) *FeedService {
	if pageSize <= 0 {
		pageSize = helpers.DefaultPageSize
	}
	if searchPageSize <= 0 {
		searchPageSize = 2 * helpers.DefaultPageSize
	}
	return &FeedService{
		feedRepo:       feedRepo,
		userRepo:       userRepo,
		communityRepo:  communityRepo,
		pageSize:       pageSize,
		searchPageSize: searchPageSize,
		now:            time.Now,
		log:            logger.WithComponent("feed_service"),
	}
}

// applyRank sets the ordering and, for the top modes, the calendar window of
// the feed query. Top pages rank by score with recency breaking ties.
func (s *FeedService) applyRank(q *repositories.FeedQuery, rank dto.RankMode) {
	var start, end time.Time
	switch rank {
	case dto.RankTopToday:
		start, end = helpers.DayWindow(s.now())
	case dto.RankTopWeek:
		start, end = helpers.ISOWeekWindow(s.now())
	case dto.RankTopMonth:
		start, end = helpers.MonthWindow(s.now())
	case dto.RankTopYear:
		start, end = helpers.YearWindow(s.now())
	default:
		return
	}
	q.OrderByScore = true
	q.WindowStart = &start
	q.WindowEnd = &end
}

func (s *FeedService) fetchPage(ctx context.Context, q repositories.FeedQuery, page, size int) (*dto.FeedResponse, error) {
	q.Offset, q.Limit = helpers.CalculateOffsetLimit(page, size)

	total, err := s.feedRepo.Count(ctx, q)
	if err != nil {
		return nil, err
	}

	items := []dto.FeedItem{}
	if total > 0 {
		rows, err := s.feedRepo.List(ctx, q)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			items = append(items, toFeedItem(row))
		}
	}

	return &dto.FeedResponse{
		Items:          items,
		PaginationInfo: helpers.NewPaginationInfo(total, page, q.Limit),
	}, nil
}

// GetGlobalFeed returns one page of the all-communities feed
func (s *FeedService) GetGlobalFeed(ctx context.Context, viewerID *uuid.UUID, rank dto.RankMode, page int) (*dto.FeedResponse, error) {
	q := repositories.FeedQuery{ViewerID: viewerID}
	s.applyRank(&q, rank)
	return s.fetchPage(ctx, q, page, s.pageSize)
}

// GetCommunityFeed returns one page of a single community's feed. An unknown
// community name yields an empty page rather than an error.
func (s *FeedService) GetCommunityFeed(ctx context.Context, viewerID *uuid.UUID, communityName string, rank dto.RankMode, page int) (*dto.FeedResponse, error) {
	q := repositories.FeedQuery{ViewerID: viewerID, CommunityName: &communityName}
	s.applyRank(&q, rank)
	return s.fetchPage(ctx, q, page, s.pageSize)
}

// GetUserFeed returns one page of the posts authored by the user with the
// given handle, newest first. Used by the profile posts tab.
func (s *FeedService) GetUserFeed(ctx context.Context, viewerID *uuid.UUID, handle string, page int) (*dto.FeedResponse, error) {
	author, err := s.userRepo.GetByUserName(ctx, handle)
	if err != nil {
		return nil, err
	}
	q := repositories.FeedQuery{ViewerID: viewerID, AuthorID: &author.ID}
	return s.fetchPage(ctx, q, page, s.pageSize)
}

// Search returns posts whose title contains the term plus sidebar matches on
// community names and user handles. A non-nil communityName narrows the post
// results to that community. Searches use a larger page size than the regular
// feed.
func (s *FeedService) Search(ctx context.Context, viewerID *uuid.UUID, term string, communityName *string, page int) (*dto.SearchResponse, error) {
	term = strings.TrimSpace(term)

	resp := &dto.SearchResponse{
		Posts:              dto.FeedResponse{Items: []dto.FeedItem{}},
		RelatedCommunities: []dto.RelatedCommunity{},
		RelatedUsers:       []dto.RelatedUser{},
	}
	if term == "" {
		resp.Posts.PaginationInfo = helpers.NewPaginationInfo(0, page, s.searchPageSize)
		return resp, nil
	}

	q := repositories.FeedQuery{ViewerID: viewerID, SearchTerm: &term, CommunityName: communityName}
	posts, err := s.fetchPage(ctx, q, page, s.searchPageSize)
	if err != nil {
		return nil, err
	}
	resp.Posts = *posts

	communities, err := s.communityRepo.SearchByName(ctx, term, sidebarLimit)
	if err != nil {
		return nil, err
	}
	for _, community := range communities {
		resp.RelatedCommunities = append(resp.RelatedCommunities, dto.RelatedCommunity{Name: community.Name})
	}

	users, err := s.userRepo.SearchByNameOrHandle(ctx, term, sidebarLimit)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		resp.RelatedUsers = append(resp.RelatedUsers, dto.RelatedUser{
			UserName: user.UserName,
			FullName: user.FullName,
			ImageURL: user.ImageURL,
		})
	}

	return resp, nil
}

func toFeedItem(row repositories.FeedRow) dto.FeedItem {
	return dto.FeedItem{
		ID:             row.Post.ID,
		Title:          row.Post.Title,
		Body:           row.Post.Body,
		ImageURL:       row.Post.ImageURL,
		CommunityName:  row.CommunityName,
		AuthorID:       row.AuthorID,
		AuthorHandle:   row.AuthorHandle,
		AuthorImageURL: row.AuthorAvatar,
		VoteScore:      row.Post.VoteScore,
		CommentCount:   row.CommentCount,
		ViewerVote:     row.ViewerVote,
		CreatedAt:      row.Post.CreatedAt,
	}
}
