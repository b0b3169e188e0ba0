package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/app/models/dto"
	"github.com/bfriends/backend/internal/pkg/apperrors"
	"github.com/bfriends/backend/internal/pkg/logger"
)

// postRepository is the slice of PostRepository used by PostService
type postRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	GetAuthorID(ctx context.Context, id int64) (*uuid.UUID, error)
	Delete(ctx context.Context, id int64) error
}

// postCommentRepository is the slice of CommentRepository used by PostService
type postCommentRepository interface {
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
}

// postVoteRepository is the slice of VoteRepository used by PostService
type postVoteRepository interface {
	GetUserVote(ctx context.Context, postID int64, userID uuid.UUID) (*models.Vote, error)
}

// postCommunityRepository resolves community names for post creation
type postCommunityRepository interface {
	GetByName(ctx context.Context, name string) (*models.Community, error)
}

// PostService handles post creation, detail views and deletion
type PostService struct {
	postRepo      postRepository
	commentRepo   postCommentRepository
	voteRepo      postVoteRepository
	communityRepo postCommunityRepository
	log           zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(postRepo postRepository, commentRepo postCommentRepository, voteRepo postVoteRepository, communityRepo postCommunityRepository) *PostService {
	return &PostService{
		postRepo:      postRepo,
		commentRepo:   commentRepo,
		voteRepo:      voteRepo,
		communityRepo: communityRepo,
		log:           logger.WithComponent("post_service"),
	}
}

// Create publishes a post into the named community
func (s *PostService) Create(ctx context.Context, authorID uuid.UUID, req dto.CreatePostRequest) (*dto.PostDetailResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.ErrEmptyTitle
	}

	community, err := s.communityRepo.GetByName(ctx, req.CommunityName)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:       title,
		Body:        req.Body,
		ImageURL:    req.ImageURL,
		CommunityID: community.ID,
		AuthorID:    &authorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	post.CommunityName = &community.Name

	s.log.Info().Int64("post_id", post.ID).Str("community", community.Name).Msg("Post created")
	return s.toDetailResponse(post, nil, nil), nil
}

// GetDetail returns a post with its comments and, when a viewer is given,
// that viewer's current vote.
func (s *PostService) GetDetail(ctx context.Context, postID int64, viewerID *uuid.UUID) (*dto.PostDetailResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	var viewerVote *models.VoteDirection
	if viewerID != nil {
		vote, err := s.voteRepo.GetUserVote(ctx, postID, *viewerID)
		if err != nil {
			return nil, err
		}
		if vote != nil {
			viewerVote = &vote.Direction
		}
	}

	return s.toDetailResponse(post, comments, viewerVote), nil
}

// Delete removes a post. Only its author may delete it; posts orphaned by
// account deletion cannot be deleted through this path.
func (s *PostService) Delete(ctx context.Context, postID int64, callerID uuid.UUID) error {
	authorID, err := s.postRepo.GetAuthorID(ctx, postID)
	if err != nil {
		return err
	}
	if authorID == nil || *authorID != callerID {
		return apperrors.NewForbiddenError("only the author can delete this post")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	s.log.Info().Int64("post_id", postID).Msg("Post deleted")
	return nil
}

func (s *PostService) toDetailResponse(post *models.Post, comments []models.Comment, viewerVote *models.VoteDirection) *dto.PostDetailResponse {
	resp := &dto.PostDetailResponse{
		ID:           post.ID,
		Title:        post.Title,
		Body:         post.Body,
		ImageURL:     post.ImageURL,
		AuthorID:     post.AuthorID,
		AuthorHandle: post.AuthorHandle,
		VoteScore:    post.VoteScore,
		ViewerVote:   viewerVote,
		CreatedAt:    post.CreatedAt,
		Comments:     make([]dto.CommentResponse, 0, len(comments)),
	}
	if post.CommunityName != nil {
		resp.CommunityName = *post.CommunityName
	}
	for _, comment := range comments {
		resp.Comments = append(resp.Comments, toCommentResponse(comment))
	}
	return resp
}
