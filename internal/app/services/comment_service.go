package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/app/models/dto"
	"github.com/bfriends/backend/internal/pkg/apperrors"
	"github.com/bfriends/backend/internal/pkg/helpers"
	"github.com/bfriends/backend/internal/pkg/logger"
)

// commentRepository is the slice of CommentRepository used by CommentService
type commentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID uuid.UUID, offset uint64, limit int) ([]models.Comment, int64, error)
}

// CommentService handles comment creation, deletion and profile listings
type CommentService struct {
	commentRepo commentRepository
	log         zerolog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo commentRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		log:         logger.WithComponent("comment_service"),
	}
}

// Create adds a comment to a post
func (s *CommentService) Create(ctx context.Context, authorID uuid.UUID, postID int64, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperrors.ErrEmptyComment
	}

	comment := &models.Comment{
		Text:     text,
		PostID:   postID,
		AuthorID: &authorID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	resp := toCommentResponse(*comment)
	return &resp, nil
}

// Delete removes a comment. Only the comment's author may delete it.
func (s *CommentService) Delete(ctx context.Context, commentID int64, callerID uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID == nil || *comment.AuthorID != callerID {
		return apperrors.NewForbiddenError("only the comment author can delete this comment")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}
	s.log.Info().Int64("comment_id", commentID).Msg("Comment deleted")
	return nil
}

// ListByUser returns a page of a user's comments for the profile comments tab
func (s *CommentService) ListByUser(ctx context.Context, userID uuid.UUID, page, size int) (*dto.CommentListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	comments, total, err := s.commentRepo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.CommentListResponse{
		Comments:       make([]dto.CommentResponse, 0, len(comments)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}
	for _, comment := range comments {
		resp.Comments = append(resp.Comments, toCommentResponse(comment))
	}
	return resp, nil
}

func toCommentResponse(comment models.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:           comment.ID,
		Text:         comment.Text,
		PostID:       comment.PostID,
		AuthorID:     comment.AuthorID,
		AuthorHandle: comment.AuthorHandle,
		PostTitle:    comment.PostTitle,
		CreatedAt:    comment.CreatedAt,
	}
}
