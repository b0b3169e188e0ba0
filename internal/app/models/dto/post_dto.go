package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/bfriends/backend/internal/app/models"
)

// CreatePostRequest creates a new post inside a community
type CreatePostRequest struct {
	Title         string          `json:"title" binding:"required"`
	CommunityName string          `json:"communityName" binding:"required"`
	Body          json.RawMessage `json:"body,omitempty"`
	ImageURL      *string         `json:"imageUrl,omitempty"`
}

// CreateCommentRequest adds a comment to a post
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentResponse is the public view of a comment
type CommentResponse struct {
	ID           int64      `json:"id"`
	Text         string     `json:"text"`
	PostID       int64      `json:"postId"`
	AuthorID     *uuid.UUID `json:"authorId,omitempty"`
	AuthorHandle *string    `json:"authorHandle,omitempty"`
	PostTitle    *string    `json:"postTitle,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// CommentListResponse is a paginated comment listing (profile comments tab)
type CommentListResponse struct {
	Comments       []CommentResponse `json:"comments"`
	PaginationInfo PaginationInfo    `json:"pagination"`
}

// PostDetailResponse is a single post with its comments
type PostDetailResponse struct {
	ID            int64                 `json:"id"`
	Title         string                `json:"title"`
	Body          json.RawMessage       `json:"body,omitempty"`
	ImageURL      *string               `json:"imageUrl,omitempty"`
	CommunityName string                `json:"communityName"`
	AuthorID      *uuid.UUID            `json:"authorId,omitempty"`
	AuthorHandle  *string               `json:"authorHandle,omitempty"`
	VoteScore     int64                 `json:"voteScore"`
	ViewerVote    *models.VoteDirection `json:"viewerVote,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	Comments      []CommentResponse     `json:"comments"`
}

// VoteRequest casts, switches, or toggles off a vote on a post
type VoteRequest struct {
	Direction models.VoteDirection `json:"direction" binding:"required"`
}

// VoteResponse reports the post's score after a vote was applied. ViewerVote
// is nil when the vote was toggled off.
type VoteResponse struct {
	VoteScore  int64                 `json:"voteScore"`
	ViewerVote *models.VoteDirection `json:"viewerVote,omitempty"`
}
