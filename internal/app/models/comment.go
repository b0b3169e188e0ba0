package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents a comment on a post. Comments are owned by their post
// and removed with it.
type Comment struct {
	ID        int64      `json:"id" db:"id"`
	Text      string     `json:"text" db:"text"`
	PostID    int64      `json:"postId" db:"post_id"`
	AuthorID  *uuid.UUID `json:"authorId,omitempty" db:"author_id"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`

	// Related entities
	AuthorHandle *string `json:"authorHandle,omitempty"`
	PostTitle    *string `json:"postTitle,omitempty"`
}
