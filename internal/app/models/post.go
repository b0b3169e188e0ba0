package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Post represents a community post. VoteScore is the denormalized net tally
// of the post's vote rows; it only changes inside the same transaction that
// mutates the vote row it accounts for.
type Post struct {
	ID          int64           `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	ImageURL    *string         `json:"imageUrl,omitempty" db:"image_url"`
	Body        json.RawMessage `json:"body,omitempty" db:"body"`
	CommunityID int64           `json:"communityId" db:"community_id"`
	AuthorID    *uuid.UUID      `json:"authorId,omitempty" db:"author_id"`
	VoteScore   int64           `json:"voteScore" db:"vote_score"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`

	// Related entities
	CommunityName *string `json:"communityName,omitempty"`
	AuthorHandle  *string `json:"authorHandle,omitempty"`
}
