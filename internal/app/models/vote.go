package models

import (
	"time"

	"github.com/google/uuid"
)

// VoteDirection is the direction of a cast vote
type VoteDirection string

const (
	VoteUp   VoteDirection = "UP"
	VoteDown VoteDirection = "DOWN"
)

// Valid reports whether the direction is one of the two known values.
func (d VoteDirection) Valid() bool {
	return d == VoteUp || d == VoteDown
}

// Vote records a single user's vote on a single post. The (user, post) pair
// is unique at the storage level; vote rows are only ever touched by the
// ledger, inside the same transaction that adjusts the post tally.
type Vote struct {
	ID        int64         `json:"id" db:"id"`
	PostID    int64         `json:"postId" db:"post_id"`
	UserID    uuid.UUID     `json:"userId" db:"user_id"`
	Direction VoteDirection `json:"direction" db:"direction"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
}
