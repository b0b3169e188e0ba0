package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCommunityName is the seeded fallback community. It is the default
// posting target and does not count toward affinity scoring.
const DefaultCommunityName = "General"

// Community represents a discussion community. The name is immutable once
// created and unique under an exact-match (case-sensitive) constraint.
type Community struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description,omitempty" db:"description"`
	OwnerID     *uuid.UUID `json:"ownerId,omitempty" db:"owner_id"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
