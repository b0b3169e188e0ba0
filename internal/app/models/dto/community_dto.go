package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCommunityRequest creates a new community
type CreateCommunityRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateCommunityDescriptionRequest updates a community description (owner only)
type UpdateCommunityDescriptionRequest struct {
	Description string `json:"description" binding:"max=500"`
}

// CommunityResponse is the public view of a community
type CommunityResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	OwnerID     *uuid.UUID `json:"ownerId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
