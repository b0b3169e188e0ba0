package dto

import (
	"github.com/google/uuid"

	"github.com/bfriends/backend/internal/app/models"
)

// SuggestionMessage explains an empty suggestion result
type SuggestionMessage string

const (
	SuggestionProfileIncomplete SuggestionMessage = "ProfileIncomplete"
	SuggestionNoSignals         SuggestionMessage = "NoSignals"
)

// MatchReason names one affinity signal shared with a suggested user
type MatchReason string

const (
	MatchSameMajor       MatchReason = "SAME_MAJOR"
	MatchSameRole        MatchReason = "SAME_ROLE"
	MatchSameBatch       MatchReason = "SAME_BATCH"
	MatchSharedCampus    MatchReason = "SHARED_CAMPUS"
	MatchSharedCommunity MatchReason = "SHARED_COMMUNITY"
)

// SuggestedUser is one friend suggestion annotated with the reasons it
// matched. There is no numeric relevance score.
type SuggestedUser struct {
	ID           uuid.UUID        `json:"id"`
	UserName     *string          `json:"userName,omitempty"`
	FullName     string           `json:"fullName"`
	ImageURL     *string          `json:"imageUrl,omitempty"`
	PrimaryRole  *models.RoleType `json:"primaryRole,omitempty"`
	StudentMajor *string          `json:"studentMajor,omitempty"`
	StudentBatch *string          `json:"studentBatch,omitempty"`
	MatchReasons []MatchReason    `json:"matchReasons"`
}

// SuggestionsResponse is the friend suggestion result
type SuggestionsResponse struct {
	Candidates []SuggestedUser    `json:"candidates"`
	Message    *SuggestionMessage `json:"message,omitempty"`
}
