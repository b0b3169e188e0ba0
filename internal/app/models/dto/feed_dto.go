package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/bfriends/backend/internal/app/models"
)

// RankMode selects the ordering and time window of a feed query
type RankMode string

const (
	RankRecent   RankMode = "recent"
	RankTopToday RankMode = "top-today"
	RankTopWeek  RankMode = "top-week"
	RankTopMonth RankMode = "top-month"
	RankTopYear  RankMode = "top-year"
)

// ParseRankMode maps a query value to a RankMode, falling back to Recent for
// anything unknown.
func ParseRankMode(s string) RankMode {
	switch RankMode(s) {
	case RankTopToday, RankTopWeek, RankTopMonth, RankTopYear, RankRecent:
		return RankMode(s)
	default:
		return RankRecent
	}
}

// FeedItem is one rendered post inside a feed page
type FeedItem struct {
	ID             int64                 `json:"id"`
	Title          string                `json:"title"`
	Body           json.RawMessage       `json:"body,omitempty"`
	ImageURL       *string               `json:"imageUrl,omitempty"`
	CommunityName  string                `json:"communityName"`
	AuthorID       uuid.UUID             `json:"authorId"`
	AuthorHandle   *string               `json:"authorHandle,omitempty"`
	AuthorImageURL *string               `json:"authorImageUrl,omitempty"`
	VoteScore      int64                 `json:"voteScore"`
	CommentCount   int64                 `json:"commentCount"`
	ViewerVote     *models.VoteDirection `json:"viewerVote,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
}

// FeedResponse is one page of a feed
type FeedResponse struct {
	Items          []FeedItem     `json:"items"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// RelatedCommunity is a sidebar search hit on community names
type RelatedCommunity struct {
	Name string `json:"name"`
}

// RelatedUser is a sidebar search hit on user handles and names
type RelatedUser struct {
	UserName *string `json:"userName,omitempty"`
	FullName string  `json:"fullName"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// SearchResponse is the combined search result page
type SearchResponse struct {
	Posts              FeedResponse       `json:"posts"`
	RelatedCommunities []RelatedCommunity `json:"relatedCommunities"`
	RelatedUsers       []RelatedUser      `json:"relatedUsers"`
}
