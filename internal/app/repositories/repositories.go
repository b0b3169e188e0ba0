package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	TokenRepository      *TokenRepository
	CommunityRepository  *CommunityRepository
	PostRepository       *PostRepository
	CommentRepository    *CommentRepository
	VoteRepository       *VoteRepository
	FeedRepository       *FeedRepository
	SuggestionRepository *SuggestionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		TokenRepository:      NewTokenRepository(db),
		CommunityRepository:  NewCommunityRepository(db),
		PostRepository:       NewPostRepository(db),
		CommentRepository:    NewCommentRepository(db),
		VoteRepository:       NewVoteRepository(db),
		FeedRepository:       NewFeedRepository(db),
		SuggestionRepository: NewSuggestionRepository(db),
	}
}
