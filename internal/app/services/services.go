package services

import (
	"github.com/bfriends/backend/internal/app/repositories"
	"github.com/bfriends/backend/internal/config"
	"github.com/bfriends/backend/internal/db"
	"github.com/bfriends/backend/internal/pkg/auth"
	"github.com/bfriends/backend/internal/pkg/filestorage"
)

// Services holds all the service instances
type Services struct {
	AuthService       *AuthService
	UserService       *UserService
	CommunityService  *CommunityService
	PostService       *PostService
	CommentService    *CommentService
	VoteService       *VoteService
	FeedService       *FeedService
	SuggestionService *SuggestionService
}

// NewServices wires all services to their repositories
func NewServices(
	repos *repositories.Repositories,
	database *db.PostgresDB,
	jwtService *auth.JWTService,
	storage filestorage.FileStorage,
	cfg *config.Config,
) *Services {
	return &Services{
		AuthService: NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService),
		UserService: NewUserService(repos.UserRepository, storage),
		CommunityService: NewCommunityService(repos.CommunityRepository),
		PostService: NewPostService(
			repos.PostRepository,
			repos.CommentRepository,
			repos.VoteRepository,
			repos.CommunityRepository,
		),
		CommentService: NewCommentService(repos.CommentRepository),
		VoteService:    NewVoteService(repos.VoteRepository, database),
		FeedService: NewFeedService(
			repos.FeedRepository,
			repos.UserRepository,
			repos.CommunityRepository,
			cfg.Feed.PageSize,
			cfg.Feed.SearchPageSize,
		),
		SuggestionService: NewSuggestionService(repos.SuggestionRepository, repos.UserRepository),
	}
}
