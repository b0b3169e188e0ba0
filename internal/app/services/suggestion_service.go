package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/app/models/dto"
	"github.com/bfriends/backend/internal/app/repositories"
	"github.com/bfriends/backend/internal/pkg/logger"
)

const (
	topCommunityLimit = 3
	candidateLimit    = 20
)

// suggestionRepository runs the affinity queries
type suggestionRepository interface {
	TopCommunitiesByActivity(ctx context.Context, userID uuid.UUID, excludeName string, limit int) ([]string, error)
	FindCandidates(ctx context.Context, filter repositories.CandidateFilter) ([]repositories.Candidate, error)
}

// suggestionUserRepository resolves the requester's profile
type suggestionUserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// SuggestionService produces friend suggestions from shared profile traits
// and community activity. Matches are unscored; candidates are ordered by
// recent profile activity and annotated with the reasons they matched.
type SuggestionService struct {
	suggestionRepo suggestionRepository
	userRepo       suggestionUserRepository
	log            zerolog.Logger
}

// NewSuggestionService creates a new SuggestionService
func NewSuggestionService(suggestionRepo suggestionRepository, userRepo suggestionUserRepository) *SuggestionService {
	return &SuggestionService{
		suggestionRepo: suggestionRepo,
		userRepo:       userRepo,
		log:            logger.WithComponent("suggestion_service"),
	}
}

// GetSuggestions returns friend candidates for the requester. Incomplete
// profiles and profiles with no usable signals get an explanatory message
// instead of an error.
func (s *SuggestionService) GetSuggestions(ctx context.Context, requesterID uuid.UUID) (*dto.SuggestionsResponse, error) {
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	resp := &dto.SuggestionsResponse{Candidates: []dto.SuggestedUser{}}
	if !requester.ProfileComplete {
		msg := dto.SuggestionProfileIncomplete
		resp.Message = &msg
		return resp, nil
	}

	topCommunities, err := s.suggestionRepo.TopCommunitiesByActivity(
		ctx, requesterID, models.DefaultCommunityName, topCommunityLimit)
	if err != nil {
		return nil, err
	}

	filter := buildCandidateFilter(requester, topCommunities)
	if !filter.hasSignals() {
		msg := dto.SuggestionNoSignals
		resp.Message = &msg
		return resp, nil
	}

	candidates, err := s.suggestionRepo.FindCandidates(ctx, filter.CandidateFilter)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		reasons := matchReasons(requester, candidate)
		if len(reasons) == 0 {
			continue
		}
		resp.Candidates = append(resp.Candidates, dto.SuggestedUser{
			ID:           candidate.User.ID,
			UserName:     candidate.User.UserName,
			FullName:     candidate.User.FullName,
			ImageURL:     candidate.User.ImageURL,
			PrimaryRole:  candidate.User.PrimaryRole,
			StudentMajor: candidate.User.StudentMajor,
			StudentBatch: candidate.User.StudentBatch,
			MatchReasons: reasons,
		})
	}

	if len(resp.Candidates) == 0 {
		msg := dto.SuggestionNoSignals
		resp.Message = &msg
	}
	return resp, nil
}

type candidateFilter struct {
	repositories.CandidateFilter
}

func (f candidateFilter) hasSignals() bool {
	return f.StudentMajor != nil ||
		f.PrimaryRole != nil ||
		f.StudentBatch != nil ||
		len(f.CampusLocations) > 0 ||
		len(f.TopCommunities) > 0
}

// buildCandidateFilter extracts the requester's usable signals. Student-only
// fields count only for student roles so stale data never drives matching.
func buildCandidateFilter(requester *models.User, topCommunities []string) candidateFilter {
	filter := candidateFilter{repositories.CandidateFilter{
		RequesterID:     requester.ID,
		CampusLocations: requester.CampusLocations,
		TopCommunities:  topCommunities,
		Limit:           candidateLimit,
	}}
	if requester.PrimaryRole != nil {
		filter.PrimaryRole = requester.PrimaryRole
		if requester.PrimaryRole.IsStudent() {
			if !isBlank(requester.StudentMajor) {
				filter.StudentMajor = requester.StudentMajor
			}
			if !isBlank(requester.StudentBatch) {
				filter.StudentBatch = requester.StudentBatch
			}
		}
	}
	return filter
}

// matchReasons recomputes, per candidate, which signals actually matched
func matchReasons(requester *models.User, candidate repositories.Candidate) []dto.MatchReason {
	var reasons []dto.MatchReason

	if requester.PrimaryRole != nil && requester.PrimaryRole.IsStudent() &&
		!isBlank(requester.StudentMajor) && !isBlank(candidate.User.StudentMajor) &&
		*requester.StudentMajor == *candidate.User.StudentMajor {
		reasons = append(reasons, dto.MatchSameMajor)
	}

	if requester.PrimaryRole != nil && candidate.User.PrimaryRole != nil &&
		*requester.PrimaryRole == *candidate.User.PrimaryRole {
		reasons = append(reasons, dto.MatchSameRole)
	}

	if requester.PrimaryRole != nil && requester.PrimaryRole.IsStudent() &&
		!isBlank(requester.StudentBatch) && !isBlank(candidate.User.StudentBatch) &&
		*requester.StudentBatch == *candidate.User.StudentBatch {
		reasons = append(reasons, dto.MatchSameBatch)
	}

	if sharesLocation(requester.CampusLocations, candidate.User.CampusLocations) {
		reasons = append(reasons, dto.MatchSharedCampus)
	}

	if candidate.SharedCommunity {
		reasons = append(reasons, dto.MatchSharedCommunity)
	}

	return reasons
}

func sharesLocation(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, loc := range a {
		set[loc] = struct{}{}
	}
	for _, loc := range b {
		if _, ok := set[loc]; ok {
			return true
		}
	}
	return false
}
