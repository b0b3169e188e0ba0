package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/app/models/dto"
	"github.com/bfriends/backend/internal/app/repositories"
)

type fakeSuggestionRepo struct {
	topCommunities []string
	candidates     []repositories.Candidate
	lastFilter     repositories.CandidateFilter
	lastExclude    string
}

func (f *fakeSuggestionRepo) TopCommunitiesByActivity(_ context.Context, _ uuid.UUID, excludeName string, _ int) ([]string, error) {
	f.lastExclude = excludeName
	return f.topCommunities, nil
}

func (f *fakeSuggestionRepo) FindCandidates(_ context.Context, filter repositories.CandidateFilter) ([]repositories.Candidate, error) {
	f.lastFilter = filter
	return f.candidates, nil
}

type fakeSuggestionUserRepo struct {
	user *models.User
}

func (f *fakeSuggestionUserRepo) GetByID(_ context.Context, _ uuid.UUID) (*models.User, error) {
	return f.user, nil
}

func strPtr(s string) *string { return &s }

func rolePtr(r models.RoleType) *models.RoleType { return &r }

func completedStudent() *models.User {
	return &models.User{
		ID:              uuid.New(),
		FullName:        "Alice",
		UserName:        strPtr("alice"),
		PrimaryRole:     rolePtr(models.RoleStudent),
		StudentMajor:    strPtr("Computer Science"),
		StudentBatch:    strPtr("2022"),
		CampusLocations: []string{"North"},
		ProfileComplete: true,
	}
}

func TestGetSuggestions_IncompleteProfile(t *testing.T) {
	requester := completedStudent()
	requester.ProfileComplete = false
	svc := NewSuggestionService(&fakeSuggestionRepo{}, &fakeSuggestionUserRepo{user: requester})

	resp, err := svc.GetSuggestions(context.Background(), requester.ID)
	require.NoError(t, err)

	assert.Empty(t, resp.Candidates)
	require.NotNil(t, resp.Message)
	assert.Equal(t, dto.SuggestionProfileIncomplete, *resp.Message)
}

func TestGetSuggestions_NoSignals(t *testing.T) {
	requester := &models.User{
		ID:              uuid.New(),
		FullName:        "Blank",
		UserName:        strPtr("blank"),
		ProfileComplete: true,
	}
	svc := NewSuggestionService(&fakeSuggestionRepo{}, &fakeSuggestionUserRepo{user: requester})

	resp, err := svc.GetSuggestions(context.Background(), requester.ID)
	require.NoError(t, err)

	assert.Empty(t, resp.Candidates)
	require.NotNil(t, resp.Message)
	assert.Equal(t, dto.SuggestionNoSignals, *resp.Message)
}

func TestGetSuggestions_AnnotatesReasons(t *testing.T) {
	requester := completedStudent()

	sameMajor := repositories.Candidate{User: models.User{
		ID:           uuid.New(),
		FullName:     "Bob",
		UserName:     strPtr("bob"),
		PrimaryRole:  rolePtr(models.RoleStudent),
		StudentMajor: strPtr("Computer Science"),
		StudentBatch: strPtr("2023"),
	}}
	sharedOnly := repositories.Candidate{
		User: models.User{
			ID:          uuid.New(),
			FullName:    "Carol",
			UserName:    strPtr("carol"),
			PrimaryRole: rolePtr(models.RoleEmployee),
		},
		SharedCommunity: true,
	}

	repo := &fakeSuggestionRepo{
		topCommunities: []string{"Gaming"},
		candidates:     []repositories.Candidate{sameMajor, sharedOnly},
	}
	svc := NewSuggestionService(repo, &fakeSuggestionUserRepo{user: requester})

	resp, err := svc.GetSuggestions(context.Background(), requester.ID)
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 2)
	assert.Nil(t, resp.Message)

	// Bob shares the major and the student role, but not the batch.
	assert.ElementsMatch(t,
		[]dto.MatchReason{dto.MatchSameMajor, dto.MatchSameRole},
		resp.Candidates[0].MatchReasons)

	// Carol only overlaps through community activity.
	assert.Equal(t, []dto.MatchReason{dto.MatchSharedCommunity}, resp.Candidates[1].MatchReasons)

	// The default community never feeds the activity signal.
	assert.Equal(t, models.DefaultCommunityName, repo.lastExclude)
}

func TestGetSuggestions_BatchIgnoredForEmployees(t *testing.T) {
	requester := &models.User{
		ID:              uuid.New(),
		FullName:        "Dana",
		UserName:        strPtr("dana"),
		PrimaryRole:     rolePtr(models.RoleEmployee),
		StudentBatch:    strPtr("2019"), // stale data from a role change
		ProfileComplete: true,
	}
	repo := &fakeSuggestionRepo{}
	svc := NewSuggestionService(repo, &fakeSuggestionUserRepo{user: requester})

	_, err := svc.GetSuggestions(context.Background(), requester.ID)
	require.NoError(t, err)

	assert.Nil(t, repo.lastFilter.StudentBatch)
	assert.Nil(t, repo.lastFilter.StudentMajor)
	require.NotNil(t, repo.lastFilter.PrimaryRole)
	assert.Equal(t, models.RoleEmployee, *repo.lastFilter.PrimaryRole)
}

func TestGetSuggestions_NoMatchingCandidates(t *testing.T) {
	requester := completedStudent()
	svc := NewSuggestionService(&fakeSuggestionRepo{}, &fakeSuggestionUserRepo{user: requester})

	resp, err := svc.GetSuggestions(context.Background(), requester.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Candidates)
	require.NotNil(t, resp.Message)
	assert.Equal(t, dto.SuggestionNoSignals, *resp.Message)
}

func TestSharesLocation(t *testing.T) {
	assert.True(t, sharesLocation([]string{"North", "South"}, []string{"South"}))
	assert.False(t, sharesLocation([]string{"North"}, []string{"East"}))
	assert.False(t, sharesLocation(nil, []string{"East"}))
	assert.False(t, sharesLocation([]string{"North"}, nil))
}
