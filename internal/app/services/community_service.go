package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/app/models/dto"
	"github.com/bfriends/backend/internal/pkg/apperrors"
	"github.com/bfriends/backend/internal/pkg/logger"
)

const minCommunityNameLength = 3

// communityRepository is the slice of CommunityRepository used by CommunityService
type communityRepository interface {
	Create(ctx context.Context, community *models.Community) error
	GetByName(ctx context.Context, name string) (*models.Community, error)
	UpdateDescription(ctx context.Context, id int64, description *string) error
	SearchByName(ctx context.Context, term string, limit int) ([]models.Community, error)
}

// CommunityService handles community creation and maintenance. Communities are
// never deleted; posts reference them permanently.
type CommunityService struct {
	communityRepo communityRepository
	log           zerolog.Logger
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(communityRepo communityRepository) *CommunityService {
	return &CommunityService{
		communityRepo: communityRepo,
		log:           logger.WithComponent("community_service"),
	}
}

// Create registers a new community owned by the caller. Names are trimmed and
// must be unique exactly as written.
func (s *CommunityService) Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateCommunityRequest) (*dto.CommunityResponse, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < minCommunityNameLength {
		return nil, apperrors.ErrCommunityNameTooShort
	}

	community := &models.Community{
		Name:    name,
		OwnerID: &ownerID,
	}
	if err := s.communityRepo.Create(ctx, community); err != nil {
		return nil, err
	}

	s.log.Info().Str("name", name).Str("owner_id", ownerID.String()).Msg("Community created")
	return toCommunityResponse(community), nil
}

// GetByName looks up a community by its exact name
func (s *CommunityService) GetByName(ctx context.Context, name string) (*dto.CommunityResponse, error) {
	community, err := s.communityRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return toCommunityResponse(community), nil
}

// UpdateDescription sets the description. Only the owner may do this; the
// default community has no owner and cannot be edited.
func (s *CommunityService) UpdateDescription(ctx context.Context, callerID uuid.UUID, name string, description string) (*dto.CommunityResponse, error) {
	community, err := s.communityRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if community.OwnerID == nil || *community.OwnerID != callerID {
		return nil, apperrors.NewForbiddenError("only the community owner can edit the description")
	}

	trimmed := strings.TrimSpace(description)
	var desc *string
	if trimmed != "" {
		desc = &trimmed
	}
	if err := s.communityRepo.UpdateDescription(ctx, community.ID, desc); err != nil {
		return nil, err
	}
	community.Description = desc
	return toCommunityResponse(community), nil
}

func toCommunityResponse(community *models.Community) *dto.CommunityResponse {
	return &dto.CommunityResponse{
		ID:          community.ID,
		Name:        community.Name,
		Description: community.Description,
		OwnerID:     community.OwnerID,
		CreatedAt:   community.CreatedAt,
	}
}
