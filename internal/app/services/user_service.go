package services

import (
	"context"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/app/models/dto"
	"github.com/bfriends/backend/internal/pkg/apperrors"
	"github.com/bfriends/backend/internal/pkg/filestorage"
	"github.com/bfriends/backend/internal/pkg/logger"
)

const (
	maxAvatarSizeBytes = 5 * 1024 * 1024
	avatarSubPath      = "avatars"
)

var (
	handlePattern        = regexp.MustCompile(`^[A-Za-z0-9_.]{3,30}$`)
	allowedAvatarFormats = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
)

// userProfileRepository is the slice of UserRepository used by UserService
type userProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User, completeProfile bool) error
	UpdateUserName(ctx context.Context, id uuid.UUID, userName string) error
	UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL *string) (*string, error)
}

// UserService handles profile reads and updates
type UserService struct {
	userRepo    userProfileRepository
	fileStorage filestorage.FileStorage
	log         zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo userProfileRepository, fileStorage filestorage.FileStorage) *UserService {
	return &UserService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
		log:         logger.WithComponent("user_service"),
	}
}

// ValidateHandle checks handle length and character set
func ValidateHandle(handle string) error {
	if !handlePattern.MatchString(handle) {
		return apperrors.NewValidationError("userName",
			"username must be 3-30 characters of letters, digits, underscore or dot")
	}
	return nil
}

// validateProfileRequest enforces the role-conditional field requirements:
// student roles must carry student credentials, employee roles employee ones.
func validateProfileRequest(req *dto.ProfileRequest) error {
	switch req.PrimaryRole {
	case models.RoleStudent, models.RoleEmployee, models.RoleBoth:
	default:
		return apperrors.NewValidationError("primaryRole", "unknown primary role")
	}

	if err := ValidateHandle(req.UserName); err != nil {
		return err
	}

	if req.PrimaryRole.IsStudent() {
		if isBlank(req.NIM) {
			return apperrors.NewValidationError("nim", "student ID number is required for students")
		}
		if isBlank(req.StudentMajor) {
			return apperrors.NewValidationError("studentMajor", "major is required for students")
		}
		if isBlank(req.StudentBatch) {
			return apperrors.NewValidationError("studentBatch", "batch is required for students")
		}
	}
	if req.PrimaryRole.IsEmployee() {
		if isBlank(req.EmployeeID) {
			return apperrors.NewValidationError("employeeId", "employee ID is required for employees")
		}
		if isBlank(req.EmployeeDepartment) {
			return apperrors.NewValidationError("employeeDepartment", "department is required for employees")
		}
	}

	for i, link := range req.CustomLinks {
		title := strings.TrimSpace(link.Title)
		rawURL := strings.TrimSpace(link.URL)
		if title == "" || rawURL == "" {
			return apperrors.NewValidationError("customLinks",
				"custom links need both a title and a URL")
		}
		parsed, err := url.Parse(rawURL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return apperrors.NewValidationError("customLinks",
				"custom link URLs must be valid http or https URLs")
		}
		req.CustomLinks[i].Title = title
		req.CustomLinks[i].URL = rawURL
	}

	return nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// UpdateProfile applies the onboarding/settings form. Fields belonging to
// roles the user does not hold are cleared rather than kept stale. The
// completion flag is set once the form passes validation.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.ProfileRequest) (*dto.UserProfileResponse, error) {
	if err := validateProfileRequest(&req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	role := req.PrimaryRole
	user.FullName = strings.TrimSpace(req.FullName)
	user.UserName = &req.UserName
	user.PrimaryRole = &role
	user.CampusLocations = req.CampusLocations
	user.Bio = strings.TrimSpace(req.Bio)
	user.OccupationTags = req.OccupationTags
	user.CustomLinks = req.CustomLinks

	if role.IsStudent() {
		user.NIM = req.NIM
		user.StudentMajor = req.StudentMajor
		user.StudentBatch = req.StudentBatch
	} else {
		user.NIM = nil
		user.StudentMajor = nil
		user.StudentBatch = nil
	}
	if role.IsEmployee() {
		user.EmployeeID = req.EmployeeID
		user.EmployeeDepartment = req.EmployeeDepartment
	} else {
		user.EmployeeID = nil
		user.EmployeeDepartment = nil
	}

	if err := s.userRepo.UpdateProfile(ctx, user, true); err != nil {
		return nil, err
	}
	user.ProfileComplete = true

	s.log.Info().Str("user_id", userID.String()).Msg("Profile updated")
	return toUserProfileResponse(user), nil
}

// UpdateHandle changes only the handle
func (s *UserService) UpdateHandle(ctx context.Context, userID uuid.UUID, handle string) error {
	if err := ValidateHandle(handle); err != nil {
		return err
	}
	return s.userRepo.UpdateUserName(ctx, userID, handle)
}

// GetOwnProfile returns the caller's profile
func (s *UserService) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserProfileResponse(user), nil
}

// GetProfileByHandle returns a public profile looked up by handle
func (s *UserService) GetProfileByHandle(ctx context.Context, handle string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetByUserName(ctx, handle)
	if err != nil {
		return nil, err
	}
	return toUserProfileResponse(user), nil
}

// UploadAvatar stores a new avatar image and removes the previous one
func (s *UserService) UploadAvatar(ctx context.Context, userID uuid.UUID, fileHeader *multipart.FileHeader) (*dto.AvatarResponse, error) {
	if fileHeader == nil {
		return nil, apperrors.NewValidationError("file", "no file provided")
	}
	if fileHeader.Size > maxAvatarSizeBytes {
		return nil, apperrors.NewValidationError("file", "avatar may not exceed 5MB")
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedAvatarFormats[ext] {
		return nil, apperrors.NewValidationError("file", "avatar must be a jpg, png or webp image")
	}

	url, err := s.fileStorage.SaveFileWithPath(fileHeader, avatarSubPath)
	if err != nil {
		return nil, err
	}

	previous, err := s.userRepo.UpdateImageURL(ctx, userID, &url)
	if err != nil {
		if delErr := s.fileStorage.DeleteFile(url); delErr != nil {
			s.log.Warn().Err(delErr).Msg("Failed to clean up orphaned avatar")
		}
		return nil, err
	}

	if previous != nil {
		if err := s.fileStorage.DeleteFile(*previous); err != nil {
			s.log.Warn().Err(err).Str("url", *previous).Msg("Failed to delete old avatar")
		}
	}

	return &dto.AvatarResponse{ImageURL: url}, nil
}

func toUserProfileResponse(user *models.User) *dto.UserProfileResponse {
	return &dto.UserProfileResponse{
		ID:                 user.ID,
		UserName:           user.UserName,
		FullName:           user.FullName,
		PrimaryRole:        user.PrimaryRole,
		NIM:                user.NIM,
		StudentMajor:       user.StudentMajor,
		StudentBatch:       user.StudentBatch,
		EmployeeID:         user.EmployeeID,
		EmployeeDepartment: user.EmployeeDepartment,
		CampusLocations:    user.CampusLocations,
		Bio:                user.Bio,
		OccupationTags:     user.OccupationTags,
		CustomLinks:        user.CustomLinks,
		ImageURL:           user.ImageURL,
		ProfileComplete:    user.ProfileComplete,
		CreatedAt:          user.CreatedAt,
	}
}
