package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/app/models/dto"
	"github.com/bfriends/backend/internal/app/repositories"
	"github.com/bfriends/backend/internal/pkg/apperrors"
	"github.com/bfriends/backend/internal/pkg/auth"
	"github.com/bfriends/backend/internal/pkg/logger"
)

// authUserRepository is the slice of UserRepository used by AuthService
type authUserRepository interface {
	CreateUser(ctx context.Context, id uuid.UUID, email, passwordHash, fullName string) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// authTokenRepository is the slice of TokenRepository used by AuthService
type authTokenRepository interface {
	SaveToken(ctx context.Context, token string, userID uuid.UUID, expiryDate time.Time) error
	GetToken(ctx context.Context, token string) (*repositories.RefreshToken, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	userRepo   authUserRepository
	tokenRepo  authTokenRepository
	jwtService *auth.JWTService
	log        zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo authUserRepository, tokenRepo authTokenRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		log:        logger.WithComponent("auth_service"),
	}
}

// Register creates a new account and signs it in. The profile starts
// incomplete; clients route new users to onboarding.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.New()
	if err := s.userRepo.CreateUser(ctx, userID, email, passwordHash, ""); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", userID.String()).Msg("User registered")

	return s.issueTokens(ctx, userID, email, false)
}

// Login authenticates by email and password
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user.ID, user.Email, user.ProfileComplete)
}

// RefreshToken rotates a refresh token: the presented token is revoked and a
// fresh pair is issued. Expired and revoked tokens are rejected.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.GetToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if stored.IsRevoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(stored.ExpiryDate) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user.ID, user.Email, user.ProfileComplete)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		if errors.Is(err, apperrors.ErrTokenInvalid) {
			// Revoking an unknown token is a no-op, not an error.
			return nil
		}
		return err
	}
	return nil
}

// LogoutAll revokes every refresh token of the user
func (s *AuthService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	return s.tokenRepo.RevokeAllUserTokens(ctx, userID)
}

func (s *AuthService) issueTokens(ctx context.Context, userID uuid.UUID, email string, profileComplete bool) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(userID, email)
	if err != nil {
		return nil, err
	}

	expiry := s.jwtService.GetRefreshTokenExpiry()
	if err := s.tokenRepo.SaveToken(ctx, refreshToken, userID, expiry); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		UserID:          userID,
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		ExpiresIn:       expiresIn,
		ProfileComplete: profileComplete,
	}, nil
}
