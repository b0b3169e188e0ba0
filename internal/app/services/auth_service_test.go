package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/app/models/dto"
	"github.com/bfriends/backend/internal/app/repositories"
	"github.com/bfriends/backend/internal/pkg/apperrors"
	"github.com/bfriends/backend/internal/pkg/auth"
)

type fakeAuthUserRepo struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User
}

func newFakeAuthUserRepo() *fakeAuthUserRepo {
	return &fakeAuthUserRepo{
		byEmail: make(map[string]*models.User),
		byID:    make(map[uuid.UUID]*models.User),
	}
}

func (f *fakeAuthUserRepo) CreateUser(_ context.Context, id uuid.UUID, email, passwordHash, fullName string) error {
	if _, exists := f.byEmail[email]; exists {
		return apperrors.ErrEmailAlreadyExists
	}
	user := &models.User{ID: id, Email: email, Password: passwordHash, FullName: fullName}
	f.byEmail[email] = user
	f.byID[id] = user
	return nil
}

func (f *fakeAuthUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := f.byEmail[email]; ok {
		return user, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeAuthUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := f.byID[id]; ok {
		return user, nil
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeTokenRepo struct {
	tokens map[string]*repositories.RefreshToken
	nextID int64
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*repositories.RefreshToken), nextID: 1}
}

func (f *fakeTokenRepo) SaveToken(_ context.Context, token string, userID uuid.UUID, expiryDate time.Time) error {
	f.tokens[token] = &repositories.RefreshToken{
		ID: f.nextID, Token: token, UserID: userID, ExpiryDate: expiryDate,
	}
	f.nextID++
	return nil
}

func (f *fakeTokenRepo) GetToken(_ context.Context, token string) (*repositories.RefreshToken, error) {
	if stored, ok := f.tokens[token]; ok {
		return stored, nil
	}
	return nil, apperrors.ErrTokenInvalid
}

func (f *fakeTokenRepo) RevokeToken(_ context.Context, token string) error {
	stored, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenInvalid
	}
	stored.IsRevoked = true
	return nil
}

func (f *fakeTokenRepo) RevokeAllUserTokens(_ context.Context, userID uuid.UUID) error {
	for _, stored := range f.tokens {
		if stored.UserID == userID {
			stored.IsRevoked = true
		}
	}
	return nil
}

func newTestAuthService() (*AuthService, *fakeAuthUserRepo, *fakeTokenRepo) {
	users := newFakeAuthUserRepo()
	tokens := newFakeTokenRepo()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	return NewAuthService(users, tokens, jwtService), users, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestAuthService()

	registered, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "Alice@Example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)
	assert.False(t, registered.ProfileComplete)

	// Email lookups are case-insensitive through normalization.
	loggedIn, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, loggedIn.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "bob@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "bob@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	// Unknown accounts are indistinguishable from bad passwords.
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshToken_Rotation(t *testing.T) {
	svc, _, tokens := newTestAuthService()

	registered, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "carol@example.com",
		Password: "s3cret-pw",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The old token was revoked by the rotation.
	_, err = svc.RefreshToken(context.Background(), registered.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// The stored record reflects it too.
	assert.True(t, tokens.tokens[registered.RefreshToken].IsRevoked)
}

func TestRefreshToken_Expired(t *testing.T) {
	svc, _, tokens := newTestAuthService()

	registered, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "dave@example.com",
		Password: "s3cret-pw",
	})
	require.NoError(t, err)

	tokens.tokens[registered.RefreshToken].ExpiryDate = time.Now().Add(-time.Minute)
	_, err = svc.RefreshToken(context.Background(), registered.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestLogout_UnknownTokenIsNoop(t *testing.T) {
	svc, _, _ := newTestAuthService()
	assert.NoError(t, svc.Logout(context.Background(), "never-issued"))
}
