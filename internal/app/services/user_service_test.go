package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/app/models/dto"
	"github.com/bfriends/backend/internal/pkg/apperrors"
)

type fakeUserRepo struct {
	users         map[uuid.UUID]*models.User
	takenHandles  map[string]bool
	updatedUser   *models.User
	updatedHandle string
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{
		users:        make(map[uuid.UUID]*models.User),
		takenHandles: make(map[string]bool),
	}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUserName(_ context.Context, userName string) (*models.User, error) {
	for _, user := range f.users {
		if user.UserName != nil && *user.UserName == userName {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, user *models.User, completeProfile bool) error {
	if user.UserName != nil && f.takenHandles[*user.UserName] {
		return apperrors.ErrHandleTaken
	}
	f.updatedUser = user
	return nil
}

func (f *fakeUserRepo) UpdateUserName(_ context.Context, id uuid.UUID, userName string) error {
	if f.takenHandles[userName] {
		return apperrors.ErrHandleTaken
	}
	f.updatedHandle = userName
	return nil
}

func (f *fakeUserRepo) UpdateImageURL(_ context.Context, id uuid.UUID, imageURL *string) (*string, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	previous := user.ImageURL
	user.ImageURL = imageURL
	return previous, nil
}

func studentProfileRequest() dto.ProfileRequest {
	return dto.ProfileRequest{
		FullName:     "Alice Example",
		UserName:     "alice_01",
		PrimaryRole:  models.RoleStudent,
		NIM:          strPtr("1301210001"),
		StudentMajor: strPtr("Computer Science"),
		StudentBatch: strPtr("2022"),
	}
}

func TestValidateHandle(t *testing.T) {
	assert.NoError(t, ValidateHandle("alice_01"))
	assert.NoError(t, ValidateHandle("a.b.c"))
	assert.Error(t, ValidateHandle("ab"))                  // too short
	assert.Error(t, ValidateHandle("has space"))           // bad charset
	assert.Error(t, ValidateHandle("emoji🚀"))              // bad charset
	assert.Error(t, ValidateHandle("")) // empty
	assert.Error(t, ValidateHandle("abcdefghijklmnopqrstuvwxyz_01234")) // too long
}

func TestUpdateProfile_StudentRequiresCredentials(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	svc := NewUserService(newFakeUserRepo(user), nil)

	req := studentProfileRequest()
	req.StudentMajor = nil
	_, err := svc.UpdateProfile(context.Background(), user.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	req = studentProfileRequest()
	req.NIM = strPtr("  ")
	_, err = svc.UpdateProfile(context.Background(), user.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateProfile_EmployeeRequiresCredentials(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	svc := NewUserService(newFakeUserRepo(user), nil)

	req := dto.ProfileRequest{
		FullName:    "Bob Example",
		UserName:    "bob",
		PrimaryRole: models.RoleEmployee,
	}
	_, err := svc.UpdateProfile(context.Background(), user.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateProfile_BothRolesRequireBothSets(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	svc := NewUserService(newFakeUserRepo(user), nil)

	req := studentProfileRequest()
	req.PrimaryRole = models.RoleBoth
	// Student fields present, employee fields missing.
	_, err := svc.UpdateProfile(context.Background(), user.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	req.EmployeeID = strPtr("E-100")
	req.EmployeeDepartment = strPtr("Library")
	resp, err := svc.UpdateProfile(context.Background(), user.ID, req)
	require.NoError(t, err)
	assert.True(t, resp.ProfileComplete)
}

func TestUpdateProfile_ClearsFieldsOfOtherRole(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		NIM:          strPtr("1301210001"),
		StudentMajor: strPtr("Computer Science"),
		StudentBatch: strPtr("2022"),
	}
	repo := newFakeUserRepo(user)
	svc := NewUserService(repo, nil)

	req := dto.ProfileRequest{
		FullName:           "Alice Example",
		UserName:           "alice_01",
		PrimaryRole:        models.RoleEmployee,
		EmployeeID:         strPtr("E-200"),
		EmployeeDepartment: strPtr("Facilities"),
	}
	_, err := svc.UpdateProfile(context.Background(), user.ID, req)
	require.NoError(t, err)

	require.NotNil(t, repo.updatedUser)
	assert.Nil(t, repo.updatedUser.NIM)
	assert.Nil(t, repo.updatedUser.StudentMajor)
	assert.Nil(t, repo.updatedUser.StudentBatch)
	assert.Equal(t, "E-200", *repo.updatedUser.EmployeeID)
}

func TestUpdateProfile_RejectsUnknownRole(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	svc := NewUserService(newFakeUserRepo(user), nil)

	req := studentProfileRequest()
	req.PrimaryRole = models.RoleType("WIZARD")
	_, err := svc.UpdateProfile(context.Background(), user.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateProfile_CustomLinksNeedTitleAndURL(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	svc := NewUserService(newFakeUserRepo(user), nil)

	req := studentProfileRequest()
	req.CustomLinks = []models.CustomLink{{Title: "Blog", URL: ""}}
	_, err := svc.UpdateProfile(context.Background(), user.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	req = studentProfileRequest()
	req.CustomLinks = []models.CustomLink{{Title: "Blog", URL: "not a url"}}
	_, err = svc.UpdateProfile(context.Background(), user.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	req = studentProfileRequest()
	req.CustomLinks = []models.CustomLink{{Title: "Blog", URL: "https://example.com/blog"}}
	_, err = svc.UpdateProfile(context.Background(), user.ID, req)
	assert.NoError(t, err)
}

func TestUpdateHandle(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	repo := newFakeUserRepo(user)
	svc := NewUserService(repo, nil)

	require.NoError(t, svc.UpdateHandle(context.Background(), user.ID, "new_name"))
	assert.Equal(t, "new_name", repo.updatedHandle)

	assert.Error(t, svc.UpdateHandle(context.Background(), user.ID, "x"))

	repo.takenHandles["taken"] = true
	err := svc.UpdateHandle(context.Background(), user.ID, "taken")
	assert.ErrorIs(t, err, apperrors.ErrHandleTaken)
}

func TestGetProfileByHandle(t *testing.T) {
	user := &models.User{ID: uuid.New(), UserName: strPtr("alice"), FullName: "Alice"}
	svc := NewUserService(newFakeUserRepo(user), nil)

	profile, err := svc.GetProfileByHandle(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.ID)

	_, err = svc.GetProfileByHandle(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
