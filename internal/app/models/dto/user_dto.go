package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/bfriends/backend/internal/app/models"
)

// ProfileRequest carries the onboarding/settings profile form. Which optional
// fields are required depends on the chosen primary role; the service
// validates that, not the binding layer.
type ProfileRequest struct {
	FullName           string              `json:"fullName" binding:"required,min=3,max=100"`
	UserName           string              `json:"userName" binding:"required,min=3,max=30"`
	PrimaryRole        models.RoleType     `json:"primaryRole" binding:"required"`
	NIM                *string             `json:"nim,omitempty"`
	StudentMajor       *string             `json:"studentMajor,omitempty"`
	StudentBatch       *string             `json:"studentBatch,omitempty"`
	EmployeeID         *string             `json:"employeeId,omitempty"`
	EmployeeDepartment *string             `json:"employeeDepartment,omitempty"`
	CampusLocations    []string            `json:"campusLocations"`
	Bio                string              `json:"bio" binding:"max=500"`
	OccupationTags     []string            `json:"occupationTags"`
	CustomLinks        []models.CustomLink `json:"customLinks"`
}

// UpdateHandleRequest updates only the unique handle
type UpdateHandleRequest struct {
	UserName string `json:"userName" binding:"required"`
}

// UserProfileResponse is the public view of a user profile
type UserProfileResponse struct {
	ID                 uuid.UUID           `json:"id"`
	UserName           *string             `json:"userName,omitempty"`
	FullName           string              `json:"fullName"`
	PrimaryRole        *models.RoleType    `json:"primaryRole,omitempty"`
	NIM                *string             `json:"nim,omitempty"`
	StudentMajor       *string             `json:"studentMajor,omitempty"`
	StudentBatch       *string             `json:"studentBatch,omitempty"`
	EmployeeID         *string             `json:"employeeId,omitempty"`
	EmployeeDepartment *string             `json:"employeeDepartment,omitempty"`
	CampusLocations    []string            `json:"campusLocations"`
	Bio                string              `json:"bio"`
	OccupationTags     []string            `json:"occupationTags"`
	CustomLinks        []models.CustomLink `json:"customLinks"`
	ImageURL           *string             `json:"imageUrl,omitempty"`
	ProfileComplete    bool                `json:"profileComplete"`
	CreatedAt          time.Time           `json:"createdAt"`
}

// AvatarResponse is returned after a successful avatar upload
type AvatarResponse struct {
	ImageURL string `json:"imageUrl"`
}
