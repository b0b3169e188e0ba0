package models

import (
	"time"

	"github.com/google/uuid"
)

// RoleType defines the user's primary role on campus
type RoleType string

const (
	RoleStudent  RoleType = "STUDENT"
	RoleEmployee RoleType = "EMPLOYEE"
	RoleBoth     RoleType = "BOTH"
)

// IsStudent reports whether the role includes the student classification.
func (r RoleType) IsStudent() bool {
	return r == RoleStudent || r == RoleBoth
}

// IsEmployee reports whether the role includes the employee classification.
func (r RoleType) IsEmployee() bool {
	return r == RoleEmployee || r == RoleBoth
}

// CustomLink is a titled external link shown on a profile
type CustomLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// User defines the user model based on the 'users' table.
// The ID is the stable identity issued at signup; role-conditional fields
// (NIM/major/batch for students, employee ID/department for employees) are
// NULL for the roles they do not apply to.
type User struct {
	ID                 uuid.UUID    `json:"id" db:"id"`
	Email              string       `json:"email" db:"email"`
	Password           string       `json:"-" db:"password"`
	FullName           string       `json:"fullName" db:"full_name"`
	UserName           *string      `json:"userName,omitempty" db:"user_name"`
	PrimaryRole        *RoleType    `json:"primaryRole,omitempty" db:"primary_role"`
	NIM                *string      `json:"nim,omitempty" db:"nim"`
	StudentMajor       *string      `json:"studentMajor,omitempty" db:"student_major"`
	StudentBatch       *string      `json:"studentBatch,omitempty" db:"student_batch"`
	EmployeeID         *string      `json:"employeeId,omitempty" db:"employee_id"`
	EmployeeDepartment *string      `json:"employeeDepartment,omitempty" db:"employee_department"`
	CampusLocations    []string     `json:"campusLocations" db:"campus_locations"`
	Bio                string       `json:"bio" db:"bio"`
	OccupationTags     []string     `json:"occupationTags" db:"occupation_tags"`
	CustomLinks        []CustomLink `json:"customLinks" db:"custom_links"`
	ImageURL           *string      `json:"imageUrl,omitempty" db:"image_url"`
	ProfileComplete    bool         `json:"profileComplete" db:"profile_complete"`
	CreatedAt          time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time    `json:"updatedAt" db:"updated_at"`
}
