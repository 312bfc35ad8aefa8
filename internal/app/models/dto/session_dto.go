package dto

import "github.com/yigit/careerportal/internal/app/models"

// CreateSessionRequest exchanges a fresh identity credential for a session cookie
type CreateSessionRequest struct {
	IDToken string       `json:"idToken" binding:"required"`
	Profile *ProfileSeed `json:"profile,omitempty"`
}

// ProfileSeed is the optional profile sent with the first sign-in
type ProfileSeed struct {
	Email          *string `json:"email"`
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	Role           *string `json:"role" binding:"omitempty,oneof=student graduate career_office"`
	Phone          *string `json:"phone"`
	StudentID      *string `json:"studentId"`
	Major          *string `json:"major"`
	GraduationYear *int    `json:"graduationYear" binding:"omitempty,min=1900,max=2200"`
}

// ToPatch converts the seed into a profile patch, keeping the requested role as is
func (s ProfileSeed) ToPatch() models.ProfilePatch {
	patch := models.ProfilePatch{
		Email:          s.Email,
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Phone:          s.Phone,
		StudentID:      s.StudentID,
		Major:          s.Major,
		GraduationYear: s.GraduationYear,
	}
	if s.Role != nil {
		role := models.RoleType(*s.Role)
		patch.Role = &role
	}
	return patch
}

// RegisterAdminRequest provisions a career office account
type RegisterAdminRequest struct {
	Email     string `json:"email" binding:"required,email" example:"office@school.edu"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" example:"Career"`
	LastName  string `json:"lastName" example:"Office"`
}

// RegisterAdminResponse reports the provisioned account
type RegisterAdminResponse struct {
	OK    bool            `json:"ok" example:"true"`
	UID   string          `json:"uid"`
	Email string          `json:"email"`
	Role  models.RoleType `json:"role" example:"career_office"`
}
