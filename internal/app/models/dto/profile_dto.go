package dto

import "github.com/yigit/careerportal/internal/app/models"

// UpdateProfileRequest holds the profile fields a caller may edit
type UpdateProfileRequest struct {
	FirstName      *string `json:"firstName" example:"Ada"`
	LastName       *string `json:"lastName" example:"Lovelace"`
	Phone          *string `json:"phone"`
	StudentID      *string `json:"studentId"`
	Major          *string `json:"major"`
	GraduationYear *int    `json:"graduationYear" binding:"omitempty,min=1900,max=2200"`
	Bio            *string `json:"bio"`
	LinkedInURL    *string `json:"linkedinUrl"`
}

// ToPatch converts the request into a profile patch.
// Role and email are deliberately absent from the whitelist.
func (r UpdateProfileRequest) ToPatch() models.ProfilePatch {
	return models.ProfilePatch{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Phone:          r.Phone,
		StudentID:      r.StudentID,
		Major:          r.Major,
		GraduationYear: r.GraduationYear,
		Bio:            r.Bio,
		LinkedInURL:    r.LinkedInURL,
	}
}
