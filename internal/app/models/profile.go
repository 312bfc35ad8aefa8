package models

import (
	"strings"
	"time"
)

// Profile defines the caller profile stored in the 'users' collection, keyed by the caller identity
type Profile struct {
	ID             string    `json:"id" db:"id" example:"f3a9c2"`
	Email          string    `json:"email" db:"email" example:"ada@school.edu"`
	Role           RoleType  `json:"role" db:"role" example:"student"`
	FirstName      string    `json:"firstName" db:"first_name" example:"Ada"`
	LastName       string    `json:"lastName" db:"last_name" example:"Lovelace"`
	FullName       string    `json:"fullName" db:"full_name" example:"Ada Lovelace"`
	Phone          string    `json:"phone,omitempty" db:"phone"`
	StudentID      string    `json:"studentId,omitempty" db:"student_id"`
	Major          string    `json:"major,omitempty" db:"major"`
	GraduationYear *int      `json:"graduationYear,omitempty" db:"graduation_year"`
	Bio            string    `json:"bio,omitempty" db:"bio"`
	LinkedInURL    string    `json:"linkedinUrl,omitempty" db:"linkedin_url"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// ProfilePatch is a partial profile document; nil fields are left untouched on upsert
type ProfilePatch struct {
	Email          *string
	Role           *RoleType
	FirstName      *string
	LastName       *string
	Phone          *string
	StudentID      *string
	Major          *string
	GraduationYear *int
	Bio            *string
	LinkedInURL    *string
}

// TouchesName reports whether the patch carries either name field
func (p ProfilePatch) TouchesName() bool {
	return p.FirstName != nil || p.LastName != nil
}

// Apply merges the supplied fields into profile and recomputes the full name when a name changed
func (p ProfilePatch) Apply(profile *Profile) {
	if p.Email != nil {
		profile.Email = *p.Email
	}
	if p.Role != nil {
		profile.Role = *p.Role
	}
	if p.FirstName != nil {
		profile.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		profile.LastName = *p.LastName
	}
	if p.Phone != nil {
		profile.Phone = *p.Phone
	}
	if p.StudentID != nil {
		profile.StudentID = *p.StudentID
	}
	if p.Major != nil {
		profile.Major = *p.Major
	}
	if p.GraduationYear != nil {
		year := *p.GraduationYear
		profile.GraduationYear = &year
	}
	if p.Bio != nil {
		profile.Bio = *p.Bio
	}
	if p.LinkedInURL != nil {
		profile.LinkedInURL = *p.LinkedInURL
	}
	if p.TouchesName() {
		profile.FullName = FullName(profile.FirstName, profile.LastName)
	}
	if profile.Role == "" {
		profile.Role = RoleStudent
	}
}

// FullName joins first and last name with a single space and trims the result
func FullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
