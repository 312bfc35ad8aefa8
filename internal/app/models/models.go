package models

// RoleType defines the caller role stored on a profile
type RoleType string

const (
	RoleStudent      RoleType = "student"
	RoleGraduate     RoleType = "graduate"
	RoleCareerOffice RoleType = "career_office"
)

// IsValid reports whether r is one of the known roles
func (r RoleType) IsValid() bool {
	switch r {
	case RoleStudent, RoleGraduate, RoleCareerOffice:
		return true
	}
	return false
}

// Collection names double as table names in the document store.
const (
	CollectionUsers        = "users"
	CollectionJobs         = "jobs"
	CollectionApplications = "applications"
)
