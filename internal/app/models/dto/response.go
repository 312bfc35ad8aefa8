package dto

import "github.com/yigit/careerportal/internal/app/models"

// OKResponse acknowledges application and session operations
type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}

// SuccessResponse acknowledges job deletion
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// MeResponse wraps the current caller's profile, null when anonymous
type MeResponse struct {
	User *models.Profile `json:"user"`
}

// ProfileResponse wraps the authenticated caller's profile
type ProfileResponse struct {
	Profile *models.Profile `json:"profile"`
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
