package dto

import "github.com/yigit/careerportal/internal/app/models"

// CreateApplicationRequest represents a new application.
// userId and date are assigned by the server and are not accepted from the body.
type CreateApplicationRequest struct {
	JobID          int64  `json:"jobId" binding:"min=0" example:"1"`
	JobTitle       string `json:"jobTitle" example:"Backend Intern"`
	Company        string `json:"company" example:"Acme"`
	Status         string `json:"status" example:"Applied"`
	ResumeFileName string `json:"resumeFileName" example:"cv.pdf"`
	// ResumeData is the resume encoded as base64, optionally as a data URL
	ResumeData string `json:"resumeData,omitempty"`
}

// UpdateApplicationRequest represents an owner's whitelisted update
type UpdateApplicationRequest struct {
	ID       *int64  `json:"id" example:"5"`
	JobTitle *string `json:"jobTitle"`
	Company  *string `json:"company"`
	Status   *string `json:"status" example:"Offer"`
	Date     *string `json:"date" binding:"omitempty,datetime=2006-01-02" example:"2026-10-15"`
}

// ToPatch converts the request into an application patch
func (r UpdateApplicationRequest) ToPatch() models.ApplicationPatch {
	patch := models.ApplicationPatch{
		JobTitle: r.JobTitle,
		Company:  r.Company,
		Date:     r.Date,
	}
	if r.Status != nil {
		s := models.ApplicationStatus(*r.Status)
		patch.Status = &s
	}
	return patch
}

// DeleteApplicationRequest identifies the application to delete
type DeleteApplicationRequest struct {
	ID *int64 `json:"id" example:"5"`
}

// UpdateApplicationStatusRequest represents a career office status change
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required" example:"Forwarded to Employer"`
}

// ToModel converts the request into an application document; the server fills id, userId and date
func (r CreateApplicationRequest) ToModel() *models.Application {
	return &models.Application{
		JobID:    r.JobID,
		JobTitle: r.JobTitle,
		Company:  r.Company,
		Status:   models.ApplicationStatus(r.Status),
	}
}

// Resume returns the attached resume, or nil when neither name nor data was sent
func (r CreateApplicationRequest) Resume() *models.ResumeUpload {
	if r.ResumeFileName == "" && r.ResumeData == "" {
		return nil
	}
	return &models.ResumeUpload{FileName: r.ResumeFileName, Data: r.ResumeData}
}
