package dto

import "github.com/yigit/careerportal/internal/app/models"

// CreateJobRequest represents a new job posting
type CreateJobRequest struct {
	Title        string   `json:"title" binding:"required" example:"Backend Intern"`
	Company      string   `json:"company" binding:"required" example:"Acme"`
	Location     string   `json:"location" example:"Remote"`
	Type         string   `json:"type" binding:"omitempty,oneof=Full-time Part-time Contract Freelance Internship" example:"Internship"`
	Salary       string   `json:"salary" example:"$25/h"`
	PostedDate   string   `json:"postedDate" binding:"omitempty,datetime=2006-01-02" example:"2026-09-01"`
	Deadline     string   `json:"deadline" binding:"omitempty,datetime=2006-01-02" example:"2026-10-01"`
	Status       string   `json:"status" binding:"omitempty,oneof=Draft Active Closed" example:"Active"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Featured     bool     `json:"featured"`
}

// ToModel converts the request into a job document without an id
func (r CreateJobRequest) ToModel() *models.Job {
	requirements := r.Requirements
	if requirements == nil {
		requirements = []string{}
	}
	return &models.Job{
		Title:        r.Title,
		Company:      r.Company,
		Location:     r.Location,
		Type:         models.JobType(r.Type),
		Salary:       r.Salary,
		PostedDate:   r.PostedDate,
		Deadline:     r.Deadline,
		Status:       models.JobStatus(r.Status),
		Description:  r.Description,
		Requirements: requirements,
		Featured:     r.Featured,
	}
}

// UpdateJobRequest represents a partial job update; any id in the body is ignored
type UpdateJobRequest struct {
	Title        *string   `json:"title" binding:"omitempty,min=1"`
	Company      *string   `json:"company" binding:"omitempty,min=1"`
	Location     *string   `json:"location"`
	Type         *string   `json:"type" binding:"omitempty,oneof=Full-time Part-time Contract Freelance Internship"`
	Salary       *string   `json:"salary"`
	PostedDate   *string   `json:"postedDate" binding:"omitempty,datetime=2006-01-02"`
	Deadline     *string   `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	Status       *string   `json:"status" binding:"omitempty,oneof=Draft Active Closed"`
	Description  *string   `json:"description"`
	Requirements *[]string `json:"requirements"`
	Featured     *bool     `json:"featured"`
}

// ToPatch converts the request into a job patch
func (r UpdateJobRequest) ToPatch() models.JobPatch {
	patch := models.JobPatch{
		Title:        r.Title,
		Company:      r.Company,
		Location:     r.Location,
		Salary:       r.Salary,
		PostedDate:   r.PostedDate,
		Deadline:     r.Deadline,
		Description:  r.Description,
		Requirements: r.Requirements,
		Featured:     r.Featured,
	}
	if r.Type != nil {
		t := models.JobType(*r.Type)
		patch.Type = &t
	}
	if r.Status != nil {
		s := models.JobStatus(*r.Status)
		patch.Status = &s
	}
	return patch
}
