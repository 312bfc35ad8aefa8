package models

// JobType is the engagement type of a posting
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeFreelance  JobType = "Freelance"
	JobTypeInternship JobType = "Internship"
)

// JobStatus is the publication state of a posting
type JobStatus string

const (
	JobStatusDraft  JobStatus = "Draft"
	JobStatusActive JobStatus = "Active"
	JobStatusClosed JobStatus = "Closed"
)

// Job defines a job posting stored in the 'jobs' collection
type Job struct {
	ID                int64     `json:"id" db:"id" example:"1"`
	Title             string    `json:"title" db:"title" example:"Backend Intern"`
	Company           string    `json:"company" db:"company" example:"Acme"`
	Location          string    `json:"location" db:"location" example:"Remote"`
	Type              JobType   `json:"type" db:"type" example:"Internship"`
	Salary            string    `json:"salary" db:"salary" example:"$25/h"`
	PostedDate        string    `json:"postedDate" db:"posted_date" example:"2026-09-01"`
	Deadline          string    `json:"deadline" db:"deadline" example:"2026-10-01"`
	Status            JobStatus `json:"status" db:"status" example:"Active"`
	Description       string    `json:"description" db:"description"`
	Requirements      []string  `json:"requirements" db:"requirements"`
	Featured          bool      `json:"featured" db:"featured"`
	ApplicationsCount int64     `json:"applicationsCount" db:"applications_count"`
}

// JobPatch carries the fields supplied in a partial update; nil means untouched
type JobPatch struct {
	Title        *string
	Company      *string
	Location     *string
	Type         *JobType
	Salary       *string
	PostedDate   *string
	Deadline     *string
	Status       *JobStatus
	Description  *string
	Requirements *[]string
	Featured     *bool
}

// IsEmpty reports whether the patch touches no field
func (p JobPatch) IsEmpty() bool {
	return p.Title == nil && p.Company == nil && p.Location == nil && p.Type == nil &&
		p.Salary == nil && p.PostedDate == nil && p.Deadline == nil && p.Status == nil &&
		p.Description == nil && p.Requirements == nil && p.Featured == nil
}

// Apply merges the supplied fields into job
func (p JobPatch) Apply(job *Job) {
	if p.Title != nil {
		job.Title = *p.Title
	}
	if p.Company != nil {
		job.Company = *p.Company
	}
	if p.Location != nil {
		job.Location = *p.Location
	}
	if p.Type != nil {
		job.Type = *p.Type
	}
	if p.Salary != nil {
		job.Salary = *p.Salary
	}
	if p.PostedDate != nil {
		job.PostedDate = *p.PostedDate
	}
	if p.Deadline != nil {
		job.Deadline = *p.Deadline
	}
	if p.Status != nil {
		job.Status = *p.Status
	}
	if p.Description != nil {
		job.Description = *p.Description
	}
	if p.Requirements != nil {
		job.Requirements = append([]string(nil), (*p.Requirements)...)
	}
	if p.Featured != nil {
		job.Featured = *p.Featured
	}
}
