package models

// ApplicationStatus is the progress state of an application
type ApplicationStatus string

// Statuses a student or graduate tracks on their own applications
const (
	StatusApplied    ApplicationStatus = "Applied"
	StatusAssessment ApplicationStatus = "Assessment"
	StatusInterview  ApplicationStatus = "Interview"
	StatusOffer      ApplicationStatus = "Offer"
	StatusRejected   ApplicationStatus = "Rejected"
)

// Statuses only the career office sets
const (
	StatusPendingReview      ApplicationStatus = "Pending Review"
	StatusForwarded          ApplicationStatus = "Forwarded to Employer"
	StatusInterviewScheduled ApplicationStatus = "Interview Scheduled"
	StatusOfferExtended      ApplicationStatus = "Offer Extended"
)

// IsOwnerStatus reports whether the applicant may set s
func (s ApplicationStatus) IsOwnerStatus() bool {
	switch s {
	case StatusApplied, StatusAssessment, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// IsValid reports whether s is any known status
func (s ApplicationStatus) IsValid() bool {
	if s.IsOwnerStatus() {
		return true
	}
	switch s {
	case StatusPendingReview, StatusForwarded, StatusInterviewScheduled, StatusOfferExtended:
		return true
	}
	return false
}

// Application defines a job application stored in the 'applications' collection
type Application struct {
	ID             int64             `json:"id" db:"id" example:"1"`
	UserID         string            `json:"userId" db:"user_id" example:"f3a9c2"`
	JobID          int64             `json:"jobId" db:"job_id" example:"1"`
	JobTitle       string            `json:"jobTitle" db:"job_title" example:"Backend Intern"`
	Company        string            `json:"company" db:"company" example:"Acme"`
	Status         ApplicationStatus `json:"status" db:"status" example:"Applied"`
	Date           string            `json:"date" db:"date" example:"2026-10-15"`
	ResumeFileName string            `json:"resumeFileName,omitempty" db:"resume_file_name"`
	ResumeURL      string            `json:"resumeUrl,omitempty" db:"resume_url"`
}

// ApplicationPatch holds the whitelisted fields an owner may change
type ApplicationPatch struct {
	JobTitle *string
	Company  *string
	Status   *ApplicationStatus
	Date     *string
}

// IsEmpty reports whether the patch touches no field
func (p ApplicationPatch) IsEmpty() bool {
	return p.JobTitle == nil && p.Company == nil && p.Status == nil && p.Date == nil
}

// Apply merges the supplied fields into app
func (p ApplicationPatch) Apply(app *Application) {
	if p.JobTitle != nil {
		app.JobTitle = *p.JobTitle
	}
	if p.Company != nil {
		app.Company = *p.Company
	}
	if p.Status != nil {
		app.Status = *p.Status
	}
	if p.Date != nil {
		app.Date = *p.Date
	}
}

// ResumeUpload is a resume attached when an application is created
type ResumeUpload struct {
	FileName string
	// Data is base64, optionally wrapped in a data URL
	Data string
}
