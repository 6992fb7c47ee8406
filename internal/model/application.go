package model

import "time"

// ApplicationStatus tracks an employer's review of an application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusReviewed ApplicationStatus = "reviewed"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

// Application represents a seeker's application to a job.
type Application struct {
	ID        string
	JobID     string
	SeekerID  string
	Status    ApplicationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplicationDetail is an application joined with its job and applicant.
type ApplicationDetail struct {
	ID        string            `json:"id"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	Job       Job               `json:"job"`
	Seeker    UserResponse      `json:"seeker"`
}

// CreateApplicationRequest represents a seeker applying to a job.
type CreateApplicationRequest struct {
	JobID string `json:"jobId" validate:"required,uuid"`
}

// UpdateApplicationStatusRequest represents an employer's review decision.
type UpdateApplicationStatusRequest struct {
	Status ApplicationStatus `json:"status" validate:"required,oneof=pending reviewed accepted rejected"`
}

// ApplicationFilter narrows an application listing. Empty strings do not filter.
type ApplicationFilter struct {
	SeekerID   string
	JobID      string
	EmployerID string
}

// ApplicationCheckResponse reports whether a seeker already applied to a job.
type ApplicationCheckResponse struct {
	HasApplied bool `json:"hasApplied"`
}
