package model

import "time"

// JobType is the employment type of a posting.
type JobType string

const (
	JobTypeFullTime JobType = "Full-time"
	JobTypePartTime JobType = "Part-time"
	JobTypeRemote   JobType = "Remote"
)

// Valid reports whether t is a known job type.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeRemote:
		return true
	default:
		return false
	}
}

// Job represents a job posting in the database.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	JobType     JobType   `json:"jobType"`
	SalaryRange string    `json:"salaryRange"`
	Description string    `json:"description"`
	EmployerID  string    `json:"employerId"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateJobRequest represents a new posting submitted by an employer.
type CreateJobRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Company     string  `json:"company" validate:"required,max=200"`
	Location    string  `json:"location" validate:"required,max=200"`
	JobType     JobType `json:"jobType" validate:"required,oneof=Full-time Part-time Remote"`
	SalaryRange string  `json:"salaryRange" validate:"required,max=100"`
	Description string  `json:"description" validate:"required,max=20000"`
}

// UpdateJobRequest is a partial update of a posting. Nil fields are left untouched.
type UpdateJobRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Company     *string  `json:"company" validate:"omitempty,min=1,max=200"`
	Location    *string  `json:"location" validate:"omitempty,min=1,max=200"`
	JobType     *JobType `json:"jobType" validate:"omitempty,oneof=Full-time Part-time Remote"`
	SalaryRange *string  `json:"salaryRange" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,min=1,max=20000"`
	IsActive    *bool    `json:"isActive"`
}

// JobFilter narrows a job listing. Empty strings do not filter.
type JobFilter struct {
	Location   string
	JobType    JobType
	Search     string
	EmployerID string
	ActiveOnly bool
}
