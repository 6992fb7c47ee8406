package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jobconnect/jobconnect-go/internal/model"
	"github.com/jobconnect/jobconnect-go/internal/repository"
)

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrEmployerNotApproved = errors.New("employer account is awaiting approval")
	ErrInvalidJobType      = errors.New("job type must be one of Full-time, Part-time, Remote")
	ErrJobFieldsRequired   = errors.New("title, company, location, salary range and description are required")
)

// JobStore is the persistence JobService needs.
type JobStore interface {
	Create(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, id string) (*model.Job, error)
	List(ctx context.Context, filter model.JobFilter) ([]model.Job, error)
	Update(ctx context.Context, id string, req model.UpdateJobRequest) (*model.Job, error)
	Delete(ctx context.Context, id string) error
	Locations(ctx context.Context) ([]string, error)
}

// AccountLookup reads a user's live record.
type AccountLookup interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// JobService handles job postings.
type JobService struct {
	jobs  JobStore
	users AccountLookup
}

// NewJobService creates a new JobService.
func NewJobService(jobs JobStore, users AccountLookup) *JobService {
	return &JobService{jobs: jobs, users: users}
}

// List returns postings matching filter.
func (s *JobService) List(ctx context.Context, filter model.JobFilter) ([]model.Job, error) {
	return s.jobs.List(ctx, filter)
}

// Get returns one posting.
func (s *JobService) Get(ctx context.Context, id string) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, mapJobErr(err)
	}
	return job, nil
}

// Locations returns the distinct locations of active postings.
func (s *JobService) Locations(ctx context.Context) ([]string, error) {
	return s.jobs.Locations(ctx)
}

// Create publishes a posting for the acting employer. The employer's stored
// record must be approved and not blocked, regardless of what the token says.
func (s *JobService) Create(ctx context.Context, actor Actor, req model.CreateJobRequest) (*model.Job, error) {
	if actor.Role != model.RoleEmployer {
		return nil, ErrForbidden
	}
	if !req.JobType.Valid() {
		return nil, ErrInvalidJobType
	}
	for _, f := range []string{req.Title, req.Company, req.Location, req.SalaryRange, req.Description} {
		if strings.TrimSpace(f) == "" {
			return nil, ErrJobFieldsRequired
		}
	}

	if err := s.activeEmployer(ctx, actor.UserID); err != nil {
		return nil, err
	}

	job := &model.Job{
		Title:       strings.TrimSpace(req.Title),
		Company:     strings.TrimSpace(req.Company),
		Location:    strings.TrimSpace(req.Location),
		JobType:     req.JobType,
		SalaryRange: strings.TrimSpace(req.SalaryRange),
		Description: req.Description,
		EmployerID:  actor.UserID,
		IsActive:    true,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	slog.Info("job created", "job_id", job.ID, "employer_id", actor.UserID)
	return job, nil
}

// Update edits a posting. Only the owning employer may edit it, and only
// while their stored record is approved and not blocked.
func (s *JobService) Update(ctx context.Context, actor Actor, id string, req model.UpdateJobRequest) (*model.Job, error) {
	if req.JobType != nil && !req.JobType.Valid() {
		return nil, ErrInvalidJobType
	}
	if _, err := s.owned(ctx, actor, id, false); err != nil {
		return nil, err
	}

	job, err := s.jobs.Update(ctx, id, req)
	if err != nil {
		return nil, mapJobErr(err)
	}
	return job, nil
}

// Delete removes a posting. The owning active employer or an admin may delete it.
func (s *JobService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := s.owned(ctx, actor, id, true); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		return mapJobErr(err)
	}

	slog.Info("job deleted", "job_id", id, "actor_id", actor.UserID, "actor_role", actor.Role)
	return nil
}

func (s *JobService) owned(ctx context.Context, actor Actor, id string, adminAllowed bool) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, mapJobErr(err)
	}
	if adminAllowed && actor.Role == model.RoleAdmin {
		return job, nil
	}
	if actor.Role != model.RoleEmployer || job.EmployerID != actor.UserID {
		return nil, ErrForbidden
	}
	if err := s.activeEmployer(ctx, actor.UserID); err != nil {
		return nil, err
	}
	return job, nil
}

// activeEmployer checks the employer's stored flags, which may be newer than the token's.
func (s *JobService) activeEmployer(ctx context.Context, employerID string) error {
	employer, err := s.users.GetByID(ctx, employerID)
	if err != nil {
		return mapUserErr(err)
	}
	if employer.IsBlocked {
		return ErrAccountBlocked
	}
	if !employer.IsApproved {
		return ErrEmployerNotApproved
	}
	return nil
}

func mapJobErr(err error) error {
	if errors.Is(err, repository.ErrJobNotFound) {
		return ErrJobNotFound
	}
	return err
}
