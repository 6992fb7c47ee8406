package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jobconnect/jobconnect-go/internal/model"
	"github.com/jobconnect/jobconnect-go/internal/repository"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("you have already applied to this job")
	ErrJobClosed           = errors.New("job is no longer accepting applications")
	ErrInvalidStatus       = errors.New("status must be one of pending, reviewed, accepted, rejected")
)

// ApplicationStore is the persistence ApplicationService needs.
type ApplicationStore interface {
	Create(ctx context.Context, app *model.Application) error
	GetByID(ctx context.Context, id string) (*model.Application, error)
	Exists(ctx context.Context, jobID, seekerID string) (bool, error)
	List(ctx context.Context, filter model.ApplicationFilter) ([]model.ApplicationDetail, error)
	UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) error
}

// JobLookup reads a posting by id.
type JobLookup interface {
	GetByID(ctx context.Context, id string) (*model.Job, error)
}

// ApplicationService handles seekers applying to jobs and employers reviewing them.
type ApplicationService struct {
	apps ApplicationStore
	jobs JobLookup
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(apps ApplicationStore, jobs JobLookup) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs}
}

// Apply records the acting seeker's application to a job.
func (s *ApplicationService) Apply(ctx context.Context, actor Actor, jobID string) (*model.Application, error) {
	if actor.Role != model.RoleSeeker {
		return nil, ErrForbidden
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, mapJobErr(err)
	}
	if !job.IsActive {
		return nil, ErrJobClosed
	}

	app := &model.Application{JobID: jobID, SeekerID: actor.UserID}
	if err := s.apps.Create(ctx, app); err != nil {
		if errors.Is(err, repository.ErrAlreadyApplied) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}

	slog.Info("application submitted", "application_id", app.ID, "job_id", jobID, "seeker_id", actor.UserID)
	return app, nil
}

// List returns the applications visible to actor. Seekers see their own,
// employers see those to their jobs and admins see everything. filter.JobID
// may narrow the result further.
func (s *ApplicationService) List(ctx context.Context, actor Actor, filter model.ApplicationFilter) ([]model.ApplicationDetail, error) {
	switch actor.Role {
	case model.RoleSeeker:
		filter.SeekerID = actor.UserID
		filter.EmployerID = ""
	case model.RoleEmployer:
		filter.EmployerID = actor.UserID
		filter.SeekerID = ""
	case model.RoleAdmin:
	default:
		return nil, ErrForbidden
	}
	return s.apps.List(ctx, filter)
}

// Check reports whether the acting seeker already applied to jobID.
func (s *ApplicationService) Check(ctx context.Context, actor Actor, jobID string) (model.ApplicationCheckResponse, error) {
	if actor.Role != model.RoleSeeker {
		return model.ApplicationCheckResponse{}, nil
	}
	ok, err := s.apps.Exists(ctx, jobID, actor.UserID)
	if err != nil {
		return model.ApplicationCheckResponse{}, err
	}
	return model.ApplicationCheckResponse{HasApplied: ok}, nil
}

// UpdateStatus records the owning employer's review decision.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor Actor, id string, status model.ApplicationStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if actor.Role != model.RoleEmployer {
		return ErrForbidden
	}

	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return mapApplicationErr(err)
	}
	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return mapJobErr(err)
	}
	if job.EmployerID != actor.UserID {
		return ErrForbidden
	}

	if err := s.apps.UpdateStatus(ctx, id, status); err != nil {
		return mapApplicationErr(err)
	}
	slog.Info("application status updated", "application_id", id, "status", status, "employer_id", actor.UserID)
	return nil
}

func mapApplicationErr(err error) error {
	if errors.Is(err, repository.ErrApplicationNotFound) {
		return ErrApplicationNotFound
	}
	return err
}
