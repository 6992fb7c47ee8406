package service

import (
	"context"

	"github.com/jobconnect/jobconnect-go/internal/model"
)

// StatsSource provides the aggregate counts shown on the admin dashboard.
type StatsSource interface {
	CountByRole(ctx context.Context) (map[model.Role]int, error)
	List(ctx context.Context, filter model.UserFilter) ([]model.User, error)
}

// JobCounter counts active postings. An empty employerID counts all of them.
type JobCounter interface {
	CountActive(ctx context.Context, employerID string) (int, error)
	List(ctx context.Context, filter model.JobFilter) ([]model.Job, error)
}

// ApplicationLister lists and counts applications.
type ApplicationLister interface {
	List(ctx context.Context, filter model.ApplicationFilter) ([]model.ApplicationDetail, error)
	Count(ctx context.Context) (int, error)
}

// SeekerDashboard is the landing data of a seeker.
type SeekerDashboard struct {
	Applications []model.ApplicationDetail `json:"applications"`
	StatusCounts map[string]int            `json:"statusCounts"`
}

// EmployerDashboard is the landing data of an employer.
type EmployerDashboard struct {
	Jobs         []model.Job               `json:"jobs"`
	ActiveJobs   int                       `json:"activeJobs"`
	Applications []model.ApplicationDetail `json:"applications"`
}

// AdminDashboard is the landing data of an admin.
type AdminDashboard struct {
	UsersByRole       map[string]int       `json:"usersByRole"`
	PendingEmployers  []model.UserResponse `json:"pendingEmployers"`
	ActiveJobs        int                  `json:"activeJobs"`
	TotalApplications int                  `json:"totalApplications"`
}

// DashboardService assembles the per-role landing pages.
type DashboardService struct {
	users StatsSource
	jobs  JobCounter
	apps  ApplicationLister
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(users StatsSource, jobs JobCounter, apps ApplicationLister) *DashboardService {
	return &DashboardService{users: users, jobs: jobs, apps: apps}
}

// Seeker returns the seeker's applications and a count per status.
func (s *DashboardService) Seeker(ctx context.Context, seekerID string) (SeekerDashboard, error) {
	apps, err := s.apps.List(ctx, model.ApplicationFilter{SeekerID: seekerID})
	if err != nil {
		return SeekerDashboard{}, err
	}

	counts := map[string]int{
		string(model.StatusPending):  0,
		string(model.StatusReviewed): 0,
		string(model.StatusAccepted): 0,
		string(model.StatusRejected): 0,
	}
	for _, a := range apps {
		counts[string(a.Status)]++
	}
	return SeekerDashboard{Applications: apps, StatusCounts: counts}, nil
}

// Employer returns the employer's postings and the applications to them.
func (s *DashboardService) Employer(ctx context.Context, employerID string) (EmployerDashboard, error) {
	jobs, err := s.jobs.List(ctx, model.JobFilter{EmployerID: employerID})
	if err != nil {
		return EmployerDashboard{}, err
	}
	apps, err := s.apps.List(ctx, model.ApplicationFilter{EmployerID: employerID})
	if err != nil {
		return EmployerDashboard{}, err
	}

	active := 0
	for _, j := range jobs {
		if j.IsActive {
			active++
		}
	}
	return EmployerDashboard{Jobs: jobs, ActiveJobs: active, Applications: apps}, nil
}

// Admin returns platform-wide counts and the employers awaiting approval.
func (s *DashboardService) Admin(ctx context.Context) (AdminDashboard, error) {
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}

	role, approved := model.RoleEmployer, false
	pending, err := s.users.List(ctx, model.UserFilter{Role: &role, IsApproved: &approved})
	if err != nil {
		return AdminDashboard{}, err
	}

	active, err := s.jobs.CountActive(ctx, "")
	if err != nil {
		return AdminDashboard{}, err
	}
	total, err := s.apps.Count(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}

	counts := make(map[string]int, len(model.Roles))
	for _, r := range model.Roles {
		counts[string(r)] = byRole[r]
	}
	resp := make([]model.UserResponse, 0, len(pending))
	for i := range pending {
		resp = append(resp, model.NewUserResponse(&pending[i]))
	}

	return AdminDashboard{
		UsersByRole:       counts,
		PendingEmployers:  resp,
		ActiveJobs:        active,
		TotalApplications: total,
	}, nil
}
