package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jobconnect/jobconnect-go/internal/authz"
	"github.com/jobconnect/jobconnect-go/internal/model"
	"github.com/jobconnect/jobconnect-go/internal/repository"
)

type fakeUsers struct {
	mu   sync.Mutex
	byID map[string]*model.User
	seq  int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*model.User{}}
}

func (f *fakeUsers) add(u model.User) *model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == "" {
		f.seq++
		u.ID = fmt.Sprintf("u-%d", f.seq)
	}
	f.byID[u.ID] = &u
	return &u
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("u-%d", f.seq)
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) List(_ context.Context, filter model.UserFilter) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.User{}
	for _, u := range f.byID {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if filter.IsApproved != nil && u.IsApproved != *filter.IsApproved {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) SetApproved(ctx context.Context, id string, approved bool) (*model.User, error) {
	f.mu.Lock()
	u, ok := f.byID[id]
	if ok {
		u.IsApproved = approved
	}
	f.mu.Unlock()
	return f.GetByID(ctx, id)
}

func (f *fakeUsers) ToggleBlocked(ctx context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	u, ok := f.byID[id]
	if ok {
		u.IsBlocked = !u.IsBlocked
	}
	f.mu.Unlock()
	return f.GetByID(ctx, id)
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, id string, req model.UpdateProfileRequest) (*model.User, error) {
	f.mu.Lock()
	if u, ok := f.byID[id]; ok {
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.Skills != nil {
			u.Skills = *req.Skills
		}
		if req.ResumeURL != nil {
			u.ResumeURL = req.ResumeURL
		}
		if req.Company != nil {
			u.Company = req.Company
		}
	}
	f.mu.Unlock()
	return f.GetByID(ctx, id)
}

func (f *fakeUsers) CountByRole(_ context.Context) (map[model.Role]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[model.Role]int{}
	for _, u := range f.byID {
		counts[u.Role]++
	}
	return counts, nil
}

type fakeJobs struct {
	mu   sync.Mutex
	byID map[string]*model.Job
	seq  int
}

func newFakeJobs() *fakeJobs {
	return &fakeJobs{byID: map[string]*model.Job{}}
}

func (f *fakeJobs) Create(_ context.Context, j *model.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	j.ID = fmt.Sprintf("j-%d", f.seq)
	cp := *j
	f.byID[j.ID] = &cp
	return nil
}

func (f *fakeJobs) GetByID(_ context.Context, id string) (*model.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrJobNotFound
	}
	cp := *j
	return &cp, nil
}

func (f *fakeJobs) List(_ context.Context, filter model.JobFilter) ([]model.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Job{}
	for _, j := range f.byID {
		if filter.EmployerID != "" && j.EmployerID != filter.EmployerID {
			continue
		}
		if filter.ActiveOnly && !j.IsActive {
			continue
		}
		out = append(out, *j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (f *fakeJobs) Update(ctx context.Context, id string, req model.UpdateJobRequest) (*model.Job, error) {
	f.mu.Lock()
	if j, ok := f.byID[id]; ok {
		if req.Title != nil {
			j.Title = *req.Title
		}
		if req.IsActive != nil {
			j.IsActive = *req.IsActive
		}
	}
	f.mu.Unlock()
	return f.GetByID(ctx, id)
}

func (f *fakeJobs) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repository.ErrJobNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeJobs) Locations(_ context.Context) ([]string, error) {
	return []string{"Berlin", "Remote"}, nil
}

func (f *fakeJobs) CountActive(_ context.Context, employerID string) (int, error) {
	jobs, _ := f.List(context.Background(), model.JobFilter{EmployerID: employerID, ActiveOnly: true})
	return len(jobs), nil
}

type fakeApps struct {
	mu   sync.Mutex
	byID map[string]*model.Application
	jobs *fakeJobs
	seq  int
}

func newFakeApps(jobs *fakeJobs) *fakeApps {
	return &fakeApps{byID: map[string]*model.Application{}, jobs: jobs}
}

func (f *fakeApps) Create(_ context.Context, a *model.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.JobID == a.JobID && existing.SeekerID == a.SeekerID {
			return repository.ErrAlreadyApplied
		}
	}
	f.seq++
	a.ID = fmt.Sprintf("a-%d", f.seq)
	if a.Status == "" {
		a.Status = model.StatusPending
	}
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeApps) GetByID(_ context.Context, id string) (*model.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrApplicationNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeApps) Exists(_ context.Context, jobID, seekerID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byID {
		if a.JobID == jobID && a.SeekerID == seekerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApps) List(ctx context.Context, filter model.ApplicationFilter) ([]model.ApplicationDetail, error) {
	f.mu.Lock()
	apps := make([]model.Application, 0, len(f.byID))
	for _, a := range f.byID {
		apps = append(apps, *a)
	}
	f.mu.Unlock()

	out := []model.ApplicationDetail{}
	for _, a := range apps {
		job, err := f.jobs.GetByID(ctx, a.JobID)
		if err != nil {
			continue
		}
		if filter.SeekerID != "" && a.SeekerID != filter.SeekerID {
			continue
		}
		if filter.JobID != "" && a.JobID != filter.JobID {
			continue
		}
		if filter.EmployerID != "" && job.EmployerID != filter.EmployerID {
			continue
		}
		out = append(out, model.ApplicationDetail{
			ID:     a.ID,
			Status: a.Status,
			Job:    *job,
			Seeker: model.UserResponse{ID: a.SeekerID},
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeApps) UpdateStatus(_ context.Context, id string, status model.ApplicationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeApps) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID), nil
}

type recordingStatus struct {
	mu   sync.Mutex
	puts map[string]authz.Status
	err  error
}

func (r *recordingStatus) Put(_ context.Context, userID string, st authz.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.puts == nil {
		r.puts = map[string]authz.Status{}
	}
	r.puts[userID] = st
	return r.err
}
