package service

import (
	"context"
	"testing"

	"github.com/jobconnect/jobconnect-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validJob() model.CreateJobRequest {
	return model.CreateJobRequest{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Location:    "Berlin",
		JobType:     model.JobTypeFullTime,
		SalaryRange: "70k-90k",
		Description: "Build services.",
	}
}

func TestJobService_Create(t *testing.T) {
	users := newFakeUsers()
	approved := users.add(model.User{Role: model.RoleEmployer, IsApproved: true})
	pending := users.add(model.User{Role: model.RoleEmployer})
	blocked := users.add(model.User{Role: model.RoleEmployer, IsApproved: true, IsBlocked: true})
	seeker := users.add(model.User{Role: model.RoleSeeker, IsApproved: true})
	svc := NewJobService(newFakeJobs(), users)

	job, err := svc.Create(context.Background(), Actor{UserID: approved.ID, Role: model.RoleEmployer}, validJob())
	require.NoError(t, err)
	assert.Equal(t, approved.ID, job.EmployerID)
	assert.True(t, job.IsActive)
	assert.NotEmpty(t, job.ID)

	_, err = svc.Create(context.Background(), Actor{UserID: pending.ID, Role: model.RoleEmployer}, validJob())
	assert.ErrorIs(t, err, ErrEmployerNotApproved)

	_, err = svc.Create(context.Background(), Actor{UserID: blocked.ID, Role: model.RoleEmployer}, validJob())
	assert.ErrorIs(t, err, ErrAccountBlocked)

	_, err = svc.Create(context.Background(), Actor{UserID: seeker.ID, Role: model.RoleSeeker}, validJob())
	assert.ErrorIs(t, err, ErrForbidden)

	bad := validJob()
	bad.JobType = "Contract"
	_, err = svc.Create(context.Background(), Actor{UserID: approved.ID, Role: model.RoleEmployer}, bad)
	assert.ErrorIs(t, err, ErrInvalidJobType)

	bad = validJob()
	bad.Title = "  "
	_, err = svc.Create(context.Background(), Actor{UserID: approved.ID, Role: model.RoleEmployer}, bad)
	assert.ErrorIs(t, err, ErrJobFieldsRequired)
}

func TestJobService_UpdateDeleteOwnership(t *testing.T) {
	users := newFakeUsers()
	owner := users.add(model.User{Role: model.RoleEmployer, IsApproved: true})
	rival := users.add(model.User{Role: model.RoleEmployer, IsApproved: true})
	svc := NewJobService(newFakeJobs(), users)

	ownerActor := Actor{UserID: owner.ID, Role: model.RoleEmployer}
	job, err := svc.Create(context.Background(), ownerActor, validJob())
	require.NoError(t, err)

	title := "Senior Backend Engineer"
	inactive := false
	req := model.UpdateJobRequest{Title: &title, IsActive: &inactive}

	_, err = svc.Update(context.Background(), Actor{UserID: rival.ID, Role: model.RoleEmployer}, job.ID, req)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(context.Background(), adminActor, job.ID, req)
	assert.ErrorIs(t, err, ErrForbidden, "admins do not edit postings")

	updated, err := svc.Update(context.Background(), ownerActor, job.ID, req)
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.False(t, updated.IsActive)

	public, err := svc.List(context.Background(), model.JobFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Empty(t, public)

	err = svc.Delete(context.Background(), Actor{UserID: rival.ID, Role: model.RoleEmployer}, job.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), adminActor, job.ID))

	_, err = svc.Get(context.Background(), job.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), ownerActor, job.ID), ErrJobNotFound)
}

func TestJobService_InactiveOwnerCannotEditOrDelete(t *testing.T) {
	users := newFakeUsers()
	owner := users.add(model.User{Role: model.RoleEmployer, IsApproved: true})
	svc := NewJobService(newFakeJobs(), users)
	ownerActor := Actor{UserID: owner.ID, Role: model.RoleEmployer}

	job, err := svc.Create(context.Background(), ownerActor, validJob())
	require.NoError(t, err)

	_, err = users.ToggleBlocked(context.Background(), owner.ID)
	require.NoError(t, err)

	title := "rewritten"
	active := true
	_, err = svc.Update(context.Background(), ownerActor, job.ID, model.UpdateJobRequest{Title: &title, IsActive: &active})
	assert.ErrorIs(t, err, ErrAccountBlocked)
	assert.ErrorIs(t, svc.Delete(context.Background(), ownerActor, job.ID), ErrAccountBlocked)

	stored, err := svc.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", stored.Title)

	// Approval revoked while unblocked.
	_, err = users.ToggleBlocked(context.Background(), owner.ID)
	require.NoError(t, err)
	_, err = users.SetApproved(context.Background(), owner.ID, false)
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), ownerActor, job.ID, model.UpdateJobRequest{Title: &title})
	assert.ErrorIs(t, err, ErrEmployerNotApproved)

	// Admins are not subject to the employer check.
	assert.NoError(t, svc.Delete(context.Background(), adminActor, job.ID))
}
