package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jobconnect/jobconnect-go/internal/authz"
	"github.com/jobconnect/jobconnect-go/internal/metrics"
	"github.com/jobconnect/jobconnect-go/internal/model"
	"github.com/jobconnect/jobconnect-go/internal/repository"
)

var (
	ErrForbidden       = errors.New("forbidden")
	ErrCannotBlockSelf = errors.New("admins cannot block their own account")
	ErrNotAnEmployer   = errors.New("only employer accounts need approval")
)

// UserAdminStore is the persistence UserService needs.
type UserAdminStore interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, filter model.UserFilter) ([]model.User, error)
	SetApproved(ctx context.Context, id string, approved bool) (*model.User, error)
	ToggleBlocked(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, req model.UpdateProfileRequest) (*model.User, error)
}

// StatusWriter receives account flag changes so cached copies stay current.
type StatusWriter interface {
	Put(ctx context.Context, userID string, st authz.Status) error
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID string
	Role   model.Role
}

// UserService handles user moderation and profile updates.
type UserService struct {
	users  UserAdminStore
	status StatusWriter
}

// NewUserService creates a new UserService. status may be nil.
func NewUserService(users UserAdminStore, status StatusWriter) *UserService {
	return &UserService{users: users, status: status}
}

// List returns users matching filter.
func (s *UserService) List(ctx context.Context, filter model.UserFilter) ([]model.UserResponse, error) {
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]model.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, model.NewUserResponse(&users[i]))
	}
	return resp, nil
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, id string) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return model.UserResponse{}, mapUserErr(err)
	}
	return model.NewUserResponse(user), nil
}

// UpdateProfile changes profile fields. Admins may edit anyone, other users only themselves.
// Fields that do not belong to the target's role are ignored.
func (s *UserService) UpdateProfile(ctx context.Context, actor Actor, id string, req model.UpdateProfileRequest) (model.UserResponse, error) {
	if actor.Role != model.RoleAdmin && actor.UserID != id {
		return model.UserResponse{}, ErrForbidden
	}

	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		return model.UserResponse{}, mapUserErr(err)
	}

	switch target.Role {
	case model.RoleSeeker:
		req.Company = nil
	case model.RoleEmployer:
		req.Skills = nil
		req.ResumeURL = nil
	case model.RoleAdmin:
		req.Company = nil
		req.Skills = nil
		req.ResumeURL = nil
	}

	user, err := s.users.UpdateProfile(ctx, id, req)
	if err != nil {
		return model.UserResponse{}, mapUserErr(err)
	}
	return model.NewUserResponse(user), nil
}

// Approve marks an employer as approved. The employer's existing token keeps
// its old snapshot until they log in again or refresh.
func (s *UserService) Approve(ctx context.Context, actor Actor, id string) (model.UserResponse, error) {
	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		return model.UserResponse{}, mapUserErr(err)
	}
	if target.Role != model.RoleEmployer {
		return model.UserResponse{}, ErrNotAnEmployer
	}

	user, err := s.users.SetApproved(ctx, id, true)
	if err != nil {
		return model.UserResponse{}, mapUserErr(err)
	}

	metrics.RecordAdminAction(metrics.ActionApprove)
	slog.Info("employer approved", "user_id", id, "admin_id", actor.UserID)
	s.publish(ctx, user)
	return model.NewUserResponse(user), nil
}

// ToggleBlock flips the block flag of a user.
func (s *UserService) ToggleBlock(ctx context.Context, actor Actor, id string) (model.UserResponse, error) {
	if actor.UserID == id {
		return model.UserResponse{}, ErrCannotBlockSelf
	}

	user, err := s.users.ToggleBlocked(ctx, id)
	if err != nil {
		return model.UserResponse{}, mapUserErr(err)
	}

	action := metrics.ActionUnblock
	if user.IsBlocked {
		action = metrics.ActionBlock
	}
	metrics.RecordAdminAction(action)
	slog.Info("user block toggled", "user_id", id, "blocked", user.IsBlocked, "admin_id", actor.UserID)
	s.publish(ctx, user)
	return model.NewUserResponse(user), nil
}

func (s *UserService) publish(ctx context.Context, user *model.User) {
	if s.status == nil {
		return
	}
	st := authz.Status{IsApproved: user.IsApproved, IsBlocked: user.IsBlocked}
	if err := s.status.Put(ctx, user.ID, st); err != nil {
		slog.Warn("status cache update failed", "user_id", user.ID, "error", err)
	}
}

func mapUserErr(err error) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return err
}
