package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jobconnect/jobconnect-go/internal/crypto"
	"github.com/jobconnect/jobconnect-go/internal/model"
	"github.com/jobconnect/jobconnect-go/internal/repository"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailRequired       = errors.New("email is required")
	ErrPasswordRequired    = errors.New("password is required")
	ErrNameRequired        = errors.New("name is required")
	ErrInvalidRole         = errors.New("role must be one of seeker, employer, admin")
	ErrEmailTaken          = errors.New("email already registered")
	ErrAccountBlocked      = errors.New("your account has been blocked, please contact support")
	ErrAdminSignupDisabled = errors.New("admin accounts cannot be self-registered")
	ErrUserNotFound        = errors.New("user not found")
)

// UserStore is the credential store the auth flow reads and writes.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// AuthService handles registration, login and session token minting.
type AuthService struct {
	users            UserStore
	tokens           *crypto.TokenService
	allowAdminSignup bool
}

// NewAuthService creates a new AuthService. allowAdminSignup controls whether
// the public registration endpoint may create admin accounts.
func NewAuthService(users UserStore, tokens *crypto.TokenService, allowAdminSignup bool) *AuthService {
	return &AuthService{
		users:            users,
		tokens:           tokens,
		allowAdminSignup: allowAdminSignup,
	}
}

// Register creates a new account and returns a session token for it.
// Seekers and admins start approved; employers wait for an admin.
func (s *AuthService) Register(ctx context.Context, req model.CreateUserRequest) (model.AuthResponse, error) {
	if req.Role == model.RoleAdmin && !s.allowAdminSignup {
		return model.AuthResponse{}, ErrAdminSignupDisabled
	}

	user, err := s.create(ctx, req)
	if err != nil {
		return model.AuthResponse{}, err
	}
	return s.session(user)
}

// CreateAdmin provisions an admin account outside the public registration
// flow. It is used by the bootstrap command.
func (s *AuthService) CreateAdmin(ctx context.Context, name, email, password string) (model.UserResponse, error) {
	user, err := s.create(ctx, model.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     model.RoleAdmin,
	})
	if err != nil {
		return model.UserResponse{}, err
	}
	return model.NewUserResponse(user), nil
}

func (s *AuthService) create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	email := normalizeEmail(req.Email)
	switch {
	case strings.TrimSpace(req.Name) == "":
		return nil, ErrNameRequired
	case email == "":
		return nil, ErrEmailRequired
	case req.Password == "":
		return nil, ErrPasswordRequired
	case !req.Role.Valid():
		return nil, ErrInvalidRole
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		IsApproved:   req.Role.ApprovedOnCreate(),
		IsBlocked:    false,
	}
	applyRoleFields(user, req)

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns a fresh session token.
// Blocked accounts are refused before the password is checked.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	if user.IsBlocked {
		return model.AuthResponse{}, ErrAccountBlocked
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	return s.session(user)
}

// GetUser returns the live record of the user, refusing blocked accounts.
func (s *AuthService) GetUser(ctx context.Context, userID string) (model.UserResponse, error) {
	user, err := s.liveUser(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}
	return model.NewUserResponse(user), nil
}

// Refresh re-reads the user record and issues a token reflecting its current
// approval and block state.
func (s *AuthService) Refresh(ctx context.Context, userID string) (model.AuthResponse, error) {
	user, err := s.liveUser(ctx, userID)
	if err != nil {
		return model.AuthResponse{}, err
	}
	return s.session(user)
}

func (s *AuthService) liveUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.IsBlocked {
		return nil, ErrAccountBlocked
	}
	return user, nil
}

func (s *AuthService) session(user *model.User) (model.AuthResponse, error) {
	token, err := s.tokens.Issue(crypto.ClaimsFor(user))
	if err != nil {
		return model.AuthResponse{}, err
	}
	return model.AuthResponse{
		Token: token,
		User:  model.NewUserResponse(user),
	}, nil
}

// applyRoleFields keeps only the profile fields that belong to the user's role.
func applyRoleFields(user *model.User, req model.CreateUserRequest) {
	switch user.Role {
	case model.RoleSeeker:
		user.Skills = req.Skills
		if req.ResumeURL != "" {
			resume := req.ResumeURL
			user.ResumeURL = &resume
		}
	case model.RoleEmployer:
		if c := strings.TrimSpace(req.Company); c != "" {
			user.Company = &c
		}
	case model.RoleAdmin:
	}
}

func normalizeEmail(email string) string {
	return model.NormalizeEmail(email)
}
