package model

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of account types. Use Valid before trusting a Role read from input.
type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

// Roles lists every role in the order role areas are checked.
var Roles = []Role{RoleAdmin, RoleEmployer, RoleSeeker}

// ParseRole converts a raw string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSeeker, RoleEmployer, RoleAdmin:
		return true
	default:
		return false
	}
}

// Home returns the landing path of the role's dashboard area.
func (r Role) Home() string {
	switch r {
	case RoleSeeker:
		return "/seeker"
	case RoleEmployer:
		return "/employer"
	case RoleAdmin:
		return "/admin"
	default:
		panic(fmt.Sprintf("model: no home for role %q", string(r)))
	}
}

// ApprovedOnCreate reports whether a new account of this role starts approved.
// Employers wait for an admin.
func (r Role) ApprovedOnCreate() bool {
	switch r {
	case RoleSeeker, RoleAdmin:
		return true
	case RoleEmployer:
		return false
	default:
		panic(fmt.Sprintf("model: unknown role %q", string(r)))
	}
}

// User represents a user in the database.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Skills       []string
	ResumeURL    *string
	Company      *string
	IsApproved   bool
	IsBlocked    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	Name      string   `json:"name" validate:"required,max=120"`
	Email     string   `json:"email" validate:"required,email,max=254"`
	Password  string   `json:"password" validate:"required,min=8,max=72"`
	Role      Role     `json:"role" validate:"required,oneof=seeker employer admin"`
	Company   string   `json:"company" validate:"max=200"`
	Skills    []string `json:"skills" validate:"max=50,dive,max=60"`
	ResumeURL string   `json:"resumeUrl" validate:"omitempty,url,max=2048"`
}

// Normalize canonicalizes the email before validation.
func (r *CreateUserRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Normalize canonicalizes the email before validation.
func (r *LoginRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

// NormalizeEmail trims and lowercases an email address. Emails are stored
// and looked up in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UpdateProfileRequest carries the profile fields a user may change.
// Nil fields are left untouched. Role and password are never updated here.
type UpdateProfileRequest struct {
	Name      *string   `json:"name" validate:"omitempty,min=1,max=120"`
	Skills    *[]string `json:"skills" validate:"omitempty,max=50,dive,max=60"`
	ResumeURL *string   `json:"resumeUrl" validate:"omitempty,url,max=2048"`
	Company   *string   `json:"company" validate:"omitempty,max=200"`
}

// UserFilter narrows a user listing. Nil fields do not filter.
type UserFilter struct {
	Role       *Role
	IsApproved *bool
}

// UserResponse represents user data safe for API responses (no sensitive fields).
type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Company    *string   `json:"company,omitempty"`
	Skills     []string  `json:"skills,omitempty"`
	ResumeURL  *string   `json:"resumeUrl,omitempty"`
	IsApproved bool      `json:"isApproved"`
	IsBlocked  bool      `json:"isBlocked"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AuthResponse represents an authentication response with a JWT token and user info.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse strips credentials from u.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Company:    u.Company,
		Skills:     u.Skills,
		ResumeURL:  u.ResumeURL,
		IsApproved: u.IsApproved,
		IsBlocked:  u.IsBlocked,
		CreatedAt:  u.CreatedAt,
	}
}
