package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobconnect/jobconnect-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

const userColumns = `id, name, email, password_hash, role, skills, resume_url, company,
	is_approved, is_blocked, created_at, updated_at`

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user, assigning its ID and timestamps.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, name, email, password_hash, role, skills, resume_url, company,
		is_approved, is_blocked, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	skills, err := encodeSkills(user.Skills)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	now := time.Now().UTC().Truncate(time.Second)

	_, err = r.db.ExecContext(ctx, query,
		id, user.Name, user.Email, user.PasswordHash, string(user.Role), skills,
		user.ResumeURL, user.Company, user.IsApproved, user.IsBlocked, now, now,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.getOne(ctx, query, email)
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.getOne(ctx, query, id)
}

// List returns users matching the filter, newest first.
func (r *UserRepository) List(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	var (
		where []string
		args  []any
	)
	if filter.Role != nil {
		where = append(where, "role = ?")
		args = append(args, string(*filter.Role))
	}
	if filter.IsApproved != nil {
		where = append(where, "is_approved = ?")
		args = append(args, *filter.IsApproved)
	}

	query := `SELECT ` + userColumns + ` FROM users`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}

	return users, rows.Err()
}

// SetApproved sets the approval flag and returns the updated user.
func (r *UserRepository) SetApproved(ctx context.Context, id string, approved bool) (*model.User, error) {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET is_approved = ? WHERE id = ?`, approved, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// ToggleBlocked flips the block flag atomically and returns the updated user.
func (r *UserRepository) ToggleBlocked(ctx context.Context, id string) (*model.User, error) {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET is_blocked = NOT is_blocked WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// UpdateProfile writes the non-nil profile fields and returns the updated user.
// Role, email and password are not touched.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, req model.UpdateProfileRequest) (*model.User, error) {
	var (
		sets []string
		args []any
	)
	if req.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *req.Name)
	}
	if req.Skills != nil {
		skills, err := encodeSkills(*req.Skills)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "skills = ?")
		args = append(args, skills)
	}
	if req.ResumeURL != nil {
		sets = append(sets, "resume_url = ?")
		args = append(args, *req.ResumeURL)
	}
	if req.Company != nil {
		sets = append(sets, "company = ?")
		args = append(args, *req.Company)
	}

	if len(sets) > 0 {
		args = append(args, id)
		query := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return nil, err
		}
	}

	return r.GetByID(ctx, id)
}

// CountByRole returns the number of users per role.
func (r *UserRepository) CountByRole(ctx context.Context) (map[model.Role]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.Role]int, len(model.Roles))
	for rows.Next() {
		var (
			role string
			n    int
		)
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		counts[model.Role(role)] = n
	}

	return counts, rows.Err()
}

// Status returns the live approval and block flags of a user.
func (r *UserRepository) Status(ctx context.Context, id string) (approved, blocked bool, err error) {
	err = r.db.QueryRowContext(ctx, `SELECT is_approved, is_blocked FROM users WHERE id = ?`, id).
		Scan(&approved, &blocked)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, ErrUserNotFound
	}
	return approved, blocked, err
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(s rowScanner) (*model.User, error) {
	var (
		u       model.User
		role    string
		skills  []byte
		resume  sql.NullString
		company sql.NullString
	)
	err := s.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &skills, &resume, &company,
		&u.IsApproved, &u.IsBlocked, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Role, err = model.ParseRole(role)
	if err != nil {
		return nil, err
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &u.Skills); err != nil {
			return nil, fmt.Errorf("decoding skills of user %s: %w", u.ID, err)
		}
	}
	if resume.Valid {
		u.ResumeURL = &resume.String
	}
	if company.Valid {
		u.Company = &company.String
	}

	return &u, nil
}

// encodeSkills stores nil as SQL NULL and everything else as a JSON array.
func encodeSkills(skills []string) (any, error) {
	if skills == nil {
		return nil, nil
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
