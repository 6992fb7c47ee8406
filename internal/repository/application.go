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
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("already applied to this job")
)

const applicationDetailQuery = `SELECT a.id, a.status, a.created_at,
	j.id, j.title, j.company, j.location, j.job_type, j.salary_range, j.description,
	j.employer_id, j.is_active, j.created_at, j.updated_at,
	u.id, u.name, u.email, u.role, u.skills, u.resume_url, u.company,
	u.is_approved, u.is_blocked, u.created_at
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN users u ON u.id = a.seeker_id`

// ApplicationRepository handles job application persistence operations.
type ApplicationRepository struct {
	db *sql.DB
}

// NewApplicationRepository creates a new ApplicationRepository.
func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a pending application. A second application by the same seeker
// to the same job returns ErrAlreadyApplied.
func (r *ApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	query := `INSERT INTO applications (id, job_id, seeker_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	id := uuid.NewString()
	now := time.Now().UTC().Truncate(time.Second)
	if app.Status == "" {
		app.Status = model.StatusPending
	}

	_, err := r.db.ExecContext(ctx, query, id, app.JobID, app.SeekerID, string(app.Status), now, now)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrAlreadyApplied
		}
		return err
	}

	app.ID = id
	app.CreatedAt = now
	app.UpdatedAt = now
	return nil
}

// GetByID retrieves an application by its ID.
func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*model.Application, error) {
	query := `SELECT id, job_id, seeker_id, status, created_at, updated_at FROM applications WHERE id = ?`

	var (
		a      model.Application
		status string
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.JobID, &a.SeekerID, &status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	a.Status = model.ApplicationStatus(status)
	return &a, nil
}

// Exists reports whether the seeker already applied to the job.
func (r *ApplicationRepository) Exists(ctx context.Context, jobID, seekerID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = ? AND seeker_id = ?)`,
		jobID, seekerID,
	).Scan(&exists)
	return exists, err
}

// List returns applications with their job and applicant, newest first.
func (r *ApplicationRepository) List(ctx context.Context, filter model.ApplicationFilter) ([]model.ApplicationDetail, error) {
	var (
		where []string
		args  []any
	)
	if filter.SeekerID != "" {
		where = append(where, "a.seeker_id = ?")
		args = append(args, filter.SeekerID)
	}
	if filter.JobID != "" {
		where = append(where, "a.job_id = ?")
		args = append(args, filter.JobID)
	}
	if filter.EmployerID != "" {
		where = append(where, "j.employer_id = ?")
		args = append(args, filter.EmployerID)
	}

	query := applicationDetailQuery
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY a.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := []model.ApplicationDetail{}
	for rows.Next() {
		d, err := scanApplicationDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}

	return details, rows.Err()
}

// UpdateStatus sets the review status of an application.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE applications SET status = ? WHERE id = ?`, string(status), id); err != nil {
		return err
	}
	// RowsAffected is zero when the status is unchanged, so existence is checked separately.
	_, err := r.GetByID(ctx, id)
	return err
}

// Count returns the total number of applications.
func (r *ApplicationRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`).Scan(&n)
	return n, err
}

func scanApplicationDetail(s rowScanner) (*model.ApplicationDetail, error) {
	var (
		d        model.ApplicationDetail
		status   string
		jobType  string
		role     string
		skills   []byte
		resume   sql.NullString
		company  sql.NullString
		seekerID string
	)
	err := s.Scan(
		&d.ID, &status, &d.CreatedAt,
		&d.Job.ID, &d.Job.Title, &d.Job.Company, &d.Job.Location, &jobType, &d.Job.SalaryRange,
		&d.Job.Description, &d.Job.EmployerID, &d.Job.IsActive, &d.Job.CreatedAt, &d.Job.UpdatedAt,
		&seekerID, &d.Seeker.Name, &d.Seeker.Email, &role, &skills, &resume, &company,
		&d.Seeker.IsApproved, &d.Seeker.IsBlocked, &d.Seeker.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.Status = model.ApplicationStatus(status)
	d.Job.JobType = model.JobType(jobType)
	d.Seeker.ID = seekerID
	d.Seeker.Role = model.Role(role)
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &d.Seeker.Skills); err != nil {
			return nil, fmt.Errorf("decoding skills of user %s: %w", seekerID, err)
		}
	}
	if resume.Valid {
		d.Seeker.ResumeURL = &resume.String
	}
	if company.Valid {
		d.Seeker.Company = &company.String
	}

	return &d, nil
}
