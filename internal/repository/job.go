package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobconnect/jobconnect-go/internal/model"
)

var ErrJobNotFound = errors.New("job not found")

const jobColumns = `id, title, company, location, job_type, salary_range, description,
	employer_id, is_active, created_at, updated_at`

// JobRepository handles job posting persistence operations.
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new job, assigning its ID and timestamps.
func (r *JobRepository) Create(ctx context.Context, job *model.Job) error {
	query := `INSERT INTO jobs (id, title, company, location, job_type, salary_range, description,
		employer_id, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id := uuid.NewString()
	now := time.Now().UTC().Truncate(time.Second)

	_, err := r.db.ExecContext(ctx, query,
		id, job.Title, job.Company, job.Location, string(job.JobType), job.SalaryRange,
		job.Description, job.EmployerID, job.IsActive, now, now,
	)
	if err != nil {
		return err
	}

	job.ID = id
	job.CreatedAt = now
	job.UpdatedAt = now
	return nil
}

// GetByID retrieves a job by its ID.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`

	job, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

// List returns jobs matching the filter, newest first.
// Search matches title, company or description case-insensitively.
func (r *JobRepository) List(ctx context.Context, filter model.JobFilter) ([]model.Job, error) {
	var (
		where []string
		args  []any
	)
	if filter.ActiveOnly {
		where = append(where, "is_active = TRUE")
	}
	if filter.Location != "" {
		where = append(where, "location = ?")
		args = append(args, filter.Location)
	}
	if filter.JobType != "" {
		where = append(where, "job_type = ?")
		args = append(args, string(filter.JobType))
	}
	if filter.EmployerID != "" {
		where = append(where, "employer_id = ?")
		args = append(args, filter.EmployerID)
	}
	if filter.Search != "" {
		like := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		where = append(where, "(LOWER(title) LIKE ? OR LOWER(company) LIKE ? OR LOWER(description) LIKE ?)")
		args = append(args, like, like, like)
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []model.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}

	return jobs, rows.Err()
}

// Update writes the non-nil fields of req and returns the updated job.
func (r *JobRepository) Update(ctx context.Context, id string, req model.UpdateJobRequest) (*model.Job, error) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Company != nil {
		add("company", *req.Company)
	}
	if req.Location != nil {
		add("location", *req.Location)
	}
	if req.JobType != nil {
		add("job_type", string(*req.JobType))
	}
	if req.SalaryRange != nil {
		add("salary_range", *req.SalaryRange)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.IsActive != nil {
		add("is_active", *req.IsActive)
	}

	if len(sets) > 0 {
		args = append(args, id)
		query := `UPDATE jobs SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return nil, err
		}
	}

	return r.GetByID(ctx, id)
}

// Delete removes a job. Its applications are removed by the foreign key cascade.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrJobNotFound
	}

	return nil
}

// Locations returns the distinct locations of active jobs, sorted.
func (r *JobRepository) Locations(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT location FROM jobs WHERE is_active = TRUE ORDER BY location`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := []string{}
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}

	return locations, rows.Err()
}

// CountActive returns the number of active jobs, optionally for one employer.
func (r *JobRepository) CountActive(ctx context.Context, employerID string) (int, error) {
	query := `SELECT COUNT(*) FROM jobs WHERE is_active = TRUE`
	var args []any
	if employerID != "" {
		query += ` AND employer_id = ?`
		args = append(args, employerID)
	}

	var n int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

func scanJob(s rowScanner) (*model.Job, error) {
	var (
		j       model.Job
		jobType string
	)
	err := s.Scan(
		&j.ID, &j.Title, &j.Company, &j.Location, &jobType, &j.SalaryRange, &j.Description,
		&j.EmployerID, &j.IsActive, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	j.JobType = model.JobType(jobType)
	return &j, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
