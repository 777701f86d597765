package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/store"
)

const jobColumns = `id, title, description, company, location, employment_type, experience_level,
	required_skills, salary_range, posted_by, max_candidates, application_count, status,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (*models.Job, error) {
	var (
		job    models.Job
		status string
	)
	err := row.Scan(
		&job.ID, &job.Title, &job.Description, &job.Company, &job.Location,
		&job.EmploymentType, &job.ExperienceLevel, &job.RequiredSkills, &job.SalaryRange,
		&job.PostedBy, &job.MaxCandidates, &job.ApplicationCount, &status,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	job.Status = models.JobStatus(status)
	return &job, nil
}

func (s *Store) CreateJob(ctx context.Context, job *models.Job) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		job.ID, job.Title, job.Description, job.Company, job.Location,
		job.EmploymentType, job.ExperienceLevel, job.RequiredSkills, job.SalaryRange,
		job.PostedBy, job.MaxCandidates, job.ApplicationCount, string(job.Status),
		job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("job %s: %w", job.ID, store.ErrAlreadyExists)
		}
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	job, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	return job, nil
}

func (s *Store) IncrementApplicationCount(ctx context.Context, id string, now time.Time) (*models.Job, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE jobs
		SET application_count = application_count + 1, updated_at = $2
		WHERE id = $1
		  AND status = 'OPEN'
		  AND (max_candidates = 0 OR application_count < max_candidates)
		RETURNING `+jobColumns,
		id, now,
	)
	job, err := scanJob(row)
	if err == nil {
		return job, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("increment application count: %w", err)
	}

	// The guard rejected the update; read the row to report why.
	current, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != models.JobStatusOpen {
		return current, fmt.Errorf("job %s: %w", id, store.ErrJobNotOpen)
	}
	return current, fmt.Errorf("job %s: %w", id, store.ErrCapacityReached)
}

func (s *Store) CloseJobIfOpen(ctx context.Context, id string, now time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET status = 'CLOSED', updated_at = $2 WHERE id = $1 AND status = 'OPEN'`,
		id, now,
	)
	if err != nil {
		return false, fmt.Errorf("close job: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("close job: %w", err)
	}
	return n == 1, nil
}
