package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/store"
)

func (s *Store) CreateApplication(ctx context.Context, app *models.Application) error {
	data, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("encode application: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO applications (id, job_id, status, applied_at, data) VALUES ($1, $2, $3, $4, $5)`,
		app.ID, app.JobID, string(app.Status), app.AppliedAt, data,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("application %s: %w", app.ID, store.ErrAlreadyExists)
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (s *Store) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := s.getDocument(ctx, `SELECT data FROM applications WHERE id = $1`, id, &app); err != nil {
		return nil, fmt.Errorf("get application %s: %w", id, err)
	}
	return &app, nil
}

func (s *Store) UpdateApplication(ctx context.Context, app *models.Application) error {
	data, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("encode application: %w", err)
	}
	if err := s.execUpdate(ctx,
		`UPDATE applications SET status = $2, data = $3 WHERE id = $1`,
		app.ID, string(app.Status), data,
	); err != nil {
		return fmt.Errorf("update application %s: %w", app.ID, err)
	}
	return nil
}

func (s *Store) ListApplicationsByJob(ctx context.Context, jobID string) ([]*models.Application, error) {
	var apps []*models.Application
	err := s.listDocuments(ctx,
		`SELECT data FROM applications WHERE job_id = $1 ORDER BY applied_at, id`,
		[]interface{}{jobID},
		func(data []byte) error {
			var app models.Application
			if err := json.Unmarshal(data, &app); err != nil {
				return err
			}
			apps = append(apps, &app)
			return nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

func (s *Store) CountApplicationsByJob(ctx context.Context, jobID string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications WHERE job_id = $1`, jobID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return n, nil
}
