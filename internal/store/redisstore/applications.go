package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/store"
)

func (s *Store) applicationKey(id string) string {
	return s.key("application", id)
}

func (s *Store) jobApplicationsKey(jobID string) string {
	return s.key("job", jobID, "applications")
}

func (s *Store) CreateApplication(ctx context.Context, app *models.Application) error {
	raw, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("encode application: %w", err)
	}
	conflict, err := s.insert(ctx, nil,
		s.applicationKey(app.ID),
		[]string{s.jobApplicationsKey(app.JobID)},
		app.ID, raw, float64(app.AppliedAt.UnixNano()),
	)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	if conflict != "" {
		return fmt.Errorf("application %s: %w", app.ID, store.ErrAlreadyExists)
	}
	return nil
}

func (s *Store) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := s.getDoc(ctx, s.applicationKey(id), &app); err != nil {
		return nil, fmt.Errorf("get application %s: %w", id, err)
	}
	return &app, nil
}

func (s *Store) UpdateApplication(ctx context.Context, app *models.Application) error {
	if err := s.replaceDoc(ctx, s.applicationKey(app.ID), app); err != nil {
		return fmt.Errorf("update application %s: %w", app.ID, err)
	}
	return nil
}

func (s *Store) ListApplicationsByJob(ctx context.Context, jobID string) ([]*models.Application, error) {
	var apps []*models.Application
	err := s.listDocs(ctx, s.jobApplicationsKey(jobID), s.applicationKey, func(raw []byte) error {
		var app models.Application
		if err := json.Unmarshal(raw, &app); err != nil {
			return err
		}
		apps = append(apps, &app)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

func (s *Store) CountApplicationsByJob(ctx context.Context, jobID string) (int, error) {
	n, err := s.rdb.ZCard(ctx, s.jobApplicationsKey(jobID)).Result()
	if err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return int(n), nil
}
