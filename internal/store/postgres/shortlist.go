package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"hiring-pipeline/internal/models"
)

func (s *Store) InsertShortlistedIfAbsent(ctx context.Context, c *models.ShortlistedCandidate) (bool, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return false, fmt.Errorf("encode shortlisted candidate: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO shortlisted_candidates (id, application_id, job_id, rank, data)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (application_id) DO NOTHING`,
		c.ID, c.ApplicationID, c.JobID, c.Rank, data,
	)
	if err != nil {
		return false, fmt.Errorf("insert shortlisted candidate: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert shortlisted candidate: %w", err)
	}
	return n == 1, nil
}

func (s *Store) GetShortlisted(ctx context.Context, id string) (*models.ShortlistedCandidate, error) {
	var c models.ShortlistedCandidate
	if err := s.getDocument(ctx, `SELECT data FROM shortlisted_candidates WHERE id = $1`, id, &c); err != nil {
		return nil, fmt.Errorf("get shortlisted candidate %s: %w", id, err)
	}
	return &c, nil
}

func (s *Store) GetShortlistedByApplication(ctx context.Context, applicationID string) (*models.ShortlistedCandidate, error) {
	var c models.ShortlistedCandidate
	if err := s.getDocument(ctx,
		`SELECT data FROM shortlisted_candidates WHERE application_id = $1`, applicationID, &c,
	); err != nil {
		return nil, fmt.Errorf("get shortlisted candidate for application %s: %w", applicationID, err)
	}
	return &c, nil
}

func (s *Store) UpdateShortlisted(ctx context.Context, c *models.ShortlistedCandidate) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode shortlisted candidate: %w", err)
	}
	if err := s.execUpdate(ctx,
		`UPDATE shortlisted_candidates SET rank = $2, data = $3 WHERE id = $1`,
		c.ID, c.Rank, data,
	); err != nil {
		return fmt.Errorf("update shortlisted candidate %s: %w", c.ID, err)
	}
	return nil
}

func (s *Store) ListShortlistedByJob(ctx context.Context, jobID string) ([]*models.ShortlistedCandidate, error) {
	var out []*models.ShortlistedCandidate
	err := s.listDocuments(ctx,
		`SELECT data FROM shortlisted_candidates WHERE job_id = $1 ORDER BY rank, id`,
		[]interface{}{jobID},
		func(data []byte) error {
			var c models.ShortlistedCandidate
			if err := json.Unmarshal(data, &c); err != nil {
				return err
			}
			out = append(out, &c)
			return nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("list shortlisted candidates: %w", err)
	}
	return out, nil
}
