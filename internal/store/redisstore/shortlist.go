package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"hiring-pipeline/internal/models"
)

func (s *Store) shortlistedKey(id string) string {
	return s.key("shortlisted", id)
}

func (s *Store) shortlistedByApplicationKey(applicationID string) string {
	return s.key("shortlisted", "by-application", applicationID)
}

func (s *Store) jobShortlistKey(jobID string) string {
	return s.key("job", jobID, "shortlist")
}

func (s *Store) InsertShortlistedIfAbsent(ctx context.Context, c *models.ShortlistedCandidate) (bool, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return false, fmt.Errorf("encode shortlisted candidate: %w", err)
	}

	conflict, err := s.insert(ctx,
		[]string{s.shortlistedByApplicationKey(c.ApplicationID)},
		s.shortlistedKey(c.ID),
		[]string{s.jobShortlistKey(c.JobID)},
		c.ID, raw, float64(c.Rank),
	)
	if err != nil {
		return false, fmt.Errorf("insert shortlisted candidate: %w", err)
	}
	return conflict == "", nil
}

func (s *Store) GetShortlisted(ctx context.Context, id string) (*models.ShortlistedCandidate, error) {
	var c models.ShortlistedCandidate
	if err := s.getDoc(ctx, s.shortlistedKey(id), &c); err != nil {
		return nil, fmt.Errorf("get shortlisted candidate %s: %w", id, err)
	}
	return &c, nil
}

func (s *Store) GetShortlistedByApplication(ctx context.Context, applicationID string) (*models.ShortlistedCandidate, error) {
	id, err := s.lookup(ctx, s.shortlistedByApplicationKey(applicationID))
	if err != nil {
		return nil, fmt.Errorf("get shortlisted candidate for application %s: %w", applicationID, err)
	}
	return s.GetShortlisted(ctx, id)
}

func (s *Store) UpdateShortlisted(ctx context.Context, c *models.ShortlistedCandidate) error {
	if err := s.replaceDoc(ctx, s.shortlistedKey(c.ID), c); err != nil {
		return fmt.Errorf("update shortlisted candidate %s: %w", c.ID, err)
	}
	return nil
}

func (s *Store) ListShortlistedByJob(ctx context.Context, jobID string) ([]*models.ShortlistedCandidate, error) {
	var out []*models.ShortlistedCandidate
	err := s.listDocs(ctx, s.jobShortlistKey(jobID), s.shortlistedKey, func(raw []byte) error {
		var c models.ShortlistedCandidate
		if err := json.Unmarshal(raw, &c); err != nil {
			return err
		}
		out = append(out, &c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list shortlisted candidates: %w", err)
	}
	return out, nil
}
