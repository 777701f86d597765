package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/store"
)

// activeInterviewConstraint is the partial unique index allowing one
// SCHEDULED or RESCHEDULED interview per candidate.
const activeInterviewConstraint = "uq_interviews_active"

func (s *Store) CreateInterview(ctx context.Context, iv *models.Interview) error {
	data, err := json.Marshal(iv)
	if err != nil {
		return fmt.Errorf("encode interview: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO interviews (id, shortlisted_candidate_id, application_id, interview_round, status, decision, created_at, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		iv.ID, iv.ShortlistedCandidateID, iv.ApplicationID, string(iv.Round), string(iv.Status), string(iv.Decision), iv.CreatedAt, data,
	)
	switch {
	case err == nil:
	case violatedConstraint(err) == activeInterviewConstraint:
		return fmt.Errorf("interview for candidate %s: %w", iv.ShortlistedCandidateID, store.ErrInterviewActive)
	case isUniqueViolation(err):
		return fmt.Errorf("interview %s: %w", iv.ID, store.ErrAlreadyExists)
	default:
		return fmt.Errorf("insert interview: %w", err)
	}
	return nil
}

func (s *Store) GetInterview(ctx context.Context, id string) (*models.Interview, error) {
	var iv models.Interview
	if err := s.getDocument(ctx, `SELECT data FROM interviews WHERE id = $1`, id, &iv); err != nil {
		return nil, fmt.Errorf("get interview %s: %w", id, err)
	}
	return &iv, nil
}

func (s *Store) UpdateInterview(ctx context.Context, iv *models.Interview) error {
	data, err := json.Marshal(iv)
	if err != nil {
		return fmt.Errorf("encode interview: %w", err)
	}
	if err := s.execUpdate(ctx,
		`UPDATE interviews SET status = $2, decision = $3, data = $4 WHERE id = $1`,
		iv.ID, string(iv.Status), string(iv.Decision), data,
	); err != nil {
		return fmt.Errorf("update interview %s: %w", iv.ID, err)
	}
	return nil
}

func (s *Store) ListInterviews(ctx context.Context, filter store.InterviewFilter) ([]*models.Interview, error) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("shortlisted_candidate_id", filter.CandidateID)
	add("application_id", filter.ApplicationID)
	add("interview_round", string(filter.Round))
	add("decision", string(filter.Decision))

	query := `SELECT data FROM interviews`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at, id`

	var out []*models.Interview
	err := s.listDocuments(ctx, query, args, func(data []byte) error {
		var iv models.Interview
		if err := json.Unmarshal(data, &iv); err != nil {
			return err
		}
		out = append(out, &iv)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	return out, nil
}
