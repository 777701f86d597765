package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/store"
)

func (s *Store) CreateOnboarding(ctx context.Context, ob *models.Onboarding) error {
	data, err := json.Marshal(ob)
	if err != nil {
		return fmt.Errorf("encode onboarding: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO onboardings (id, candidate_id, offer_letter_id, data)
		VALUES ($1, $2, $3, $4)`,
		ob.ID, ob.CandidateID, ob.OfferLetterID, data,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("onboarding for candidate %s: %w", ob.CandidateID, store.ErrAlreadyExists)
		}
		return fmt.Errorf("insert onboarding: %w", err)
	}
	return nil
}

func (s *Store) GetOnboarding(ctx context.Context, id string) (*models.Onboarding, error) {
	return s.findOnboarding(ctx, `SELECT data FROM onboardings WHERE id = $1`, id)
}

func (s *Store) GetOnboardingByOffer(ctx context.Context, offerLetterID string) (*models.Onboarding, error) {
	return s.findOnboarding(ctx, `SELECT data FROM onboardings WHERE offer_letter_id = $1`, offerLetterID)
}

func (s *Store) GetOnboardingByCandidate(ctx context.Context, candidateID string) (*models.Onboarding, error) {
	return s.findOnboarding(ctx, `SELECT data FROM onboardings WHERE candidate_id = $1`, candidateID)
}

func (s *Store) findOnboarding(ctx context.Context, query, key string) (*models.Onboarding, error) {
	var ob models.Onboarding
	if err := s.getDocument(ctx, query, key, &ob); err != nil {
		return nil, fmt.Errorf("get onboarding %s: %w", key, err)
	}
	return &ob, nil
}

func (s *Store) UpdateOnboarding(ctx context.Context, ob *models.Onboarding) error {
	data, err := json.Marshal(ob)
	if err != nil {
		return fmt.Errorf("encode onboarding: %w", err)
	}
	if err := s.execUpdate(ctx, `UPDATE onboardings SET data = $2 WHERE id = $1`, ob.ID, data); err != nil {
		return fmt.Errorf("update onboarding %s: %w", ob.ID, err)
	}
	return nil
}

func (s *Store) DeleteOnboarding(ctx context.Context, id string) error {
	if err := s.execUpdate(ctx, `DELETE FROM onboardings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete onboarding %s: %w", id, err)
	}
	return nil
}
