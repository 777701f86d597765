package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/store"
)

func (s *Store) onboardingKey(id string) string {
	return s.key("onboarding", id)
}

func (s *Store) onboardingByCandidateKey(candidateID string) string {
	return s.key("onboarding", "by-candidate", candidateID)
}

func (s *Store) onboardingByOfferKey(offerLetterID string) string {
	return s.key("onboarding", "by-offer", offerLetterID)
}

func (s *Store) CreateOnboarding(ctx context.Context, ob *models.Onboarding) error {
	raw, err := json.Marshal(ob)
	if err != nil {
		return fmt.Errorf("encode onboarding: %w", err)
	}

	candidateKey := s.onboardingByCandidateKey(ob.CandidateID)
	conflict, err := s.insert(ctx,
		[]string{candidateKey, s.onboardingByOfferKey(ob.OfferLetterID)},
		s.onboardingKey(ob.ID),
		nil,
		ob.ID, raw, 0,
	)
	switch {
	case err != nil:
		return fmt.Errorf("insert onboarding: %w", err)
	case conflict == candidateKey:
		return fmt.Errorf("onboarding for candidate %s: %w", ob.CandidateID, store.ErrAlreadyExists)
	case conflict != "":
		return fmt.Errorf("onboarding for offer %s: %w", ob.OfferLetterID, store.ErrAlreadyExists)
	}
	return nil
}

func (s *Store) GetOnboarding(ctx context.Context, id string) (*models.Onboarding, error) {
	var ob models.Onboarding
	if err := s.getDoc(ctx, s.onboardingKey(id), &ob); err != nil {
		return nil, fmt.Errorf("get onboarding %s: %w", id, err)
	}
	return &ob, nil
}

func (s *Store) GetOnboardingByOffer(ctx context.Context, offerLetterID string) (*models.Onboarding, error) {
	id, err := s.lookup(ctx, s.onboardingByOfferKey(offerLetterID))
	if err != nil {
		return nil, fmt.Errorf("get onboarding for offer %s: %w", offerLetterID, err)
	}
	return s.GetOnboarding(ctx, id)
}

func (s *Store) GetOnboardingByCandidate(ctx context.Context, candidateID string) (*models.Onboarding, error) {
	id, err := s.lookup(ctx, s.onboardingByCandidateKey(candidateID))
	if err != nil {
		return nil, fmt.Errorf("get onboarding for candidate %s: %w", candidateID, err)
	}
	return s.GetOnboarding(ctx, id)
}

func (s *Store) UpdateOnboarding(ctx context.Context, ob *models.Onboarding) error {
	if err := s.replaceDoc(ctx, s.onboardingKey(ob.ID), ob); err != nil {
		return fmt.Errorf("update onboarding %s: %w", ob.ID, err)
	}
	return nil
}

func (s *Store) DeleteOnboarding(ctx context.Context, id string) error {
	ob, err := s.GetOnboarding(ctx, id)
	if err != nil {
		return err
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.onboardingKey(id), s.onboardingByCandidateKey(ob.CandidateID), s.onboardingByOfferKey(ob.OfferLetterID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete onboarding %s: %w", id, err)
	}
	return nil
}
