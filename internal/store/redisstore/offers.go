package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/store"
)

func (s *Store) offerKey(id string) string {
	return s.key("offer", id)
}

func (s *Store) offerByApplicationKey(applicationID string) string {
	return s.key("offer", "by-application", applicationID)
}

func (s *Store) offersIndexKey() string {
	return s.key("offers")
}

func (s *Store) CreateOffer(ctx context.Context, offer *models.OfferLetter) error {
	raw, err := json.Marshal(offer)
	if err != nil {
		return fmt.Errorf("encode offer letter: %w", err)
	}

	conflict, err := s.insert(ctx,
		[]string{s.offerByApplicationKey(offer.ApplicationID)},
		s.offerKey(offer.ID),
		[]string{s.offersIndexKey()},
		offer.ID, raw, float64(offer.GeneratedAt.UnixNano()),
	)
	if err != nil {
		return fmt.Errorf("insert offer letter: %w", err)
	}
	if conflict != "" {
		return fmt.Errorf("offer for application %s: %w", offer.ApplicationID, store.ErrAlreadyExists)
	}
	return nil
}

func (s *Store) GetOffer(ctx context.Context, id string) (*models.OfferLetter, error) {
	var offer models.OfferLetter
	if err := s.getDoc(ctx, s.offerKey(id), &offer); err != nil {
		return nil, fmt.Errorf("get offer letter %s: %w", id, err)
	}
	return &offer, nil
}

func (s *Store) GetOfferByApplication(ctx context.Context, applicationID string) (*models.OfferLetter, error) {
	id, err := s.lookup(ctx, s.offerByApplicationKey(applicationID))
	if err != nil {
		return nil, fmt.Errorf("get offer letter for application %s: %w", applicationID, err)
	}
	return s.GetOffer(ctx, id)
}

func (s *Store) UpdateOffer(ctx context.Context, offer *models.OfferLetter) error {
	if err := s.replaceDoc(ctx, s.offerKey(offer.ID), offer); err != nil {
		return fmt.Errorf("update offer letter %s: %w", offer.ID, err)
	}
	return nil
}

func (s *Store) ListOffersByStatus(ctx context.Context, statuses ...models.OfferStatus) ([]*models.OfferLetter, error) {
	want := make(map[models.OfferStatus]bool, len(statuses))
	for _, st := range statuses {
		want[st] = true
	}

	var out []*models.OfferLetter
	err := s.listDocs(ctx, s.offersIndexKey(), s.offerKey, func(raw []byte) error {
		var offer models.OfferLetter
		if err := json.Unmarshal(raw, &offer); err != nil {
			return err
		}
		if len(want) == 0 || want[offer.Status] {
			out = append(out, &offer)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list offer letters: %w", err)
	}
	return out, nil
}
