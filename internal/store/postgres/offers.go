package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/store"
)

func (s *Store) CreateOffer(ctx context.Context, offer *models.OfferLetter) error {
	data, err := json.Marshal(offer)
	if err != nil {
		return fmt.Errorf("encode offer letter: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO offer_letters (id, application_id, status, generated_at, data)
		VALUES ($1, $2, $3, $4, $5)`,
		offer.ID, offer.ApplicationID, string(offer.Status), offer.GeneratedAt, data,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("offer for application %s: %w", offer.ApplicationID, store.ErrAlreadyExists)
		}
		return fmt.Errorf("insert offer letter: %w", err)
	}
	return nil
}

func (s *Store) GetOffer(ctx context.Context, id string) (*models.OfferLetter, error) {
	var offer models.OfferLetter
	if err := s.getDocument(ctx, `SELECT data FROM offer_letters WHERE id = $1`, id, &offer); err != nil {
		return nil, fmt.Errorf("get offer letter %s: %w", id, err)
	}
	return &offer, nil
}

func (s *Store) GetOfferByApplication(ctx context.Context, applicationID string) (*models.OfferLetter, error) {
	var offer models.OfferLetter
	if err := s.getDocument(ctx,
		`SELECT data FROM offer_letters WHERE application_id = $1`, applicationID, &offer,
	); err != nil {
		return nil, fmt.Errorf("get offer letter for application %s: %w", applicationID, err)
	}
	return &offer, nil
}

func (s *Store) UpdateOffer(ctx context.Context, offer *models.OfferLetter) error {
	data, err := json.Marshal(offer)
	if err != nil {
		return fmt.Errorf("encode offer letter: %w", err)
	}
	if err := s.execUpdate(ctx,
		`UPDATE offer_letters SET status = $2, data = $3 WHERE id = $1`,
		offer.ID, string(offer.Status), data,
	); err != nil {
		return fmt.Errorf("update offer letter %s: %w", offer.ID, err)
	}
	return nil
}

func (s *Store) ListOffersByStatus(ctx context.Context, statuses ...models.OfferStatus) ([]*models.OfferLetter, error) {
	query := `SELECT data FROM offer_letters ORDER BY generated_at, id`
	var args []interface{}
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, st := range statuses {
			values[i] = string(st)
		}
		query = `SELECT data FROM offer_letters WHERE status = ANY($1) ORDER BY generated_at, id`
		args = append(args, pq.Array(values))
	}

	var out []*models.OfferLetter
	err := s.listDocuments(ctx, query, args, func(data []byte) error {
		var offer models.OfferLetter
		if err := json.Unmarshal(data, &offer); err != nil {
			return err
		}
		out = append(out, &offer)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list offer letters: %w", err)
	}
	return out, nil
}
