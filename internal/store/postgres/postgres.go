// Package postgres implements store.Store on PostgreSQL via lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"hiring-pipeline/internal/store"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// violatedConstraint names the unique constraint err tripped, if any.
func violatedConstraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint
	}
	return ""
}

// getDocument loads the JSONB payload of one row into dst.
func (s *Store) getDocument(ctx context.Context, query string, arg interface{}, dst interface{}) error {
	var data []byte
	if err := s.db.QueryRowContext(ctx, query, arg).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// listDocuments decodes each row's JSONB payload with decode.
func (s *Store) listDocuments(ctx context.Context, query string, args []interface{}, decode func([]byte) error) error {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return err
		}
		if err := decode(data); err != nil {
			return fmt.Errorf("decode document: %w", err)
		}
	}
	return rows.Err()
}

// execUpdate runs an UPDATE or DELETE and maps zero affected rows to
// store.ErrNotFound.
func (s *Store) execUpdate(ctx context.Context, query string, args ...interface{}) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
