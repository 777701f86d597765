// Package redisstore implements store.Store on Redis.
//
// Jobs are hashes so the capacity guard can run as a Lua script against
// the counter fields. Every other aggregate is a JSON string with sorted-set
// indexes for listing and claim keys for the uniqueness constraints; all of
// them are created together by insertScript.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"hiring-pipeline/internal/store"
)

// insertScript writes a document together with its uniqueness claims and
// index entries, or writes nothing. It returns 0 on success, otherwise the
// 1-based position in KEYS of the claim or document key that already exists.
//
// KEYS: claim keys, then the document key, then index keys.
// ARGV: claim count, id, document, index score.
var insertScript = redis.NewScript(`
local claims = tonumber(ARGV[1])
for i = 1, claims + 1 do
	if redis.call('EXISTS', KEYS[i]) == 1 then
		return i
	end
end
for i = 1, claims do
	redis.call('SET', KEYS[i], ARGV[2])
end
redis.call('SET', KEYS[claims + 1], ARGV[3])
for i = claims + 2, #KEYS do
	redis.call('ZADD', KEYS[i], ARGV[4], ARGV[2])
end
return 0
`)

type Store struct {
	rdb    redis.UniversalClient
	prefix string
}

var _ store.Store = (*Store)(nil)

func New(rdb redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "hiring"
	}
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) key(parts ...string) string {
	return s.prefix + ":" + strings.Join(parts, ":")
}

func (s *Store) getDoc(ctx context.Context, key string, dst interface{}) error {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return store.ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// replaceDoc overwrites an existing document and never creates one.
func (s *Store) replaceDoc(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	ok, err := s.rdb.SetXX(ctx, key, raw, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrNotFound
	}
	return nil
}

// insert stores raw under docKey in one atomic step with its claims and
// index entries. When a claim or the document already exists nothing is
// written and the conflicting key is returned.
func (s *Store) insert(ctx context.Context, claims []string, docKey string, indexes []string, id string, raw []byte, score float64) (string, error) {
	keys := make([]string, 0, len(claims)+1+len(indexes))
	keys = append(keys, claims...)
	keys = append(keys, docKey)
	keys = append(keys, indexes...)

	res, err := insertScript.Run(ctx, s.rdb, keys,
		len(claims), id, raw, strconv.FormatFloat(score, 'f', -1, 64)).Int()
	if err != nil {
		return "", err
	}
	if res > 0 {
		return keys[res-1], nil
	}
	return "", nil
}

// lookup resolves a uniqueness key to the document id it points at.
func (s *Store) lookup(ctx context.Context, key string) (string, error) {
	id, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", store.ErrNotFound
		}
		return "", err
	}
	return id, nil
}

// listDocs loads the documents whose ids are members of index, in index
// order. Ids whose document has vanished are skipped.
func (s *Store) listDocs(ctx context.Context, index string, docKey func(id string) string, decode func([]byte) error) error {
	ids, err := s.rdb.ZRange(ctx, index, 0, -1).Result()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = docKey(id)
	}
	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return err
	}
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		if err := decode([]byte(raw)); err != nil {
			return fmt.Errorf("decode document: %w", err)
		}
	}
	return nil
}
