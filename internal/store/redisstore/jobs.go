package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/store"
)

// incrementScript returns the new count, or -2 when the job is missing,
// -1 when it is not open and -3 when it is full.
var incrementScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -2
end
if redis.call('HGET', KEYS[1], 'status') ~= 'OPEN' then
	return -1
end
local max = tonumber(redis.call('HGET', KEYS[1], 'max_candidates') or '0')
local count = tonumber(redis.call('HGET', KEYS[1], 'application_count') or '0')
if max > 0 and count >= max then
	return -3
end
redis.call('HSET', KEYS[1], 'updated_at', ARGV[1])
return redis.call('HINCRBY', KEYS[1], 'application_count', 1)
`)

// createJobScript writes every job field at once so the increment script
// never sees a job without its status.
var createJobScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'data', ARGV[1], 'status', ARGV[2], 'max_candidates', ARGV[3],
	'application_count', ARGV[4], 'updated_at', ARGV[5])
return 1
`)

var closeScript = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'status') == 'OPEN' then
	redis.call('HSET', KEYS[1], 'status', 'CLOSED', 'updated_at', ARGV[1])
	return 1
end
return 0
`)

func (s *Store) jobKey(id string) string {
	return s.key("job", id)
}

func (s *Store) CreateJob(ctx context.Context, job *models.Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	created, err := createJobScript.Run(ctx, s.rdb, []string{s.jobKey(job.ID)},
		raw,
		string(job.Status),
		job.MaxCandidates,
		job.ApplicationCount,
		job.UpdatedAt.Format(time.RFC3339Nano),
	).Int()
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	if created == 0 {
		return fmt.Errorf("job %s: %w", job.ID, store.ErrAlreadyExists)
	}
	return nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	fields, err := s.rdb.HGetAll(ctx, s.jobKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("get job %s: %w", id, store.ErrNotFound)
	}

	var job models.Job
	if err := json.Unmarshal([]byte(fields["data"]), &job); err != nil {
		return nil, fmt.Errorf("decode job %s: %w", id, err)
	}
	// The hash fields are authoritative; data only holds descriptive fields.
	job.Status = models.JobStatus(fields["status"])
	job.MaxCandidates, _ = strconv.Atoi(fields["max_candidates"])
	job.ApplicationCount, _ = strconv.Atoi(fields["application_count"])
	if ts, err := time.Parse(time.RFC3339Nano, fields["updated_at"]); err == nil {
		job.UpdatedAt = ts
	}
	return &job, nil
}

func (s *Store) IncrementApplicationCount(ctx context.Context, id string, now time.Time) (*models.Job, error) {
	res, err := incrementScript.Run(ctx, s.rdb, []string{s.jobKey(id)}, now.Format(time.RFC3339Nano)).Int64()
	if err != nil {
		return nil, fmt.Errorf("increment application count: %w", err)
	}

	var guardErr error
	switch res {
	case -2:
		return nil, fmt.Errorf("job %s: %w", id, store.ErrNotFound)
	case -1:
		guardErr = store.ErrJobNotOpen
	case -3:
		guardErr = store.ErrCapacityReached
	}

	job, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if guardErr != nil {
		return job, fmt.Errorf("job %s: %w", id, guardErr)
	}
	return job, nil
}

func (s *Store) CloseJobIfOpen(ctx context.Context, id string, now time.Time) (bool, error) {
	res, err := closeScript.Run(ctx, s.rdb, []string{s.jobKey(id)}, now.Format(time.RFC3339Nano)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("close job: %w", err)
	}
	return res == 1, nil
}
