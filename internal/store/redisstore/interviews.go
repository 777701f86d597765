package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/store"
)

func (s *Store) interviewKey(id string) string {
	return s.key("interview", id)
}

func (s *Store) interviewsIndexKey() string {
	return s.key("interviews")
}

func (s *Store) candidateInterviewsKey(candidateID string) string {
	return s.key("shortlisted", candidateID, "interviews")
}

// activeInterviewKey holds the id of the candidate's one active interview.
func (s *Store) activeInterviewKey(candidateID string) string {
	return s.key("shortlisted", candidateID, "active-interview")
}

// updateInterviewScript replaces an interview and releases the candidate's
// active claim once the interview is no longer active.
//
// KEYS: document key, active claim key.
// ARGV: document, id, "1" when the interview is still active.
var updateInterviewScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1])
if ARGV[3] ~= '1' and redis.call('GET', KEYS[2]) == ARGV[2] then
	redis.call('DEL', KEYS[2])
end
return 1
`)

func (s *Store) CreateInterview(ctx context.Context, iv *models.Interview) error {
	raw, err := json.Marshal(iv)
	if err != nil {
		return fmt.Errorf("encode interview: %w", err)
	}

	var claims []string
	activeKey := s.activeInterviewKey(iv.ShortlistedCandidateID)
	if iv.Status.IsActive() {
		claims = append(claims, activeKey)
	}
	conflict, err := s.insert(ctx, claims,
		s.interviewKey(iv.ID),
		[]string{s.interviewsIndexKey(), s.candidateInterviewsKey(iv.ShortlistedCandidateID)},
		iv.ID, raw, float64(iv.CreatedAt.UnixNano()),
	)
	switch {
	case err != nil:
		return fmt.Errorf("insert interview: %w", err)
	case conflict == activeKey:
		return fmt.Errorf("interview for candidate %s: %w", iv.ShortlistedCandidateID, store.ErrInterviewActive)
	case conflict != "":
		return fmt.Errorf("interview %s: %w", iv.ID, store.ErrAlreadyExists)
	}
	return nil
}

func (s *Store) GetInterview(ctx context.Context, id string) (*models.Interview, error) {
	var iv models.Interview
	if err := s.getDoc(ctx, s.interviewKey(id), &iv); err != nil {
		return nil, fmt.Errorf("get interview %s: %w", id, err)
	}
	return &iv, nil
}

func (s *Store) UpdateInterview(ctx context.Context, iv *models.Interview) error {
	raw, err := json.Marshal(iv)
	if err != nil {
		return fmt.Errorf("encode interview: %w", err)
	}
	active := "0"
	if iv.Status.IsActive() {
		active = "1"
	}
	updated, err := updateInterviewScript.Run(ctx, s.rdb,
		[]string{s.interviewKey(iv.ID), s.activeInterviewKey(iv.ShortlistedCandidateID)},
		raw, iv.ID, active,
	).Int()
	if err != nil {
		return fmt.Errorf("update interview %s: %w", iv.ID, err)
	}
	if updated == 0 {
		return fmt.Errorf("update interview %s: %w", iv.ID, store.ErrNotFound)
	}
	return nil
}

func (s *Store) ListInterviews(ctx context.Context, filter store.InterviewFilter) ([]*models.Interview, error) {
	index := s.interviewsIndexKey()
	if filter.CandidateID != "" {
		index = s.candidateInterviewsKey(filter.CandidateID)
	}

	var out []*models.Interview
	err := s.listDocs(ctx, index, s.interviewKey, func(raw []byte) error {
		var iv models.Interview
		if err := json.Unmarshal(raw, &iv); err != nil {
			return err
		}
		if filter.Matches(&iv) {
			out = append(out, &iv)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	return out, nil
}
