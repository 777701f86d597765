// Package shortlist promotes scored applications into ranked shortlisted
// candidates.
package shortlist

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"hiring-pipeline/internal/common/config"
	apperrors "hiring-pipeline/internal/common/errors"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/common/metrics"
	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/pipeline/capacity"
	"hiring-pipeline/internal/scoring"
	"hiring-pipeline/internal/store"
)

const (
	stage           = "shortlist"
	DefaultMinScore = 50.0
)

type Store interface {
	store.JobStore
	store.ApplicationStore
	store.ShortlistStore
}

type Engine struct {
	store    Store
	scorer   scoring.Scorer
	minScore float64
	logger   logger.Logger
	now      func() time.Time
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(s Store, scorer scoring.Scorer, cfg config.ShortlistConfig, log logger.Logger, opts ...Option) *Engine {
	minScore := cfg.DefaultMinScore
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	e := &Engine{
		store:    s,
		scorer:   scorer,
		minScore: minScore,
		logger:   logger.ForComponent(log, "shortlist-engine"),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type Request struct {
	JobID string
	// MinScore overrides the configured floor when non-nil.
	MinScore *float64
	// MaxCandidates caps how many new candidates one run saves; 0 means
	// no cap.
	MaxCandidates int
}

type Result struct {
	JobID            string
	JobTitle         string
	TotalProcessed   int
	ShortlistedCount int
	RejectedCount    int
	Candidates       []*models.ShortlistedCandidate
}

// Shortlist scores every application of a job and saves the ones at or
// above the score floor, ranked 1..n by descending score. Applications that
// already have a shortlist record are skipped, so reruns are idempotent.
// A scoring failure aborts before anything is saved; a store failure midway
// leaves the candidates saved so far in place.
func (e *Engine) Shortlist(ctx context.Context, req Request) (*Result, error) {
	if req.JobID == "" {
		return nil, apperrors.NewInvalidInputError("jobId is required")
	}
	if req.MaxCandidates < 0 {
		return nil, apperrors.NewInvalidInputError("maxCandidates must not be negative")
	}
	minScore := e.minScore
	if req.MinScore != nil {
		minScore = *req.MinScore
	}

	job, err := e.store.GetJob(ctx, req.JobID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperrors.NewJobNotFoundError(req.JobID)
		}
		return nil, apperrors.NewStoreError("get job", err)
	}

	apps, err := e.store.ListApplicationsByJob(ctx, job.ID)
	if err != nil {
		return nil, apperrors.NewStoreError("list applications", err)
	}
	result := &Result{JobID: job.ID, JobTitle: job.Title, TotalProcessed: len(apps)}
	if len(apps) == 0 {
		e.logger.Info("no applications to shortlist", map[string]interface{}{"jobId": job.ID})
		return result, nil
	}
	byID := make(map[string]*models.Application, len(apps))
	for _, a := range apps {
		byID[a.ID] = a
	}

	scored, err := e.scorer.ScoreJob(ctx, job.ID, jobDescription(job))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	rank := 1
	for _, r := range scored {
		if r.Score < minScore {
			continue
		}
		if req.MaxCandidates > 0 && len(result.Candidates) >= req.MaxCandidates {
			break
		}
		app, ok := byID[r.ApplicationID]
		if !ok {
			e.logger.Warn("scored application does not belong to job", map[string]interface{}{
				"jobId":         job.ID,
				"applicationId": r.ApplicationID,
			})
			continue
		}

		candidate := e.newCandidate(job, app, r, rank)
		inserted, err := e.store.InsertShortlistedIfAbsent(ctx, candidate)
		if err != nil {
			result.finish()
			return result, apperrors.NewStoreError("insert shortlisted candidate", err)
		}
		if !inserted {
			e.logger.Debug("application already shortlisted", map[string]interface{}{"applicationId": app.ID})
			continue
		}
		metrics.RecordTransition(stage, string(candidate.Status))

		if _, err := capacity.AdvanceApplication(ctx, e.store, app.ID, models.ApplicationStatusShortlisted, candidate.ShortlistedAt); err != nil {
			e.logger.Warn("application status not advanced", map[string]interface{}{
				"applicationId": app.ID,
				"error":         err.Error(),
			})
		}
		result.Candidates = append(result.Candidates, candidate)
		rank++
	}
	result.finish()

	e.logger.Info("shortlisting completed", map[string]interface{}{
		"jobId":       job.ID,
		"processed":   result.TotalProcessed,
		"shortlisted": result.ShortlistedCount,
		"minScore":    minScore,
	})
	return result, nil
}

func (r *Result) finish() {
	r.ShortlistedCount = len(r.Candidates)
	r.RejectedCount = r.TotalProcessed - r.ShortlistedCount
}

func (e *Engine) newCandidate(job *models.Job, app *models.Application, r scoring.Result, rank int) *models.ShortlistedCandidate {
	now := e.now()
	return &models.ShortlistedCandidate{
		ID:                      uuid.NewString(),
		ApplicationID:           app.ID,
		JobID:                   job.ID,
		JobTitle:                job.Title,
		Company:                 job.Company,
		CandidateName:           app.CandidateName,
		CandidateEmail:          app.CandidateEmail,
		CandidatePhone:          app.CandidatePhone,
		FinalScore:              r.Score,
		ComponentScores:         r.ComponentScores,
		SkillMatchPercentage:    r.MatchPercentage,
		MatchedSkills:           r.MatchedSkills,
		MissingSkills:           r.MissingSkills,
		LLMDecision:             r.LLMDecision,
		LLMReasoning:            r.LLMReasoning,
		InterviewRecommendation: r.InterviewRecommendation,
		KeyStrengths:            r.KeyStrengths,
		DevelopmentAreas:        r.DevelopmentAreas,
		Status:                  models.ShortlistStatusPendingReview,
		Rank:                    rank,
		ShortlistedAt:           now,
		UpdatedAt:               now,
	}
}

func jobDescription(job *models.Job) string {
	if strings.TrimSpace(job.Description) != "" {
		return job.Description
	}
	return strings.TrimSpace(job.Title + "\n" + job.RequiredSkills)
}

// ListShortlist returns a job's candidates ordered by rank.
func (e *Engine) ListShortlist(ctx context.Context, jobID string) ([]*models.ShortlistedCandidate, error) {
	candidates, err := e.store.ListShortlistedByJob(ctx, jobID)
	if err != nil {
		return nil, apperrors.NewStoreError("list shortlist", err)
	}
	return candidates, nil
}

func (e *Engine) GetCandidate(ctx context.Context, id string) (*models.ShortlistedCandidate, error) {
	c, err := e.store.GetShortlisted(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperrors.NewCandidateNotFoundError(id)
		}
		return nil, apperrors.NewStoreError("get shortlisted candidate", err)
	}
	return c, nil
}

// UpdateStatus records the HR review of a PENDING_REVIEW candidate. The
// later statuses belong to the interview and offer stages.
func (e *Engine) UpdateStatus(ctx context.Context, candidateID string, status models.ShortlistStatus, notes string) (*models.ShortlistedCandidate, error) {
	if status != models.ShortlistStatusApproved && status != models.ShortlistStatusRejected {
		return nil, apperrors.NewInvalidInputError("review status must be APPROVED or REJECTED, got " + string(status))
	}
	c, err := e.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if c.Status != models.ShortlistStatusPendingReview {
		return nil, apperrors.NewInvalidStatusTransitionError("shortlisted candidate", string(c.Status), string(status))
	}

	c.Status = status
	if notes != "" {
		c.Notes = notes
	}
	c.UpdatedAt = e.now()
	if err := e.store.UpdateShortlisted(ctx, c); err != nil {
		return nil, apperrors.NewStoreError("update shortlisted candidate", err)
	}
	metrics.RecordTransition(stage, string(status))

	if status == models.ShortlistStatusRejected {
		if _, err := capacity.AdvanceApplication(ctx, e.store, c.ApplicationID, models.ApplicationStatusRejected, c.UpdatedAt); err != nil {
			e.logger.Warn("application not rejected", map[string]interface{}{
				"applicationId": c.ApplicationID,
				"error":         err.Error(),
			})
		}
	}
	e.logger.Info("shortlist review recorded", map[string]interface{}{
		"candidateId": c.ID,
		"status":      string(status),
	})
	return c, nil
}
