// Package capacity owns jobs and applications: it enforces the per-job
// application ceiling and closes jobs once they fill up.
package capacity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"hiring-pipeline/internal/common/config"
	apperrors "hiring-pipeline/internal/common/errors"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/common/metrics"
	"hiring-pipeline/internal/export"
	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/store"
)

const stage = "capacity"

// DefaultAutoCloseThreshold applies to uncapped jobs when no threshold is
// configured.
const DefaultAutoCloseThreshold = 3

type Store interface {
	store.JobStore
	store.ApplicationStore
}

type Guard struct {
	store     Store
	exporter  export.Exporter
	threshold int
	logger    logger.Logger
	now       func() time.Time
}

type Option func(*Guard)

func WithClock(now func() time.Time) Option {
	return func(g *Guard) { g.now = now }
}

func NewGuard(s Store, exporter export.Exporter, cfg config.CapacityConfig, log logger.Logger, opts ...Option) *Guard {
	if exporter == nil {
		exporter = export.Noop{}
	}
	threshold := cfg.AutoCloseThreshold
	if threshold == 0 {
		threshold = DefaultAutoCloseThreshold
	}
	g := &Guard{
		store:     s,
		exporter:  exporter,
		threshold: threshold,
		logger:    logger.ForComponent(log, "capacity-guard"),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CanAccept reports whether job may take one more application.
func CanAccept(job *models.Job) bool {
	return job.Status == models.JobStatusOpen && (job.MaxCandidates == 0 || job.ApplicationCount < job.MaxCandidates)
}

// Threshold is the application count at which job auto-closes, or 0 when
// it never does.
func (g *Guard) Threshold(job *models.Job) int {
	if job.MaxCandidates > 0 {
		return job.MaxCandidates
	}
	if g.threshold < 0 {
		return 0
	}
	return g.threshold
}

// PostJob validates and stores a new OPEN job.
func (g *Guard) PostJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	if strings.TrimSpace(job.Title) == "" {
		return nil, apperrors.NewInvalidInputError("title is required")
	}
	if strings.TrimSpace(job.Company) == "" {
		return nil, apperrors.NewInvalidInputError("company is required")
	}
	if job.MaxCandidates < 0 {
		return nil, apperrors.NewInvalidInputError("maxCandidates must not be negative")
	}

	now := g.now()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.Status = models.JobStatusOpen
	job.ApplicationCount = 0
	job.CreatedAt = now
	job.UpdatedAt = now

	if err := g.store.CreateJob(ctx, job); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, apperrors.NewJobAlreadyExistsError(job.ID)
		}
		return nil, apperrors.NewStoreError("create job", err)
	}

	g.logger.Info("job posted", map[string]interface{}{
		"jobId":         job.ID,
		"maxCandidates": job.MaxCandidates,
	})
	metrics.RecordTransition(stage, string(models.JobStatusOpen))
	g.export(ctx, job, export.EventJobPosted)
	return job, nil
}

func (g *Guard) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := g.store.GetJob(ctx, jobID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperrors.NewJobNotFoundError(jobID)
		}
		return nil, apperrors.NewStoreError("get job", err)
	}
	return job, nil
}

// RecordApplication takes one slot on the job. The store applies the
// CanAccept condition atomically, so concurrent callers never overshoot
// maxCandidates.
func (g *Guard) RecordApplication(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := g.store.IncrementApplicationCount(ctx, jobID, g.now())
	switch {
	case err == nil:
		return job, nil
	case store.IsNotFound(err):
		return nil, apperrors.NewJobNotFoundError(jobID)
	case errors.Is(err, store.ErrCapacityReached):
		return nil, apperrors.NewCapacityExceededError(jobID, job.MaxCandidates)
	case errors.Is(err, store.ErrJobNotOpen):
		// A job closed by filling up reports the capacity, not the status.
		if job.Status == models.JobStatusClosed {
			if t := g.Threshold(job); t > 0 && job.ApplicationCount >= t {
				return nil, apperrors.NewCapacityExceededError(jobID, t)
			}
		}
		return nil, apperrors.NewJobNotOpenError(jobID, string(job.Status))
	default:
		return nil, apperrors.NewStoreError("record application", err)
	}
}

// EvaluateAutoClose closes job when count has reached the threshold.
// It reports whether this call closed the job.
func (g *Guard) EvaluateAutoClose(ctx context.Context, job *models.Job, count int) (bool, error) {
	threshold := g.Threshold(job)
	if threshold == 0 || count < threshold || job.Status != models.JobStatusOpen {
		return false, nil
	}

	closed, err := g.close(ctx, job)
	if err != nil || !closed {
		return closed, err
	}
	metrics.JobsAutoClosed.Inc()
	g.logger.Info("job auto-closed", map[string]interface{}{
		"jobId":     job.ID,
		"count":     count,
		"threshold": threshold,
	})
	return true, nil
}

// CloseJob closes an OPEN job by hand.
func (g *Guard) CloseJob(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := g.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperrors.NewInvalidStatusTransitionError("job", string(job.Status), string(models.JobStatusClosed))
	}

	closed, err := g.close(ctx, job)
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, apperrors.NewJobNotOpenError(jobID, string(models.JobStatusClosed))
	}
	g.logger.Info("job closed", map[string]interface{}{"jobId": jobID})
	return job, nil
}

// close runs the conditional OPEN -> CLOSED write and exports the result
// only when this caller won the transition.
func (g *Guard) close(ctx context.Context, job *models.Job) (bool, error) {
	now := g.now()
	closed, err := g.store.CloseJobIfOpen(ctx, job.ID, now)
	if err != nil {
		return false, apperrors.NewStoreError("close job", err)
	}
	job.Status = models.JobStatusClosed
	if !closed {
		return false, nil
	}
	job.UpdatedAt = now
	metrics.RecordTransition(stage, string(models.JobStatusClosed))
	g.export(ctx, job, export.EventJobClosed)
	return true, nil
}

func (g *Guard) export(ctx context.Context, job *models.Job, event string) {
	if err := g.exporter.ExportJob(ctx, job, event); err != nil {
		g.logger.Warn("job export failed", map[string]interface{}{
			"jobId": job.ID,
			"event": event,
			"error": err.Error(),
		})
	}
}
