package capacity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "hiring-pipeline/internal/common/errors"
	"hiring-pipeline/internal/common/metrics"
	"hiring-pipeline/internal/common/validation"
	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/store"
)

// SubmitResult describes one accepted application.
type SubmitResult struct {
	Application *models.Application
	Job         *models.Job
	JobClosed   bool
}

// SubmitApplication takes a slot on the job, persists the application and
// then re-evaluates auto-close against the stored application count. Each
// step is individually retryable; a failure after the slot is taken leaves
// the counter one ahead of the records, which only makes the guard stricter.
func (g *Guard) SubmitApplication(ctx context.Context, app *models.Application) (*SubmitResult, error) {
	if err := validateApplication(app); err != nil {
		return nil, err
	}

	job, err := g.RecordApplication(ctx, app.JobID)
	if err != nil {
		g.logger.Warn("application refused", map[string]interface{}{
			"jobId": app.JobID,
			"code":  string(apperrors.CodeOf(err)),
		})
		return nil, err
	}

	now := g.now()
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	app.Status = models.ApplicationStatusSubmitted
	app.AppliedAt = now
	app.UpdatedAt = now
	if err := g.store.CreateApplication(ctx, app); err != nil {
		return nil, apperrors.NewStoreError("create application", err)
	}
	metrics.RecordTransition(stage, string(models.ApplicationStatusSubmitted))

	count, err := g.store.CountApplicationsByJob(ctx, job.ID)
	if err != nil {
		return nil, apperrors.NewStoreError("count applications", err)
	}
	closed, err := g.EvaluateAutoClose(ctx, job, count)
	if err != nil {
		return nil, err
	}

	g.logger.Info("application submitted", map[string]interface{}{
		"applicationId": app.ID,
		"jobId":         job.ID,
		"count":         count,
		"jobClosed":     closed,
	})
	return &SubmitResult{Application: app, Job: job, JobClosed: closed}, nil
}

func validateApplication(app *models.Application) error {
	if app == nil {
		return apperrors.NewInvalidInputError("application is required")
	}
	if app.JobID == "" {
		return apperrors.NewInvalidInputError("jobId is required")
	}
	if strings.TrimSpace(app.CandidateName) == "" {
		return apperrors.NewInvalidInputError("candidateName is required")
	}
	if !validation.IsFormat("email", app.CandidateEmail) {
		return apperrors.NewInvalidInputError("candidateEmail is not a valid address")
	}
	return nil
}

func (g *Guard) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	return getApplication(ctx, g.store, id)
}

func (g *Guard) ListApplications(ctx context.Context, jobID string) ([]*models.Application, error) {
	apps, err := g.store.ListApplicationsByJob(ctx, jobID)
	if err != nil {
		return nil, apperrors.NewStoreError("list applications", err)
	}
	return apps, nil
}

func getApplication(ctx context.Context, apps store.ApplicationStore, id string) (*models.Application, error) {
	app, err := apps.GetApplication(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperrors.NewApplicationNotFoundError(id)
		}
		return nil, apperrors.NewStoreError("get application", err)
	}
	return app, nil
}

// AdvanceApplication moves an application forward to next. Repeating the
// current status is a no-op; a backward move is an InvalidStateTransition.
// The other stages use it to keep the application in step with their own
// aggregates.
func AdvanceApplication(ctx context.Context, apps store.ApplicationStore, id string, next models.ApplicationStatus, now time.Time) (*models.Application, error) {
	app, err := getApplication(ctx, apps, id)
	if err != nil {
		return nil, err
	}
	if app.Status == next {
		return app, nil
	}
	if !app.Status.CanAdvanceTo(next) {
		return nil, apperrors.NewInvalidStatusTransitionError("application", string(app.Status), string(next))
	}

	app.Status = next
	app.UpdatedAt = now
	if err := apps.UpdateApplication(ctx, app); err != nil {
		return nil, apperrors.NewStoreError("update application", err)
	}
	metrics.RecordTransition("application", string(next))
	return app, nil
}

// UpdateApplicationStatus is the manual review path, e.g. SUBMITTED to
// UNDER_REVIEW.
func (g *Guard) UpdateApplicationStatus(ctx context.Context, id string, next models.ApplicationStatus) (*models.Application, error) {
	if !next.IsValid() {
		return nil, apperrors.NewInvalidInputError("unknown application status: " + string(next))
	}
	return AdvanceApplication(ctx, g.store, id, next, g.now())
}
