// Package jobs exposes the capacity guard as Zeebe job workers.
package jobs

import (
	"context"
	"time"

	"hiring-pipeline/internal/common/camunda"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/pipeline/capacity"
)

const (
	TaskPostJob           = "job-post"
	TaskCloseJob          = "job-close"
	TaskSubmitApplication = "application-submit"
)

type Handler struct {
	guard  *capacity.Guard
	logger logger.Logger
}

func NewHandler(guard *capacity.Guard, log logger.Logger) *Handler {
	return &Handler{
		guard:  guard,
		logger: logger.ForComponent(log, "jobs-worker"),
	}
}

// Jobs returns the task types served by this package.
func (h *Handler) Jobs() camunda.JobFuncs {
	return camunda.JobFuncs{
		TaskPostJob:           camunda.Bind(h.PostJob),
		TaskCloseJob:          camunda.Bind(h.CloseJob),
		TaskSubmitApplication: camunda.Bind(h.SubmitApplication),
	}
}

func (h *Handler) PostJob(ctx context.Context, in PostJobInput) (*PostJobOutput, error) {
	job, err := h.guard.PostJob(ctx, &models.Job{
		ID:              in.JobID,
		Title:           in.Title,
		Company:         in.Company,
		Description:     in.Description,
		Location:        in.Location,
		EmploymentType:  in.EmploymentType,
		ExperienceLevel: in.ExperienceLevel,
		RequiredSkills:  in.RequiredSkills,
		SalaryRange:     in.SalaryRange,
		PostedBy:        in.PostedBy,
		MaxCandidates:   in.MaxCandidates,
	})
	if err != nil {
		return nil, err
	}
	return &PostJobOutput{
		JobID:         job.ID,
		JobStatus:     job.Status,
		MaxCandidates: job.MaxCandidates,
		PostedAt:      job.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (h *Handler) CloseJob(ctx context.Context, in CloseJobInput) (*CloseJobOutput, error) {
	job, err := h.guard.CloseJob(ctx, in.JobID)
	if err != nil {
		return nil, err
	}
	return &CloseJobOutput{
		JobID:            job.ID,
		JobStatus:        job.Status,
		ApplicationCount: job.ApplicationCount,
	}, nil
}

func (h *Handler) SubmitApplication(ctx context.Context, in SubmitApplicationInput) (*SubmitApplicationOutput, error) {
	res, err := h.guard.SubmitApplication(ctx, &models.Application{
		JobID:          in.JobID,
		CandidateName:  in.CandidateName,
		CandidateEmail: in.CandidateEmail,
		CandidatePhone: in.CandidatePhone,
		CoverLetter:    in.CoverLetter,
		ResumeFileName: in.ResumeFileName,
	})
	if err != nil {
		return nil, err
	}
	if res.JobClosed {
		h.logger.Info("application filled the job", map[string]interface{}{
			"jobId":         res.Job.ID,
			"applicationId": res.Application.ID,
		})
	}
	return &SubmitApplicationOutput{
		ApplicationID:     res.Application.ID,
		ApplicationStatus: res.Application.Status,
		JobID:             res.Job.ID,
		JobStatus:         res.Job.Status,
		ApplicationCount:  res.Job.ApplicationCount,
		JobClosed:         res.JobClosed,
	}, nil
}
