// Package interviews exposes the interview pipeline as Zeebe job workers.
package interviews

import (
	"context"

	"hiring-pipeline/internal/common/camunda"
	apperrors "hiring-pipeline/internal/common/errors"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/pipeline/interview"
	"hiring-pipeline/internal/workers"
)

const (
	TaskSchedule      = "interview-schedule"
	TaskScheduleBatch = "interview-schedule-batch"
	TaskFeedback      = "interview-feedback-submit"
	TaskReschedule    = "interview-reschedule"
	TaskCancel        = "interview-cancel"
	TaskNoShow        = "interview-no-show"
)

type Handler struct {
	pipeline *interview.Pipeline
	logger   logger.Logger
}

func NewHandler(p *interview.Pipeline, log logger.Logger) *Handler {
	return &Handler{
		pipeline: p,
		logger:   logger.ForComponent(log, "interviews-worker"),
	}
}

func (h *Handler) Jobs() camunda.JobFuncs {
	return camunda.JobFuncs{
		TaskSchedule:      camunda.Bind(h.Schedule),
		TaskScheduleBatch: camunda.Bind(h.ScheduleBatch),
		TaskFeedback:      camunda.Bind(h.SubmitFeedback),
		TaskReschedule:    camunda.Bind(h.Reschedule),
		TaskCancel:        camunda.Bind(h.Cancel),
		TaskNoShow:        camunda.Bind(h.MarkNoShow),
	}
}

func (s SlotInput) request(candidateID string) (interview.ScheduleRequest, error) {
	date, err := workers.ParseDate("scheduledDate", s.ScheduledDate)
	if err != nil {
		return interview.ScheduleRequest{}, err
	}
	return interview.ScheduleRequest{
		CandidateID:       candidateID,
		Round:             s.InterviewRound,
		ScheduledDate:     date,
		ScheduledTime:     s.ScheduledTime,
		Mode:              s.InterviewMode,
		MeetingLink:       s.MeetingLink,
		Venue:             s.Venue,
		InterviewerNames:  s.InterviewerNames,
		InterviewerEmails: s.InterviewerEmails,
		InterviewPanel:    s.InterviewPanel,
		Notes:             s.Notes,
		NotificationType:  s.NotificationType,
	}, nil
}

func toOutput(iv *models.Interview) *InterviewOutput {
	return &InterviewOutput{
		InterviewID:      iv.ID,
		InterviewStatus:  iv.Status,
		InterviewRound:   iv.Round,
		RoundNumber:      iv.RoundNumber,
		IsLastRound:      iv.IsLastRound,
		CandidateID:      iv.ShortlistedCandidateID,
		ApplicationID:    iv.ApplicationID,
		JobID:            iv.JobID,
		CandidateEmail:   iv.CandidateEmail,
		ScheduledDate:    workers.FormatDate(iv.ScheduledDate),
		ScheduledTime:    iv.ScheduledTime,
		Decision:         iv.Decision,
		NotificationSent: iv.NotificationSent,
		OfferEligible:    iv.Round == models.RoundHR && iv.Decision == models.DecisionSelected,
	}
}

func (h *Handler) withNotification(res *interview.ScheduleResult) *InterviewOutput {
	out := toOutput(res.Interview)
	if res.NotificationErr != nil {
		out.NotificationError = res.NotificationErr.Error()
		h.logger.Warn("interview notification failed", map[string]interface{}{
			"interviewId": res.Interview.ID,
			"error":       res.NotificationErr.Error(),
		})
	}
	return out
}

func (h *Handler) Schedule(ctx context.Context, in ScheduleInput) (*InterviewOutput, error) {
	req, err := in.request(in.CandidateID)
	if err != nil {
		return nil, err
	}
	res, err := h.pipeline.Schedule(ctx, req)
	if err != nil {
		return nil, err
	}
	return h.withNotification(res), nil
}

func (h *Handler) ScheduleBatch(ctx context.Context, in BatchInput) (*BatchOutput, error) {
	tmpl, err := in.request("")
	if err != nil {
		return nil, err
	}
	res, err := h.pipeline.ScheduleBatch(ctx, interview.BatchRequest{CandidateIDs: in.CandidateIDs, Template: tmpl})
	if err != nil {
		return nil, err
	}

	out := &BatchOutput{
		TotalScheduled: res.TotalScheduled,
		TotalFailed:    res.TotalFailed,
		SuccessEmails:  append([]string{}, res.SuccessEmails...),
		FailedEmails:   append([]string{}, res.FailedEmails...),
		InterviewIDs:   []string{},
	}
	for _, item := range res.Items {
		if item.Interview != nil {
			out.InterviewIDs = append(out.InterviewIDs, item.Interview.ID)
		}
		if item.Err != nil {
			se := apperrors.Normalize(item.Err)
			out.Failures = append(out.Failures, BatchFailure{
				CandidateID: item.CandidateID,
				Email:       item.CandidateEmail,
				ErrorCode:   string(se.Code),
				Message:     se.Error(),
			})
		}
	}
	return out, nil
}

func (h *Handler) SubmitFeedback(ctx context.Context, in FeedbackInput) (*InterviewOutput, error) {
	iv, err := h.pipeline.SubmitFeedback(ctx, interview.FeedbackRequest{
		InterviewID:        in.InterviewID,
		Decision:           in.Decision,
		TechnicalScore:     in.TechnicalScore,
		CommunicationScore: in.CommunicationScore,
		OverallRating:      in.OverallRating,
		Feedback:           in.Feedback,
		InterviewerRemarks: in.InterviewerRemarks,
	})
	if err != nil {
		return nil, err
	}
	return toOutput(iv), nil
}

func (h *Handler) Reschedule(ctx context.Context, in RescheduleInput) (*InterviewOutput, error) {
	date, err := workers.ParseDate("scheduledDate", in.ScheduledDate)
	if err != nil {
		return nil, err
	}
	res, err := h.pipeline.Reschedule(ctx, in.InterviewID, date, in.ScheduledTime, in.Notes)
	if err != nil {
		return nil, err
	}
	return h.withNotification(res), nil
}

func (h *Handler) Cancel(ctx context.Context, in CancelInput) (*InterviewOutput, error) {
	iv, err := h.pipeline.Cancel(ctx, in.InterviewID, in.Reason)
	if err != nil {
		return nil, err
	}
	return toOutput(iv), nil
}

func (h *Handler) MarkNoShow(ctx context.Context, in NoShowInput) (*InterviewOutput, error) {
	iv, err := h.pipeline.MarkNoShow(ctx, in.InterviewID)
	if err != nil {
		return nil, err
	}
	return toOutput(iv), nil
}
