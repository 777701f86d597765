// Package interview drives candidates through interview rounds and routes
// each round's decision back onto the shortlist.
package interview

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "hiring-pipeline/internal/common/errors"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/common/metrics"
	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/notify"
	"hiring-pipeline/internal/pipeline/capacity"
	"hiring-pipeline/internal/store"
)

const stage = "interview"

type Store interface {
	store.ApplicationStore
	store.ShortlistStore
	store.InterviewStore
}

type Pipeline struct {
	store    Store
	notifier notify.Notifier
	logger   logger.Logger
	now      func() time.Time
}

type Option func(*Pipeline)

func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

func NewPipeline(s Store, notifier notify.Notifier, log logger.Logger, opts ...Option) *Pipeline {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	p := &Pipeline{
		store:    s,
		notifier: notifier,
		logger:   logger.ForComponent(log, "interview-pipeline"),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type ScheduleRequest struct {
	CandidateID       string
	Round             models.InterviewRound
	ScheduledDate     time.Time
	ScheduledTime     string
	Mode              models.InterviewMode
	MeetingLink       string
	Venue             string
	InterviewerNames  []string
	InterviewerEmails []string
	InterviewPanel    string
	Notes             string
	// NotificationType defaults to VOICE_AI for AI rounds and MANUAL
	// otherwise.
	NotificationType string
}

func (r *ScheduleRequest) validate() error {
	if r.CandidateID == "" {
		return apperrors.NewInvalidInputError("candidateId is required")
	}
	if !r.Round.IsValid() {
		return apperrors.NewInvalidInputError("unknown interview round: " + string(r.Round))
	}
	if r.Mode == "" {
		r.Mode = models.ModeOnline
	}
	if !r.Mode.IsValid() {
		return apperrors.NewInvalidInputError("unknown interview mode: " + string(r.Mode))
	}
	if r.ScheduledDate.IsZero() {
		return apperrors.NewInvalidInputError("scheduledDate is required")
	}
	if r.NotificationType == "" {
		r.NotificationType = notify.TypeInvitation
		if r.Round == models.RoundAIVoice {
			r.NotificationType = notify.TypeVoiceAI
		}
	}
	return nil
}

// ScheduleResult carries the persisted interview. NotificationErr is set
// when the invitation could not be delivered; the interview stands anyway.
type ScheduleResult struct {
	Interview       *models.Interview
	NotificationErr error
}

// Schedule books the candidate's next round. A candidate holds at most one
// active interview, and round numbers never go backwards.
func (p *Pipeline) Schedule(ctx context.Context, req ScheduleRequest) (*ScheduleResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	candidate, err := p.getCandidate(ctx, req.CandidateID)
	if err != nil {
		return nil, err
	}
	if !candidate.Status.Schedulable() {
		return nil, apperrors.NewInvalidStatusTransitionError("shortlisted candidate",
			string(candidate.Status), string(models.ShortlistStatusInterviewScheduled))
	}

	history, err := p.store.ListInterviews(ctx, store.InterviewFilter{CandidateID: candidate.ID})
	if err != nil {
		return nil, apperrors.NewStoreError("list interviews", err)
	}
	var previous *models.Interview
	latest := 0
	for _, h := range history {
		if h.Status.IsActive() {
			return nil, apperrors.NewInterviewAlreadyActiveError(candidate.ID, h.ID)
		}
		if h.Status == models.InterviewStatusCancelled {
			continue
		}
		if h.RoundNumber > latest {
			latest = h.RoundNumber
		}
		if h.Decision == models.DecisionNextRound && h.NextRoundID == "" {
			previous = h
		}
	}
	if req.Round.Number() < latest {
		return nil, apperrors.NewRoundOutOfOrderError(string(req.Round), req.Round.Number(), latest)
	}

	now := p.now()
	iv := &models.Interview{
		ID:                     uuid.NewString(),
		ShortlistedCandidateID: candidate.ID,
		ApplicationID:          candidate.ApplicationID,
		JobID:                  candidate.JobID,
		CandidateName:          candidate.CandidateName,
		CandidateEmail:         candidate.CandidateEmail,
		CandidatePhone:         candidate.CandidatePhone,
		JobTitle:               candidate.JobTitle,
		Company:                candidate.Company,
		Round:                  req.Round,
		RoundNumber:            req.Round.Number(),
		IsLastRound:            req.Round.IsLast(),
		ScheduledDate:          req.ScheduledDate,
		ScheduledTime:          req.ScheduledTime,
		Mode:                   req.Mode,
		MeetingLink:            req.MeetingLink,
		Venue:                  req.Venue,
		InterviewerNames:       req.InterviewerNames,
		InterviewerEmails:      req.InterviewerEmails,
		InterviewPanel:         req.InterviewPanel,
		Status:                 models.InterviewStatusScheduled,
		Notes:                  req.Notes,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	// The history check above is a fast path; the store claim decides
	// between concurrent schedulers.
	if err := p.store.CreateInterview(ctx, iv); err != nil {
		if errors.Is(err, store.ErrInterviewActive) {
			return nil, apperrors.NewInterviewAlreadyActiveError(candidate.ID, "")
		}
		return nil, apperrors.NewStoreError("create interview", err)
	}
	metrics.RecordTransition(stage, string(iv.Status))

	if previous != nil {
		previous.NextRoundID = iv.ID
		previous.UpdatedAt = now
		if err := p.store.UpdateInterview(ctx, previous); err != nil {
			p.warn("previous round not linked", previous.ID, err)
		}
	}

	candidate.Status = models.ShortlistStatusInterviewScheduled
	candidate.InterviewScheduled = true
	candidate.InterviewID = iv.ID
	candidate.InterviewDate = &iv.ScheduledDate
	candidate.UpdatedAt = now
	if err := p.store.UpdateShortlisted(ctx, candidate); err != nil {
		p.warn("candidate back-reference not updated", iv.ID, err)
	}
	if _, err := capacity.AdvanceApplication(ctx, p.store, candidate.ApplicationID, models.ApplicationStatusInterviewScheduled, now); err != nil {
		p.warn("application status not advanced", iv.ID, err)
	}

	p.logger.Info("interview scheduled", map[string]interface{}{
		"interviewId": iv.ID,
		"candidateId": candidate.ID,
		"round":       string(iv.Round),
	})
	return &ScheduleResult{Interview: iv, NotificationErr: p.notify(ctx, iv, req.NotificationType)}, nil
}

type BatchRequest struct {
	CandidateIDs []string
	// Template is applied to every candidate; its CandidateID is ignored.
	Template ScheduleRequest
}

type BatchItem struct {
	CandidateID    string
	CandidateEmail string
	Interview      *models.Interview
	Err            error
}

type BatchResult struct {
	TotalScheduled int
	TotalFailed    int
	SuccessEmails  []string
	FailedEmails   []string
	Items          []BatchItem
}

// ScheduleBatch schedules each candidate independently. Failures are
// reported per item and never undo the interviews already booked.
func (p *Pipeline) ScheduleBatch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	if len(req.CandidateIDs) == 0 {
		return nil, apperrors.NewInvalidInputError("at least one candidateId is required")
	}

	res := &BatchResult{}
	for _, id := range req.CandidateIDs {
		one := req.Template
		one.CandidateID = id
		item := BatchItem{CandidateID: id}

		out, err := p.Schedule(ctx, one)
		switch {
		case err != nil:
			item.Err = err
			res.TotalFailed++
			if c, cerr := p.store.GetShortlisted(ctx, id); cerr == nil {
				item.CandidateEmail = c.CandidateEmail
				res.FailedEmails = append(res.FailedEmails, c.CandidateEmail)
			}
		default:
			item.Interview = out.Interview
			item.CandidateEmail = out.Interview.CandidateEmail
			res.TotalScheduled++
			if out.NotificationErr != nil {
				item.Err = out.NotificationErr
				res.FailedEmails = append(res.FailedEmails, item.CandidateEmail)
			} else {
				res.SuccessEmails = append(res.SuccessEmails, item.CandidateEmail)
			}
		}
		res.Items = append(res.Items, item)
	}

	p.logger.Info("batch scheduling finished", map[string]interface{}{
		"scheduled": res.TotalScheduled,
		"failed":    res.TotalFailed,
	})
	return res, nil
}

func (p *Pipeline) GetInterview(ctx context.Context, id string) (*models.Interview, error) {
	iv, err := p.store.GetInterview(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperrors.NewInterviewNotFoundError(id)
		}
		return nil, apperrors.NewStoreError("get interview", err)
	}
	return iv, nil
}

func (p *Pipeline) ListInterviews(ctx context.Context, filter store.InterviewFilter) ([]*models.Interview, error) {
	ivs, err := p.store.ListInterviews(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStoreError("list interviews", err)
	}
	return ivs, nil
}

func (p *Pipeline) getCandidate(ctx context.Context, id string) (*models.ShortlistedCandidate, error) {
	c, err := p.store.GetShortlisted(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperrors.NewCandidateNotFoundError(id)
		}
		return nil, apperrors.NewStoreError("get shortlisted candidate", err)
	}
	return c, nil
}

// notify sends fire-and-forget and records notificationSent on success.
func (p *Pipeline) notify(ctx context.Context, iv *models.Interview, notificationType string) error {
	if err := p.notifier.SendInterviewNotification(ctx, iv, notificationType); err != nil {
		p.warn("interview notification not delivered", iv.ID, err)
		return err
	}
	iv.NotificationSent = true
	if err := p.store.UpdateInterview(ctx, iv); err != nil {
		p.warn("notificationSent not recorded", iv.ID, err)
	}
	return nil
}

func (p *Pipeline) warn(msg, interviewID string, err error) {
	p.logger.Warn(msg, map[string]interface{}{
		"interviewId": interviewID,
		"error":       err.Error(),
	})
}
