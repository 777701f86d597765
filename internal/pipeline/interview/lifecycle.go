package interview

import (
	"context"
	"fmt"
	"time"

	apperrors "hiring-pipeline/internal/common/errors"
	"hiring-pipeline/internal/common/metrics"
	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/notify"
	"hiring-pipeline/internal/pipeline/capacity"
)

const (
	minScore = 0.0
	maxScore = 10.0
)

type FeedbackRequest struct {
	InterviewID        string
	Decision           models.InterviewDecision
	TechnicalScore     *float64
	CommunicationScore *float64
	OverallRating      *float64
	Feedback           string
	InterviewerRemarks string
}

func (r FeedbackRequest) validate() error {
	if r.InterviewID == "" {
		return apperrors.NewInvalidInputError("interviewId is required")
	}
	if !r.Decision.IsValid() {
		return apperrors.NewInvalidInputError("unknown decision: " + string(r.Decision))
	}
	for name, score := range map[string]*float64{
		"technicalScore":     r.TechnicalScore,
		"communicationScore": r.CommunicationScore,
		"overallRating":      r.OverallRating,
	} {
		if score != nil && (*score < minScore || *score > maxScore) {
			return apperrors.NewInvalidInputError(fmt.Sprintf("%s must be between %.0f and %.0f", name, minScore, maxScore))
		}
	}
	return nil
}

// SubmitFeedback completes an active interview and routes its decision:
//
//	NEXT_ROUND          candidate MOVED_TO_NEXT_ROUND
//	SELECTED (HR round) candidate INTERVIEW_COMPLETED, offer eligible
//	REJECTED            candidate and application REJECTED
//	ON_HOLD             candidate unchanged
func (p *Pipeline) SubmitFeedback(ctx context.Context, req FeedbackRequest) (*models.Interview, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	iv, err := p.GetInterview(ctx, req.InterviewID)
	if err != nil {
		return nil, err
	}
	if !iv.Status.IsActive() {
		return nil, apperrors.NewInvalidStatusTransitionError("interview", string(iv.Status), string(models.InterviewStatusCompleted))
	}
	switch {
	case req.Decision == models.DecisionSelected && !iv.IsLastRound:
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("SELECTED is only valid on %s, interview is %s; use NEXT_ROUND", models.RoundHR, iv.Round))
	case req.Decision == models.DecisionNextRound && iv.IsLastRound:
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("%s is the last round; decide SELECTED, REJECTED or ON_HOLD", models.RoundHR))
	}
	candidate, err := p.getCandidate(ctx, iv.ShortlistedCandidateID)
	if err != nil {
		return nil, err
	}

	now := p.now()
	iv.Status = models.InterviewStatusCompleted
	iv.Decision = req.Decision
	iv.TechnicalScore = req.TechnicalScore
	iv.CommunicationScore = req.CommunicationScore
	iv.OverallRating = req.OverallRating
	iv.Feedback = req.Feedback
	iv.InterviewerRemarks = req.InterviewerRemarks
	iv.UpdatedAt = now
	if err := p.store.UpdateInterview(ctx, iv); err != nil {
		return nil, apperrors.NewStoreError("update interview", err)
	}
	metrics.RecordTransition(stage, string(iv.Status))

	next := candidate.Status
	switch req.Decision {
	case models.DecisionNextRound:
		next = models.ShortlistStatusMovedToNextRound
		candidate.Notes = fmt.Sprintf("Cleared %s", iv.Round)
	case models.DecisionSelected:
		next = models.ShortlistStatusInterviewCompleted
		candidate.Notes = "Cleared all interview rounds"
	case models.DecisionRejected:
		next = models.ShortlistStatusRejected
		candidate.Notes = fmt.Sprintf("Rejected in %s", iv.Round)
	}
	if next != candidate.Status {
		candidate.Status = next
		candidate.UpdatedAt = now
		if err := p.store.UpdateShortlisted(ctx, candidate); err != nil {
			return nil, apperrors.NewStoreError("update shortlisted candidate", err)
		}
		metrics.RecordTransition("shortlist", string(next))
	}

	if req.Decision == models.DecisionRejected {
		if _, err := capacity.AdvanceApplication(ctx, p.store, iv.ApplicationID, models.ApplicationStatusRejected, now); err != nil {
			p.warn("application not rejected", iv.ID, err)
		}
	}

	p.logger.Info("interview feedback recorded", map[string]interface{}{
		"interviewId":     iv.ID,
		"round":           string(iv.Round),
		"decision":        string(req.Decision),
		"candidateStatus": string(candidate.Status),
	})
	return iv, nil
}

// Reschedule moves an active interview to a new slot and re-notifies the
// candidate. The returned error is nil even when the notification fails;
// that failure is reported separately.
func (p *Pipeline) Reschedule(ctx context.Context, interviewID string, date time.Time, slot, notes string) (*ScheduleResult, error) {
	if date.IsZero() {
		return nil, apperrors.NewInvalidInputError("scheduledDate is required")
	}
	iv, err := p.activeInterview(ctx, interviewID, models.InterviewStatusRescheduled)
	if err != nil {
		return nil, err
	}

	now := p.now()
	iv.ScheduledDate = date
	iv.ScheduledTime = slot
	iv.Status = models.InterviewStatusRescheduled
	if notes != "" {
		iv.Notes = notes
	}
	iv.UpdatedAt = now
	if err := p.store.UpdateInterview(ctx, iv); err != nil {
		return nil, apperrors.NewStoreError("update interview", err)
	}
	metrics.RecordTransition(stage, string(iv.Status))
	p.updateCandidateSlot(ctx, iv, &iv.ScheduledDate, now)

	return &ScheduleResult{Interview: iv, NotificationErr: p.notify(ctx, iv, notify.TypeRescheduled)}, nil
}

// Cancel frees the candidate for a new booking of the same round.
func (p *Pipeline) Cancel(ctx context.Context, interviewID, reason string) (*models.Interview, error) {
	iv, err := p.activeInterview(ctx, interviewID, models.InterviewStatusCancelled)
	if err != nil {
		return nil, err
	}

	now := p.now()
	iv.Status = models.InterviewStatusCancelled
	if reason != "" {
		iv.Notes = "Cancelled: " + reason
	}
	iv.UpdatedAt = now
	if err := p.store.UpdateInterview(ctx, iv); err != nil {
		return nil, apperrors.NewStoreError("update interview", err)
	}
	metrics.RecordTransition(stage, string(iv.Status))
	p.updateCandidateSlot(ctx, iv, nil, now)
	_ = p.notify(ctx, iv, notify.TypeCancelled)

	p.logger.Info("interview cancelled", map[string]interface{}{"interviewId": iv.ID})
	return iv, nil
}

func (p *Pipeline) MarkNoShow(ctx context.Context, interviewID string) (*models.Interview, error) {
	iv, err := p.activeInterview(ctx, interviewID, models.InterviewStatusNoShow)
	if err != nil {
		return nil, err
	}

	now := p.now()
	iv.Status = models.InterviewStatusNoShow
	iv.UpdatedAt = now
	if err := p.store.UpdateInterview(ctx, iv); err != nil {
		return nil, apperrors.NewStoreError("update interview", err)
	}
	metrics.RecordTransition(stage, string(iv.Status))
	p.updateCandidateSlot(ctx, iv, nil, now)

	p.logger.Info("interview marked no-show", map[string]interface{}{"interviewId": iv.ID})
	return iv, nil
}

func (p *Pipeline) activeInterview(ctx context.Context, id string, to models.InterviewStatus) (*models.Interview, error) {
	iv, err := p.GetInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	if !iv.Status.IsActive() {
		return nil, apperrors.NewInvalidStatusTransitionError("interview", string(iv.Status), string(to))
	}
	return iv, nil
}

// updateCandidateSlot keeps the candidate's interview back-reference in
// step. A nil date releases the slot.
func (p *Pipeline) updateCandidateSlot(ctx context.Context, iv *models.Interview, date *time.Time, now time.Time) {
	c, err := p.store.GetShortlisted(ctx, iv.ShortlistedCandidateID)
	if err != nil {
		p.warn("candidate back-reference not loaded", iv.ID, err)
		return
	}
	if c.InterviewID != iv.ID {
		return
	}
	c.InterviewDate = date
	c.InterviewScheduled = date != nil
	c.UpdatedAt = now
	if err := p.store.UpdateShortlisted(ctx, c); err != nil {
		p.warn("candidate back-reference not updated", iv.ID, err)
	}
}
