package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiring-pipeline/internal/common/config"
	apperrors "hiring-pipeline/internal/common/errors"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/pipeline/interview"
	"hiring-pipeline/internal/pipeline/offer"
	"hiring-pipeline/internal/pipeline/onboarding"
	"hiring-pipeline/internal/pipeline/shortlist"
	"hiring-pipeline/internal/scoring"
	"hiring-pipeline/internal/store/storetest"
)

// scorerFunc adapts a function to scoring.Scorer.
type scorerFunc func(ctx context.Context, jobID, description string) ([]scoring.Result, error)

func (f scorerFunc) ScoreJob(ctx context.Context, jobID, description string) ([]scoring.Result, error) {
	return f(ctx, jobID, description)
}

type hiring struct {
	*Pipeline
	job    *models.Job
	appIDs map[string]string
	scores map[string]float64
}

// newHiring posts a job capped at three candidates and submits a, b and c.
func newHiring(t *testing.T) *hiring {
	t.Helper()
	ctx := context.Background()
	h := &hiring{
		appIDs: map[string]string{},
		scores: map[string]float64{"a": 80, "b": 40, "c": 90},
	}

	scorer := scorerFunc(func(_ context.Context, _, _ string) ([]scoring.Result, error) {
		var out []scoring.Result
		for _, n := range []string{"c", "a", "b"} {
			out = append(out, scoring.Result{ApplicationID: h.appIDs[n], Score: h.scores[n], LLMDecision: "SHORTLIST"})
		}
		return out, nil
	})

	clock := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	h.Pipeline = New(storetest.NewRedis(t), config.PipelineConfig{}, Collaborators{Scorer: scorer},
		logger.NewTestLogger(t), WithClock(func() time.Time { return clock }))

	job, err := h.Capacity.PostJob(ctx, &models.Job{
		Title:         "Backend Engineer",
		Company:       "Acme",
		Location:      "Pune",
		Description:   "Go services",
		MaxCandidates: 3,
	})
	require.NoError(t, err)
	h.job = job

	for _, n := range []string{"a", "b", "c"} {
		res, err := h.Capacity.SubmitApplication(ctx, &models.Application{
			JobID:          job.ID,
			CandidateName:  n,
			CandidateEmail: n + "@example.com",
		})
		require.NoError(t, err)
		h.appIDs[n] = res.Application.ID
	}
	return h
}

func TestCapacityAndShortlist(t *testing.T) {
	h := newHiring(t)
	ctx := context.Background()

	job, err := h.Capacity.GetJob(ctx, h.job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusClosed, job.Status)
	assert.Equal(t, 3, job.ApplicationCount)

	_, err = h.Capacity.SubmitApplication(ctx, &models.Application{
		JobID:          h.job.ID,
		CandidateName:  "d",
		CandidateEmail: "d@example.com",
	})
	assert.Equal(t, apperrors.KindCapacityExceeded, apperrors.KindOf(err))

	min := 50.0
	res, err := h.Shortlist.Shortlist(ctx, shortlist.Request{JobID: h.job.ID, MinScore: &min})
	require.NoError(t, err)
	assert.Equal(t, 2, res.ShortlistedCount)
	assert.Equal(t, 1, res.RejectedCount)
	require.Len(t, res.Candidates, 2)
	assert.Equal(t, h.appIDs["c"], res.Candidates[0].ApplicationID)
	assert.Equal(t, 1, res.Candidates[0].Rank)
	assert.Equal(t, h.appIDs["a"], res.Candidates[1].ApplicationID)
	assert.Equal(t, 2, res.Candidates[1].Rank)
}

func TestHireToOnboarding(t *testing.T) {
	h := newHiring(t)
	ctx := context.Background()

	res, err := h.Shortlist.Shortlist(ctx, shortlist.Request{JobID: h.job.ID})
	require.NoError(t, err)
	top := res.Candidates[0]

	sched, err := h.Interviews.Schedule(ctx, interview.ScheduleRequest{
		CandidateID:   top.ID,
		Round:         models.RoundHR,
		ScheduledDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		ScheduledTime: "10:00",
	})
	require.NoError(t, err)
	assert.True(t, sched.Interview.IsLastRound)

	iv, err := h.Interviews.SubmitFeedback(ctx, interview.FeedbackRequest{
		InterviewID: sched.Interview.ID,
		Decision:    models.DecisionSelected,
	})
	require.NoError(t, err)

	cand, err := h.Shortlist.GetCandidate(ctx, top.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ShortlistStatusInterviewCompleted, cand.Status)

	req := offer.GenerateRequest{
		CandidateID:   top.ID,
		ApplicationID: top.ApplicationID,
		JobID:         h.job.ID,
		InterviewID:   iv.ID,
		Terms: offer.Terms{
			JoiningDate:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			Compensation: models.Compensation{AnnualCTC: 2400000},
		},
	}
	letter, err := h.Offers.Generate(ctx, req)
	require.NoError(t, err)

	_, err = h.Offers.Generate(ctx, req)
	assert.Equal(t, apperrors.KindDuplicateEntity, apperrors.KindOf(err))

	_, err = h.Offers.Send(ctx, letter.ID)
	require.NoError(t, err)
	_, err = h.Offers.Accept(ctx, letter.ID, models.AcceptanceEmail, "")
	require.NoError(t, err)

	ob, err := h.Onboarding.Create(ctx, onboarding.CreateRequest{OfferLetterID: letter.ID})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), ob.ProbationEndDate)

	for _, d := range ob.Documents {
		if !d.IsRequired {
			continue
		}
		_, err = h.Onboarding.UploadDocument(ctx, onboarding.UploadRequest{OnboardingID: ob.ID, DocumentType: d.Type, URL: "s3://docs/" + string(d.Type)})
		require.NoError(t, err)
		_, err = h.Onboarding.VerifyDocument(ctx, ob.ID, d.Type, "hr", "")
		require.NoError(t, err)
	}
	_, err = h.Onboarding.UpdateSystemSetup(ctx, onboarding.SystemSetupRequest{
		OnboardingID: ob.ID, EmailAccountCreated: true, SystemAccessProvided: true, IDCardIssued: true,
	})
	require.NoError(t, err)
	_, err = h.Onboarding.UpdateOrientation(ctx, onboarding.OrientationRequest{OnboardingID: ob.ID, Completed: true})
	require.NoError(t, err)

	done, err := h.Onboarding.Complete(ctx, ob.ID, "hr-lead")
	require.NoError(t, err)
	assert.Equal(t, 100, done.CompletionPercentage)

	app, err := h.Capacity.GetApplication(ctx, top.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, app.Status)
}
