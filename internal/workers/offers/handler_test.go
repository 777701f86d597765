package offers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiring-pipeline/internal/common/config"
	apperrors "hiring-pipeline/internal/common/errors"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/export"
	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/notify"
	"hiring-pipeline/internal/pipeline/capacity"
	"hiring-pipeline/internal/pipeline/interview"
	"hiring-pipeline/internal/pipeline/offer"
	"hiring-pipeline/internal/store/redisstore"
	"hiring-pipeline/internal/store/storetest"
)

type fixture struct {
	handler    *Handler
	store      *redisstore.Store
	guard      *capacity.Guard
	interviews *interview.Pipeline
	now        time.Time
	jobID      string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewTestLogger(t)
	s := storetest.NewRedis(t)
	f := &fixture{store: s, now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}

	f.guard = capacity.NewGuard(s, export.Noop{}, config.CapacityConfig{AutoCloseThreshold: -1}, log)
	job, err := f.guard.PostJob(context.Background(), &models.Job{Title: "Backend Engineer", Company: "Acme", Location: "Chennai"})
	require.NoError(t, err)
	f.jobID = job.ID

	f.interviews = interview.NewPipeline(s, notify.Noop{}, log)
	lifecycle := offer.NewLifecycle(s, config.OfferConfig{}, log, offer.WithClock(func() time.Time { return f.now }))
	f.handler = NewHandler(lifecycle, log)
	return f
}

// selected returns generate input for a candidate who passed the HR round.
func (f *fixture) selected(t *testing.T, name string) GenerateInput {
	t.Helper()
	ctx := context.Background()
	res, err := f.guard.SubmitApplication(ctx, &models.Application{
		JobID:          f.jobID,
		CandidateName:  name,
		CandidateEmail: name + "@example.com",
	})
	require.NoError(t, err)

	c := &models.ShortlistedCandidate{
		ID:             "sc-" + name,
		ApplicationID:  res.Application.ID,
		JobID:          f.jobID,
		CandidateName:  name,
		CandidateEmail: name + "@example.com",
		Status:         models.ShortlistStatusApproved,
	}
	_, err = f.store.InsertShortlistedIfAbsent(ctx, c)
	require.NoError(t, err)

	sched, err := f.interviews.Schedule(ctx, interview.ScheduleRequest{CandidateID: c.ID, Round: models.RoundHR, ScheduledDate: f.now})
	require.NoError(t, err)
	_, err = f.interviews.SubmitFeedback(ctx, interview.FeedbackRequest{InterviewID: sched.Interview.ID, Decision: models.DecisionSelected})
	require.NoError(t, err)

	return GenerateInput{
		CandidateID:   c.ID,
		ApplicationID: c.ApplicationID,
		JobID:         f.jobID,
		InterviewID:   sched.Interview.ID,
		JoiningDate:   "2026-05-04",
		Compensation:  CompensationInput{AnnualCTC: 2400000},
		Department:    "Payments",
	}
}

func TestGenerateSendAccept(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := f.selected(t, "deepa")

	gen, err := f.handler.Generate(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusGenerated, gen.OfferStatus)
	assert.Equal(t, "2026-05-04", gen.JoiningDate)
	assert.Equal(t, "2026-04-16", gen.ExpiryDate)
	assert.Equal(t, "INR", gen.Currency)
	assert.NotEmpty(t, gen.OfferLetterNumber)

	_, err = f.handler.Generate(ctx, in)
	assert.True(t, apperrors.IsKind(err, apperrors.KindDuplicateEntity))

	sent, err := f.handler.Send(ctx, OfferInput{OfferLetterID: gen.OfferLetterID})
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusSent, sent.OfferStatus)

	accepted, err := f.handler.Accept(ctx, AcceptInput{OfferLetterID: gen.OfferLetterID, AcceptanceMethod: models.AcceptancePortal})
	require.NoError(t, err)
	assert.True(t, accepted.IsAccepted)

	_, err = f.handler.Withdraw(ctx, WithdrawInput{OfferLetterID: gen.OfferLetterID})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidStateTransition))

	dl, err := f.handler.Download(ctx, OfferInput{OfferLetterID: gen.OfferLetterID})
	require.NoError(t, err)
	assert.Equal(t, 1, dl.DownloadCount)
}

func TestGenerate_BadJoiningDate(t *testing.T) {
	f := newFixture(t)
	in := f.selected(t, "imran")
	in.JoiningDate = "next month"

	_, err := f.handler.Generate(context.Background(), in)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.CodeOf(err))
}

func TestRejectAndExpire(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.handler.Generate(ctx, f.selected(t, "lata"))
	require.NoError(t, err)
	second, err := f.handler.Generate(ctx, f.selected(t, "mohan"))
	require.NoError(t, err)

	_, err = f.handler.Send(ctx, OfferInput{OfferLetterID: first.OfferLetterID})
	require.NoError(t, err)
	rejected, err := f.handler.Reject(ctx, RejectInput{OfferLetterID: first.OfferLetterID, RejectionReason: "counter offer"})
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusRejected, rejected.OfferStatus)

	f.now = f.now.AddDate(0, 0, 20)
	out, err := f.handler.ExpireOverdue(ctx, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{second.OfferLetterID}, out.ExpiredOfferIDs)
	assert.Equal(t, 1, out.Count)

	_, err = f.handler.Send(ctx, OfferInput{OfferLetterID: "missing"})
	assert.Equal(t, apperrors.ErrCodeOfferNotFound, apperrors.CodeOf(err))
}

func TestListEligible(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.selected(t, "nisha")
	f.selected(t, "omar")

	out, err := f.handler.ListEligible(ctx, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)

	_, err = f.handler.Generate(ctx, a)
	require.NoError(t, err)

	out, err = f.handler.ListEligible(ctx, EmptyInput{})
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "sc-omar", out.Candidates[0].CandidateID)
}

func TestJobs_GenerateFromVariables(t *testing.T) {
	f := newFixture(t)
	in := f.selected(t, "pooja")
	raw, err := json.Marshal(in)
	require.NoError(t, err)

	out, err := f.handler.Jobs()[TaskGenerate](context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusGenerated, out.(*OfferOutput).OfferStatus)
}
