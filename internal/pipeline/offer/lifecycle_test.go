package offer

import (
	"context"
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
	"hiring-pipeline/internal/store/redisstore"
	"hiring-pipeline/internal/store/storetest"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

type fixture struct {
	store      *redisstore.Store
	guard      *capacity.Guard
	interviews *interview.Pipeline
	offers     *Lifecycle
	clock      *clock
	job        *models.Job
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := storetest.NewRedis(t)
	log := logger.NewTestLogger(t)
	clk := &clock{t: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}

	guard := capacity.NewGuard(s, export.Noop{}, config.CapacityConfig{AutoCloseThreshold: -1}, log)
	job, err := guard.PostJob(context.Background(), &models.Job{Title: "Backend Engineer", Company: "Acme", Location: "Pune"})
	require.NoError(t, err)

	return &fixture{
		store:      s,
		guard:      guard,
		interviews: interview.NewPipeline(s, notify.Noop{}, log),
		offers:     NewLifecycle(s, config.OfferConfig{}, log, WithClock(clk.now)),
		clock:      clk,
		job:        job,
	}
}

// candidateAt shortlists a new applicant and completes one interview in
// round with decision.
func (f *fixture) candidateAt(t *testing.T, name string, round models.InterviewRound, decision models.InterviewDecision) (*models.ShortlistedCandidate, *models.Interview) {
	t.Helper()
	ctx := context.Background()
	res, err := f.guard.SubmitApplication(ctx, &models.Application{
		JobID:          f.job.ID,
		CandidateName:  name,
		CandidateEmail: name + "@example.com",
		CandidatePhone: "+15550100",
	})
	require.NoError(t, err)

	c := &models.ShortlistedCandidate{
		ID:             "sc-" + name,
		ApplicationID:  res.Application.ID,
		JobID:          f.job.ID,
		CandidateName:  name,
		CandidateEmail: name + "@example.com",
		Status:         models.ShortlistStatusApproved,
		Rank:           1,
	}
	_, err = f.store.InsertShortlistedIfAbsent(ctx, c)
	require.NoError(t, err)

	sched, err := f.interviews.Schedule(ctx, interview.ScheduleRequest{
		CandidateID:   c.ID,
		Round:         round,
		ScheduledDate: f.clock.t,
	})
	require.NoError(t, err)
	iv, err := f.interviews.SubmitFeedback(ctx, interview.FeedbackRequest{InterviewID: sched.Interview.ID, Decision: decision})
	require.NoError(t, err)
	return c, iv
}

func (f *fixture) request(c *models.ShortlistedCandidate, iv *models.Interview) GenerateRequest {
	return GenerateRequest{
		CandidateID:   c.ID,
		ApplicationID: c.ApplicationID,
		JobID:         f.job.ID,
		InterviewID:   iv.ID,
		Terms: Terms{
			JoiningDate:  f.clock.t.AddDate(0, 1, 0),
			Compensation: models.Compensation{AnnualCTC: 1800000, BasicSalary: 900000},
			Department:   "Platform",
		},
	}
}

func (f *fixture) candidate(t *testing.T, id string) *models.ShortlistedCandidate {
	t.Helper()
	c, err := f.store.GetShortlisted(context.Background(), id)
	require.NoError(t, err)
	return c
}

func TestGenerate_AppliesDefaults(t *testing.T) {
	f := newFixture(t)
	c, iv := f.candidateAt(t, "asha", models.RoundHR, models.DecisionSelected)

	offer, err := f.offers.Generate(context.Background(), f.request(c, iv))
	require.NoError(t, err)

	assert.Equal(t, models.OfferStatusGenerated, offer.Status)
	assert.Regexp(t, `^OL-\d+-[0-9A-F]{6}$`, offer.OfferNumber)
	assert.Equal(t, 3, offer.ProbationPeriod)
	assert.Equal(t, 30, offer.NoticePeriod)
	assert.Equal(t, 24, offer.PaidLeaves)
	assert.Equal(t, "INR", offer.Compensation.Currency)
	assert.Equal(t, models.EmploymentFullTime, offer.EmploymentType)
	assert.Equal(t, "ONSITE", offer.WorkLocation)
	assert.Equal(t, "Pune", offer.OfficeLocation)
	assert.Equal(t, "Platform", offer.Department)
	assert.Equal(t, "+15550100", offer.CandidatePhone)
	assert.Equal(t, f.clock.t.AddDate(0, 0, 15), offer.ExpiryDate)

	stored := f.candidate(t, c.ID)
	assert.True(t, stored.OfferLetterGenerated)
	assert.Equal(t, offer.ID, stored.OfferLetterID)
	assert.Equal(t, models.ShortlistStatusOfferExtended, stored.Status)
}

func TestGenerate_SecondAttemptIsDuplicate(t *testing.T) {
	f := newFixture(t)
	c, iv := f.candidateAt(t, "asha", models.RoundHR, models.DecisionSelected)

	_, err := f.offers.Generate(context.Background(), f.request(c, iv))
	require.NoError(t, err)

	_, err = f.offers.Generate(context.Background(), f.request(c, iv))
	assert.Equal(t, apperrors.ErrCodeOfferAlreadyExists, apperrors.CodeOf(err))
	assert.Equal(t, apperrors.KindDuplicateEntity, apperrors.KindOf(err))
}

func TestGenerate_RequiresHRSelection(t *testing.T) {
	f := newFixture(t)

	c, iv := f.candidateAt(t, "asha", models.RoundTwo, models.DecisionNextRound)
	_, err := f.offers.Generate(context.Background(), f.request(c, iv))
	assert.Equal(t, apperrors.ErrCodeInterviewNotEligible, apperrors.CodeOf(err))
	assert.Equal(t, apperrors.KindPreconditionFailed, apperrors.KindOf(err))

	c, iv = f.candidateAt(t, "bo", models.RoundHR, models.DecisionOnHold)
	_, err = f.offers.Generate(context.Background(), f.request(c, iv))
	assert.Equal(t, apperrors.KindPreconditionFailed, apperrors.KindOf(err))

	other, _ := f.candidateAt(t, "cy", models.RoundHR, models.DecisionSelected)
	_, hr := f.candidateAt(t, "di", models.RoundHR, models.DecisionSelected)
	_, err = f.offers.Generate(context.Background(), f.request(other, hr))
	assert.Equal(t, apperrors.ErrCodeInterviewNotEligible, apperrors.CodeOf(err))
}

func TestGenerate_Validation(t *testing.T) {
	f := newFixture(t)
	c, iv := f.candidateAt(t, "asha", models.RoundHR, models.DecisionSelected)

	req := f.request(c, iv)
	req.Terms.JoiningDate = time.Time{}
	_, err := f.offers.Generate(context.Background(), req)
	assert.Equal(t, apperrors.KindValidationFailed, apperrors.KindOf(err))

	req = f.request(c, iv)
	req.InterviewID = "missing"
	_, err = f.offers.Generate(context.Background(), req)
	assert.Equal(t, apperrors.ErrCodeInterviewNotFound, apperrors.CodeOf(err))
}

func TestSendAcceptFlow(t *testing.T) {
	f := newFixture(t)
	c, iv := f.candidateAt(t, "asha", models.RoundHR, models.DecisionSelected)
	offer, err := f.offers.Generate(context.Background(), f.request(c, iv))
	require.NoError(t, err)

	_, err = f.offers.Accept(context.Background(), offer.ID, "", "")
	assert.Equal(t, apperrors.KindInvalidStateTransition, apperrors.KindOf(err))

	sent, err := f.offers.Send(context.Background(), offer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusSent, sent.Status)
	assert.NotNil(t, sent.SentAt)
	assert.Equal(t, models.ShortlistStatusOfferLetterSent, f.candidate(t, c.ID).Status)

	accepted, err := f.offers.Accept(context.Background(), offer.ID, "", "looking forward")
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusAccepted, accepted.Status)
	assert.True(t, accepted.IsAccepted)
	assert.Equal(t, models.AcceptancePortal, accepted.AcceptanceMethod)
	assert.NotNil(t, accepted.RespondedAt)
	assert.Equal(t, models.ShortlistStatusOfferAccepted, f.candidate(t, c.ID).Status)

	app, err := f.guard.GetApplication(context.Background(), c.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, app.Status)

	_, err = f.offers.Reject(context.Background(), offer.ID, "changed mind")
	assert.Equal(t, apperrors.KindInvalidStateTransition, apperrors.KindOf(err))
}

func TestReject(t *testing.T) {
	f := newFixture(t)
	c, iv := f.candidateAt(t, "asha", models.RoundHR, models.DecisionSelected)
	offer, err := f.offers.Generate(context.Background(), f.request(c, iv))
	require.NoError(t, err)

	_, err = f.offers.Reject(context.Background(), offer.ID, "too early")
	assert.Equal(t, apperrors.KindInvalidStateTransition, apperrors.KindOf(err))

	_, err = f.offers.Send(context.Background(), offer.ID)
	require.NoError(t, err)
	rejected, err := f.offers.Reject(context.Background(), offer.ID, "counter offer")
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusRejected, rejected.Status)
	assert.Equal(t, "counter offer", rejected.RejectionReason)
	assert.Equal(t, models.ShortlistStatusOfferRejected, f.candidate(t, c.ID).Status)
}

func TestAccept_AfterExpiry(t *testing.T) {
	f := newFixture(t)
	c, iv := f.candidateAt(t, "asha", models.RoundHR, models.DecisionSelected)
	offer, err := f.offers.Generate(context.Background(), f.request(c, iv))
	require.NoError(t, err)
	_, err = f.offers.Send(context.Background(), offer.ID)
	require.NoError(t, err)

	f.clock.t = f.clock.t.AddDate(0, 0, 16)
	_, err = f.offers.Accept(context.Background(), offer.ID, models.AcceptanceEmail, "")
	assert.Equal(t, apperrors.ErrCodeOfferExpired, apperrors.CodeOf(err))
	assert.Equal(t, apperrors.KindPreconditionFailed, apperrors.KindOf(err))

	expired, err := f.offers.ExpireOverdue(context.Background())
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, models.OfferStatusExpired, expired[0].Status)

	again, err := f.offers.ExpireOverdue(context.Background())
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestWithdrawAndDownload(t *testing.T) {
	f := newFixture(t)
	c, iv := f.candidateAt(t, "asha", models.RoundHR, models.DecisionSelected)
	offer, err := f.offers.Generate(context.Background(), f.request(c, iv))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = f.offers.Download(context.Background(), offer.ID)
		require.NoError(t, err)
	}
	got, err := f.offers.GetOffer(context.Background(), offer.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDownloaded)
	assert.Equal(t, 2, got.DownloadCount)
	assert.Equal(t, models.OfferStatusGenerated, got.Status)

	withdrawn, err := f.offers.Withdraw(context.Background(), offer.ID, "position frozen")
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusWithdrawn, withdrawn.Status)

	_, err = f.offers.Send(context.Background(), offer.ID)
	assert.Equal(t, apperrors.KindInvalidStateTransition, apperrors.KindOf(err))

	_, err = f.offers.Download(context.Background(), "missing")
	assert.Equal(t, apperrors.ErrCodeOfferNotFound, apperrors.CodeOf(err))
}

func TestListEligibleCandidates(t *testing.T) {
	f := newFixture(t)
	a, aiv := f.candidateAt(t, "asha", models.RoundHR, models.DecisionSelected)
	b, _ := f.candidateAt(t, "bo", models.RoundHR, models.DecisionSelected)
	f.candidateAt(t, "cy", models.RoundHR, models.DecisionRejected)

	eligible, err := f.offers.ListEligibleCandidates(context.Background())
	require.NoError(t, err)
	assert.Len(t, eligible, 2)

	_, err = f.offers.Generate(context.Background(), f.request(a, aiv))
	require.NoError(t, err)

	eligible, err = f.offers.ListEligibleCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, b.ID, eligible[0].ID)
}
