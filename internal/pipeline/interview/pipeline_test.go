package interview

import (
	"context"
	"errors"
	"sync"
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
	"hiring-pipeline/internal/store"
	"hiring-pipeline/internal/store/redisstore"
	"hiring-pipeline/internal/store/storetest"
)

type sentNotification struct {
	interviewID string
	kind        string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (f *fakeNotifier) SendInterviewNotification(_ context.Context, iv *models.Interview, kind string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentNotification{iv.ID, kind})
	return f.err
}

type fixture struct {
	store    *redisstore.Store
	guard    *capacity.Guard
	pipeline *Pipeline
	notifier *fakeNotifier
	job      *models.Job
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := storetest.NewRedis(t)
	log := logger.NewTestLogger(t)
	guard := capacity.NewGuard(s, export.Noop{}, config.CapacityConfig{AutoCloseThreshold: -1}, log)
	job, err := guard.PostJob(context.Background(), &models.Job{Title: "Backend Engineer", Company: "Acme"})
	require.NoError(t, err)

	n := &fakeNotifier{}
	return &fixture{store: s, guard: guard, pipeline: NewPipeline(s, n, log), notifier: n, job: job}
}

// seedCandidate submits an application and shortlists it.
func (f *fixture) seedCandidate(t *testing.T, name string) *models.ShortlistedCandidate {
	t.Helper()
	ctx := context.Background()
	res, err := f.guard.SubmitApplication(ctx, &models.Application{
		JobID:          f.job.ID,
		CandidateName:  name,
		CandidateEmail: name + "@example.com",
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	c := &models.ShortlistedCandidate{
		ID:             "sc-" + name,
		ApplicationID:  res.Application.ID,
		JobID:          f.job.ID,
		JobTitle:       f.job.Title,
		Company:        f.job.Company,
		CandidateName:  name,
		CandidateEmail: name + "@example.com",
		FinalScore:     80,
		Status:         models.ShortlistStatusPendingReview,
		Rank:           1,
		ShortlistedAt:  now,
		UpdatedAt:      now,
	}
	ok, err := f.store.InsertShortlistedIfAbsent(ctx, c)
	require.NoError(t, err)
	require.True(t, ok)
	return c
}

func (f *fixture) schedule(t *testing.T, candidateID string, round models.InterviewRound) *models.Interview {
	t.Helper()
	res, err := f.pipeline.Schedule(context.Background(), ScheduleRequest{
		CandidateID:   candidateID,
		Round:         round,
		ScheduledDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		ScheduledTime: "10:00",
	})
	require.NoError(t, err)
	return res.Interview
}

func (f *fixture) feedback(t *testing.T, interviewID string, d models.InterviewDecision) (*models.Interview, error) {
	t.Helper()
	return f.pipeline.SubmitFeedback(context.Background(), FeedbackRequest{InterviewID: interviewID, Decision: d})
}

func score(v float64) *float64 { return &v }

func TestSchedule(t *testing.T) {
	f := newFixture(t)
	c := f.seedCandidate(t, "asha")

	iv := f.schedule(t, c.ID, models.RoundOne)

	assert.Equal(t, models.InterviewStatusScheduled, iv.Status)
	assert.Equal(t, 1, iv.RoundNumber)
	assert.False(t, iv.IsLastRound)
	assert.Equal(t, models.ModeOnline, iv.Mode)
	assert.True(t, iv.NotificationSent)
	assert.Equal(t, []sentNotification{{iv.ID, notify.TypeInvitation}}, f.notifier.sent)

	stored, err := f.store.GetShortlisted(context.Background(), c.ID)
	require.NoError(t, err)
	assert.True(t, stored.InterviewScheduled)
	assert.Equal(t, iv.ID, stored.InterviewID)
	assert.Equal(t, models.ShortlistStatusInterviewScheduled, stored.Status)

	app, err := f.guard.GetApplication(context.Background(), c.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusInterviewScheduled, app.Status)
}

func TestSchedule_HRRoundIsLast(t *testing.T) {
	f := newFixture(t)
	c := f.seedCandidate(t, "asha")

	iv := f.schedule(t, c.ID, models.RoundHR)
	assert.Equal(t, 3, iv.RoundNumber)
	assert.True(t, iv.IsLastRound)
}

func TestSchedule_NotificationFailureDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("ses down")
	c := f.seedCandidate(t, "asha")

	res, err := f.pipeline.Schedule(context.Background(), ScheduleRequest{
		CandidateID:   c.ID,
		Round:         models.RoundAIVoice,
		ScheduledDate: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Error(t, res.NotificationErr)
	assert.False(t, res.Interview.NotificationSent)
	assert.Equal(t, notify.TypeVoiceAI, f.notifier.sent[0].kind)

	stored, err := f.pipeline.GetInterview(context.Background(), res.Interview.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InterviewStatusScheduled, stored.Status)
}

func TestSchedule_Guards(t *testing.T) {
	f := newFixture(t)
	c := f.seedCandidate(t, "asha")
	first := f.schedule(t, c.ID, models.RoundTwo)

	_, err := f.pipeline.Schedule(context.Background(), ScheduleRequest{CandidateID: c.ID, Round: models.RoundHR, ScheduledDate: time.Now()})
	assert.Equal(t, apperrors.ErrCodeInterviewAlreadyActive, apperrors.CodeOf(err))
	assert.Equal(t, apperrors.KindInvalidStateTransition, apperrors.KindOf(err))

	_, err = f.feedback(t, first.ID, models.DecisionNextRound)
	require.NoError(t, err)

	_, err = f.pipeline.Schedule(context.Background(), ScheduleRequest{CandidateID: c.ID, Round: models.RoundOne, ScheduledDate: time.Now()})
	assert.Equal(t, apperrors.ErrCodeRoundOutOfOrder, apperrors.CodeOf(err))
	assert.Equal(t, apperrors.KindPreconditionFailed, apperrors.KindOf(err))

	_, err = f.pipeline.Schedule(context.Background(), ScheduleRequest{CandidateID: "missing", Round: models.RoundOne, ScheduledDate: time.Now()})
	assert.Equal(t, apperrors.ErrCodeCandidateNotFound, apperrors.CodeOf(err))

	_, err = f.pipeline.Schedule(context.Background(), ScheduleRequest{CandidateID: c.ID, Round: "ROUND_9", ScheduledDate: time.Now()})
	assert.Equal(t, apperrors.KindValidationFailed, apperrors.KindOf(err))
}

func TestSchedule_RejectedCandidateRefused(t *testing.T) {
	f := newFixture(t)
	c := f.seedCandidate(t, "asha")
	iv := f.schedule(t, c.ID, models.RoundOne)
	_, err := f.feedback(t, iv.ID, models.DecisionRejected)
	require.NoError(t, err)

	_, err = f.pipeline.Schedule(context.Background(), ScheduleRequest{CandidateID: c.ID, Round: models.RoundTwo, ScheduledDate: time.Now()})
	assert.Equal(t, apperrors.KindInvalidStateTransition, apperrors.KindOf(err))
}

func TestSchedule_ConcurrentBooksOnce(t *testing.T) {
	f := newFixture(t)
	c := f.seedCandidate(t, "asha")
	ctx := context.Background()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		booked int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.pipeline.Schedule(ctx, ScheduleRequest{
				CandidateID:   c.ID,
				Round:         models.RoundOne,
				ScheduledDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			})
			if err == nil {
				mu.Lock()
				booked++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, booked)
	history, err := f.store.ListInterviews(ctx, store.InterviewFilter{CandidateID: c.ID})
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestRoundsProgressAndLink(t *testing.T) {
	f := newFixture(t)
	c := f.seedCandidate(t, "asha")

	r1 := f.schedule(t, c.ID, models.RoundOne)
	_, err := f.feedback(t, r1.ID, models.DecisionNextRound)
	require.NoError(t, err)

	stored, err := f.store.GetShortlisted(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ShortlistStatusMovedToNextRound, stored.Status)

	r2 := f.schedule(t, c.ID, models.RoundTwo)
	linked, err := f.pipeline.GetInterview(context.Background(), r1.ID)
	require.NoError(t, err)
	assert.Equal(t, r2.ID, linked.NextRoundID)

	_, err = f.feedback(t, r2.ID, models.DecisionNextRound)
	require.NoError(t, err)
	hr := f.schedule(t, c.ID, models.RoundHR)

	history, err := f.pipeline.ListInterviews(context.Background(), store.InterviewFilter{ApplicationID: c.ApplicationID})
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i := 1; i < len(history); i++ {
		assert.GreaterOrEqual(t, history[i].RoundNumber, history[i-1].RoundNumber)
	}

	_, err = f.pipeline.SubmitFeedback(context.Background(), FeedbackRequest{
		InterviewID:    hr.ID,
		Decision:       models.DecisionSelected,
		TechnicalScore: score(8.5),
		OverallRating:  score(9),
	})
	require.NoError(t, err)

	stored, err = f.store.GetShortlisted(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ShortlistStatusInterviewCompleted, stored.Status)
}

func TestSubmitFeedback_Validation(t *testing.T) {
	f := newFixture(t)
	c := f.seedCandidate(t, "asha")
	r1 := f.schedule(t, c.ID, models.RoundOne)

	_, err := f.feedback(t, r1.ID, models.DecisionSelected)
	assert.Equal(t, apperrors.KindValidationFailed, apperrors.KindOf(err))

	_, err = f.pipeline.SubmitFeedback(context.Background(), FeedbackRequest{InterviewID: r1.ID, Decision: models.DecisionOnHold, TechnicalScore: score(11)})
	assert.Equal(t, apperrors.KindValidationFailed, apperrors.KindOf(err))

	_, err = f.feedback(t, "missing", models.DecisionOnHold)
	assert.Equal(t, apperrors.ErrCodeInterviewNotFound, apperrors.CodeOf(err))

	held, err := f.feedback(t, r1.ID, models.DecisionOnHold)
	require.NoError(t, err)
	assert.Equal(t, models.InterviewStatusCompleted, held.Status)

	_, err = f.feedback(t, r1.ID, models.DecisionRejected)
	assert.Equal(t, apperrors.KindInvalidStateTransition, apperrors.KindOf(err))
}

func TestSubmitFeedback_NextRoundOnHRRound(t *testing.T) {
	f := newFixture(t)
	c := f.seedCandidate(t, "asha")
	hr := f.schedule(t, c.ID, models.RoundHR)

	_, err := f.feedback(t, hr.ID, models.DecisionNextRound)
	assert.Equal(t, apperrors.KindValidationFailed, apperrors.KindOf(err))
}

func TestSubmitFeedback_RejectRejectsApplication(t *testing.T) {
	f := newFixture(t)
	c := f.seedCandidate(t, "asha")
	iv := f.schedule(t, c.ID, models.RoundOne)

	_, err := f.feedback(t, iv.ID, models.DecisionRejected)
	require.NoError(t, err)

	app, err := f.guard.GetApplication(context.Background(), c.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusRejected, app.Status)
}

func TestRescheduleCancelNoShow(t *testing.T) {
	f := newFixture(t)
	c := f.seedCandidate(t, "asha")
	iv := f.schedule(t, c.ID, models.RoundOne)

	newDate := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	res, err := f.pipeline.Reschedule(context.Background(), iv.ID, newDate, "15:00", "")
	require.NoError(t, err)
	assert.Equal(t, models.InterviewStatusRescheduled, res.Interview.Status)
	assert.Equal(t, notify.TypeRescheduled, f.notifier.sent[len(f.notifier.sent)-1].kind)

	_, err = f.pipeline.Reschedule(context.Background(), iv.ID, newDate.Add(24*time.Hour), "11:00", "again")
	require.NoError(t, err)

	cancelled, err := f.pipeline.Cancel(context.Background(), iv.ID, "panel unavailable")
	require.NoError(t, err)
	assert.Equal(t, models.InterviewStatusCancelled, cancelled.Status)
	assert.Equal(t, "Cancelled: panel unavailable", cancelled.Notes)

	stored, err := f.store.GetShortlisted(context.Background(), c.ID)
	require.NoError(t, err)
	assert.False(t, stored.InterviewScheduled)

	_, err = f.pipeline.MarkNoShow(context.Background(), iv.ID)
	assert.Equal(t, apperrors.KindInvalidStateTransition, apperrors.KindOf(err))

	again := f.schedule(t, c.ID, models.RoundOne)
	noShow, err := f.pipeline.MarkNoShow(context.Background(), again.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InterviewStatusNoShow, noShow.Status)
}

func TestScheduleBatch(t *testing.T) {
	f := newFixture(t)
	a := f.seedCandidate(t, "asha")
	b := f.seedCandidate(t, "bo")
	f.schedule(t, b.ID, models.RoundOne)

	res, err := f.pipeline.ScheduleBatch(context.Background(), BatchRequest{
		CandidateIDs: []string{a.ID, b.ID, "missing"},
		Template: ScheduleRequest{
			Round:         models.RoundOne,
			ScheduledDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.TotalScheduled)
	assert.Equal(t, 2, res.TotalFailed)
	assert.Equal(t, []string{"asha@example.com"}, res.SuccessEmails)
	assert.Equal(t, []string{"bo@example.com"}, res.FailedEmails)
	require.Len(t, res.Items, 3)
	assert.NotNil(t, res.Items[0].Interview)
	assert.Equal(t, apperrors.ErrCodeInterviewAlreadyActive, apperrors.CodeOf(res.Items[1].Err))
	assert.Equal(t, apperrors.ErrCodeCandidateNotFound, apperrors.CodeOf(res.Items[2].Err))
}
