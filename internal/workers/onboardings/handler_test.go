package onboardings

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
	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/pipeline/onboarding"
	"hiring-pipeline/internal/store/redisstore"
	"hiring-pipeline/internal/store/storetest"
)

var requiredDocs = []models.DocumentType{
	models.DocAadhaarCard,
	models.DocPANCard,
	models.DocPassportPhoto,
	models.DocEducationalCertificate,
	models.DocAddressProof,
	models.DocCancelledCheque,
}

type fixture struct {
	handler *Handler
	store   *redisstore.Store
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewTestLogger(t)
	s := storetest.NewRedis(t)
	f := &fixture{store: s, now: time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)}
	wf := onboarding.NewWorkflow(s, config.OnboardingConfig{}, log, onboarding.WithClock(func() time.Time { return f.now }))
	f.handler = NewHandler(wf, log)
	return f
}

func (f *fixture) acceptedOffer(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, f.store.CreateOffer(context.Background(), &models.OfferLetter{
		ID:              id,
		CandidateID:     "sc-" + id,
		ApplicationID:   "app-" + id,
		JobID:           "job-1",
		CandidateName:   "Asha",
		CandidateEmail:  "asha@example.com",
		JobTitle:        "Backend Engineer",
		JoiningDate:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		ProbationPeriod: 3,
		Status:          models.OfferStatusAccepted,
		IsAccepted:      true,
		GeneratedAt:     f.now,
	}))
}

func TestOnboardingHandler_FullFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.acceptedOffer(t, "ol-1")

	eligible, err := f.handler.ListEligible(ctx, EmptyInput{})
	require.NoError(t, err)
	require.Equal(t, 1, eligible.Count)
	assert.Equal(t, "2026-06-01", eligible.Offers[0].JoiningDate)

	created, err := f.handler.Create(ctx, CreateInput{OfferLetterID: "ol-1", Coordinator: "hr-1"})
	require.NoError(t, err)
	assert.Equal(t, models.OnboardingStatusPending, created.OnboardingStatus)
	assert.NotEmpty(t, created.EmployeeID)
	assert.Equal(t, "2026-09-01", created.ProbationEndDate)
	assert.Len(t, created.PendingDocuments, len(requiredDocs))

	eligible, err = f.handler.ListEligible(ctx, EmptyInput{})
	require.NoError(t, err)
	assert.Zero(t, eligible.Count)
	assert.NotNil(t, eligible.Offers)

	_, err = f.handler.Complete(ctx, CompleteInput{OnboardingID: created.OnboardingID, ApprovedBy: "hr-lead"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindPreconditionFailed))

	var out *OnboardingOutput
	for _, d := range requiredDocs {
		_, err = f.handler.UploadDocument(ctx, UploadInput{
			OnboardingID: created.OnboardingID,
			DocumentType: d,
			DocumentURL:  "s3://docs/" + string(d),
		})
		require.NoError(t, err)
		out, err = f.handler.VerifyDocument(ctx, VerifyInput{OnboardingID: created.OnboardingID, DocumentType: d, VerifiedBy: "hr-2"})
		require.NoError(t, err)
	}
	assert.Empty(t, out.PendingDocuments)

	_, err = f.handler.UpdateSystemSetup(ctx, SystemSetupInput{
		OnboardingID:         created.OnboardingID,
		EmailAccountCreated:  true,
		SystemAccessProvided: true,
		IDCardIssued:         true,
	})
	require.NoError(t, err)

	_, err = f.handler.UpdateOrientation(ctx, OrientationInput{
		OnboardingID:         created.OnboardingID,
		OrientationCompleted: true,
		OrientationDate:      "2026-06-02",
		ConductedBy:          "hr-1",
	})
	require.NoError(t, err)

	done, err := f.handler.Complete(ctx, CompleteInput{OnboardingID: created.OnboardingID, ApprovedBy: "hr-lead"})
	require.NoError(t, err)
	assert.Equal(t, models.OnboardingStatusCompleted, done.OnboardingStatus)
	assert.Equal(t, models.StepCompleted, done.CurrentStep)
}

func TestOnboardingHandler_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.acceptedOffer(t, "ol-1")

	_, err := f.handler.Create(ctx, CreateInput{OfferLetterID: "ol-1", JoiningDate: "next monday"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidationFailed))

	_, err = f.handler.Create(ctx, CreateInput{OfferLetterID: "ol-missing"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	created, err := f.handler.Create(ctx, CreateInput{OfferLetterID: "ol-1"})
	require.NoError(t, err)

	_, err = f.handler.Create(ctx, CreateInput{OfferLetterID: "ol-1"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindDuplicateEntity))

	_, err = f.handler.UpdateOrientation(ctx, OrientationInput{OnboardingID: created.OnboardingID, OrientationDate: "02/06/2026"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidationFailed))

	bg, err := f.handler.UpdateBackgroundVerification(ctx, BackgroundVerificationInput{
		OnboardingID: created.OnboardingID,
		Status:       models.VerificationInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, models.VerificationInProgress, bg.BackgroundStatus)
}

func TestOnboardingHandler_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.acceptedOffer(t, "ol-1")

	created, err := f.handler.Create(ctx, CreateInput{OfferLetterID: "ol-1"})
	require.NoError(t, err)

	out, err := f.handler.Delete(ctx, DeleteInput{OnboardingID: created.OnboardingID})
	require.NoError(t, err)
	assert.True(t, out.Deleted)

	_, err = f.handler.Delete(ctx, DeleteInput{OnboardingID: created.OnboardingID})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	// The offer becomes eligible again once its onboarding is gone.
	eligible, err := f.handler.ListEligible(ctx, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, eligible.Count)
}

func TestOnboardingHandler_JobsDecodeVariables(t *testing.T) {
	f := newFixture(t)
	f.acceptedOffer(t, "ol-1")

	raw, err := json.Marshal(map[string]interface{}{"offerLetterId": "ol-1", "probationPeriod": 6})
	require.NoError(t, err)

	res, err := f.handler.Jobs()[TaskCreate](context.Background(), raw)
	require.NoError(t, err)
	out := res.(*OnboardingOutput)
	assert.Equal(t, "2026-12-01", out.ProbationEndDate)
	assert.Len(t, f.handler.Jobs(), 9)
}
