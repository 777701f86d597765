package onboarding

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
	store    *redisstore.Store
	workflow *Workflow
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := storetest.NewRedis(t)
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	return &fixture{
		store:    s,
		workflow: NewWorkflow(s, config.OnboardingConfig{}, logger.NewTestLogger(t), WithClock(func() time.Time { return now })),
		now:      now,
	}
}

func (f *fixture) offer(t *testing.T, id string, status models.OfferStatus) *models.OfferLetter {
	t.Helper()
	o := &models.OfferLetter{
		ID:              id,
		CandidateID:     "sc-" + id,
		ApplicationID:   "app-" + id,
		JobID:           "job-1",
		CandidateName:   "Asha",
		CandidateEmail:  "asha@example.com",
		JobTitle:        "Backend Engineer",
		OfficeLocation:  "Pune",
		JoiningDate:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		ProbationPeriod: 3,
		Status:          status,
		IsAccepted:      status == models.OfferStatusAccepted,
		GeneratedAt:     f.now,
	}
	require.NoError(t, f.store.CreateOffer(context.Background(), o))
	return o
}

func (f *fixture) create(t *testing.T, offerID string) *models.Onboarding {
	t.Helper()
	ob, err := f.workflow.Create(context.Background(), CreateRequest{OfferLetterID: offerID, Coordinator: "hr-1"})
	require.NoError(t, err)
	return ob
}

func (f *fixture) uploadAndVerify(t *testing.T, id string, docs []models.DocumentType) *models.Onboarding {
	t.Helper()
	ctx := context.Background()
	var ob *models.Onboarding
	var err error
	for _, d := range docs {
		_, err = f.workflow.UploadDocument(ctx, UploadRequest{OnboardingID: id, DocumentType: d, URL: "s3://docs/" + string(d)})
		require.NoError(t, err)
		ob, err = f.workflow.VerifyDocument(ctx, id, d, "verifier", "")
		require.NoError(t, err)
	}
	return ob
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	f.offer(t, "ol-1", models.OfferStatusAccepted)

	ob := f.create(t, "ol-1")
	assert.Equal(t, models.OnboardingStatusPending, ob.Status)
	assert.Equal(t, models.StepDocumentCollection, ob.CurrentStep)
	assert.Equal(t, "sc-ol-1", ob.CandidateID)
	assert.Equal(t, "Pune", ob.WorkLocation)
	assert.Regexp(t, `^EMP\d+$`, ob.EmployeeID)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), ob.ProbationEndDate)
	assert.Equal(t, 0, ob.CompletionPercentage)

	require.Len(t, ob.Documents, 10)
	required := 0
	for _, d := range ob.Documents {
		if d.IsRequired {
			required++
		}
	}
	assert.Equal(t, 6, required)
}

func TestCreate_RequiresAcceptedOffer(t *testing.T) {
	f := newFixture(t)
	f.offer(t, "ol-sent", models.OfferStatusSent)

	_, err := f.workflow.Create(context.Background(), CreateRequest{OfferLetterID: "ol-sent"})
	assert.Equal(t, apperrors.ErrCodeOfferNotAccepted, apperrors.CodeOf(err))
	assert.Equal(t, apperrors.KindPreconditionFailed, apperrors.KindOf(err))

	_, err = f.workflow.Create(context.Background(), CreateRequest{OfferLetterID: "missing"})
	assert.Equal(t, apperrors.ErrCodeOfferNotFound, apperrors.CodeOf(err))
}

func TestCreate_Duplicate(t *testing.T) {
	f := newFixture(t)
	f.offer(t, "ol-1", models.OfferStatusAccepted)
	f.create(t, "ol-1")

	_, err := f.workflow.Create(context.Background(), CreateRequest{OfferLetterID: "ol-1"})
	assert.Equal(t, apperrors.ErrCodeDuplicateOnboarding, apperrors.CodeOf(err))
	assert.Equal(t, apperrors.KindDuplicateEntity, apperrors.KindOf(err))
}

func TestDocumentFlow(t *testing.T) {
	f := newFixture(t)
	f.offer(t, "ol-1", models.OfferStatusAccepted)
	ob := f.create(t, "ol-1")
	ctx := context.Background()

	_, err := f.workflow.VerifyDocument(ctx, ob.ID, models.DocPANCard, "verifier", "")
	assert.Equal(t, apperrors.ErrCodeDocumentNotSubmitted, apperrors.CodeOf(err))
	assert.Equal(t, apperrors.KindPreconditionFailed, apperrors.KindOf(err))

	_, err = f.workflow.UploadDocument(ctx, UploadRequest{OnboardingID: ob.ID, DocumentType: "DRIVING_LICENSE", URL: "x"})
	assert.Equal(t, apperrors.KindValidationFailed, apperrors.KindOf(err))

	for _, d := range requiredDocs {
		ob, err = f.workflow.UploadDocument(ctx, UploadRequest{OnboardingID: ob.ID, DocumentType: d, URL: "s3://docs/" + string(d)})
		require.NoError(t, err)
	}
	assert.Equal(t, models.OnboardingStatusDocumentsSubmitted, ob.Status)
	assert.Equal(t, models.StepVerification, ob.CurrentStep)
	assert.Equal(t, 20, ob.CompletionPercentage)

	ob = f.uploadAndVerify(t, ob.ID, requiredDocs)
	assert.Equal(t, models.OnboardingStatusVerified, ob.Status)
	assert.Equal(t, models.StepSystemSetup, ob.CurrentStep)
	assert.Equal(t, 40, ob.CompletionPercentage)

	ob, err = f.workflow.UploadDocument(ctx, UploadRequest{OnboardingID: ob.ID, DocumentType: models.DocPANCard, URL: "s3://docs/pan-v2"})
	require.NoError(t, err)
	assert.False(t, ob.Document(models.DocPANCard).IsVerified)
	assert.Equal(t, models.OnboardingStatusDocumentsSubmitted, ob.Status)
}

func TestComplete_Gates(t *testing.T) {
	f := newFixture(t)
	f.offer(t, "ol-1", models.OfferStatusAccepted)
	ob := f.create(t, "ol-1")
	ctx := context.Background()

	_, err := f.workflow.Complete(ctx, ob.ID, "hr-lead")
	assert.Equal(t, apperrors.ErrCodeIncompleteRequiredDocuments, apperrors.CodeOf(err))

	f.uploadAndVerify(t, ob.ID, requiredDocs)
	_, err = f.workflow.Complete(ctx, ob.ID, "hr-lead")
	assert.Equal(t, apperrors.ErrCodeSystemSetupIncomplete, apperrors.CodeOf(err))

	ob, err = f.workflow.UpdateSystemSetup(ctx, SystemSetupRequest{
		OnboardingID:         ob.ID,
		EmailAccountCreated:  true,
		SystemAccessProvided: true,
		IDCardIssued:         true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StepOrientation, ob.CurrentStep)
	assert.Equal(t, 60, ob.CompletionPercentage)

	_, err = f.workflow.Complete(ctx, ob.ID, "hr-lead")
	assert.Equal(t, apperrors.ErrCodeOrientationIncomplete, apperrors.CodeOf(err))

	ob, err = f.workflow.UpdateOrientation(ctx, OrientationRequest{OnboardingID: ob.ID, Completed: true, ConductedBy: "hr-1"})
	require.NoError(t, err)
	assert.NotNil(t, ob.Orientation.Date)
	assert.Equal(t, 80, ob.CompletionPercentage)

	ob, err = f.workflow.Complete(ctx, ob.ID, "hr-lead")
	require.NoError(t, err)
	assert.Equal(t, models.OnboardingStatusCompleted, ob.Status)
	assert.Equal(t, models.StepCompleted, ob.CurrentStep)
	assert.Equal(t, 100, ob.CompletionPercentage)
	assert.Equal(t, "hr-lead", ob.ApprovedBy)
	assert.NotNil(t, ob.CompletionDate)

	_, err = f.workflow.UploadDocument(ctx, UploadRequest{OnboardingID: ob.ID, DocumentType: models.DocSalarySlips, URL: "x"})
	assert.Equal(t, apperrors.KindInvalidStateTransition, apperrors.KindOf(err))
}

func TestUpdateBackgroundVerification(t *testing.T) {
	f := newFixture(t)
	f.offer(t, "ol-1", models.OfferStatusAccepted)
	ob := f.create(t, "ol-1")

	ob, err := f.workflow.UpdateBackgroundVerification(context.Background(), ob.ID, models.VerificationCompleted, "clear")
	require.NoError(t, err)
	assert.True(t, ob.BackgroundVerification.Required)
	assert.Equal(t, models.VerificationCompleted, ob.BackgroundVerification.Status)
	assert.NotNil(t, ob.BackgroundVerification.Date)

	_, err = f.workflow.UpdateBackgroundVerification(context.Background(), ob.ID, "DONE", "")
	assert.Equal(t, apperrors.KindValidationFailed, apperrors.KindOf(err))
}

func TestDeleteAndEligible(t *testing.T) {
	f := newFixture(t)
	f.offer(t, "ol-1", models.OfferStatusAccepted)
	f.offer(t, "ol-2", models.OfferStatusAccepted)
	f.offer(t, "ol-3", models.OfferStatusSent)
	ctx := context.Background()

	eligible, err := f.workflow.ListEligibleCandidates(ctx)
	require.NoError(t, err)
	assert.Len(t, eligible, 2)

	ob := f.create(t, "ol-1")
	eligible, err = f.workflow.ListEligibleCandidates(ctx)
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, "ol-2", eligible[0].ID)

	require.NoError(t, f.workflow.Delete(ctx, ob.ID))
	_, err = f.workflow.Get(ctx, ob.ID)
	assert.Equal(t, apperrors.ErrCodeOnboardingNotFound, apperrors.CodeOf(err))

	err = f.workflow.Delete(ctx, ob.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	f.create(t, "ol-1")
}
