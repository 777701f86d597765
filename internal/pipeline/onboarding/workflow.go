// Package onboarding tracks an accepted offer through document collection,
// verification, system setup and orientation until the hire is complete.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hiring-pipeline/internal/common/config"
	apperrors "hiring-pipeline/internal/common/errors"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/common/metrics"
	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/store"
)

const stage = "onboarding"

type Store interface {
	store.OfferStore
	store.OnboardingStore
}

type Workflow struct {
	store    Store
	idPrefix string
	logger   logger.Logger
	now      func() time.Time
}

type Option func(*Workflow)

func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

func NewWorkflow(s Store, cfg config.OnboardingConfig, log logger.Logger, opts ...Option) *Workflow {
	prefix := cfg.EmployeeIDPrefix
	if prefix == "" {
		prefix = "EMP"
	}
	w := &Workflow{
		store:    s,
		idPrefix: prefix,
		logger:   logger.ForComponent(log, "onboarding-workflow"),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CreateRequest starts onboarding for an accepted offer. Candidate, job and
// joining details come from the offer; the optional fields override them.
type CreateRequest struct {
	OfferLetterID                  string
	PersonalEmail                  string
	Department                     string
	Designation                    string
	ReportingManager               string
	WorkLocation                   string
	JoiningDate                    time.Time
	ProbationPeriod                int
	Coordinator                    string
	BackgroundVerificationRequired bool
	HRRemarks                      string
	CreatedBy                      string
}

func (w *Workflow) Create(ctx context.Context, req CreateRequest) (*models.Onboarding, error) {
	if req.OfferLetterID == "" {
		return nil, apperrors.NewInvalidInputError("offerLetterId is required")
	}
	if req.ProbationPeriod < 0 {
		return nil, apperrors.NewInvalidInputError("probationPeriod must not be negative")
	}

	offer, err := w.store.GetOffer(ctx, req.OfferLetterID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperrors.NewOfferNotFoundError(req.OfferLetterID)
		}
		return nil, apperrors.NewStoreError("get offer", err)
	}
	if offer.Status != models.OfferStatusAccepted || !offer.IsAccepted {
		return nil, apperrors.NewOfferNotAcceptedError(offer.ID, string(offer.Status))
	}

	if _, err := w.store.GetOnboardingByCandidate(ctx, offer.CandidateID); err == nil {
		return nil, apperrors.NewDuplicateOnboardingError("candidateId: " + offer.CandidateID)
	} else if !store.IsNotFound(err) {
		return nil, apperrors.NewStoreError("get onboarding by candidate", err)
	}
	if _, err := w.store.GetOnboardingByOffer(ctx, offer.ID); err == nil {
		return nil, apperrors.NewDuplicateOnboardingError("offerLetterId: " + offer.ID)
	} else if !store.IsNotFound(err) {
		return nil, apperrors.NewStoreError("get onboarding by offer", err)
	}

	ob := w.newOnboarding(req, offer)
	if err := w.store.CreateOnboarding(ctx, ob); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, apperrors.NewDuplicateOnboardingError(
				fmt.Sprintf("candidateId: %s, offerLetterId: %s", offer.CandidateID, offer.ID))
		}
		return nil, apperrors.NewStoreError("create onboarding", err)
	}
	metrics.RecordTransition(stage, string(ob.Status))

	w.logger.Info("onboarding created", map[string]interface{}{
		"onboardingId":  ob.ID,
		"employeeId":    ob.EmployeeID,
		"offerLetterId": ob.OfferLetterID,
	})
	return ob, nil
}

func (w *Workflow) newOnboarding(req CreateRequest, offer *models.OfferLetter) *models.Onboarding {
	now := w.now()

	joining := req.JoiningDate
	if joining.IsZero() {
		joining = offer.JoiningDate
	}
	probation := req.ProbationPeriod
	if probation == 0 {
		probation = offer.ProbationPeriod
	}
	bgv := models.BackgroundVerification{Required: req.BackgroundVerificationRequired}
	if bgv.Required {
		bgv.Status = models.VerificationPending
	}

	ob := &models.Onboarding{
		ID:                     uuid.NewString(),
		CandidateID:            offer.CandidateID,
		OfferLetterID:          offer.ID,
		ApplicationID:          offer.ApplicationID,
		JobID:                  offer.JobID,
		EmployeeID:             fmt.Sprintf("%s%d", w.idPrefix, now.UnixMilli()),
		CandidateName:          offer.CandidateName,
		CandidateEmail:         offer.CandidateEmail,
		CandidatePhone:         offer.CandidatePhone,
		PersonalEmail:          req.PersonalEmail,
		JobTitle:               offer.JobTitle,
		Department:             pick(req.Department, offer.Department),
		Designation:            pick(req.Designation, offer.JobTitle),
		ReportingManager:       pick(req.ReportingManager, offer.ReportingManager),
		WorkLocation:           pick(req.WorkLocation, offer.OfficeLocation, offer.WorkLocation),
		JoiningDate:            joining,
		StartDate:              now,
		Status:                 models.OnboardingStatusPending,
		CurrentStep:            models.StepDocumentCollection,
		Documents:              models.NewDocumentChecklist(),
		BackgroundVerification: bgv,
		Coordinator:            req.Coordinator,
		HRRemarks:              req.HRRemarks,
		ProbationPeriod:        probation,
		CreatedAt:              now,
		UpdatedAt:              now,
		CreatedBy:              req.CreatedBy,
	}
	if !joining.IsZero() {
		ob.ProbationEndDate = joining.AddDate(0, probation, 0)
	}
	ob.CompletionPercentage = ob.Progress()
	return ob
}

func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

type UploadRequest struct {
	OnboardingID string
	DocumentType models.DocumentType
	URL          string
	Name         string
	FileType     string
	FileSize     int64
	Remarks      string
}

// UploadDocument marks a checklist entry submitted. A re-upload clears any
// earlier verification.
func (w *Workflow) UploadDocument(ctx context.Context, req UploadRequest) (*models.Onboarding, error) {
	if req.URL == "" {
		return nil, apperrors.NewInvalidInputError("documentUrl is required")
	}
	return w.mutateDocument(ctx, req.OnboardingID, req.DocumentType, func(doc *models.OnboardingDocument, now time.Time) error {
		doc.URL = req.URL
		if req.Name != "" {
			doc.Name = req.Name
		}
		doc.FileType = req.FileType
		doc.FileSize = req.FileSize
		doc.Remarks = req.Remarks
		doc.IsSubmitted = true
		doc.SubmittedAt = &now
		doc.IsVerified = false
		doc.VerifiedAt = nil
		doc.VerifiedBy = ""
		return nil
	})
}

func (w *Workflow) VerifyDocument(ctx context.Context, onboardingID string, docType models.DocumentType, verifiedBy, remarks string) (*models.Onboarding, error) {
	return w.mutateDocument(ctx, onboardingID, docType, func(doc *models.OnboardingDocument, now time.Time) error {
		if !doc.IsSubmitted {
			return apperrors.NewDocumentNotSubmittedError(string(doc.Type))
		}
		doc.IsVerified = true
		doc.VerifiedAt = &now
		doc.VerifiedBy = verifiedBy
		if remarks != "" {
			doc.Remarks = remarks
		}
		return nil
	})
}

func (w *Workflow) mutateDocument(ctx context.Context, onboardingID string, docType models.DocumentType, mutate func(*models.OnboardingDocument, time.Time) error) (*models.Onboarding, error) {
	if !docType.IsValid() {
		return nil, apperrors.NewInvalidInputError("unknown document type: " + string(docType))
	}
	return w.update(ctx, onboardingID, func(ob *models.Onboarding, now time.Time) error {
		doc := ob.Document(docType)
		if doc == nil {
			return apperrors.NewInvalidInputError("document not on checklist: " + string(docType))
		}
		return mutate(doc, now)
	})
}

type SystemSetupRequest struct {
	OnboardingID         string
	EmailAccountCreated  bool
	SystemAccessProvided bool
	IDCardIssued         bool
	WorkstationAssigned  bool
	WorkstationNumber    string
}

func (w *Workflow) UpdateSystemSetup(ctx context.Context, req SystemSetupRequest) (*models.Onboarding, error) {
	return w.update(ctx, req.OnboardingID, func(ob *models.Onboarding, _ time.Time) error {
		ob.SystemSetup = models.SystemSetup{
			EmailAccountCreated:  req.EmailAccountCreated,
			SystemAccessProvided: req.SystemAccessProvided,
			IDCardIssued:         req.IDCardIssued,
			WorkstationAssigned:  req.WorkstationAssigned,
			WorkstationNumber:    req.WorkstationNumber,
		}
		return nil
	})
}

type OrientationRequest struct {
	OnboardingID string
	Completed    bool
	Date         *time.Time
	ConductedBy  string
	Remarks      string
}

func (w *Workflow) UpdateOrientation(ctx context.Context, req OrientationRequest) (*models.Onboarding, error) {
	return w.update(ctx, req.OnboardingID, func(ob *models.Onboarding, now time.Time) error {
		date := req.Date
		if req.Completed && date == nil {
			date = &now
		}
		ob.Orientation = models.Orientation{
			Completed:   req.Completed,
			Date:        date,
			ConductedBy: req.ConductedBy,
			Remarks:     req.Remarks,
		}
		return nil
	})
}

func (w *Workflow) UpdateBackgroundVerification(ctx context.Context, onboardingID string, status models.VerificationStatus, remarks string) (*models.Onboarding, error) {
	if !status.IsValid() {
		return nil, apperrors.NewInvalidInputError("unknown verification status: " + string(status))
	}
	return w.update(ctx, onboardingID, func(ob *models.Onboarding, now time.Time) error {
		bgv := &ob.BackgroundVerification
		bgv.Required = true
		bgv.Status = status
		bgv.Remarks = remarks
		if status == models.VerificationCompleted || status == models.VerificationFailed {
			bgv.Date = &now
		}
		return nil
	})
}

// Complete closes the onboarding once required documents are verified,
// system setup is done and orientation has happened.
func (w *Workflow) Complete(ctx context.Context, onboardingID, approvedBy string) (*models.Onboarding, error) {
	return w.update(ctx, onboardingID, func(ob *models.Onboarding, now time.Time) error {
		if pending := ob.PendingRequired(); len(pending) > 0 {
			return apperrors.NewIncompleteRequiredDocumentsError(pending)
		}
		if !ob.SystemSetup.Complete() {
			return apperrors.NewSystemSetupIncompleteError(missingSetup(ob.SystemSetup))
		}
		if !ob.Orientation.Completed {
			return apperrors.NewOrientationIncompleteError(ob.ID)
		}
		ob.Status = models.OnboardingStatusCompleted
		ob.CurrentStep = models.StepCompleted
		ob.CompletionDate = &now
		ob.ApprovedBy = approvedBy
		ob.ApprovedAt = &now
		return nil
	})
}

func missingSetup(s models.SystemSetup) string {
	var missing []string
	if !s.EmailAccountCreated {
		missing = append(missing, "emailAccountCreated")
	}
	if !s.SystemAccessProvided {
		missing = append(missing, "systemAccessProvided")
	}
	if !s.IDCardIssued {
		missing = append(missing, "idCardIssued")
	}
	return "missing: " + strings.Join(missing, ",")
}

// Delete removes the onboarding regardless of its status.
func (w *Workflow) Delete(ctx context.Context, onboardingID string) error {
	ob, err := w.Get(ctx, onboardingID)
	if err != nil {
		return err
	}
	if ob.Status == models.OnboardingStatusCompleted {
		w.logger.Warn("deleting completed onboarding", map[string]interface{}{
			"onboardingId": ob.ID,
			"employeeId":   ob.EmployeeID,
		})
	}
	if err := w.store.DeleteOnboarding(ctx, onboardingID); err != nil {
		if store.IsNotFound(err) {
			return apperrors.NewOnboardingNotFoundError(onboardingID)
		}
		return apperrors.NewStoreError("delete onboarding", err)
	}
	w.logger.Info("onboarding deleted", map[string]interface{}{"onboardingId": onboardingID})
	return nil
}

func (w *Workflow) Get(ctx context.Context, onboardingID string) (*models.Onboarding, error) {
	ob, err := w.store.GetOnboarding(ctx, onboardingID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperrors.NewOnboardingNotFoundError(onboardingID)
		}
		return nil, apperrors.NewStoreError("get onboarding", err)
	}
	return ob, nil
}

func (w *Workflow) GetByCandidate(ctx context.Context, candidateID string) (*models.Onboarding, error) {
	ob, err := w.store.GetOnboardingByCandidate(ctx, candidateID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperrors.NewOnboardingNotFoundError("candidate " + candidateID)
		}
		return nil, apperrors.NewStoreError("get onboarding by candidate", err)
	}
	return ob, nil
}

// ListEligibleCandidates returns accepted offers that have not started
// onboarding.
func (w *Workflow) ListEligibleCandidates(ctx context.Context) ([]*models.OfferLetter, error) {
	accepted, err := w.store.ListOffersByStatus(ctx, models.OfferStatusAccepted)
	if err != nil {
		return nil, apperrors.NewStoreError("list offers", err)
	}
	var out []*models.OfferLetter
	for _, o := range accepted {
		if !o.IsAccepted {
			continue
		}
		_, err := w.store.GetOnboardingByOffer(ctx, o.ID)
		if err == nil {
			continue
		}
		if !store.IsNotFound(err) {
			return nil, apperrors.NewStoreError("get onboarding by offer", err)
		}
		out = append(out, o)
	}
	return out, nil
}

// update loads an open onboarding, applies mutate, recomputes the derived
// status, step and percentage, then stores it.
func (w *Workflow) update(ctx context.Context, onboardingID string, mutate func(*models.Onboarding, time.Time) error) (*models.Onboarding, error) {
	ob, err := w.Get(ctx, onboardingID)
	if err != nil {
		return nil, err
	}
	if ob.Status.IsClosed() {
		return nil, apperrors.NewInvalidStatusTransitionError("onboarding", string(ob.Status), "modified")
	}

	now := w.now()
	if err := mutate(ob, now); err != nil {
		return nil, err
	}

	from := ob.Status
	recompute(ob)
	ob.UpdatedAt = now
	if err := w.store.UpdateOnboarding(ctx, ob); err != nil {
		return nil, apperrors.NewStoreError("update onboarding", err)
	}
	if ob.Status != from {
		metrics.RecordTransition(stage, string(ob.Status))
		w.logger.Info("onboarding status changed", map[string]interface{}{
			"onboardingId": ob.ID,
			"from":         string(from),
			"to":           string(ob.Status),
			"step":         string(ob.CurrentStep),
		})
	}
	return ob, nil
}

// recompute derives status and step from the checklist and setup flags.
// APPROVED and COMPLETED are only set explicitly and are left alone.
func recompute(ob *models.Onboarding) {
	switch ob.Status {
	case models.OnboardingStatusApproved, models.OnboardingStatusCompleted:
	default:
		switch {
		case ob.RequiredVerified():
			ob.Status = models.OnboardingStatusVerified
			ob.CurrentStep = models.StepSystemSetup
			if ob.SystemSetup.Complete() {
				ob.CurrentStep = models.StepOrientation
			}
		case ob.RequiredSubmitted():
			ob.Status = models.OnboardingStatusDocumentsSubmitted
			ob.CurrentStep = models.StepVerification
		default:
			ob.Status = models.OnboardingStatusPending
			ob.CurrentStep = models.StepDocumentCollection
		}
	}
	ob.CompletionPercentage = ob.Progress()
}
