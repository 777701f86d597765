// Package onboardings exposes the onboarding workflow as Zeebe job workers.
package onboardings

import (
	"context"

	"hiring-pipeline/internal/common/camunda"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/pipeline/onboarding"
	"hiring-pipeline/internal/workers"
)

const (
	TaskCreate                 = "onboarding-create"
	TaskDocumentUpload         = "onboarding-document-upload"
	TaskDocumentVerify         = "onboarding-document-verify"
	TaskSystemSetup            = "onboarding-system-setup-update"
	TaskOrientation            = "onboarding-orientation-update"
	TaskBackgroundVerification = "onboarding-background-verification-update"
	TaskComplete               = "onboarding-complete"
	TaskDelete                 = "onboarding-delete"
	TaskEligibleList           = "onboarding-eligible-list"
)

type Handler struct {
	workflow *onboarding.Workflow
	logger   logger.Logger
}

func NewHandler(w *onboarding.Workflow, log logger.Logger) *Handler {
	return &Handler{
		workflow: w,
		logger:   logger.ForComponent(log, "onboardings-worker"),
	}
}

func (h *Handler) Jobs() camunda.JobFuncs {
	return camunda.JobFuncs{
		TaskCreate:                 camunda.Bind(h.Create),
		TaskDocumentUpload:         camunda.Bind(h.UploadDocument),
		TaskDocumentVerify:         camunda.Bind(h.VerifyDocument),
		TaskSystemSetup:            camunda.Bind(h.UpdateSystemSetup),
		TaskOrientation:            camunda.Bind(h.UpdateOrientation),
		TaskBackgroundVerification: camunda.Bind(h.UpdateBackgroundVerification),
		TaskComplete:               camunda.Bind(h.Complete),
		TaskDelete:                 camunda.Bind(h.Delete),
		TaskEligibleList:           camunda.Bind(h.ListEligible),
	}
}

func toOutput(ob *models.Onboarding) *OnboardingOutput {
	pending := ob.PendingRequired()
	if pending == nil {
		pending = []string{}
	}
	return &OnboardingOutput{
		OnboardingID:         ob.ID,
		EmployeeID:           ob.EmployeeID,
		CandidateID:          ob.CandidateID,
		OfferLetterID:        ob.OfferLetterID,
		OnboardingStatus:     ob.Status,
		CurrentStep:          ob.CurrentStep,
		CompletionPercentage: ob.CompletionPercentage,
		PendingDocuments:     pending,
		JoiningDate:          workers.FormatDate(ob.JoiningDate),
		ProbationEndDate:     workers.FormatDate(ob.ProbationEndDate),
		BackgroundStatus:     ob.BackgroundVerification.Status,
	}
}

func result(ob *models.Onboarding, err error) (*OnboardingOutput, error) {
	if err != nil {
		return nil, err
	}
	return toOutput(ob), nil
}

func (h *Handler) Create(ctx context.Context, in CreateInput) (*OnboardingOutput, error) {
	joining, err := workers.ParseDate("joiningDate", in.JoiningDate)
	if err != nil {
		return nil, err
	}
	return result(h.workflow.Create(ctx, onboarding.CreateRequest{
		OfferLetterID:                  in.OfferLetterID,
		PersonalEmail:                  in.PersonalEmail,
		Department:                     in.Department,
		Designation:                    in.Designation,
		ReportingManager:               in.ReportingManager,
		WorkLocation:                   in.WorkLocation,
		JoiningDate:                    joining,
		ProbationPeriod:                in.ProbationPeriod,
		Coordinator:                    in.Coordinator,
		BackgroundVerificationRequired: in.BackgroundVerificationRequired,
		HRRemarks:                      in.HRRemarks,
		CreatedBy:                      in.CreatedBy,
	}))
}

func (h *Handler) UploadDocument(ctx context.Context, in UploadInput) (*OnboardingOutput, error) {
	return result(h.workflow.UploadDocument(ctx, onboarding.UploadRequest{
		OnboardingID: in.OnboardingID,
		DocumentType: in.DocumentType,
		URL:          in.DocumentURL,
		Name:         in.DocumentName,
		FileType:     in.FileType,
		FileSize:     in.FileSize,
		Remarks:      in.Remarks,
	}))
}

func (h *Handler) VerifyDocument(ctx context.Context, in VerifyInput) (*OnboardingOutput, error) {
	return result(h.workflow.VerifyDocument(ctx, in.OnboardingID, in.DocumentType, in.VerifiedBy, in.Remarks))
}

func (h *Handler) UpdateSystemSetup(ctx context.Context, in SystemSetupInput) (*OnboardingOutput, error) {
	return result(h.workflow.UpdateSystemSetup(ctx, onboarding.SystemSetupRequest{
		OnboardingID:         in.OnboardingID,
		EmailAccountCreated:  in.EmailAccountCreated,
		SystemAccessProvided: in.SystemAccessProvided,
		IDCardIssued:         in.IDCardIssued,
		WorkstationAssigned:  in.WorkstationAssigned,
		WorkstationNumber:    in.WorkstationNumber,
	}))
}

func (h *Handler) UpdateOrientation(ctx context.Context, in OrientationInput) (*OnboardingOutput, error) {
	date, err := workers.ParseOptionalDate("orientationDate", in.OrientationDate)
	if err != nil {
		return nil, err
	}
	return result(h.workflow.UpdateOrientation(ctx, onboarding.OrientationRequest{
		OnboardingID: in.OnboardingID,
		Completed:    in.OrientationCompleted,
		Date:         date,
		ConductedBy:  in.ConductedBy,
		Remarks:      in.Remarks,
	}))
}

func (h *Handler) UpdateBackgroundVerification(ctx context.Context, in BackgroundVerificationInput) (*OnboardingOutput, error) {
	return result(h.workflow.UpdateBackgroundVerification(ctx, in.OnboardingID, in.Status, in.Remarks))
}

func (h *Handler) Complete(ctx context.Context, in CompleteInput) (*OnboardingOutput, error) {
	return result(h.workflow.Complete(ctx, in.OnboardingID, in.ApprovedBy))
}

func (h *Handler) Delete(ctx context.Context, in DeleteInput) (*DeleteOutput, error) {
	if err := h.workflow.Delete(ctx, in.OnboardingID); err != nil {
		return nil, err
	}
	return &DeleteOutput{OnboardingID: in.OnboardingID, Deleted: true}, nil
}

func (h *Handler) ListEligible(ctx context.Context, _ EmptyInput) (*EligibleOutput, error) {
	offers, err := h.workflow.ListEligibleCandidates(ctx)
	if err != nil {
		return nil, err
	}
	out := &EligibleOutput{Offers: make([]EligibleOffer, 0, len(offers))}
	for _, o := range offers {
		out.Offers = append(out.Offers, EligibleOffer{
			OfferLetterID:  o.ID,
			CandidateID:    o.CandidateID,
			CandidateName:  o.CandidateName,
			CandidateEmail: o.CandidateEmail,
			JobTitle:       o.JobTitle,
			JoiningDate:    workers.FormatDate(o.JoiningDate),
		})
	}
	out.Count = len(out.Offers)
	return out, nil
}
