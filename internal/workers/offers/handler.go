// Package offers exposes the offer lifecycle as Zeebe job workers.
package offers

import (
	"context"

	"hiring-pipeline/internal/common/camunda"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/models"
	"hiring-pipeline/internal/pipeline/offer"
	"hiring-pipeline/internal/workers"
)

const (
	TaskGenerate      = "offer-generate"
	TaskSend          = "offer-send"
	TaskAccept        = "offer-accept"
	TaskReject        = "offer-reject"
	TaskWithdraw      = "offer-withdraw"
	TaskDownload      = "offer-download"
	TaskEligibleList  = "offer-eligible-list"
	TaskExpireOverdue = "offer-expire-overdue"
)

type Handler struct {
	lifecycle *offer.Lifecycle
	logger    logger.Logger
}

func NewHandler(l *offer.Lifecycle, log logger.Logger) *Handler {
	return &Handler{
		lifecycle: l,
		logger:    logger.ForComponent(log, "offers-worker"),
	}
}

func (h *Handler) Jobs() camunda.JobFuncs {
	return camunda.JobFuncs{
		TaskGenerate:      camunda.Bind(h.Generate),
		TaskSend:          camunda.Bind(h.Send),
		TaskAccept:        camunda.Bind(h.Accept),
		TaskReject:        camunda.Bind(h.Reject),
		TaskWithdraw:      camunda.Bind(h.Withdraw),
		TaskDownload:      camunda.Bind(h.Download),
		TaskEligibleList:  camunda.Bind(h.ListEligible),
		TaskExpireOverdue: camunda.Bind(h.ExpireOverdue),
	}
}

func toOutput(o *models.OfferLetter) *OfferOutput {
	return &OfferOutput{
		OfferLetterID:     o.ID,
		OfferLetterNumber: o.OfferNumber,
		OfferStatus:       o.Status,
		CandidateID:       o.CandidateID,
		ApplicationID:     o.ApplicationID,
		CandidateEmail:    o.CandidateEmail,
		JoiningDate:       workers.FormatDate(o.JoiningDate),
		ExpiryDate:        workers.FormatDate(o.ExpiryDate),
		AnnualCTC:         o.Compensation.AnnualCTC,
		Currency:          o.Compensation.Currency,
		IsAccepted:        o.IsAccepted,
		DownloadCount:     o.DownloadCount,
	}
}

func (h *Handler) Generate(ctx context.Context, in GenerateInput) (*OfferOutput, error) {
	joining, err := workers.ParseDate("joiningDate", in.JoiningDate)
	if err != nil {
		return nil, err
	}
	expiry, err := workers.ParseDate("expiryDate", in.ExpiryDate)
	if err != nil {
		return nil, err
	}

	o, err := h.lifecycle.Generate(ctx, offer.GenerateRequest{
		CandidateID:   in.CandidateID,
		ApplicationID: in.ApplicationID,
		JobID:         in.JobID,
		InterviewID:   in.InterviewID,
		Terms: offer.Terms{
			JoiningDate:    joining,
			ExpiryDate:     expiry,
			EmploymentType: in.EmploymentType,
			WorkLocation:   in.WorkLocation,
			OfficeLocation: in.OfficeLocation,
			Department:     in.Department,
			Compensation: models.Compensation{
				AnnualCTC:        in.Compensation.AnnualCTC,
				BasicSalary:      in.Compensation.BasicSalary,
				HRA:              in.Compensation.HRA,
				SpecialAllowance: in.Compensation.SpecialAllowance,
				PerformanceBonus: in.Compensation.PerformanceBonus,
				OtherAllowances:  in.Compensation.OtherAllowances,
				Currency:         in.Compensation.Currency,
			},
			Benefits:         in.Benefits,
			PaidLeaves:       in.PaidLeaves,
			ProbationPeriod:  in.ProbationPeriod,
			NoticePeriod:     in.NoticePeriod,
			ReportingManager: in.ReportingManager,
			CandidateAddress: in.CandidateAddress,
			CompanyAddress:   in.CompanyAddress,
			GeneratedBy:      in.GeneratedBy,
			HRRemarks:        in.HRRemarks,
		},
	})
	if err != nil {
		return nil, err
	}
	return toOutput(o), nil
}

func (h *Handler) Send(ctx context.Context, in OfferInput) (*OfferOutput, error) {
	o, err := h.lifecycle.Send(ctx, in.OfferLetterID)
	if err != nil {
		return nil, err
	}
	return toOutput(o), nil
}

func (h *Handler) Accept(ctx context.Context, in AcceptInput) (*OfferOutput, error) {
	o, err := h.lifecycle.Accept(ctx, in.OfferLetterID, in.AcceptanceMethod, in.AcceptanceRemarks)
	if err != nil {
		return nil, err
	}
	return toOutput(o), nil
}

func (h *Handler) Reject(ctx context.Context, in RejectInput) (*OfferOutput, error) {
	o, err := h.lifecycle.Reject(ctx, in.OfferLetterID, in.RejectionReason)
	if err != nil {
		return nil, err
	}
	return toOutput(o), nil
}

func (h *Handler) Withdraw(ctx context.Context, in WithdrawInput) (*OfferOutput, error) {
	o, err := h.lifecycle.Withdraw(ctx, in.OfferLetterID, in.Reason)
	if err != nil {
		return nil, err
	}
	return toOutput(o), nil
}

func (h *Handler) Download(ctx context.Context, in OfferInput) (*OfferOutput, error) {
	o, err := h.lifecycle.Download(ctx, in.OfferLetterID)
	if err != nil {
		return nil, err
	}
	return toOutput(o), nil
}

func (h *Handler) ListEligible(ctx context.Context, _ EmptyInput) (*EligibleOutput, error) {
	candidates, err := h.lifecycle.ListEligibleCandidates(ctx)
	if err != nil {
		return nil, err
	}
	out := &EligibleOutput{Candidates: make([]EligibleCandidate, 0, len(candidates))}
	for _, c := range candidates {
		out.Candidates = append(out.Candidates, EligibleCandidate{
			CandidateID:    c.ID,
			ApplicationID:  c.ApplicationID,
			JobID:          c.JobID,
			InterviewID:    c.InterviewID,
			CandidateName:  c.CandidateName,
			CandidateEmail: c.CandidateEmail,
			JobTitle:       c.JobTitle,
		})
	}
	out.Count = len(out.Candidates)
	return out, nil
}

func (h *Handler) ExpireOverdue(ctx context.Context, _ EmptyInput) (*ExpireOutput, error) {
	expired, err := h.lifecycle.ExpireOverdue(ctx)
	out := &ExpireOutput{ExpiredOfferIDs: make([]string, 0, len(expired))}
	for _, o := range expired {
		out.ExpiredOfferIDs = append(out.ExpiredOfferIDs, o.ID)
	}
	out.Count = len(out.ExpiredOfferIDs)
	if err != nil {
		h.logger.Warn("expiry sweep stopped early", map[string]interface{}{
			"expired": out.Count,
			"error":   err.Error(),
		})
		return nil, err
	}
	return out, nil
}
