// Package shortlisting exposes the shortlist engine as Zeebe job workers.
package shortlisting

import (
	"context"

	"hiring-pipeline/internal/common/camunda"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/pipeline/shortlist"
)

const (
	TaskShortlist    = "candidates-shortlist"
	TaskStatusUpdate = "shortlist-status-update"
)

type Handler struct {
	engine *shortlist.Engine
	logger logger.Logger
}

func NewHandler(engine *shortlist.Engine, log logger.Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger.ForComponent(log, "shortlisting-worker"),
	}
}

func (h *Handler) Jobs() camunda.JobFuncs {
	return camunda.JobFuncs{
		TaskShortlist:    camunda.Bind(h.Shortlist),
		TaskStatusUpdate: camunda.Bind(h.UpdateStatus),
	}
}

func (h *Handler) Shortlist(ctx context.Context, in ShortlistInput) (*ShortlistOutput, error) {
	res, err := h.engine.Shortlist(ctx, shortlist.Request{
		JobID:         in.JobID,
		MinScore:      in.MinScore,
		MaxCandidates: in.MaxCandidates,
	})
	if err != nil {
		return nil, err
	}

	out := &ShortlistOutput{
		JobID:                   res.JobID,
		JobTitle:                res.JobTitle,
		TotalProcessed:          res.TotalProcessed,
		ShortlistedCount:        res.ShortlistedCount,
		RejectedCount:           res.RejectedCount,
		ShortlistedCandidateIDs: make([]string, 0, len(res.Candidates)),
		Candidates:              make([]RankedCandidate, 0, len(res.Candidates)),
	}
	for _, c := range res.Candidates {
		out.ShortlistedCandidateIDs = append(out.ShortlistedCandidateIDs, c.ID)
		out.Candidates = append(out.Candidates, RankedCandidate{
			CandidateID:    c.ID,
			ApplicationID:  c.ApplicationID,
			CandidateName:  c.CandidateName,
			CandidateEmail: c.CandidateEmail,
			FinalScore:     c.FinalScore,
			Rank:           c.Rank,
			Status:         c.Status,
		})
	}
	return out, nil
}

func (h *Handler) UpdateStatus(ctx context.Context, in StatusUpdateInput) (*StatusUpdateOutput, error) {
	c, err := h.engine.UpdateStatus(ctx, in.CandidateID, in.Status, in.Notes)
	if err != nil {
		return nil, err
	}
	return &StatusUpdateOutput{
		CandidateID:     c.ID,
		ApplicationID:   c.ApplicationID,
		CandidateStatus: c.Status,
	}, nil
}
