package shortlisting

import "hiring-pipeline/internal/models"

type ShortlistInput struct {
	JobID         string   `json:"jobId"`
	MinScore      *float64 `json:"minScore,omitempty"`
	MaxCandidates int      `json:"maxCandidates,omitempty"`
}

type RankedCandidate struct {
	CandidateID    string                 `json:"candidateId"`
	ApplicationID  string                 `json:"applicationId"`
	CandidateName  string                 `json:"candidateName"`
	CandidateEmail string                 `json:"candidateEmail"`
	FinalScore     float64                `json:"finalScore"`
	Rank           int                    `json:"rank"`
	Status         models.ShortlistStatus `json:"status"`
}

type ShortlistOutput struct {
	JobID                   string            `json:"jobId"`
	JobTitle                string            `json:"jobTitle"`
	TotalProcessed          int               `json:"totalProcessed"`
	ShortlistedCount        int               `json:"shortlistedCount"`
	RejectedCount           int               `json:"rejectedCount"`
	ShortlistedCandidateIDs []string          `json:"shortlistedCandidateIds"`
	Candidates              []RankedCandidate `json:"candidates"`
}

type StatusUpdateInput struct {
	CandidateID string                 `json:"candidateId"`
	Status      models.ShortlistStatus `json:"status"`
	Notes       string                 `json:"notes,omitempty"`
}

type StatusUpdateOutput struct {
	CandidateID     string                 `json:"candidateId"`
	ApplicationID   string                 `json:"applicationId"`
	CandidateStatus models.ShortlistStatus `json:"candidateStatus"`
}
