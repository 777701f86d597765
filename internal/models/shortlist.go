package models

import "time"

type ShortlistStatus string

const (
	ShortlistStatusPendingReview      ShortlistStatus = "PENDING_REVIEW"
	ShortlistStatusApproved           ShortlistStatus = "APPROVED"
	ShortlistStatusInterviewScheduled ShortlistStatus = "INTERVIEW_SCHEDULED"
	ShortlistStatusInterviewCompleted ShortlistStatus = "INTERVIEW_COMPLETED"
	ShortlistStatusMovedToNextRound   ShortlistStatus = "MOVED_TO_NEXT_ROUND"
	ShortlistStatusRejected           ShortlistStatus = "REJECTED"
	ShortlistStatusOfferExtended      ShortlistStatus = "OFFER_EXTENDED"
	ShortlistStatusOfferLetterSent    ShortlistStatus = "OFFER_LETTER_SENT"
	ShortlistStatusOfferAccepted      ShortlistStatus = "OFFER_ACCEPTED"
	ShortlistStatusOfferRejected      ShortlistStatus = "OFFER_REJECTED"
)

func (s ShortlistStatus) IsValid() bool {
	switch s {
	case ShortlistStatusPendingReview, ShortlistStatusApproved, ShortlistStatusInterviewScheduled,
		ShortlistStatusInterviewCompleted, ShortlistStatusMovedToNextRound, ShortlistStatusRejected,
		ShortlistStatusOfferExtended, ShortlistStatusOfferLetterSent, ShortlistStatusOfferAccepted,
		ShortlistStatusOfferRejected:
		return true
	}
	return false
}

// Schedulable reports whether a candidate in this status may be booked into
// another interview round.
func (s ShortlistStatus) Schedulable() bool {
	switch s {
	case ShortlistStatusPendingReview, ShortlistStatusApproved,
		ShortlistStatusInterviewScheduled, ShortlistStatusMovedToNextRound:
		return true
	}
	return false
}

type ComponentScores struct {
	SemanticSimilarity float64 `json:"semanticSimilarity"`
	SkillMatch         float64 `json:"skillMatch"`
	ExperienceMatch    float64 `json:"experienceMatch"`
	EducationMatch     float64 `json:"educationMatch"`
	LLMScore           float64 `json:"llmScore"`
}

// ShortlistedCandidate is one application promoted past AI scoring. The
// interview and offer fields are weak back-references owned elsewhere.
type ShortlistedCandidate struct {
	ID                      string          `json:"id"`
	ApplicationID           string          `json:"applicationId"`
	JobID                   string          `json:"jobId"`
	JobTitle                string          `json:"jobTitle,omitempty"`
	Company                 string          `json:"company,omitempty"`
	CandidateName           string          `json:"candidateName"`
	CandidateEmail          string          `json:"candidateEmail"`
	CandidatePhone          string          `json:"candidatePhone,omitempty"`
	FinalScore              float64         `json:"finalScore"`
	ComponentScores         ComponentScores `json:"componentScores"`
	SkillMatchPercentage    float64         `json:"skillMatchPercentage"`
	MatchedSkills           []string        `json:"matchedSkills"`
	MissingSkills           []string        `json:"missingSkills"`
	LLMDecision             string          `json:"llmDecision,omitempty"`
	LLMReasoning            string          `json:"llmReasoning,omitempty"`
	InterviewRecommendation string          `json:"interviewRecommendation,omitempty"`
	KeyStrengths            string          `json:"keyStrengths,omitempty"`
	DevelopmentAreas        string          `json:"developmentAreas,omitempty"`
	Status                  ShortlistStatus `json:"status"`
	Rank                    int             `json:"rank"`
	Notes                   string          `json:"notes,omitempty"`
	InterviewScheduled      bool            `json:"interviewScheduled"`
	InterviewID             string          `json:"interviewId,omitempty"`
	InterviewDate           *time.Time      `json:"interviewDate,omitempty"`
	OfferLetterGenerated    bool            `json:"offerLetterGenerated"`
	OfferLetterID           string          `json:"offerLetterId,omitempty"`
	ShortlistedAt           time.Time       `json:"shortlistedAt"`
	UpdatedAt               time.Time       `json:"updatedAt"`
}
