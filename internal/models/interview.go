package models

import "time"

type InterviewRound string

const (
	RoundOne     InterviewRound = "ROUND_1"
	RoundTwo     InterviewRound = "ROUND_2"
	RoundHR      InterviewRound = "HR_ROUND"
	RoundAIVoice InterviewRound = "AI_VOICE_ROUND"
)

var roundNumbers = map[InterviewRound]int{
	RoundOne:     1,
	RoundTwo:     2,
	RoundHR:      3,
	RoundAIVoice: 1,
}

func (r InterviewRound) IsValid() bool {
	_, ok := roundNumbers[r]
	return ok
}

// Number is the ordinal used to keep rounds monotonic per application.
// AI voice screening counts as a first round.
func (r InterviewRound) Number() int {
	return roundNumbers[r]
}

func (r InterviewRound) IsLast() bool {
	return r == RoundHR
}

type InterviewStatus string

const (
	InterviewStatusScheduled   InterviewStatus = "SCHEDULED"
	InterviewStatusRescheduled InterviewStatus = "RESCHEDULED"
	InterviewStatusCompleted   InterviewStatus = "COMPLETED"
	InterviewStatusCancelled   InterviewStatus = "CANCELLED"
	InterviewStatusNoShow      InterviewStatus = "NO_SHOW"
)

func (s InterviewStatus) IsValid() bool {
	switch s {
	case InterviewStatusScheduled, InterviewStatusRescheduled, InterviewStatusCompleted,
		InterviewStatusCancelled, InterviewStatusNoShow:
		return true
	}
	return false
}

// IsActive reports whether the interview still occupies the candidate.
func (s InterviewStatus) IsActive() bool {
	return s == InterviewStatusScheduled || s == InterviewStatusRescheduled
}

type InterviewDecision string

const (
	DecisionSelected  InterviewDecision = "SELECTED"
	DecisionRejected  InterviewDecision = "REJECTED"
	DecisionOnHold    InterviewDecision = "ON_HOLD"
	DecisionNextRound InterviewDecision = "NEXT_ROUND"
)

func (d InterviewDecision) IsValid() bool {
	switch d {
	case DecisionSelected, DecisionRejected, DecisionOnHold, DecisionNextRound:
		return true
	}
	return false
}

type InterviewMode string

const (
	ModeOnline  InterviewMode = "ONLINE"
	ModeOffline InterviewMode = "OFFLINE"
	ModeHybrid  InterviewMode = "HYBRID"
)

func (m InterviewMode) IsValid() bool {
	switch m {
	case ModeOnline, ModeOffline, ModeHybrid:
		return true
	}
	return false
}

type Interview struct {
	ID                     string            `json:"id"`
	ShortlistedCandidateID string            `json:"shortlistedCandidateId"`
	ApplicationID          string            `json:"applicationId"`
	JobID                  string            `json:"jobId"`
	CandidateName          string            `json:"candidateName"`
	CandidateEmail         string            `json:"candidateEmail"`
	CandidatePhone         string            `json:"candidatePhone,omitempty"`
	JobTitle               string            `json:"jobTitle,omitempty"`
	Company                string            `json:"company,omitempty"`
	Round                  InterviewRound    `json:"interviewRound"`
	RoundNumber            int               `json:"roundNumber"`
	IsLastRound            bool              `json:"isLastRound"`
	ScheduledDate          time.Time         `json:"scheduledDate"`
	ScheduledTime          string            `json:"scheduledTime,omitempty"`
	Mode                   InterviewMode     `json:"interviewMode"`
	MeetingLink            string            `json:"meetingLink,omitempty"`
	Venue                  string            `json:"venue,omitempty"`
	InterviewerNames       []string          `json:"interviewerNames,omitempty"`
	InterviewerEmails      []string          `json:"interviewerEmails,omitempty"`
	InterviewPanel         string            `json:"interviewPanel,omitempty"`
	Status                 InterviewStatus   `json:"status"`
	Feedback               string            `json:"feedback,omitempty"`
	TechnicalScore         *float64          `json:"technicalScore,omitempty"`
	CommunicationScore     *float64          `json:"communicationScore,omitempty"`
	OverallRating          *float64          `json:"overallRating,omitempty"`
	Decision               InterviewDecision `json:"decision,omitempty"`
	InterviewerRemarks     string            `json:"interviewerRemarks,omitempty"`
	NextRoundID            string            `json:"nextRoundId,omitempty"`
	Notes                  string            `json:"notes,omitempty"`
	NotificationSent       bool              `json:"notificationSent"`
	CreatedAt              time.Time         `json:"createdAt"`
	UpdatedAt              time.Time         `json:"updatedAt"`
}
