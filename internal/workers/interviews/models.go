package interviews

import "hiring-pipeline/internal/models"

// SlotInput carries the booking details shared by single and batch
// scheduling.
type SlotInput struct {
	InterviewRound    models.InterviewRound `json:"interviewRound"`
	ScheduledDate     string                `json:"scheduledDate"`
	ScheduledTime     string                `json:"scheduledTime,omitempty"`
	InterviewMode     models.InterviewMode  `json:"interviewMode,omitempty"`
	MeetingLink       string                `json:"meetingLink,omitempty"`
	Venue             string                `json:"venue,omitempty"`
	InterviewerNames  []string              `json:"interviewerNames,omitempty"`
	InterviewerEmails []string              `json:"interviewerEmails,omitempty"`
	InterviewPanel    string                `json:"interviewPanel,omitempty"`
	Notes             string                `json:"notes,omitempty"`
	NotificationType  string                `json:"notificationType,omitempty"`
}

type ScheduleInput struct {
	CandidateID string `json:"candidateId"`
	SlotInput
}

type BatchInput struct {
	CandidateIDs []string `json:"candidateIds"`
	SlotInput
}

// InterviewOutput is the common view returned by every interview task.
type InterviewOutput struct {
	InterviewID      string                   `json:"interviewId"`
	InterviewStatus  models.InterviewStatus   `json:"interviewStatus"`
	InterviewRound   models.InterviewRound    `json:"interviewRound"`
	RoundNumber      int                      `json:"roundNumber"`
	IsLastRound      bool                     `json:"isLastRound"`
	CandidateID      string                   `json:"candidateId"`
	ApplicationID    string                   `json:"applicationId"`
	JobID            string                   `json:"jobId"`
	CandidateEmail   string                   `json:"candidateEmail"`
	ScheduledDate    string                   `json:"scheduledDate"`
	ScheduledTime    string                   `json:"scheduledTime,omitempty"`
	Decision         models.InterviewDecision `json:"decision,omitempty"`
	NotificationSent bool                     `json:"notificationSent"`
	// NotificationError is set when the booking stood but the candidate
	// could not be notified.
	NotificationError string `json:"notificationError,omitempty"`
	// OfferEligible is true once the HR round ends in SELECTED.
	OfferEligible bool `json:"offerEligible"`
}

type BatchFailure struct {
	CandidateID string `json:"candidateId"`
	Email       string `json:"email,omitempty"`
	ErrorCode   string `json:"errorCode"`
	Message     string `json:"message"`
}

type BatchOutput struct {
	TotalScheduled int            `json:"totalScheduled"`
	TotalFailed    int            `json:"totalFailed"`
	SuccessEmails  []string       `json:"successEmails"`
	FailedEmails   []string       `json:"failedEmails"`
	InterviewIDs   []string       `json:"interviewIds"`
	Failures       []BatchFailure `json:"failures,omitempty"`
}

type FeedbackInput struct {
	InterviewID        string                   `json:"interviewId"`
	Decision           models.InterviewDecision `json:"decision"`
	TechnicalScore     *float64                 `json:"technicalScore,omitempty"`
	CommunicationScore *float64                 `json:"communicationScore,omitempty"`
	OverallRating      *float64                 `json:"overallRating,omitempty"`
	Feedback           string                   `json:"feedback,omitempty"`
	InterviewerRemarks string                   `json:"interviewerRemarks,omitempty"`
}

type RescheduleInput struct {
	InterviewID   string `json:"interviewId"`
	ScheduledDate string `json:"scheduledDate"`
	ScheduledTime string `json:"scheduledTime,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type CancelInput struct {
	InterviewID string `json:"interviewId"`
	Reason      string `json:"reason,omitempty"`
}

type NoShowInput struct {
	InterviewID string `json:"interviewId"`
}
