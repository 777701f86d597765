package models

import "time"

type ApplicationStatus string

const (
	ApplicationStatusSubmitted          ApplicationStatus = "SUBMITTED"
	ApplicationStatusUnderReview        ApplicationStatus = "UNDER_REVIEW"
	ApplicationStatusShortlisted        ApplicationStatus = "SHORTLISTED"
	ApplicationStatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	ApplicationStatusRejected           ApplicationStatus = "REJECTED"
	ApplicationStatusAccepted           ApplicationStatus = "ACCEPTED"
)

var applicationStatusOrder = map[ApplicationStatus]int{
	ApplicationStatusSubmitted:          0,
	ApplicationStatusUnderReview:        1,
	ApplicationStatusShortlisted:        2,
	ApplicationStatusInterviewScheduled: 3,
	ApplicationStatusAccepted:           4,
}

func (s ApplicationStatus) IsValid() bool {
	_, ok := applicationStatusOrder[s]
	return ok || s == ApplicationStatusRejected
}

// CanAdvanceTo reports whether an application may move from s to next.
// Movement is forward only; REJECTED is reachable from anywhere and is
// terminal.
func (s ApplicationStatus) CanAdvanceTo(next ApplicationStatus) bool {
	if s == ApplicationStatusRejected {
		return false
	}
	if next == ApplicationStatusRejected {
		return true
	}
	from, okFrom := applicationStatusOrder[s]
	to, okTo := applicationStatusOrder[next]
	return okFrom && okTo && to > from
}

type Application struct {
	ID             string            `json:"id"`
	JobID          string            `json:"jobId"`
	CandidateName  string            `json:"candidateName"`
	CandidateEmail string            `json:"candidateEmail"`
	CandidatePhone string            `json:"candidatePhone,omitempty"`
	CoverLetter    string            `json:"coverLetter,omitempty"`
	ResumeFileName string            `json:"resumeFileName,omitempty"`
	Status         ApplicationStatus `json:"status"`
	Notes          string            `json:"notes,omitempty"`
	AppliedAt      time.Time         `json:"appliedAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}
