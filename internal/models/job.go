package models

import "time"

type JobStatus string

const (
	JobStatusOpen   JobStatus = "OPEN"
	JobStatusClosed JobStatus = "CLOSED"
	JobStatusDraft  JobStatus = "DRAFT"
)

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusOpen, JobStatusClosed, JobStatusDraft:
		return true
	}
	return false
}

type Job struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Company          string    `json:"company"`
	Location         string    `json:"location"`
	EmploymentType   string    `json:"employmentType,omitempty"`
	ExperienceLevel  string    `json:"experienceLevel,omitempty"`
	RequiredSkills   string    `json:"requiredSkills,omitempty"`
	SalaryRange      string    `json:"salaryRange,omitempty"`
	PostedBy         string    `json:"postedBy,omitempty"`
	MaxCandidates    int       `json:"maxCandidates"`
	ApplicationCount int       `json:"applicationCount"`
	Status           JobStatus `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// IsFull reports whether a capped job has used every slot.
func (j *Job) IsFull() bool {
	return j.MaxCandidates > 0 && j.ApplicationCount >= j.MaxCandidates
}
