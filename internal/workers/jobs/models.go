package jobs

import "hiring-pipeline/internal/models"

type PostJobInput struct {
	JobID           string `json:"jobId,omitempty"`
	Title           string `json:"title"`
	Company         string `json:"company"`
	Description     string `json:"description,omitempty"`
	Location        string `json:"location,omitempty"`
	EmploymentType  string `json:"employmentType,omitempty"`
	ExperienceLevel string `json:"experienceLevel,omitempty"`
	RequiredSkills  string `json:"requiredSkills,omitempty"`
	SalaryRange     string `json:"salaryRange,omitempty"`
	PostedBy        string `json:"postedBy,omitempty"`
	MaxCandidates   int    `json:"maxCandidates,omitempty"`
}

type PostJobOutput struct {
	JobID         string           `json:"jobId"`
	JobStatus     models.JobStatus `json:"jobStatus"`
	MaxCandidates int              `json:"maxCandidates"`
	PostedAt      string           `json:"postedAt"`
}

type CloseJobInput struct {
	JobID string `json:"jobId"`
}

type CloseJobOutput struct {
	JobID            string           `json:"jobId"`
	JobStatus        models.JobStatus `json:"jobStatus"`
	ApplicationCount int              `json:"applicationCount"`
}

type SubmitApplicationInput struct {
	JobID          string `json:"jobId"`
	CandidateName  string `json:"candidateName"`
	CandidateEmail string `json:"candidateEmail"`
	CandidatePhone string `json:"candidatePhone,omitempty"`
	CoverLetter    string `json:"coverLetter,omitempty"`
	ResumeFileName string `json:"resumeFileName,omitempty"`
}

type SubmitApplicationOutput struct {
	ApplicationID     string                   `json:"applicationId"`
	ApplicationStatus models.ApplicationStatus `json:"applicationStatus"`
	JobID             string                   `json:"jobId"`
	JobStatus         models.JobStatus         `json:"jobStatus"`
	ApplicationCount  int                      `json:"applicationCount"`
	JobClosed         bool                     `json:"jobClosed"`
}
