package models

import "time"

type OfferStatus string

const (
	OfferStatusGenerated OfferStatus = "GENERATED"
	OfferStatusSent      OfferStatus = "SENT"
	OfferStatusAccepted  OfferStatus = "ACCEPTED"
	OfferStatusRejected  OfferStatus = "REJECTED"
	OfferStatusExpired   OfferStatus = "EXPIRED"
	OfferStatusWithdrawn OfferStatus = "WITHDRAWN"
)

func (s OfferStatus) IsValid() bool {
	switch s {
	case OfferStatusGenerated, OfferStatusSent, OfferStatusAccepted,
		OfferStatusRejected, OfferStatusExpired, OfferStatusWithdrawn:
		return true
	}
	return false
}

// IsOutstanding reports whether the offer is still waiting on the candidate.
func (s OfferStatus) IsOutstanding() bool {
	return s == OfferStatusGenerated || s == OfferStatusSent
}

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "FULL_TIME"
	EmploymentPartTime   EmploymentType = "PART_TIME"
	EmploymentContract   EmploymentType = "CONTRACT"
	EmploymentInternship EmploymentType = "INTERNSHIP"
)

func (e EmploymentType) IsValid() bool {
	switch e {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}

type AcceptanceMethod string

const (
	AcceptanceEmail      AcceptanceMethod = "EMAIL"
	AcceptancePortal     AcceptanceMethod = "PORTAL"
	AcceptanceSignedCopy AcceptanceMethod = "SIGNED_COPY"
)

func (m AcceptanceMethod) IsValid() bool {
	switch m {
	case AcceptanceEmail, AcceptancePortal, AcceptanceSignedCopy:
		return true
	}
	return false
}

type Compensation struct {
	AnnualCTC        float64 `json:"annualCtc"`
	BasicSalary      float64 `json:"basicSalary"`
	HRA              float64 `json:"hra"`
	SpecialAllowance float64 `json:"specialAllowance"`
	PerformanceBonus float64 `json:"performanceBonus"`
	OtherAllowances  float64 `json:"otherAllowances"`
	Currency         string  `json:"currency"`
}

type OfferLetter struct {
	ID               string           `json:"id"`
	CandidateID      string           `json:"candidateId"`
	ApplicationID    string           `json:"applicationId"`
	JobID            string           `json:"jobId"`
	InterviewID      string           `json:"interviewId"`
	CandidateName    string           `json:"candidateName"`
	CandidateEmail   string           `json:"candidateEmail"`
	CandidatePhone   string           `json:"candidatePhone,omitempty"`
	CandidateAddress string           `json:"candidateAddress,omitempty"`
	JobTitle         string           `json:"jobTitle"`
	Department       string           `json:"department,omitempty"`
	Company          string           `json:"company"`
	CompanyAddress   string           `json:"companyAddress,omitempty"`
	OfferNumber      string           `json:"offerLetterNumber"`
	OfferDate        time.Time        `json:"offerDate"`
	JoiningDate      time.Time        `json:"joiningDate"`
	ExpiryDate       time.Time        `json:"expiryDate"`
	EmploymentType   EmploymentType   `json:"employmentType"`
	WorkLocation     string           `json:"workLocation"`
	OfficeLocation   string           `json:"officeLocation,omitempty"`
	Compensation     Compensation     `json:"compensation"`
	Benefits         string           `json:"benefits,omitempty"`
	PaidLeaves       int              `json:"paidLeaves"`
	ProbationPeriod  int              `json:"probationPeriod"`
	NoticePeriod     int              `json:"noticePeriod"`
	ReportingManager string           `json:"reportingManager,omitempty"`
	Status           OfferStatus      `json:"status"`
	GeneratedAt      time.Time        `json:"generatedAt"`
	SentAt           *time.Time       `json:"sentAt,omitempty"`
	RespondedAt      *time.Time       `json:"respondedAt,omitempty"`
	IsAccepted       bool             `json:"isAccepted"`
	AcceptanceMethod AcceptanceMethod `json:"acceptanceMethod,omitempty"`
	AcceptanceNotes  string           `json:"acceptanceRemarks,omitempty"`
	RejectionReason  string           `json:"rejectionReason,omitempty"`
	IsDownloaded     bool             `json:"isDownloaded"`
	DownloadCount    int              `json:"downloadCount"`
	GeneratedBy      string           `json:"generatedBy,omitempty"`
	HRRemarks        string           `json:"hrRemarks,omitempty"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// IsExpiredAt reports whether the acceptance window closed before now.
func (o *OfferLetter) IsExpiredAt(now time.Time) bool {
	return !o.ExpiryDate.IsZero() && now.After(o.ExpiryDate)
}
