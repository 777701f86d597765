package offers

import "hiring-pipeline/internal/models"

type CompensationInput struct {
	AnnualCTC        float64 `json:"annualCtc,omitempty"`
	BasicSalary      float64 `json:"basicSalary,omitempty"`
	HRA              float64 `json:"hra,omitempty"`
	SpecialAllowance float64 `json:"specialAllowance,omitempty"`
	PerformanceBonus float64 `json:"performanceBonus,omitempty"`
	OtherAllowances  float64 `json:"otherAllowances,omitempty"`
	Currency         string  `json:"currency,omitempty"`
}

type GenerateInput struct {
	CandidateID      string                `json:"candidateId"`
	ApplicationID    string                `json:"applicationId"`
	JobID            string                `json:"jobId"`
	InterviewID      string                `json:"interviewId"`
	JoiningDate      string                `json:"joiningDate"`
	ExpiryDate       string                `json:"expiryDate,omitempty"`
	EmploymentType   models.EmploymentType `json:"employmentType,omitempty"`
	WorkLocation     string                `json:"workLocation,omitempty"`
	OfficeLocation   string                `json:"officeLocation,omitempty"`
	Department       string                `json:"department,omitempty"`
	Compensation     CompensationInput     `json:"compensation"`
	Benefits         string                `json:"benefits,omitempty"`
	PaidLeaves       int                   `json:"paidLeaves,omitempty"`
	ProbationPeriod  int                   `json:"probationPeriod,omitempty"`
	NoticePeriod     int                   `json:"noticePeriod,omitempty"`
	ReportingManager string                `json:"reportingManager,omitempty"`
	CandidateAddress string                `json:"candidateAddress,omitempty"`
	CompanyAddress   string                `json:"companyAddress,omitempty"`
	GeneratedBy      string                `json:"generatedBy,omitempty"`
	HRRemarks        string                `json:"hrRemarks,omitempty"`
}

type OfferInput struct {
	OfferLetterID string `json:"offerLetterId"`
}

type AcceptInput struct {
	OfferLetterID     string                  `json:"offerLetterId"`
	AcceptanceMethod  models.AcceptanceMethod `json:"acceptanceMethod,omitempty"`
	AcceptanceRemarks string                  `json:"acceptanceRemarks,omitempty"`
}

type RejectInput struct {
	OfferLetterID   string `json:"offerLetterId"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

type WithdrawInput struct {
	OfferLetterID string `json:"offerLetterId"`
	Reason        string `json:"reason,omitempty"`
}

type EmptyInput struct{}

type OfferOutput struct {
	OfferLetterID     string             `json:"offerLetterId"`
	OfferLetterNumber string             `json:"offerLetterNumber"`
	OfferStatus       models.OfferStatus `json:"offerStatus"`
	CandidateID       string             `json:"candidateId"`
	ApplicationID     string             `json:"applicationId"`
	CandidateEmail    string             `json:"candidateEmail"`
	JoiningDate       string             `json:"joiningDate"`
	ExpiryDate        string             `json:"expiryDate"`
	AnnualCTC         float64            `json:"annualCtc"`
	Currency          string             `json:"currency"`
	IsAccepted        bool               `json:"isAccepted"`
	DownloadCount     int                `json:"downloadCount"`
}

type EligibleCandidate struct {
	CandidateID    string `json:"candidateId"`
	ApplicationID  string `json:"applicationId"`
	JobID          string `json:"jobId"`
	InterviewID    string `json:"interviewId"`
	CandidateName  string `json:"candidateName"`
	CandidateEmail string `json:"candidateEmail"`
	JobTitle       string `json:"jobTitle,omitempty"`
}

type EligibleOutput struct {
	Candidates []EligibleCandidate `json:"candidates"`
	Count      int                 `json:"count"`
}

type ExpireOutput struct {
	ExpiredOfferIDs []string `json:"expiredOfferIds"`
	Count           int      `json:"count"`
}
