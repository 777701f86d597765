package onboardings

import "hiring-pipeline/internal/models"

type CreateInput struct {
	OfferLetterID                  string `json:"offerLetterId"`
	PersonalEmail                  string `json:"personalEmail,omitempty"`
	Department                     string `json:"department,omitempty"`
	Designation                    string `json:"designation,omitempty"`
	ReportingManager               string `json:"reportingManager,omitempty"`
	WorkLocation                   string `json:"workLocation,omitempty"`
	JoiningDate                    string `json:"joiningDate,omitempty"`
	ProbationPeriod                int    `json:"probationPeriod,omitempty"`
	Coordinator                    string `json:"coordinator,omitempty"`
	BackgroundVerificationRequired bool   `json:"backgroundVerificationRequired,omitempty"`
	HRRemarks                      string `json:"hrRemarks,omitempty"`
	CreatedBy                      string `json:"createdBy,omitempty"`
}

type UploadInput struct {
	OnboardingID string              `json:"onboardingId"`
	DocumentType models.DocumentType `json:"documentType"`
	DocumentURL  string              `json:"documentUrl"`
	DocumentName string              `json:"documentName,omitempty"`
	FileType     string              `json:"fileType,omitempty"`
	FileSize     int64               `json:"fileSize,omitempty"`
	Remarks      string              `json:"remarks,omitempty"`
}

type VerifyInput struct {
	OnboardingID string              `json:"onboardingId"`
	DocumentType models.DocumentType `json:"documentType"`
	VerifiedBy   string              `json:"verifiedBy,omitempty"`
	Remarks      string              `json:"remarks,omitempty"`
}

type SystemSetupInput struct {
	OnboardingID         string `json:"onboardingId"`
	EmailAccountCreated  bool   `json:"emailAccountCreated"`
	SystemAccessProvided bool   `json:"systemAccessProvided"`
	IDCardIssued         bool   `json:"idCardIssued"`
	WorkstationAssigned  bool   `json:"workstationAssigned"`
	WorkstationNumber    string `json:"workstationNumber,omitempty"`
}

type OrientationInput struct {
	OnboardingID         string `json:"onboardingId"`
	OrientationCompleted bool   `json:"orientationCompleted"`
	OrientationDate      string `json:"orientationDate,omitempty"`
	ConductedBy          string `json:"conductedBy,omitempty"`
	Remarks              string `json:"remarks,omitempty"`
}

type BackgroundVerificationInput struct {
	OnboardingID string                    `json:"onboardingId"`
	Status       models.VerificationStatus `json:"status"`
	Remarks      string                    `json:"remarks,omitempty"`
}

type CompleteInput struct {
	OnboardingID string `json:"onboardingId"`
	ApprovedBy   string `json:"approvedBy"`
}

type DeleteInput struct {
	OnboardingID string `json:"onboardingId"`
}

type EmptyInput struct{}

type OnboardingOutput struct {
	OnboardingID         string                    `json:"onboardingId"`
	EmployeeID           string                    `json:"employeeId"`
	CandidateID          string                    `json:"candidateId"`
	OfferLetterID        string                    `json:"offerLetterId"`
	OnboardingStatus     models.OnboardingStatus   `json:"onboardingStatus"`
	CurrentStep          models.OnboardingStep     `json:"currentStep"`
	CompletionPercentage int                       `json:"completionPercentage"`
	PendingDocuments     []string                  `json:"pendingDocuments"`
	JoiningDate          string                    `json:"joiningDate,omitempty"`
	ProbationEndDate     string                    `json:"probationEndDate,omitempty"`
	BackgroundStatus     models.VerificationStatus `json:"backgroundVerificationStatus,omitempty"`
}

type DeleteOutput struct {
	OnboardingID string `json:"onboardingId"`
	Deleted      bool   `json:"deleted"`
}

type EligibleOffer struct {
	OfferLetterID  string `json:"offerLetterId"`
	CandidateID    string `json:"candidateId"`
	CandidateName  string `json:"candidateName"`
	CandidateEmail string `json:"candidateEmail"`
	JobTitle       string `json:"jobTitle"`
	JoiningDate    string `json:"joiningDate"`
}

type EligibleOutput struct {
	Offers []EligibleOffer `json:"offers"`
	Count  int             `json:"count"`
}
