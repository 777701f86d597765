package models

import "time"

type OnboardingStatus string

const (
	OnboardingStatusPending            OnboardingStatus = "PENDING"
	OnboardingStatusDocumentsSubmitted OnboardingStatus = "DOCUMENTS_SUBMITTED"
	OnboardingStatusVerified           OnboardingStatus = "VERIFIED"
	OnboardingStatusApproved           OnboardingStatus = "APPROVED"
	OnboardingStatusCompleted          OnboardingStatus = "COMPLETED"
	OnboardingStatusRejected           OnboardingStatus = "REJECTED"
)

func (s OnboardingStatus) IsValid() bool {
	switch s {
	case OnboardingStatusPending, OnboardingStatusDocumentsSubmitted, OnboardingStatusVerified,
		OnboardingStatusApproved, OnboardingStatusCompleted, OnboardingStatusRejected:
		return true
	}
	return false
}

// IsClosed reports whether the onboarding no longer accepts changes.
func (s OnboardingStatus) IsClosed() bool {
	return s == OnboardingStatusCompleted || s == OnboardingStatusRejected
}

type OnboardingStep string

const (
	StepDocumentCollection OnboardingStep = "DOCUMENT_COLLECTION"
	StepVerification       OnboardingStep = "VERIFICATION"
	StepSystemSetup        OnboardingStep = "SYSTEM_SETUP"
	StepOrientation        OnboardingStep = "ORIENTATION"
	StepCompleted          OnboardingStep = "COMPLETED"
)

type VerificationStatus string

const (
	VerificationPending    VerificationStatus = "PENDING"
	VerificationInProgress VerificationStatus = "IN_PROGRESS"
	VerificationCompleted  VerificationStatus = "COMPLETED"
	VerificationFailed     VerificationStatus = "FAILED"
)

func (s VerificationStatus) IsValid() bool {
	switch s {
	case VerificationPending, VerificationInProgress, VerificationCompleted, VerificationFailed:
		return true
	}
	return false
}

type DocumentType string

const (
	DocAadhaarCard            DocumentType = "AADHAAR_CARD"
	DocPANCard                DocumentType = "PAN_CARD"
	DocPassportPhoto          DocumentType = "PASSPORT_PHOTO"
	DocEducationalCertificate DocumentType = "EDUCATIONAL_CERTIFICATE"
	DocAddressProof           DocumentType = "ADDRESS_PROOF"
	DocCancelledCheque        DocumentType = "CANCELLED_CHEQUE"
	DocExperienceLetter       DocumentType = "EXPERIENCE_LETTER"
	DocRelievingLetter        DocumentType = "RELIEVING_LETTER"
	DocSalarySlips            DocumentType = "SALARY_SLIPS"
	DocCovidCertificate       DocumentType = "COVID_CERTIFICATE"
)

type checklistEntry struct {
	docType  DocumentType
	name     string
	required bool
}

// checklist is the ordered document list every onboarding starts with.
var checklist = []checklistEntry{
	{DocAadhaarCard, "Aadhaar Card", true},
	{DocPANCard, "PAN Card", true},
	{DocPassportPhoto, "Passport Size Photo", true},
	{DocEducationalCertificate, "Educational Certificates", true},
	{DocAddressProof, "Address Proof", true},
	{DocCancelledCheque, "Cancelled Cheque", true},
	{DocExperienceLetter, "Experience Letter", false},
	{DocRelievingLetter, "Relieving Letter", false},
	{DocSalarySlips, "Last 3 Months Salary Slips", false},
	{DocCovidCertificate, "COVID Vaccination Certificate", false},
}

func (d DocumentType) IsValid() bool {
	for _, e := range checklist {
		if e.docType == d {
			return true
		}
	}
	return false
}

// NewDocumentChecklist returns a fresh, unsubmitted checklist.
func NewDocumentChecklist() []OnboardingDocument {
	docs := make([]OnboardingDocument, 0, len(checklist))
	for _, e := range checklist {
		docs = append(docs, OnboardingDocument{
			Type:       e.docType,
			Name:       e.name,
			IsRequired: e.required,
		})
	}
	return docs
}

type OnboardingDocument struct {
	Type        DocumentType `json:"documentType"`
	Name        string       `json:"documentName"`
	URL         string       `json:"documentUrl,omitempty"`
	IsRequired  bool         `json:"isRequired"`
	IsSubmitted bool         `json:"isSubmitted"`
	IsVerified  bool         `json:"isVerified"`
	SubmittedAt *time.Time   `json:"submittedAt,omitempty"`
	VerifiedAt  *time.Time   `json:"verifiedAt,omitempty"`
	VerifiedBy  string       `json:"verifiedBy,omitempty"`
	Remarks     string       `json:"remarks,omitempty"`
	FileSize    int64        `json:"fileSize,omitempty"`
	FileType    string       `json:"fileType,omitempty"`
}

type SystemSetup struct {
	EmailAccountCreated  bool   `json:"emailAccountCreated"`
	SystemAccessProvided bool   `json:"systemAccessProvided"`
	IDCardIssued         bool   `json:"idCardIssued"`
	WorkstationAssigned  bool   `json:"workstationAssigned"`
	WorkstationNumber    string `json:"workstationNumber,omitempty"`
}

// Complete ignores the workstation; it is tracked but not gating.
func (s SystemSetup) Complete() bool {
	return s.EmailAccountCreated && s.SystemAccessProvided && s.IDCardIssued
}

type Orientation struct {
	Completed   bool       `json:"orientationCompleted"`
	Date        *time.Time `json:"orientationDate,omitempty"`
	ConductedBy string     `json:"orientationConductedBy,omitempty"`
	Remarks     string     `json:"orientationRemarks,omitempty"`
}

type BackgroundVerification struct {
	Required bool               `json:"backgroundVerificationRequired"`
	Status   VerificationStatus `json:"backgroundVerificationStatus"`
	Date     *time.Time         `json:"backgroundVerificationDate,omitempty"`
	Remarks  string             `json:"backgroundVerificationRemarks,omitempty"`
}

type Onboarding struct {
	ID                     string                 `json:"id"`
	CandidateID            string                 `json:"candidateId"`
	OfferLetterID          string                 `json:"offerLetterId"`
	ApplicationID          string                 `json:"applicationId"`
	JobID                  string                 `json:"jobId"`
	EmployeeID             string                 `json:"employeeId"`
	CandidateName          string                 `json:"candidateName"`
	CandidateEmail         string                 `json:"candidateEmail"`
	CandidatePhone         string                 `json:"candidatePhone,omitempty"`
	PersonalEmail          string                 `json:"personalEmail,omitempty"`
	JobTitle               string                 `json:"jobTitle"`
	Department             string                 `json:"department,omitempty"`
	Designation            string                 `json:"designation,omitempty"`
	ReportingManager       string                 `json:"reportingManager,omitempty"`
	WorkLocation           string                 `json:"workLocation,omitempty"`
	JoiningDate            time.Time              `json:"joiningDate"`
	StartDate              time.Time              `json:"onboardingStartDate"`
	CompletionDate         *time.Time             `json:"onboardingCompletionDate,omitempty"`
	Status                 OnboardingStatus       `json:"status"`
	CurrentStep            OnboardingStep         `json:"currentStep"`
	CompletionPercentage   int                    `json:"completionPercentage"`
	Documents              []OnboardingDocument   `json:"documents"`
	SystemSetup            SystemSetup            `json:"systemSetup"`
	Orientation            Orientation            `json:"orientation"`
	BackgroundVerification BackgroundVerification `json:"backgroundVerification"`
	Coordinator            string                 `json:"onboardingCoordinator,omitempty"`
	HRRemarks              string                 `json:"hrRemarks,omitempty"`
	ApprovedBy             string                 `json:"approvedBy,omitempty"`
	ApprovedAt             *time.Time             `json:"approvedAt,omitempty"`
	ProbationPeriod        int                    `json:"probationPeriod"`
	ProbationEndDate       time.Time              `json:"probationEndDate"`
	CreatedAt              time.Time              `json:"createdAt"`
	UpdatedAt              time.Time              `json:"updatedAt"`
	CreatedBy              string                 `json:"createdBy,omitempty"`
}

// Document returns the checklist entry for docType, or nil.
func (o *Onboarding) Document(docType DocumentType) *OnboardingDocument {
	for i := range o.Documents {
		if o.Documents[i].Type == docType {
			return &o.Documents[i]
		}
	}
	return nil
}

func (o *Onboarding) RequiredSubmitted() bool {
	for _, d := range o.Documents {
		if d.IsRequired && !d.IsSubmitted {
			return false
		}
	}
	return true
}

func (o *Onboarding) RequiredVerified() bool {
	for _, d := range o.Documents {
		if d.IsRequired && !d.IsVerified {
			return false
		}
	}
	return true
}

// PendingRequired lists required documents that are not yet verified.
func (o *Onboarding) PendingRequired() []string {
	var pending []string
	for _, d := range o.Documents {
		if d.IsRequired && !d.IsVerified {
			pending = append(pending, string(d.Type))
		}
	}
	return pending
}

// Progress is the completion percentage over five equally weighted
// milestones.
func (o *Onboarding) Progress() int {
	done := 0
	if o.RequiredSubmitted() {
		done++
	}
	if o.RequiredVerified() {
		done++
	}
	if o.SystemSetup.Complete() {
		done++
	}
	if o.Orientation.Completed {
		done++
	}
	if o.Status == OnboardingStatusCompleted {
		done++
	}
	return done * 100 / 5
}
