package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorKind is the coarse failure class callers branch on.
type ErrorKind string

const (
	KindNotFound                ErrorKind = "NOT_FOUND"
	KindInvalidStateTransition  ErrorKind = "INVALID_STATE_TRANSITION"
	KindPreconditionFailed      ErrorKind = "PRECONDITION_FAILED"
	KindCapacityExceeded        ErrorKind = "CAPACITY_EXCEEDED"
	KindDuplicateEntity         ErrorKind = "DUPLICATE_ENTITY"
	KindCollaboratorUnavailable ErrorKind = "COLLABORATOR_UNAVAILABLE"
	KindValidationFailed        ErrorKind = "VALIDATION_FAILED"
	KindInternal                ErrorKind = "INTERNAL"
)

// ErrorCode is the stable, specific failure identifier.
type ErrorCode string

const (
	ErrCodeJobNotFound         ErrorCode = "JOB_NOT_FOUND"
	ErrCodeJobNotOpen          ErrorCode = "JOB_NOT_OPEN"
	ErrCodeJobAlreadyExists    ErrorCode = "JOB_ALREADY_EXISTS"
	ErrCodeCapacityExceeded    ErrorCode = "CAPACITY_EXCEEDED"
	ErrCodeApplicationNotFound ErrorCode = "APPLICATION_NOT_FOUND"

	ErrCodeScoringUnavailable ErrorCode = "SCORING_COLLABORATOR_UNAVAILABLE"
	ErrCodeCandidateNotFound  ErrorCode = "CANDIDATE_NOT_FOUND"

	ErrCodeInterviewNotFound      ErrorCode = "INTERVIEW_NOT_FOUND"
	ErrCodeInterviewAlreadyActive ErrorCode = "INTERVIEW_ALREADY_ACTIVE"
	ErrCodeRoundOutOfOrder        ErrorCode = "ROUND_OUT_OF_ORDER"
	ErrCodeNotificationFailed     ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeOfferNotFound        ErrorCode = "OFFER_NOT_FOUND"
	ErrCodeOfferAlreadyExists   ErrorCode = "OFFER_ALREADY_EXISTS"
	ErrCodeInterviewNotEligible ErrorCode = "INTERVIEW_NOT_ELIGIBLE"
	ErrCodeOfferExpired         ErrorCode = "OFFER_EXPIRED"

	ErrCodeOnboardingNotFound          ErrorCode = "ONBOARDING_NOT_FOUND"
	ErrCodeOfferNotAccepted            ErrorCode = "OFFER_NOT_ACCEPTED"
	ErrCodeDuplicateOnboarding         ErrorCode = "DUPLICATE_ONBOARDING"
	ErrCodeDocumentNotSubmitted        ErrorCode = "DOCUMENT_NOT_SUBMITTED"
	ErrCodeIncompleteRequiredDocuments ErrorCode = "INCOMPLETE_REQUIRED_DOCUMENTS"
	ErrCodeSystemSetupIncomplete       ErrorCode = "SYSTEM_SETUP_INCOMPLETE"
	ErrCodeOrientationIncomplete       ErrorCode = "ORIENTATION_INCOMPLETE"

	ErrCodeInvalidStatusTransition ErrorCode = "INVALID_STATUS_TRANSITION"
	ErrCodeInvalidInput            ErrorCode = "INVALID_INPUT"
	ErrCodeStoreOperationFailed    ErrorCode = "STORE_OPERATION_FAILED"
	ErrCodeInternal                ErrorCode = "INTERNAL_ERROR"
)

type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Kind      ErrorKind              `json:"kind"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

// Is matches another StandardError by code, so callers can compare against
// a zero-detail template such as &StandardError{Code: ErrCodeJobNotFound}.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMetadata returns e after merging the given metadata into it.
func (e *StandardError) WithMetadata(kv map[string]interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{}, len(kv))
	}
	for k, v := range kv {
		e.Metadata[k] = v
	}
	return e
}

type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, kind ErrorKind, message, details string) *StandardError {
	return &StandardError{
		Code:      code,
		Kind:      kind,
		Message:   message,
		Details:   details,
		Retryable: kind == KindCollaboratorUnavailable || kind == KindInternal,
		Timestamp: time.Now().UTC(),
	}
}

func NewJobNotFoundError(jobID string) *StandardError {
	return newError(ErrCodeJobNotFound, KindNotFound, "Job not found", fmt.Sprintf("jobId: %s", jobID))
}

func NewJobAlreadyExistsError(jobID string) *StandardError {
	return newError(ErrCodeJobAlreadyExists, KindDuplicateEntity, "Job already exists", fmt.Sprintf("jobId: %s", jobID))
}

func NewJobNotOpenError(jobID, status string) *StandardError {
	return newError(ErrCodeJobNotOpen, KindInvalidStateTransition, "Job is not accepting applications",
		fmt.Sprintf("jobId: %s, status: %s", jobID, status))
}

func NewCapacityExceededError(jobID string, maxCandidates int) *StandardError {
	return newError(ErrCodeCapacityExceeded, KindCapacityExceeded, "Job has reached its application limit",
		fmt.Sprintf("jobId: %s, maxCandidates: %d", jobID, maxCandidates))
}

func NewApplicationNotFoundError(applicationID string) *StandardError {
	return newError(ErrCodeApplicationNotFound, KindNotFound, "Application not found",
		fmt.Sprintf("applicationId: %s", applicationID))
}

func NewScoringUnavailableError(err error) *StandardError {
	e := newError(ErrCodeScoringUnavailable, KindCollaboratorUnavailable, "Scoring service unavailable", err.Error())
	e.Cause = err
	return e
}

func NewCandidateNotFoundError(candidateID string) *StandardError {
	return newError(ErrCodeCandidateNotFound, KindNotFound, "Shortlisted candidate not found",
		fmt.Sprintf("candidateId: %s", candidateID))
}

func NewInterviewNotFoundError(interviewID string) *StandardError {
	return newError(ErrCodeInterviewNotFound, KindNotFound, "Interview not found",
		fmt.Sprintf("interviewId: %s", interviewID))
}

func NewInterviewAlreadyActiveError(candidateID, interviewID string) *StandardError {
	return newError(ErrCodeInterviewAlreadyActive, KindInvalidStateTransition, "Candidate already has an active interview",
		fmt.Sprintf("candidateId: %s, interviewId: %s", candidateID, interviewID))
}

func NewRoundOutOfOrderError(round string, roundNumber, latest int) *StandardError {
	return newError(ErrCodeRoundOutOfOrder, KindPreconditionFailed, "Interview round precedes an earlier round",
		fmt.Sprintf("round: %s, roundNumber: %d, latestRoundNumber: %d", round, roundNumber, latest))
}

func NewNotificationFailedError(notificationType string, err error) *StandardError {
	e := newError(ErrCodeNotificationFailed, KindCollaboratorUnavailable, "Notification delivery failed",
		fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()))
	e.Cause = err
	return e
}

func NewOfferNotFoundError(offerID string) *StandardError {
	return newError(ErrCodeOfferNotFound, KindNotFound, "Offer letter not found", fmt.Sprintf("offerId: %s", offerID))
}

func NewOfferAlreadyExistsError(applicationID string) *StandardError {
	return newError(ErrCodeOfferAlreadyExists, KindDuplicateEntity, "Offer letter already exists for application",
		fmt.Sprintf("applicationId: %s", applicationID))
}

func NewInterviewNotEligibleError(interviewID, details string) *StandardError {
	return newError(ErrCodeInterviewNotEligible, KindPreconditionFailed, "Interview does not qualify for an offer",
		fmt.Sprintf("interviewId: %s, %s", interviewID, details))
}

func NewOfferExpiredError(offerID string, expiry time.Time) *StandardError {
	return newError(ErrCodeOfferExpired, KindPreconditionFailed, "Offer letter has expired",
		fmt.Sprintf("offerId: %s, expiryDate: %s", offerID, expiry.Format("2006-01-02")))
}

func NewOnboardingNotFoundError(onboardingID string) *StandardError {
	return newError(ErrCodeOnboardingNotFound, KindNotFound, "Onboarding not found",
		fmt.Sprintf("onboardingId: %s", onboardingID))
}

func NewOfferNotAcceptedError(offerID, status string) *StandardError {
	return newError(ErrCodeOfferNotAccepted, KindPreconditionFailed, "Offer letter has not been accepted",
		fmt.Sprintf("offerId: %s, status: %s", offerID, status))
}

func NewDuplicateOnboardingError(details string) *StandardError {
	return newError(ErrCodeDuplicateOnboarding, KindDuplicateEntity, "Onboarding already exists", details)
}

func NewDocumentNotSubmittedError(documentType string) *StandardError {
	return newError(ErrCodeDocumentNotSubmitted, KindPreconditionFailed, "Document has not been submitted",
		fmt.Sprintf("documentType: %s", documentType))
}

func NewIncompleteRequiredDocumentsError(pending []string) *StandardError {
	return newError(ErrCodeIncompleteRequiredDocuments, KindPreconditionFailed, "Required documents are not verified",
		fmt.Sprintf("pending: %s", strings.Join(pending, ",")))
}

func NewSystemSetupIncompleteError(details string) *StandardError {
	return newError(ErrCodeSystemSetupIncomplete, KindPreconditionFailed, "System setup is incomplete", details)
}

func NewOrientationIncompleteError(onboardingID string) *StandardError {
	return newError(ErrCodeOrientationIncomplete, KindPreconditionFailed, "Orientation is not completed",
		fmt.Sprintf("onboardingId: %s", onboardingID))
}

func NewInvalidStatusTransitionError(entity, from, to string) *StandardError {
	return newError(ErrCodeInvalidStatusTransition, KindInvalidStateTransition, "Status transition not allowed",
		fmt.Sprintf("%s: %s -> %s", entity, from, to))
}

func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, KindValidationFailed, "Invalid input", details)
}

func NewStoreError(operation string, err error) *StandardError {
	e := newError(ErrCodeStoreOperationFailed, KindInternal, "Store operation failed",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()))
	e.Cause = err
	return e
}

// KindOf returns the kind of the first StandardError in err's chain, or
// KindInternal when there is none.
func KindOf(err error) ErrorKind {
	var se *StandardError
	if stderrors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// CodeOf returns the code of the first StandardError in err's chain.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

func IsKind(err error, kind ErrorKind) bool {
	var se *StandardError
	return stderrors.As(err, &se) && se.Kind == kind
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStoreOperationFailed,
		ErrCodeNotificationFailed:
		return 3
	case ErrCodeScoringUnavailable:
		return 2
	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"errorKind": string(stdErr.Kind),
		"timestamp": stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           string(stdErr.Code),
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "JOB_") || codeStr == string(ErrCodeCapacityExceeded) || strings.HasPrefix(codeStr, "APPLICATION_"):
		return "CAPACITY"
	case strings.HasPrefix(codeStr, "SCORING_") || strings.HasPrefix(codeStr, "CANDIDATE_"):
		return "SHORTLIST"
	case strings.Contains(codeStr, "INTERVIEW") || strings.HasPrefix(codeStr, "ROUND_") || strings.HasPrefix(codeStr, "NOTIFICATION_"):
		return "INTERVIEW"
	case strings.Contains(codeStr, "OFFER") && !strings.Contains(codeStr, "ONBOARDING"):
		return "OFFER"
	case strings.Contains(codeStr, "ONBOARDING") || strings.Contains(codeStr, "DOCUMENT") ||
		strings.HasPrefix(codeStr, "SYSTEM_SETUP") || strings.HasPrefix(codeStr, "ORIENTATION"):
		return "ONBOARDING"
	case strings.HasPrefix(codeStr, "STORE_"):
		return "STORE"
	case strings.HasPrefix(codeStr, "INVALID_"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
