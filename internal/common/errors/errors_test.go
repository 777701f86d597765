package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindAndCodeThroughWrapping(t *testing.T) {
	base := NewCapacityExceededError("job-1", 3)
	wrapped := fmt.Errorf("submit application: %w", base)

	assert.Equal(t, KindCapacityExceeded, KindOf(wrapped))
	assert.Equal(t, ErrCodeCapacityExceeded, CodeOf(wrapped))
	assert.True(t, IsKind(wrapped, KindCapacityExceeded))
	assert.False(t, IsKind(wrapped, KindNotFound))
	assert.True(t, stderrors.Is(wrapped, &StandardError{Code: ErrCodeCapacityExceeded}))

	plain := stderrors.New("boom")
	assert.Equal(t, KindInternal, KindOf(plain))
	assert.Equal(t, ErrCodeInternal, CodeOf(plain))
	assert.False(t, IsKind(plain, KindInternal))
}

func TestRetryableFollowsKind(t *testing.T) {
	cause := stderrors.New("connection refused")

	tests := []struct {
		name      string
		err       *StandardError
		retryable bool
		retries   int
	}{
		{"store failure", NewStoreError("get job", cause), true, 3},
		{"scoring down", NewScoringUnavailableError(cause), true, 2},
		{"notification", NewNotificationFailedError("SCHEDULED", cause), true, 3},
		{"not found", NewJobNotFoundError("job-1"), false, 0},
		{"bad input", NewInvalidInputError("email is required"), false, 0},
		{"transition", NewInvalidStatusTransitionError("offer", "ACCEPTED", "WITHDRAWN"), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.Equal(t, tt.retries, ConvertToBPMNError(tt.err).Retries)
		})
	}

	assert.True(t, stderrors.Is(NewStoreError("get job", cause), cause))
}

func TestConvertToBPMNError(t *testing.T) {
	e := NewOfferExpiredError("ol-1", mustDate(t, "2026-04-16")).
		WithMetadata(map[string]interface{}{"offerLetterId": "ol-1"})

	bpmn := ConvertToBPMNError(e)
	assert.Equal(t, "OFFER_EXPIRED", bpmn.Code)
	assert.False(t, bpmn.Retryable)

	vars := bpmn.ToErrorVariables()
	assert.Equal(t, "OFFER_EXPIRED", vars["errorCode"])
	assert.Equal(t, string(KindPreconditionFailed), vars["errorKind"])
	assert.Equal(t, "ol-1", vars["offerLetterId"])
	assert.Contains(t, vars["errorDetails"], "2026-04-16")
}

func TestNormalize(t *testing.T) {
	known := NewOnboardingNotFoundError("ob-1")
	assert.Same(t, known, Normalize(fmt.Errorf("ctx: %w", known)))

	foreign := Normalize(stderrors.New("nil map"))
	require.NotNil(t, foreign)
	assert.Equal(t, ErrCodeInternal, foreign.Code)
	assert.False(t, foreign.Retryable)
	assert.Equal(t, "nil map", foreign.Details)
}

func TestGetErrorCategory(t *testing.T) {
	tests := map[ErrorCode]string{
		ErrCodeJobNotOpen:                  "CAPACITY",
		ErrCodeCapacityExceeded:            "CAPACITY",
		ErrCodeApplicationNotFound:         "CAPACITY",
		ErrCodeScoringUnavailable:          "SHORTLIST",
		ErrCodeCandidateNotFound:           "SHORTLIST",
		ErrCodeRoundOutOfOrder:             "INTERVIEW",
		ErrCodeInterviewNotEligible:        "INTERVIEW",
		ErrCodeOfferNotAccepted:            "OFFER",
		ErrCodeDuplicateOnboarding:         "ONBOARDING",
		ErrCodeIncompleteRequiredDocuments: "ONBOARDING",
		ErrCodeSystemSetupIncomplete:       "ONBOARDING",
		ErrCodeStoreOperationFailed:        "STORE",
		ErrCodeInvalidInput:                "VALIDATION",
		ErrCodeInternal:                    "OTHER",
	}
	for code, want := range tests {
		assert.Equal(t, want, GetErrorCategory(code), string(code))
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}
