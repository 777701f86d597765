package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiring-pipeline/pkg/registry"
)

func TestExportName(t *testing.T) {
	tests := map[string]string{
		"offerLetterId":   "OfferLetterID",
		"candidateIds":    "CandidateIDs",
		"documentUrl":     "DocumentURL",
		"annualCtc":       "AnnualCTC",
		"scheduledDate":   "ScheduledDate",
		"probationPeriod": "ProbationPeriod",
	}
	for in, want := range tests {
		assert.Equal(t, want, exportName(in), in)
	}
	assert.Equal(t, "OnboardingDocumentUpload", exportName(camel("onboarding-document-upload")))
}

func TestRenderOnboardingUpload(t *testing.T) {
	activity, ok := registry.Default().Find("onboarding-document-upload")
	require.True(t, ok)
	data := newWorkerData(activity, "onboardings")

	models, err := render("models.go", modelsTemplate, data)
	require.NoError(t, err)
	src := string(models)
	assert.Contains(t, src, "type OnboardingDocumentUploadInput struct")
	assert.Contains(t, src, "`json:\"documentUrl\"`")
	assert.Contains(t, src, "`json:\"fileSize,omitempty\"`")
	assert.Contains(t, src, "one of AADHAAR_CARD")

	handler, err := render("handler.go", handlerTemplate, data)
	require.NoError(t, err)
	assert.Contains(t, string(handler), `const TaskOnboardingDocumentUpload = "onboarding-document-upload"`)
	assert.Contains(t, string(handler), "camunda.Bind(h.OnboardingDocumentUpload)")
}

func TestBuildFields_DatesAndArrays(t *testing.T) {
	activity, ok := registry.Default().Find("interview-schedule-batch")
	require.True(t, ok)

	byName := map[string]field{}
	for _, f := range buildFields(activity.InputSchema) {
		byName[f.Name] = f
	}
	assert.Equal(t, "[]string", byName["CandidateIDs"].Type)
	assert.Contains(t, byName["ScheduledDate"].Comment, "RFC3339")
}
