package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_TaskTypesUnique(t *testing.T) {
	reg := Default()
	seen := map[string]bool{}
	for _, a := range reg.Activities {
		assert.False(t, seen[a.TaskType], "duplicate task type %s", a.TaskType)
		seen[a.TaskType] = true
		assert.NotEmpty(t, a.Stage, a.TaskType)
		assert.Contains(t, a.ErrorCodes, "INVALID_INPUT", a.TaskType)
	}
	assert.Len(t, reg.TaskTypes(), 28)
}

func TestDefault_SchemasCompile(t *testing.T) {
	for _, a := range Default().Activities {
		a := a
		t.Run(a.TaskType, func(t *testing.T) {
			_, err := a.ValidateVariables([]byte(`{}`))
			require.NoError(t, err)
		})
	}
}

func TestValidateVariables(t *testing.T) {
	reg := Default()

	submit, ok := reg.Find("application-submit")
	require.True(t, ok)

	res, err := submit.ValidateVariables([]byte(`{"jobId":"job-1","candidateName":"Asha","candidateEmail":"asha@example.com","processVar":42}`))
	require.NoError(t, err)
	assert.True(t, res.Valid, res.Summary())

	res, err = submit.ValidateVariables([]byte(`{"jobId":"job-1","candidateName":"Asha","candidateEmail":"not-an-email"}`))
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Summary(), "candidateEmail")

	res, err = submit.ValidateVariables([]byte(`{"candidateName":"Asha"}`))
	require.NoError(t, err)
	assert.False(t, res.Valid)

	feedback, ok := reg.Find("interview-feedback-submit")
	require.True(t, ok)
	res, err = feedback.ValidateVariables([]byte(`{"interviewId":"iv-1","decision":"SELECTED","technicalScore":11}`))
	require.NoError(t, err)
	assert.False(t, res.Valid)

	schedule, ok := reg.Find("interview-schedule")
	require.True(t, ok)
	for _, date := range []string{"2026-05-01", "2026-05-01T10:00:00Z"} {
		res, err = schedule.ValidateVariables([]byte(`{"candidateId":"sc-1","interviewRound":"ROUND_1","scheduledDate":"` + date + `"}`))
		require.NoError(t, err)
		assert.True(t, res.Valid, date)
	}
	res, err = schedule.ValidateVariables([]byte(`{"candidateId":"sc-1","interviewRound":"ROUND_1","scheduledDate":"May 1st"}`))
	require.NoError(t, err)
	assert.False(t, res.Valid)

	_, ok = reg.Find("unknown-task")
	assert.False(t, ok)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	require.NoError(t, SaveRegistry(Default(), path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, registryVersion, loaded.Version)
	assert.Equal(t, Default().TaskTypes(), loaded.TaskTypes())

	offer, ok := loaded.Find("offer-generate")
	require.True(t, ok)
	assert.Equal(t, "offer", offer.Stage)

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
