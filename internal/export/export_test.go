package export

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiring-pipeline/internal/common/config"
	httpclient "hiring-pipeline/internal/common/http"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/models"
)

func testJob() *models.Job {
	created := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	return &models.Job{
		ID:             "job-1",
		Title:          "Backend Engineer",
		Company:        "Acme",
		Location:       "Pune",
		Description:    "Go services",
		RequiredSkills: "Go, PostgreSQL, ,Redis",
		MaxCandidates:  3,
		Status:         models.JobStatusOpen,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

func TestNewJobPayload(t *testing.T) {
	p := NewJobPayload(testJob(), EventJobPosted, "https://careers.acme.example/")

	assert.Equal(t, "job-1", p.JobID)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Redis"}, p.RequiredSkills)
	assert.Equal(t, "https://careers.acme.example/jobs/job-1/apply", p.ApplicationURL)
	assert.Equal(t, "OPEN", p.Status)
	assert.Equal(t, EventJobPosted, p.Event)
}

func TestWebhookExporter(t *testing.T) {
	var got JobPayload
	var event string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		event = r.Header.Get("X-Event-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	exp := NewWebhookExporter(config.ExportConfig{
		WebhookURL:     srv.URL,
		WebhookTimeout: 2000,
	}, logger.NewTestLogger(t))

	job := testJob()
	job.Status = models.JobStatusClosed
	require.NoError(t, exp.ExportJob(context.Background(), job, EventJobClosed))
	assert.Equal(t, EventJobClosed, event)
	assert.Equal(t, "CLOSED", got.Status)
	assert.Equal(t, "Backend Engineer", got.Title)
}

func TestWebhookExporter_ServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	exp := NewWebhookExporter(config.ExportConfig{WebhookURL: srv.URL, WebhookTimeout: 2000},
		logger.NewTestLogger(t), httpclient.WithBaseBackoff(time.Millisecond))

	err := exp.ExportJob(context.Background(), testJob(), EventJobPosted)
	require.Error(t, err)
	var statusErr *httpclient.StatusError
	assert.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 3, calls)
}

func newESServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es
}

func TestElasticsearchExporter_IndexesByJobID(t *testing.T) {
	var path, method string
	var doc map[string]interface{}
	es := newESServer(t, func(w http.ResponseWriter, r *http.Request) {
		path, method = r.URL.Path, r.Method
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &doc))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created","_id":"job-1"}`))
	})

	exp := NewElasticsearchExporter(es, "", "", logger.NewTestLogger(t))
	require.NoError(t, exp.ExportJob(context.Background(), testJob(), EventJobPosted))

	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/jobs/_doc/job-1", path)
	assert.Equal(t, "Acme", doc["company"])
}

func TestElasticsearchExporter_ErrorResponse(t *testing.T) {
	es := newESServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"mapper_parsing_exception"}}`))
	})

	exp := NewElasticsearchExporter(es, "jobs-test", "", logger.NewTestLogger(t))
	err := exp.ExportJob(context.Background(), testJob(), EventJobPosted)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapper_parsing_exception")
}

type recordingExporter struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (r *recordingExporter) ExportJob(_ context.Context, _ *models.Job, event string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func TestMulti_CallsEveryExporter(t *testing.T) {
	ok := &recordingExporter{}
	failing := &recordingExporter{err: errors.New("down")}

	err := Multi{failing, ok}.ExportJob(context.Background(), testJob(), EventJobClosed)

	require.Error(t, err)
	assert.Equal(t, []string{EventJobClosed}, ok.events)
	assert.Equal(t, []string{EventJobClosed}, failing.events)
}

func TestNew_NothingEnabled(t *testing.T) {
	exp := New(config.ExportConfig{}, nil, logger.NewNoOpLogger())
	assert.IsType(t, Noop{}, exp)
}
