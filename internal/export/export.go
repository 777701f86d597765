// Package export publishes job postings to downstream consumers when a job
// is posted or closed. Delivery is best-effort; callers log failures and
// carry on.
package export

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"hiring-pipeline/internal/common/config"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/models"
)

const (
	EventJobPosted = "JOB_POSTED"
	EventJobClosed = "JOB_CLOSED"
)

type Exporter interface {
	ExportJob(ctx context.Context, job *models.Job, event string) error
}

// JobPayload is the document sent to every exporter.
type JobPayload struct {
	Event           string    `json:"event"`
	JobID           string    `json:"jobId"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Description     string    `json:"description"`
	EmploymentType  string    `json:"employmentType,omitempty"`
	ExperienceLevel string    `json:"experienceLevel,omitempty"`
	SalaryRange     string    `json:"salaryRange,omitempty"`
	RequiredSkills  []string  `json:"requiredSkills"`
	ApplicationURL  string    `json:"applicationUrl,omitempty"`
	MaxCandidates   int       `json:"maxCandidates"`
	Applications    int       `json:"applicationCount"`
	PostedAt        time.Time `json:"postedAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	Status          string    `json:"status"`
}

// NewJobPayload flattens a job. Skills are stored comma separated.
func NewJobPayload(job *models.Job, event, applicationBaseURL string) JobPayload {
	p := JobPayload{
		Event:           event,
		JobID:           job.ID,
		Title:           job.Title,
		Company:         job.Company,
		Location:        job.Location,
		Description:     job.Description,
		EmploymentType:  job.EmploymentType,
		ExperienceLevel: job.ExperienceLevel,
		SalaryRange:     job.SalaryRange,
		RequiredSkills:  splitSkills(job.RequiredSkills),
		MaxCandidates:   job.MaxCandidates,
		Applications:    job.ApplicationCount,
		PostedAt:        job.CreatedAt,
		UpdatedAt:       job.UpdatedAt,
		Status:          string(job.Status),
	}
	if applicationBaseURL != "" {
		p.ApplicationURL = strings.TrimRight(applicationBaseURL, "/") + "/jobs/" + job.ID + "/apply"
	}
	return p
}

func splitSkills(s string) []string {
	skills := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}

// Multi fans a job out to every exporter and joins their errors.
type Multi []Exporter

func (m Multi) ExportJob(ctx context.Context, job *models.Job, event string) error {
	var errs []error
	for _, e := range m {
		if err := e.ExportJob(ctx, job, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Noop struct{}

func (Noop) ExportJob(context.Context, *models.Job, string) error { return nil }

// New builds the exporters enabled in cfg. es may be nil when the
// Elasticsearch exporter is disabled.
func New(cfg config.ExportConfig, es *elasticsearch.Client, log logger.Logger) Exporter {
	var m Multi
	if cfg.WebhookEnabled && cfg.WebhookURL != "" {
		m = append(m, NewWebhookExporter(cfg, log))
	}
	if cfg.ElasticsearchEnabled && es != nil {
		m = append(m, NewElasticsearchExporter(es, cfg.ElasticsearchIndex, cfg.ApplicationBaseURL, log))
	}
	switch len(m) {
	case 0:
		return Noop{}
	case 1:
		return m[0]
	}
	return m
}
