package export

import (
	"context"
	"fmt"

	"hiring-pipeline/internal/common/config"
	httpclient "hiring-pipeline/internal/common/http"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/models"
)

// WebhookExporter POSTs a JobPayload to a single endpoint.
type WebhookExporter struct {
	url     string
	baseURL string
	http    *httpclient.Client
	logger  logger.Logger
}

func NewWebhookExporter(cfg config.ExportConfig, log logger.Logger, opts ...httpclient.Option) *WebhookExporter {
	return &WebhookExporter{
		url:     cfg.WebhookURL,
		baseURL: cfg.ApplicationBaseURL,
		http:    httpclient.NewClient(config.GetDuration(cfg.WebhookTimeout), 2, opts...),
		logger:  logger.ForComponent(log, "webhook-exporter"),
	}
}

func (w *WebhookExporter) ExportJob(ctx context.Context, job *models.Job, event string) error {
	payload := NewJobPayload(job, event, w.baseURL)
	headers := map[string]string{"X-Event-Type": event}

	if _, err := w.http.PostJSON(ctx, w.url, payload, headers); err != nil {
		return fmt.Errorf("webhook export of job %s: %w", job.ID, err)
	}
	w.logger.Debug("job exported to webhook", map[string]interface{}{
		"jobId": job.ID,
		"event": event,
	})
	return nil
}
