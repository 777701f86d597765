package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/models"
)

const defaultJobsIndex = "jobs"

// ElasticsearchExporter keeps one search document per job, keyed by job id.
type ElasticsearchExporter struct {
	client  *elasticsearch.Client
	index   string
	baseURL string
	logger  logger.Logger
}

func NewElasticsearchExporter(client *elasticsearch.Client, index, applicationBaseURL string, log logger.Logger) *ElasticsearchExporter {
	if index == "" {
		index = defaultJobsIndex
	}
	return &ElasticsearchExporter{
		client:  client,
		index:   index,
		baseURL: applicationBaseURL,
		logger:  logger.ForComponent(log, "es-exporter"),
	}
}

func (e *ElasticsearchExporter) ExportJob(ctx context.Context, job *models.Job, event string) error {
	body, err := json.Marshal(NewJobPayload(job, event, e.baseURL))
	if err != nil {
		return fmt.Errorf("encode job %s: %w", job.ID, err)
	}

	req := esapi.IndexRequest{
		Index:      e.index,
		DocumentID: job.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return fmt.Errorf("index job %s: %w", job.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index job %s: %s", job.ID, res.String())
	}
	e.logger.Debug("job indexed", map[string]interface{}{
		"jobId": job.ID,
		"index": e.index,
		"event": event,
	})
	return nil
}
