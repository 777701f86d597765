// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.opentelemetry.io/otel/trace"

	"hiring-pipeline/internal/common/config"
	apperrors "hiring-pipeline/internal/common/errors"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/common/metrics"
	"hiring-pipeline/internal/common/observability"
	"hiring-pipeline/pkg/registry"
)

// JobFunc executes one job given its raw variables and returns the object
// that becomes the job's output variables.
type JobFunc func(ctx context.Context, variables []byte) (interface{}, error)

// JobFuncs maps task types to their implementations.
type JobFuncs map[string]JobFunc

const defaultJobTimeout = 30 * time.Second

// Runner wraps JobFuncs with the concerns every worker shares: input
// validation against the activity registry, a per-job deadline, tracing,
// metrics and reporting the outcome back to the broker.
type Runner struct {
	registry *registry.ActivityRegistry
	obs      *observability.Observability
	errors   *apperrors.ErrorHandler
	logger   logger.Logger
}

// NewRunner builds a Runner. reg and obs may be nil.
func NewRunner(reg *registry.ActivityRegistry, obs *observability.Observability, log logger.Logger) *Runner {
	return &Runner{
		registry: reg,
		obs:      obs,
		errors:   apperrors.NewErrorHandler(log),
		logger:   log,
	}
}

// Execute validates the variables and runs fn under the job deadline.
func (r *Runner) Execute(ctx context.Context, taskType string, jobKey int64, timeout time.Duration, variables []byte, fn JobFunc) (interface{}, error) {
	if len(variables) == 0 {
		variables = []byte("{}")
	}
	if timeout <= 0 {
		timeout = defaultJobTimeout
	}

	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if r.obs != nil {
		var span trace.Span
		ctx, span = r.obs.StartJobSpan(ctx, taskType, jobKey)
		defer span.End()
	}

	var out interface{}
	err := r.validate(taskType, variables)
	if err == nil {
		out, err = fn(ctx, variables)
	}

	elapsed := time.Since(start)
	metrics.RecordJobOutcome(taskType, err, elapsed)
	if r.obs != nil {
		status := "success"
		if err != nil {
			status = "failure"
		}
		r.obs.RecordJobProcessed(ctx, taskType, status)
		r.obs.RecordJobDuration(ctx, taskType, elapsed, status)
	}
	return out, err
}

func (r *Runner) validate(taskType string, variables []byte) error {
	if r.registry == nil {
		return nil
	}
	activity, ok := r.registry.Find(taskType)
	if !ok {
		return nil
	}
	result, err := activity.ValidateVariables(variables)
	if err != nil {
		return apperrors.NewInvalidInputError(err.Error())
	}
	if !result.Valid {
		return apperrors.NewInvalidInputError(result.Summary())
	}
	return nil
}

// Handler adapts fn to the zeebe job handler signature.
func (r *Runner) Handler(taskType string, timeout time.Duration, fn JobFunc) worker.JobHandler {
	log := r.logger.WithFields(map[string]interface{}{"taskType": taskType})

	return func(client worker.JobClient, job entities.Job) {
		log.Info("processing job", map[string]interface{}{
			"jobKey":             job.Key,
			"processInstanceKey": job.ProcessInstanceKey,
		})

		out, err := r.Execute(context.Background(), taskType, job.Key, timeout, []byte(job.Variables), fn)
		if err != nil {
			r.errors.HandleJobError(context.Background(), client, job, err)
			return
		}
		r.complete(client, job, out, log)
	}
}

func (r *Runner) complete(client worker.JobClient, job entities.Job, out interface{}, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := client.NewCompleteJobCommand().JobKey(job.Key)
	if out == nil {
		out = map[string]interface{}{}
	}
	withVars, err := cmd.VariablesFromObject(out)
	if err != nil {
		r.errors.HandleJobError(ctx, client, job, apperrors.NewInvalidInputError("encode output: "+err.Error()))
		return
	}
	if _, err := withVars.Send(ctx); err != nil {
		log.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}
	log.Info("job completed", map[string]interface{}{"jobKey": job.Key})
}

// StartWorker opens a job worker for taskType using the per-worker limits.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler worker.JobHandler, log logger.Logger) worker.JobWorker {
	maxJobs := wcfg.MaxJobsActive
	if maxJobs <= 0 {
		maxJobs = 5
	}
	timeout := time.Duration(wcfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = defaultJobTimeout
	}

	w := client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(maxJobs).
		Timeout(timeout).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": maxJobs,
		"timeout":       timeout.String(),
	})
	return w
}

// Decode unmarshals job variables into dst, mapping malformed JSON to an
// input error.
func Decode(variables []byte, dst interface{}) error {
	if len(variables) == 0 {
		return nil
	}
	if err := json.Unmarshal(variables, dst); err != nil {
		return apperrors.NewInvalidInputError("invalid job variables: " + err.Error())
	}
	return nil
}

// Bind decodes the job variables into I and calls fn.
func Bind[I any, O any](fn func(context.Context, I) (O, error)) JobFunc {
	return func(ctx context.Context, variables []byte) (interface{}, error) {
		var in I
		if err := Decode(variables, &in); err != nil {
			return nil, err
		}
		out, err := fn(ctx, in)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
}
