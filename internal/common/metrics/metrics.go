package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "hiring-pipeline/internal/common/errors"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	StageTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_stage_transitions_total",
			Help: "Aggregate status transitions per pipeline stage",
		},
		[]string{"stage", "to"},
	)

	JobsAutoClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_jobs_auto_closed_total",
			Help: "Jobs closed automatically after reaching their application threshold",
		},
	)

	CollaboratorCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_collaborator_calls_total",
			Help: "Calls to external collaborators by outcome",
		},
		[]string{"collaborator", "outcome"},
	)

	CollaboratorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_collaborator_call_duration_seconds",
			Help:    "Latency of external collaborator calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"collaborator"},
	)
)

// RecordTransition counts an aggregate entering a new status.
func RecordTransition(stage, to string) {
	StageTransitions.WithLabelValues(stage, to).Inc()
}

func RecordCollaboratorCall(collaborator string, err error, elapsed time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	CollaboratorCalls.WithLabelValues(collaborator, outcome).Inc()
	CollaboratorDuration.WithLabelValues(collaborator).Observe(elapsed.Seconds())
}

// RecordJobOutcome updates the worker counters once a job has been handled.
func RecordJobOutcome(taskType string, err error, elapsed time.Duration) {
	WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
	if err != nil {
		WorkerJobsFailed.WithLabelValues(taskType, string(apperrors.CodeOf(err))).Inc()
		return
	}
	WorkerJobsCompleted.WithLabelValues(taskType).Inc()
}
