// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"hiring-pipeline/internal/common/camunda"
	"hiring-pipeline/internal/common/config"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/common/observability"
	"hiring-pipeline/internal/pipeline"
	"hiring-pipeline/internal/workers/interviews"
	"hiring-pipeline/internal/workers/jobs"
	"hiring-pipeline/internal/workers/offers"
	"hiring-pipeline/internal/workers/onboardings"
	"hiring-pipeline/internal/workers/shortlisting"
	"hiring-pipeline/pkg/registry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "console", "stdout")
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("storeDriver", cfg.Store.Driver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs := observability.New(cfg.Observability.ServiceName, cfg.Observability.TraceSampleRatio, log)
	defer obs.Shutdown(context.Background())

	zeebeClient, err := camunda.Connect(ctx, cfg.Camunda, camunda.DefaultRetryConfig, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("store initialization failed", zap.Error(err))
	}
	defer st.Close()
	zapLog.Info("Store ready", zap.String("driver", cfg.Store.Driver))

	collaborators, err := buildCollaborators(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("collaborator initialization failed", zap.Error(err))
	}
	zapLog.Info("All external service clients initialized")

	p := pipeline.New(st, cfg.Pipeline, collaborators, log)
	runner := camunda.NewRunner(registry.Default(), obs, log)

	workers := startWorkers(zeebeClient, cfg, runner, jobFuncs(p, log), log)
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	srv := opsServer(cfg.Observability.MetricsAddress, zeebeClient, cfg.Camunda)
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping workers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// jobFuncs merges the task handlers of every stage.
func jobFuncs(p *pipeline.Pipeline, log logger.Logger) camunda.JobFuncs {
	all := camunda.JobFuncs{}
	for _, set := range []camunda.JobFuncs{
		jobs.NewHandler(p.Capacity, log).Jobs(),
		shortlisting.NewHandler(p.Shortlist, log).Jobs(),
		interviews.NewHandler(p.Interviews, log).Jobs(),
		offers.NewHandler(p.Offers, log).Jobs(),
		onboardings.NewHandler(p.Onboarding, log).Jobs(),
	} {
		for taskType, fn := range set {
			all[taskType] = fn
		}
	}
	return all
}

func startWorkers(client zbc.Client, cfg *config.Config, runner *camunda.Runner, fns camunda.JobFuncs, log logger.Logger) []worker.JobWorker {
	taskTypes := make([]string, 0, len(fns))
	for taskType := range fns {
		taskTypes = append(taskTypes, taskType)
	}
	sort.Strings(taskTypes)

	var started []worker.JobWorker
	for _, taskType := range taskTypes {
		wcfg := config.GetWorkerConfig(cfg, taskType)
		if !wcfg.Enabled {
			log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
			continue
		}
		handler := runner.Handler(taskType, config.GetDuration(wcfg.Timeout), fns[taskType])
		started = append(started, camunda.StartWorker(client, taskType, wcfg, handler, log))
	}
	return started
}

func opsServer(addr string, client zbc.Client, ccfg config.CamundaConfig) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := camunda.HealthCheck(r.Context(), client, config.GetDuration(ccfg.RequestTimeout)); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "unavailable")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
