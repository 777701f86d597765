// internal/common/camunda/client.go
package camunda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"hiring-pipeline/internal/common/config"
	"hiring-pipeline/internal/common/logger"
)

// RetryConfig bounds the connection attempts made at startup.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var DefaultRetryConfig = RetryConfig{
	MaxRetries: 5,
	BaseDelay:  2 * time.Second,
	MaxDelay:   30 * time.Second,
}

// Connect opens a gateway client and waits until the broker answers a
// topology request. Transient failures are retried with exponential backoff.
func Connect(ctx context.Context, cfg config.CamundaConfig, retry RetryConfig, log logger.Logger) (zbc.Client, error) {
	client, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.BrokerAddress,
		UsePlaintextConnection: cfg.Plaintext,
	})
	if err != nil {
		return nil, fmt.Errorf("create zeebe client: %w", err)
	}

	requestTimeout := time.Duration(cfg.RequestTimeout) * time.Millisecond
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}

	err = WithRetry(ctx, retry, "zeebe topology", log, func(ctx context.Context) error {
		return HealthCheck(ctx, client, requestTimeout)
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to zeebe at %s: %w", cfg.BrokerAddress, err)
	}
	return client, nil
}

// HealthCheck sends a topology request to the broker.
func HealthCheck(ctx context.Context, client zbc.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if _, err := client.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}

// WithRetry runs op until it succeeds, returns a permanent error, or the
// attempts run out.
func WithRetry(ctx context.Context, retry RetryConfig, name string, log logger.Logger, op func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt <= retry.MaxRetries; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			if attempt > 0 {
				log.Info("operation succeeded after retry", map[string]interface{}{
					"operation": name,
					"attempt":   attempt + 1,
				})
			}
			return nil
		}
		if !IsRetryable(lastErr) || attempt == retry.MaxRetries {
			break
		}

		delay := retry.BaseDelay * time.Duration(1<<attempt)
		if retry.MaxDelay > 0 && delay > retry.MaxDelay {
			delay = retry.MaxDelay
		}
		log.Warn("operation failed, retrying", map[string]interface{}{
			"operation": name,
			"attempt":   attempt + 1,
			"delay":     delay.String(),
			"error":     lastErr.Error(),
		})

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%s cancelled after %d attempts: %w", name, attempt+1, ctx.Err())
		}
	}
	return fmt.Errorf("%s failed: %w", name, lastErr)
}

var retryablePhrases = []string{
	"connection refused",
	"connection reset",
	"timeout",
	"deadline exceeded",
	"unavailable",
	"unreachable",
	"broken pipe",
	"no such host",
	"i/o timeout",
}

// IsRetryable reports whether err looks like a transient transport failure.
func IsRetryable(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, phrase := range retryablePhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
