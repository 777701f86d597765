package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on
// top of it, and lets environment variables override both
// (database.postgres.host -> DATABASE_POSTGRES_HOST).
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return build(v)
}

// LoadFromFile reads a single config file; used by tools and tests.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return build(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)
	return v
}

// AutomaticEnv only resolves keys viper already knows about, so the keys that
// are commonly supplied only through the environment are bound explicitly.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"camunda.broker_address",
		"store.driver",
		"database.postgres.host",
		"database.postgres.port",
		"database.postgres.database",
		"database.postgres.user",
		"database.postgres.password",
		"database.redis.address",
		"database.redis.password",
		"collaborators.scoring.base_url",
		"collaborators.export.webhook_url",
	} {
		_ = v.BindEnv(key)
	}
}

func build(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	paths := []string{".env", "../.env", "../../.env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			if expanded := os.ExpandEnv(strVal); expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "hiring-pipeline"
	}

	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	if cfg.Store.Driver == "" {
		cfg.Store.Driver = StoreDriverPostgres
	}
	if cfg.Store.KeyPrefix == "" {
		cfg.Store.KeyPrefix = "hiring"
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	if cfg.Pipeline.Capacity.AutoCloseThreshold == 0 {
		cfg.Pipeline.Capacity.AutoCloseThreshold = 3
	}
	if cfg.Pipeline.Shortlist.DefaultMinScore == 0 {
		cfg.Pipeline.Shortlist.DefaultMinScore = 50
	}
	if cfg.Pipeline.Interview.NotificationTimeout == 0 {
		cfg.Pipeline.Interview.NotificationTimeout = 5000
	}

	offer := &cfg.Pipeline.Offer
	if offer.Currency == "" {
		offer.Currency = "INR"
	}
	if offer.EmploymentType == "" {
		offer.EmploymentType = "FULL_TIME"
	}
	if offer.WorkLocation == "" {
		offer.WorkLocation = "ONSITE"
	}
	if offer.PaidLeaves == 0 {
		offer.PaidLeaves = 24
	}
	if offer.ProbationMonths == 0 {
		offer.ProbationMonths = 3
	}
	if offer.NoticeDays == 0 {
		offer.NoticeDays = 30
	}
	if offer.ValidityDays == 0 {
		offer.ValidityDays = 15
	}
	if offer.AcceptanceMethod == "" {
		offer.AcceptanceMethod = "PORTAL"
	}

	if cfg.Pipeline.Onboarding.EmployeeIDPrefix == "" {
		cfg.Pipeline.Onboarding.EmployeeIDPrefix = "EMP"
	}

	if cfg.Collaborators.Scoring.Timeout == 0 {
		cfg.Collaborators.Scoring.Timeout = 60000
	}
	if cfg.Collaborators.Scoring.MaxRetries == 0 {
		cfg.Collaborators.Scoring.MaxRetries = 2
	}
	if cfg.Collaborators.Notification.AWSRegion == "" {
		cfg.Collaborators.Notification.AWSRegion = "us-east-1"
	}
	if cfg.Collaborators.Export.WebhookTimeout == 0 {
		cfg.Collaborators.Export.WebhookTimeout = 10000
	}
	if cfg.Collaborators.Export.ElasticsearchIndex == "" {
		cfg.Collaborators.Export.ElasticsearchIndex = "jobs"
	}

	if cfg.Observability.MetricsAddress == "" {
		cfg.Observability.MetricsAddress = ":9090"
	}
	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = cfg.App.Name
	}
	if cfg.Observability.TraceSampleRatio == 0 {
		cfg.Observability.TraceSampleRatio = 1
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Workers == nil {
		cfg.Workers = map[string]WorkerConfig{}
	}
	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = 5
		}
		if worker.Timeout == 0 {
			worker.Timeout = 30000
		}
		if worker.MaxRetries == 0 {
			worker.MaxRetries = 3
		}
		cfg.Workers[key] = worker
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required")
	}

	switch cfg.Store.Driver {
	case StoreDriverPostgres:
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required")
		}
		if cfg.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required")
		}
	case StoreDriverRedis:
		if cfg.Database.Redis.Address == "" {
			return fmt.Errorf("database.redis.address is required")
		}
	default:
		return fmt.Errorf("store.driver must be %q or %q, got %q", StoreDriverPostgres, StoreDriverRedis, cfg.Store.Driver)
	}

	if cfg.Collaborators.Scoring.BaseURL == "" {
		return fmt.Errorf("collaborators.scoring.base_url is required")
	}
	if cfg.Collaborators.Notification.EmailEnabled && cfg.Collaborators.Notification.FromEmail == "" {
		return fmt.Errorf("collaborators.notification.from_email is required when email is enabled")
	}
	if cfg.Collaborators.Export.WebhookEnabled && cfg.Collaborators.Export.WebhookURL == "" {
		return fmt.Errorf("collaborators.export.webhook_url is required when the webhook is enabled")
	}
	if cfg.Collaborators.Export.ElasticsearchEnabled && len(cfg.Database.Elasticsearch.Addresses) == 0 {
		return fmt.Errorf("database.elasticsearch.addresses is required when elasticsearch export is enabled")
	}
	if cfg.Pipeline.Shortlist.DefaultMinScore < 0 || cfg.Pipeline.Shortlist.DefaultMinScore > 100 {
		return fmt.Errorf("pipeline.shortlist.default_min_score must be within 0..100")
	}
	return nil
}

func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

func GetWorkerConfig(cfg *Config, taskType string) WorkerConfig {
	if worker, exists := cfg.Workers[taskType]; exists {
		return worker
	}
	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30000,
		MaxRetries:    3,
	}
}
