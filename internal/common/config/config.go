package config

import "fmt"

type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Store         StoreConfig             `mapstructure:"store"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Pipeline      PipelineConfig          `mapstructure:"pipeline"`
	Collaborators CollaboratorsConfig     `mapstructure:"collaborators"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	Plaintext      bool   `mapstructure:"plaintext"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
)

type StoreConfig struct {
	Driver      string `mapstructure:"driver"`
	KeyPrefix   string `mapstructure:"key_prefix"` // redis only
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type PipelineConfig struct {
	Capacity   CapacityConfig   `mapstructure:"capacity"`
	Shortlist  ShortlistConfig  `mapstructure:"shortlist"`
	Interview  InterviewConfig  `mapstructure:"interview"`
	Offer      OfferConfig      `mapstructure:"offer"`
	Onboarding OnboardingConfig `mapstructure:"onboarding"`
}

type CapacityConfig struct {
	// AutoCloseThreshold applies when a job has no maxCandidates of its own.
	// A negative value disables auto-close for such jobs.
	AutoCloseThreshold int `mapstructure:"auto_close_threshold"`
}

type ShortlistConfig struct {
	DefaultMinScore float64 `mapstructure:"default_min_score"`
}

type InterviewConfig struct {
	NotificationTimeout int `mapstructure:"notification_timeout"` // milliseconds
}

type OfferConfig struct {
	Currency         string `mapstructure:"currency"`
	EmploymentType   string `mapstructure:"employment_type"`
	WorkLocation     string `mapstructure:"work_location"`
	PaidLeaves       int    `mapstructure:"paid_leaves"`
	ProbationMonths  int    `mapstructure:"probation_months"`
	NoticeDays       int    `mapstructure:"notice_days"`
	ValidityDays     int    `mapstructure:"validity_days"`
	AcceptanceMethod string `mapstructure:"acceptance_method"`
}

type OnboardingConfig struct {
	EmployeeIDPrefix string `mapstructure:"employee_id_prefix"`
}

type CollaboratorsConfig struct {
	Scoring      ScoringConfig      `mapstructure:"scoring"`
	Notification NotificationConfig `mapstructure:"notification"`
	Export       ExportConfig       `mapstructure:"export"`
}

type ScoringConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
	MaxRetries int    `mapstructure:"max_retries"`
}

type NotificationConfig struct {
	AWSRegion    string `mapstructure:"aws_region"`
	EmailEnabled bool   `mapstructure:"email_enabled"`
	FromEmail    string `mapstructure:"from_email"`
	SMSEnabled   bool   `mapstructure:"sms_enabled"`
	SMSSenderID  string `mapstructure:"sms_sender_id"`
}

type ExportConfig struct {
	WebhookEnabled       bool   `mapstructure:"webhook_enabled"`
	WebhookURL           string `mapstructure:"webhook_url"`
	WebhookTimeout       int    `mapstructure:"webhook_timeout"` // milliseconds
	ApplicationBaseURL   string `mapstructure:"application_base_url"`
	ElasticsearchEnabled bool   `mapstructure:"elasticsearch_enabled"`
	ElasticsearchIndex   string `mapstructure:"elasticsearch_index"`
}

type ObservabilityConfig struct {
	MetricsAddress   string  `mapstructure:"metrics_address"`
	ServiceName      string  `mapstructure:"service_name"`
	TraceSampleRatio float64 `mapstructure:"trace_sample_ratio"`
}

type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
