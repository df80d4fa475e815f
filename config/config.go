package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/spf13/viper"
)

const VERSION = "3.0"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Security    SecurityConfig
	Tracing     TracingConfig
	SMTP        SMTPConfig
	Redis       RedisConfig
	RabbitMQ    RabbitMQConfig
	Sync        SyncConfig
	Followup    FollowupConfig
	LLM         LLMConfig
	OAuth       OAuthConfig
	Metakocka   MetakockaConfig
	Billing     BillingConfig
	Supabase    SupabaseConfig
	RootEmail   string
	Environment string
	APIEndpoint string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port int
	Host string
	SSL  SSLConfig
}

type SSLConfig struct {
	Enabled  bool
	CertFile string
	KeyFile  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type SecurityConfig struct {
	PasetoPrivateKey paseto.V4AsymmetricSecretKey
	PasetoPublicKey  paseto.V4AsymmetricPublicKey

	PasetoPrivateKeyBytes []byte
	PasetoPublicKeyBytes  []byte

	// Passphrase for stored credentials (mailbox passwords, OAuth tokens, ERP keys)
	SecretKey string

	SessionTTL time.Duration
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64

	// "jaeger", "stackdriver", "zipkin", "datadog", "xray", "none"
	TraceExporter string

	JaegerEndpoint       string
	ZipkinEndpoint       string
	StackdriverProjectID string
	DatadogAgentAddress  string
	DatadogAPIKey        string
	XRayRegion           string
	AgentEndpoint        string

	// "prometheus", "stackdriver", "datadog", "none" or comma-separated list
	MetricsExporter string
	PrometheusPort  int
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	DedupTTL time.Duration
}

// Enabled reports whether a redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

func (r RabbitMQConfig) Enabled() bool {
	return r.URL != ""
}

type SyncConfig struct {
	Enabled           bool
	Interval          time.Duration
	BatchSize         int
	MaxMessagesPerRun int
	MaxRetries        int
	Concurrency       int
	LookbackDays      int
	Timeout           time.Duration
}

type FollowupConfig struct {
	Enabled          bool
	Interval         time.Duration
	DefaultAfterDays int
	AutoDraft        bool
}

type LLMConfig struct {
	Provider        string // "anthropic" or "gemini"
	AnthropicAPIKey string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string
	MaxTokens       int
}

type OAuthConfig struct {
	MicrosoftClientID     string
	MicrosoftClientSecret string
	MicrosoftTenant       string
	GoogleClientID        string
	GoogleClientSecret    string
	RedirectURL           string
}

type MetakockaConfig struct {
	BaseURL string
	Timeout time.Duration
}

type BillingConfig struct {
	WebhookSecret string
	TrialDays     int
}

type SupabaseConfig struct {
	WebhookSecret string
	JWTSecret     string
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "crm")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "10m")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)
	v.SetDefault("SESSION_TTL", "720h")

	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_FROM_NAME", "Salesflow CRM")

	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "crm-api")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_TRACE_EXPORTER", "none")
	v.SetDefault("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("TRACING_ZIPKIN_ENDPOINT", "http://localhost:9411/api/v2/spans")
	v.SetDefault("TRACING_STACKDRIVER_PROJECT_ID", "")
	v.SetDefault("TRACING_DATADOG_AGENT_ADDRESS", "localhost:8126")
	v.SetDefault("TRACING_DATADOG_API_KEY", "")
	v.SetDefault("TRACING_XRAY_REGION", "us-west-2")
	v.SetDefault("TRACING_AGENT_ENDPOINT", "localhost:8126")
	v.SetDefault("TRACING_METRICS_EXPORTER", "none")
	v.SetDefault("TRACING_PROMETHEUS_PORT", 9464)

	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_DEDUP_TTL", "168h")
	v.SetDefault("RABBITMQ_EXCHANGE", "crm.events")

	v.SetDefault("SYNC_ENABLED", true)
	v.SetDefault("SYNC_INTERVAL", "5m")
	v.SetDefault("SYNC_BATCH_SIZE", 50)
	v.SetDefault("SYNC_MAX_MESSAGES_PER_RUN", 500)
	v.SetDefault("SYNC_MAX_RETRIES", 2)
	v.SetDefault("SYNC_CONCURRENCY", 4)
	v.SetDefault("SYNC_LOOKBACK_DAYS", 30)
	v.SetDefault("SYNC_TIMEOUT", "10m")

	v.SetDefault("FOLLOWUP_ENABLED", true)
	v.SetDefault("FOLLOWUP_INTERVAL", "15m")
	v.SetDefault("FOLLOWUP_DEFAULT_AFTER_DAYS", 3)
	v.SetDefault("FOLLOWUP_AUTO_DRAFT", false)

	v.SetDefault("LLM_PROVIDER", "anthropic")
	v.SetDefault("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("LLM_MAX_TOKENS", 1024)

	v.SetDefault("MICROSOFT_TENANT", "common")

	v.SetDefault("METAKOCKA_BASE_URL", "https://main.metakocka.si/rest/eshop/v1/json")
	v.SetDefault("METAKOCKA_TIMEOUT", "30s")

	v.SetDefault("BILLING_TRIAL_DAYS", 14)

	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	privateKeyBase64 := v.GetString("PASETO_PRIVATE_KEY")
	publicKeyBase64 := v.GetString("PASETO_PUBLIC_KEY")

	if privateKeyBase64 == "" {
		return nil, fmt.Errorf("PASETO_PRIVATE_KEY is required")
	}
	if publicKeyBase64 == "" {
		return nil, fmt.Errorf("PASETO_PUBLIC_KEY is required")
	}

	privateKeyBytes, err := base64.StdEncoding.DecodeString(privateKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("error decoding PASETO_PRIVATE_KEY: %w", err)
	}

	publicKeyBytes, err := base64.StdEncoding.DecodeString(publicKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("error decoding PASETO_PUBLIC_KEY: %w", err)
	}

	privateKey, err := paseto.NewV4AsymmetricSecretKeyFromBytes(privateKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("error creating PASETO private key: %w", err)
	}

	publicKey, err := paseto.NewV4AsymmetricPublicKeyFromBytes(publicKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("error creating PASETO public key: %w", err)
	}

	secretKey := v.GetString("SECRET_KEY")
	if secretKey == "" {
		secretKey = privateKeyBase64
	}

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
			SSL: SSLConfig{
				Enabled:  v.GetBool("SSL_ENABLED"),
				CertFile: v.GetString("SSL_CERT_FILE"),
				KeyFile:  v.GetString("SSL_KEY_FILE"),
			},
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Security: SecurityConfig{
			PasetoPrivateKey:      privateKey,
			PasetoPublicKey:       publicKey,
			PasetoPrivateKeyBytes: privateKeyBytes,
			PasetoPublicKeyBytes:  publicKeyBytes,
			SecretKey:             secretKey,
			SessionTTL:            v.GetDuration("SESSION_TTL"),
		},
		SMTP: SMTPConfig{
			Host:      v.GetString("SMTP_HOST"),
			Port:      v.GetInt("SMTP_PORT"),
			Username:  v.GetString("SMTP_USERNAME"),
			Password:  v.GetString("SMTP_PASSWORD"),
			FromEmail: v.GetString("SMTP_FROM_EMAIL"),
			FromName:  v.GetString("SMTP_FROM_NAME"),
		},
		Tracing: TracingConfig{
			Enabled:              v.GetBool("TRACING_ENABLED"),
			ServiceName:          v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability:  v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),
			TraceExporter:        v.GetString("TRACING_TRACE_EXPORTER"),
			JaegerEndpoint:       v.GetString("TRACING_JAEGER_ENDPOINT"),
			ZipkinEndpoint:       v.GetString("TRACING_ZIPKIN_ENDPOINT"),
			StackdriverProjectID: v.GetString("TRACING_STACKDRIVER_PROJECT_ID"),
			DatadogAgentAddress:  v.GetString("TRACING_DATADOG_AGENT_ADDRESS"),
			DatadogAPIKey:        v.GetString("TRACING_DATADOG_API_KEY"),
			XRayRegion:           v.GetString("TRACING_XRAY_REGION"),
			AgentEndpoint:        v.GetString("TRACING_AGENT_ENDPOINT"),
			MetricsExporter:      v.GetString("TRACING_METRICS_EXPORTER"),
			PrometheusPort:       v.GetInt("TRACING_PROMETHEUS_PORT"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			DedupTTL: v.GetDuration("REDIS_DEDUP_TTL"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
		Sync: SyncConfig{
			Enabled:           v.GetBool("SYNC_ENABLED"),
			Interval:          v.GetDuration("SYNC_INTERVAL"),
			BatchSize:         v.GetInt("SYNC_BATCH_SIZE"),
			MaxMessagesPerRun: v.GetInt("SYNC_MAX_MESSAGES_PER_RUN"),
			MaxRetries:        v.GetInt("SYNC_MAX_RETRIES"),
			Concurrency:       v.GetInt("SYNC_CONCURRENCY"),
			LookbackDays:      v.GetInt("SYNC_LOOKBACK_DAYS"),
			Timeout:           v.GetDuration("SYNC_TIMEOUT"),
		},
		Followup: FollowupConfig{
			Enabled:          v.GetBool("FOLLOWUP_ENABLED"),
			Interval:         v.GetDuration("FOLLOWUP_INTERVAL"),
			DefaultAfterDays: v.GetInt("FOLLOWUP_DEFAULT_AFTER_DAYS"),
			AutoDraft:        v.GetBool("FOLLOWUP_AUTO_DRAFT"),
		},
		LLM: LLMConfig{
			Provider:        v.GetString("LLM_PROVIDER"),
			AnthropicAPIKey: v.GetString("ANTHROPIC_API_KEY"),
			AnthropicModel:  v.GetString("ANTHROPIC_MODEL"),
			GeminiAPIKey:    v.GetString("GEMINI_API_KEY"),
			GeminiModel:     v.GetString("GEMINI_MODEL"),
			MaxTokens:       v.GetInt("LLM_MAX_TOKENS"),
		},
		OAuth: OAuthConfig{
			MicrosoftClientID:     v.GetString("MICROSOFT_CLIENT_ID"),
			MicrosoftClientSecret: v.GetString("MICROSOFT_CLIENT_SECRET"),
			MicrosoftTenant:       v.GetString("MICROSOFT_TENANT"),
			GoogleClientID:        v.GetString("GOOGLE_CLIENT_ID"),
			GoogleClientSecret:    v.GetString("GOOGLE_CLIENT_SECRET"),
			RedirectURL:           v.GetString("OAUTH_REDIRECT_URL"),
		},
		Metakocka: MetakockaConfig{
			BaseURL: v.GetString("METAKOCKA_BASE_URL"),
			Timeout: v.GetDuration("METAKOCKA_TIMEOUT"),
		},
		Billing: BillingConfig{
			WebhookSecret: v.GetString("BILLING_WEBHOOK_SECRET"),
			TrialDays:     v.GetInt("BILLING_TRIAL_DAYS"),
		},
		Supabase: SupabaseConfig{
			WebhookSecret: v.GetString("SUPABASE_WEBHOOK_SECRET"),
			JWTSecret:     v.GetString("SUPABASE_JWT_SECRET"),
		},
		RootEmail:   v.GetString("ROOT_EMAIL"),
		Environment: v.GetString("ENVIRONMENT"),
		APIEndpoint: v.GetString("API_ENDPOINT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	if config.Sync.Concurrency < 1 {
		config.Sync.Concurrency = 1
	}

	return config, nil
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
