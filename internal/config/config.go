package config

import (
	"strings"
	"time"

	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration is the root configuration for the service. Values are read
// from config.yaml and can be overridden with APNMT_ prefixed environment
// variables, e.g. APNMT_KAFKA_BROKERS.
type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Postgres   PostgresConfig   `mapstructure:"postgres"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Stripe     StripeConfig     `mapstructure:"stripe"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
	Expiration ExpirationConfig `mapstructure:"expiration"`
	Webhook    WebhookConfig    `mapstructure:"webhook"`
}

type DeploymentMode string

const (
	ModeLocal DeploymentMode = "local"
	ModeProd  DeploymentMode = "prod"
)

type DeploymentConfig struct {
	Mode DeploymentMode `mapstructure:"mode" default:"local"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" default:":8080"`
}

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)

type LoggingConfig struct {
	Level          LogLevel `mapstructure:"level" default:"info"`
	FluentdEnabled bool     `mapstructure:"fluentd_enabled"`
	FluentdHost    string   `mapstructure:"fluentd_host"`
	FluentdPort    int      `mapstructure:"fluentd_port"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host" default:"localhost"`
	Port     int    `mapstructure:"port" default:"5432"`
	User     string `mapstructure:"user" default:"payment"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname" default:"payment"`
	SSLMode  string `mapstructure:"sslmode" default:"disable"`

	MaxOpenConns    int           `mapstructure:"max_open_conns" default:"20"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" default:"10"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" default:"30m"`
}

type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"`
	ClientID      string   `mapstructure:"client_id" default:"payment-service"`
	ConsumerGroup string   `mapstructure:"consumer_group" default:"payment-service"`
	TLS           bool     `mapstructure:"tls"`
	UseSASL       bool     `mapstructure:"use_sasl"`
	SASLMechanism string   `mapstructure:"sasl_mechanism"`
	SASLUser      string   `mapstructure:"sasl_user"`
	SASLPassword  string   `mapstructure:"sasl_password"`
}

type CacheConfig struct {
	Type string `mapstructure:"type" default:"inmemory"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address" default:"localhost:6379"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type StripeConfig struct {
	APIKey        string `mapstructure:"api_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment" default:"local"`
	SampleRate  float64 `mapstructure:"sample_rate" default:"1.0"`
}

// ExpirationConfig controls the subscription expiration sweep.
type ExpirationConfig struct {
	// Interval is the fixed-rate cadence of the in-process sweeper.
	Interval time.Duration `mapstructure:"interval" default:"1h"`
	// SchedulerEnabled starts the in-process sweeper. Disable it when the
	// sweep is driven externally through the cron endpoint instead.
	SchedulerEnabled bool `mapstructure:"scheduler_enabled" default:"true"`
}

// WebhookConfig controls inbound billing-provider webhook handling.
type WebhookConfig struct {
	// Workers bounds the pool that runs reconciliations off the request path.
	Workers int `mapstructure:"workers" default:"4"`
}

// NewConfig loads the configuration from config.yaml and the environment.
func NewConfig() (*Configuration, error) {
	// Load .env for local development; missing file is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("APNMT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, ierr.WithError(err).
				WithHint("Failed to read config file").
				Mark(ierr.ErrValidation)
		}
	}

	cfg := &Configuration{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to unmarshal configuration").
			Mark(ierr.ErrValidation)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(LogLevelInfo))
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "payment")
	v.SetDefault("postgres.dbname", "payment")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 20)
	v.SetDefault("postgres.max_idle_conns", 10)
	v.SetDefault("postgres.conn_max_lifetime", "30m")
	v.SetDefault("kafka.client_id", "payment-service")
	v.SetDefault("kafka.consumer_group", "payment-service")
	v.SetDefault("cache.type", "inmemory")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("sentry.environment", "local")
	v.SetDefault("sentry.sample_rate", 1.0)
	v.SetDefault("expiration.interval", "1h")
	v.SetDefault("expiration.scheduler_enabled", true)
	v.SetDefault("webhook.workers", 4)
}

// Validate checks invariants that would otherwise only fail at runtime.
func (c *Configuration) Validate() error {
	if c.Expiration.Interval <= 0 {
		return ierr.NewError("expiration interval must be positive").
			WithHint("Set expiration.interval to a positive duration, e.g. 1h").
			Mark(ierr.ErrValidation)
	}
	if c.Webhook.Workers <= 0 {
		return ierr.NewError("webhook worker count must be positive").
			WithHint("Set webhook.workers to at least 1").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetDefaultConfig returns a configuration suitable for tests and scripts.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: LogLevelDebug},
		Cache:      CacheConfig{Type: "inmemory"},
		Expiration: ExpirationConfig{Interval: time.Hour, SchedulerEnabled: false},
		Webhook:    WebhookConfig{Workers: 1},
	}
}
