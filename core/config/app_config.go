package config

import (
	"time"

	"go.uber.org/fx"
)

// AppConfig holds the application configuration.
type AppConfig struct {
	Port        string
	ServiceID   string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	Environment string
	ServiceName string

	AmqpConnection string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	TrackerBaseURL     string
	TrackerAPIKey      string
	TrackerReadTimeout time.Duration
	TrackerWriteTimeout time.Duration

	VideoAPIBaseURL     string
	VideoReadTimeout    time.Duration
	VideoWriteTimeout   time.Duration

	DBStatementTimeout time.Duration
	BusPublishTimeout  time.Duration

	LedgerMaxRetries int

	ReconcilerInterval  time.Duration
	ReconcilerBatchSize int

	RefillIdempotencyWindow time.Duration
	MaxRefills              int

	OperatorToken string

	DefaultMaxAttempts uint8
	PremiumMaxAttempts uint8
}

// NewAppConfig creates and returns a new AppConfig instance.
func NewAppConfig() *AppConfig {
	// Load environment variables from .env file
	LoadEnvVars()

	return &AppConfig{
		Port:        EnvPort(),
		ServiceID:   EnvServiceID(),
		DBHost:      EnvDBHost(),
		DBPort:      EnvDBPort(),
		DBUser:      EnvDBUser(),
		DBPassword:  EnvDBPassword(),
		DBName:      EnvDBName(),
		Environment: EnvironmentConfig(),
		ServiceName: EnvServiceName(),

		AmqpConnection: EnvAmqpConnection(),

		RedisHost:     EnvRedisHost(),
		RedisPort:     EnvRedisPort(),
		RedisPassword: EnvRedisPassword(),
		RedisDB:       EnvRedisDB(),

		TrackerBaseURL:      EnvTrackerBaseURL(),
		TrackerAPIKey:       EnvTrackerAPIKey(),
		TrackerReadTimeout:  EnvTrackerReadTimeout(),
		TrackerWriteTimeout: EnvTrackerWriteTimeout(),

		VideoAPIBaseURL:   EnvVideoAPIBaseURL(),
		VideoReadTimeout:  EnvVideoReadTimeout(),
		VideoWriteTimeout: EnvVideoWriteTimeout(),

		DBStatementTimeout: EnvDBStatementTimeout(),
		BusPublishTimeout:  EnvBusPublishTimeout(),

		LedgerMaxRetries: EnvLedgerMaxRetries(),

		ReconcilerInterval:  EnvReconcilerInterval(),
		ReconcilerBatchSize: EnvReconcilerBatchSize(),

		RefillIdempotencyWindow: EnvRefillIdempotencyWindow(),
		MaxRefills:              EnvMaxRefills(),

		OperatorToken: EnvOperatorToken(),

		DefaultMaxAttempts: EnvDefaultMaxAttempts(),
		PremiumMaxAttempts: EnvPremiumMaxAttempts(),
	}
}

// Module provides the fx module for AppConfig.
var Module = fx.Module("config", fx.Provide(NewAppConfig))
