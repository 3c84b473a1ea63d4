package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/RodolfoBonis/spooliq/core/entities"

	"github.com/joho/godotenv"
)

// GetEnv retrieves the value of the specified environment variable.
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)

	if value != "" {
		return value
	}

	return defaultValue
}

func envInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

func envDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue
	}
	return d
}

// EnvPort returns the port from environment variables.
func EnvPort() string {
	return GetEnv("PORT", "8000")
}

// EnvServiceID retrieves the service ID from the environment variables.
func EnvServiceID() string {
	return GetEnv("SERVICE_ID", "")
}

// EnvDBHost returns the database host from environment variables.
func EnvDBHost() string {
	return GetEnv("DB_HOST", "localhost")
}

// EnvDBPort returns the database port from environment variables.
func EnvDBPort() string {
	return GetEnv("DB_PORT", "5432")
}

// EnvDBUser returns the database user from environment variables.
func EnvDBUser() string {
	return GetEnv("DB_USER", "user")
}

// EnvDBPassword returns the database password from environment variables.
func EnvDBPassword() string {
	return GetEnv("DB_SECRET", "password")
}

// EnvDBName returns the database name from environment variables.
func EnvDBName() string {
	return GetEnv("DB_NAME", "smm_engine")
}

// EnvRedisHost returns the Redis host from environment variables.
func EnvRedisHost() string {
	return GetEnv("REDIS_HOST", "localhost")
}

// EnvRedisPort returns the Redis port from environment variables.
func EnvRedisPort() string {
	return GetEnv("REDIS_PORT", "6379")
}

// EnvRedisPassword returns the Redis password from environment variables.
func EnvRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

// EnvRedisDB returns the Redis database number from environment variables.
func EnvRedisDB() int {
	return envInt("REDIS_DB", 0)
}

// EnvironmentConfig returns the environment configuration.
func EnvironmentConfig() string {
	return GetEnv("ENV", "development")
}

// EnvServiceName returns the service name from environment variables.
func EnvServiceName() string {
	return GetEnv("SERVICE_NAME", "smm-fulfillment-engine")
}

func envUserAmqp() string {
	return GetEnv("USER_AMQP", "guest")
}

func envPasswordAmqp() string {
	return GetEnv("PASSWORD_AMQP", "guest")
}

func envHostAmqp() string {
	return GetEnv("HOST_AMQP", "localhost:5672")
}

// EnvAmqpConnection returns the AMQP connection string from environment variables.
func EnvAmqpConnection() string {
	user := envUserAmqp()
	password := envPasswordAmqp()
	host := envHostAmqp()

	return fmt.Sprintf("amqp://%s:%s@%s/", user, password, host)
}

// EnvTrackerBaseURL returns the Binom ad-tracker base URL (C4).
func EnvTrackerBaseURL() string {
	return GetEnv("TRACKER_BASE_URL", "http://localhost:9090/api")
}

// EnvTrackerAPIKey returns the Binom ad-tracker API key (C4).
func EnvTrackerAPIKey() string {
	return GetEnv("TRACKER_API_KEY", "")
}

// EnvTrackerReadTimeout returns the tracker read timeout (spec §4.6, default 5s).
func EnvTrackerReadTimeout() time.Duration {
	return envDuration("TRACKER_READ_TIMEOUT", 5*time.Second)
}

// EnvTrackerWriteTimeout returns the tracker write timeout (spec §4.6, default 15s).
func EnvTrackerWriteTimeout() time.Duration {
	return envDuration("TRACKER_WRITE_TIMEOUT", 15*time.Second)
}

// EnvVideoAPIBaseURL returns the video probe/clip-creation API base URL (C5).
func EnvVideoAPIBaseURL() string {
	return GetEnv("VIDEO_API_BASE_URL", "http://localhost:9091/api")
}

// EnvVideoReadTimeout returns the video-probe read timeout (spec §5, default 8s).
func EnvVideoReadTimeout() time.Duration {
	return envDuration("VIDEO_READ_TIMEOUT", 8*time.Second)
}

// EnvVideoWriteTimeout returns the clip-creation write timeout (spec §5, default 30s).
func EnvVideoWriteTimeout() time.Duration {
	return envDuration("VIDEO_WRITE_TIMEOUT", 30*time.Second)
}

// EnvDBStatementTimeout returns the database statement timeout (spec §5, default 10s).
func EnvDBStatementTimeout() time.Duration {
	return envDuration("DB_STATEMENT_TIMEOUT", 10*time.Second)
}

// EnvBusPublishTimeout returns the message-bus publish timeout (spec §5, default 5s).
func EnvBusPublishTimeout() time.Duration {
	return envDuration("BUS_PUBLISH_TIMEOUT", 5*time.Second)
}

// EnvLedgerMaxRetries returns the ledger optimistic-concurrency retry budget (spec §4.1, default 3).
func EnvLedgerMaxRetries() int {
	return envInt("LEDGER_MAX_RETRIES", 3)
}

// EnvReconcilerInterval returns the reconciliation tick interval (spec §4.6, default 5m).
func EnvReconcilerInterval() time.Duration {
	return envDuration("RECONCILER_INTERVAL", 5*time.Minute)
}

// EnvReconcilerBatchSize returns the reconciliation batch size (spec §4.6, default 50).
func EnvReconcilerBatchSize() int {
	return envInt("RECONCILER_BATCH_SIZE", 50)
}

// EnvRefillIdempotencyWindow returns the refill idempotency window (spec §4.7 step 4, default 60s).
func EnvRefillIdempotencyWindow() time.Duration {
	return envDuration("REFILL_IDEMPOTENCY_WINDOW", 60*time.Second)
}

// EnvMaxRefills returns the maximum completed refills per parent order (spec §4.7 step 5, default 5).
func EnvMaxRefills() int {
	return envInt("MAX_REFILLS", 5)
}

// EnvOperatorToken returns the static token guarding the internal admin surface (refill trigger).
func EnvOperatorToken() string {
	return GetEnv("OPERATOR_TOKEN", "")
}

// EnvDefaultMaxAttempts returns the default bus max-attempts (spec §4.3, default 3).
func EnvDefaultMaxAttempts() uint8 {
	return uint8(envInt("BUS_DEFAULT_MAX_ATTEMPTS", 3))
}

// EnvPremiumMaxAttempts returns the premium bus max-attempts (spec §4.3, default 5).
func EnvPremiumMaxAttempts() uint8 {
	return uint8(envInt("BUS_PREMIUM_MAX_ATTEMPTS", 5))
}

// LoadEnvVars loads all environment variables required by the application.
func LoadEnvVars() {
	env := EnvironmentConfig()
	if env == entities.Environment.Production || env == entities.Environment.Staging {
		fmt.Printf("Not using .env file in production or staging")
		return
	}

	filename := fmt.Sprintf(".env.%s", env)

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		filename = ".env"
	}

	_ = godotenv.Load(filename)
}
