package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"montarota/internal/adapters/out/postgres"
	"montarota/internal/adapters/out/rabbitmq"
	"montarota/internal/core/domain/model/kernel"

	"github.com/joho/godotenv"
)

var ErrJWTSecretIsRequired = errors.New("JWT_SECRET is required")

const (
	defaultHTTPPort            = "8080"
	defaultTokenTTLHours       = 720
	defaultIdempotencyTTLHours = 48
)

type Config struct {
	HTTPPort string
	DB       postgres.ConnectionConfig

	JWTSecret string
	TokenTTL  time.Duration

	PlatformFee kernel.Money

	AMQPURL      string
	AMQPExchange string

	GPSRequireAuth bool
	JobsEnabled    bool
	IdempotencyTTL time.Duration
	LogLevel       slog.Level
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds the configuration from a variable lookup. Every
// malformed value is reported, not only the first.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	var errList []error
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}
	hours := func(key string, fallback int) time.Duration {
		raw := env(key, strconv.Itoa(fallback))
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			errList = append(errList, fmt.Errorf("%s: %q is not a positive number of hours", key, raw))
			return time.Duration(fallback) * time.Hour
		}
		return time.Duration(n) * time.Hour
	}
	flag := func(key string, fallback bool) bool {
		raw := env(key, strconv.FormatBool(fallback))
		b, err := strconv.ParseBool(raw)
		if err != nil {
			errList = append(errList, fmt.Errorf("%s: %q is not a boolean", key, raw))
			return fallback
		}
		return b
	}

	cfg := Config{
		HTTPPort: env("HTTP_PORT", defaultHTTPPort),
		DB: postgres.ConnectionConfig{
			Driver:   env("DB_DRIVER", postgres.DriverPostgres),
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			User:     env("DB_USER", "postgres"),
			Password: getenv("DB_PASSWORD"),
			Name:     env("DB_NAME", "montarota"),
			SSLMode:  env("DB_SSLMODE", "disable"),
			Path:     env("DB_PATH", "montarota.db"),
		},
		JWTSecret:      getenv("JWT_SECRET"),
		TokenTTL:       hours("TOKEN_TTL_HOURS", defaultTokenTTLHours),
		AMQPURL:        env("AMQP_URL", ""),
		AMQPExchange:   env("AMQP_EXCHANGE", rabbitmq.DefaultExchange),
		GPSRequireAuth: flag("GPS_REQUIRE_AUTH", false),
		JobsEnabled:    flag("JOBS_ENABLED", true),
		IdempotencyTTL: hours("IDEMPOTENCY_TTL_HOURS", defaultIdempotencyTTLHours),
	}

	if cfg.JWTSecret == "" {
		errList = append(errList, ErrJWTSecretIsRequired)
	}

	fee, err := kernel.MoneyFromString(env("PLATFORM_FEE", kernel.DefaultPlatformFee.String()))
	if err != nil {
		errList = append(errList, fmt.Errorf("PLATFORM_FEE: %w", err))
	}
	cfg.PlatformFee = fee

	if err = cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", "info"))); err != nil {
		errList = append(errList, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	switch cfg.DB.Driver {
	case postgres.DriverPostgres, postgres.DriverSQLite:
	default:
		errList = append(errList, fmt.Errorf("DB_DRIVER: unsupported driver %q", cfg.DB.Driver))
	}

	if err = errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
