package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends supported by the service.
const (
	BackendPostgres = "postgres"
	BackendREST     = "rest"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress     string
	StoreBackend   string
	DatabaseURI    string
	RESTURL        string
	ServiceRoleKey string

	JWTSecret      string
	AdminKeyHash   string
	AllowedOrigins []string
	LogLevel       string

	RedisAddr         string
	KafkaBrokers      []string
	NotificationTopic string

	SweepInterval       time.Duration
	SweepGracePeriod    time.Duration
	SweepBatchSize      int
	WorkerPoolSize      int
	CompensationRetries int
	ShutdownTimeout     time.Duration
}

const (
	defaultRunAddress          = ":8080"
	defaultStoreBackend        = BackendPostgres
	defaultJWTSecret           = "change-me-in-production"
	defaultAllowedOrigins      = "http://localhost:3000,http://localhost:3001"
	defaultLogLevel            = "info"
	defaultNotificationTopic   = "storefront.notifications"
	defaultSweepInterval       = time.Minute
	defaultSweepGracePeriod    = 10 * time.Minute
	defaultSweepBatchSize      = 50
	defaultWorkerPoolSize      = 2
	defaultCompensationRetries = 3
	defaultShutdownTimeout     = 10 * time.Second
)

// Load reads an optional .env file and parses configuration from flags and environment variables.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func loadDotEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		StoreBackend:        getString(lookup, "STORE_BACKEND", defaultStoreBackend),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		RESTURL:             getString(lookup, "REST_URL", ""),
		ServiceRoleKey:      getString(lookup, "SERVICE_ROLE_KEY", ""),
		JWTSecret:           getString(lookup, "JWT_SECRET", defaultJWTSecret),
		AdminKeyHash:        getString(lookup, "ADMIN_KEY_HASH", ""),
		LogLevel:            getString(lookup, "LOG_LEVEL", defaultLogLevel),
		RedisAddr:           getString(lookup, "REDIS_ADDR", ""),
		NotificationTopic:   getString(lookup, "NOTIFICATION_TOPIC", defaultNotificationTopic),
		SweepInterval:       getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		SweepGracePeriod:    getDuration(lookup, "SWEEP_GRACE_PERIOD", defaultSweepGracePeriod),
		SweepBatchSize:      getInt(lookup, "SWEEP_BATCH_SIZE", defaultSweepBatchSize),
		WorkerPoolSize:      getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		CompensationRetries: getInt(lookup, "COMPENSATION_RETRIES", defaultCompensationRetries),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	flags := flag.NewFlagSet("storefront", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		sweepIntervalStr   = cfg.SweepInterval.String()
		gracePeriodStr     = cfg.SweepGracePeriod.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		originsStr         = getString(lookup, "ALLOWED_ORIGINS", defaultAllowedOrigins)
		brokersStr         = getString(lookup, "KAFKA_BROKERS", "")
	)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.StoreBackend, "store", cfg.StoreBackend, "Storage backend: postgres or rest")
	flags.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	flags.StringVar(&cfg.RESTURL, "rest-url", cfg.RESTURL, "Base URL of the REST data API")
	flags.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret used to verify access tokens")
	flags.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address for the sweep lock")
	flags.StringVar(&brokersStr, "kafka-brokers", brokersStr, "Comma separated Kafka brokers")
	flags.StringVar(&originsStr, "origins", originsStr, "Comma separated CORS origins")
	flags.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent sweep workers")
	flags.IntVar(&cfg.SweepBatchSize, "sweep-batch", cfg.SweepBatchSize, "Maximum orphan orders per sweep")
	flags.IntVar(&cfg.CompensationRetries, "compensation-retries", cfg.CompensationRetries, "Attempts for compensating deletes")
	flags.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between orphan sweeps")
	flags.StringVar(&gracePeriodStr, "sweep-grace", gracePeriodStr, "Minimum age of an orphan order")
	flags.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.SweepGracePeriod, err = time.ParseDuration(gracePeriodStr); err != nil {
		return nil, fmt.Errorf("invalid sweep grace period: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	cfg.AllowedOrigins = splitList(originsStr)
	cfg.KafkaBrokers = splitList(brokersStr)
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = defaultSweepBatchSize
	}

	if cfg.CompensationRetries <= 0 {
		cfg.CompensationRetries = defaultCompensationRetries
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.SweepGracePeriod <= 0 {
		cfg.SweepGracePeriod = defaultSweepGracePeriod
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	switch cfg.StoreBackend {
	case BackendPostgres:
		if cfg.DatabaseURI == "" {
			return nil, fmt.Errorf("database URI must be provided")
		}
	case BackendREST:
		if cfg.RESTURL == "" {
			return nil, fmt.Errorf("rest url must be provided")
		}
		if cfg.ServiceRoleKey == "" {
			return nil, fmt.Errorf("service role key must be provided")
		}
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
