package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/brtime"
	"github.com/nekogravitycat/hearing-scheduler/internal/schedule"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	Env          string
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	LogLevel     string

	DBDSN         string
	DBMaxConns    int
	RunMigrations bool

	JWTSecret   string
	JWTTokenTTL time.Duration

	ScheduleMaxRangeDays   int
	ScheduleDefaultWindows []schedule.Window

	RateLimitPerMinute int
	RateLimitBurst     int

	RequestTimeout time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{}
	var err error

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	cfg.Env = getEnv("APP_ENV", "dev")
	cfg.IsProduction = cfg.Env == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Empty picks the environment default (info in prod, debug otherwise)
	cfg.LogLevel = getEnv("LOG_LEVEL", "")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	cfg.DBMaxConns, err = getEnvAsInt("DB_MAX_CONNS", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	cfg.RunMigrations, err = getEnvAsBool("RUN_MIGRATIONS", true)
	if err != nil {
		return nil, fmt.Errorf("invalid RUN_MIGRATIONS: %w", err)
	}

	// JWT secret is required for verifying tokens on write routes
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// Lifetime of operator tokens minted by cmd/tokengen (default: 12h)
	cfg.JWTTokenTTL, err = time.ParseDuration(getEnv("JWT_TOKEN_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TOKEN_TTL: %w", err)
	}

	cfg.ScheduleMaxRangeDays, err = getEnvAsInt("SCHEDULE_MAX_RANGE_DAYS", schedule.DefaultMaxRangeDays)
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_MAX_RANGE_DAYS: %w", err)
	}
	if cfg.ScheduleMaxRangeDays < 1 {
		return nil, fmt.Errorf("SCHEDULE_MAX_RANGE_DAYS must be positive, got %d", cfg.ScheduleMaxRangeDays)
	}

	// Court working hours used when a venue has none (default: 08:00-12:00,13:00-18:00)
	cfg.ScheduleDefaultWindows, err = brtime.ParseWindows(getEnv("SCHEDULE_DEFAULT_WINDOWS", "08:00-12:00,13:00-18:00"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_DEFAULT_WINDOWS: %w", err)
	}

	cfg.RateLimitPerMinute, err = getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
	}
	cfg.RateLimitBurst, err = getEnvAsInt("RATE_LIMIT_BURST", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	// Request timeout, parse as time.Duration (e.g. "10s", "1m").
	timeoutStr := getEnv("REQUEST_TIMEOUT", "15s")
	cfg.RequestTimeout, err = time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		// Return 0 and a wrapped error to provide context
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("env %s value %q is not a valid boolean: %w", key, valStr, err)
	}
	return val, nil
}
