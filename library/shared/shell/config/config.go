package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// Environment variable names.
const (
	EnvPort               = "PORT"
	EnvDatabaseURL        = "DATABASE_URL"
	EnvDatabaseReplicaURL = "DATABASE_REPLICA_URL"
	EnvDBAdapter          = "DB_ADAPTER"
	EnvCORSOrigins        = "CORS_ORIGINS"
	EnvLogLevel           = "LOG_LEVEL"
	EnvSessionTTL         = "SESSION_TTL"
	EnvFineRatePerDay     = "FINE_RATE_PER_DAY"
	EnvLoanPeriodDays     = "LOAN_PERIOD_DAYS"
	EnvOTLPEndpoint       = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

// Supported values for DB_ADAPTER.
const (
	AdapterPGXPool = "pgx.pool"
	AdapterSQLDB   = "sql.db"
	AdapterSQLX    = "sqlx.db"
)

const (
	defaultPort       = "8080"
	defaultAdapter    = AdapterPGXPool
	defaultSessionTTL = 24 * time.Hour
	defaultLogLevel   = slog.LevelInfo
)

// ErrInvalidConfig is returned when an environment variable is missing or malformed.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds everything the server and the admin CLI need to start.
type Config struct {
	Port               string
	DatabaseURL        string
	DatabaseReplicaURL string
	DBAdapter          string
	CORSOrigins        []string
	LogLevel           slog.Level
	SessionTTL         time.Duration
	FineRatePerDay     decimal.Decimal
	LoanPeriodDays     int
	OTLPEndpoint       string
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup reads the configuration through lookup. DATABASE_URL is the only required variable.
func FromLookup(lookup LookupFunc) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}

		return fallback
	}

	cfg := Config{
		Port:               get(EnvPort, defaultPort),
		DatabaseURL:        get(EnvDatabaseURL, ""),
		DatabaseReplicaURL: get(EnvDatabaseReplicaURL, ""),
		DBAdapter:          get(EnvDBAdapter, defaultAdapter),
		OTLPEndpoint:       get(EnvOTLPEndpoint, ""),
		LogLevel:           defaultLogLevel,
		SessionTTL:         defaultSessionTTL,
		FineRatePerDay:     core.DefaultRatePerDay,
		LoanPeriodDays:     core.DefaultLoanPeriodDays,
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("%w: %s is required", ErrInvalidConfig, EnvDatabaseURL)
	}

	switch cfg.DBAdapter {
	case AdapterPGXPool, AdapterSQLDB, AdapterSQLX:
	default:
		return Config{}, fmt.Errorf("%w: unsupported %s %q", ErrInvalidConfig, EnvDBAdapter, cfg.DBAdapter)
	}

	if origins := get(EnvCORSOrigins, ""); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	if level := get(EnvLogLevel, ""); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return Config{}, fmt.Errorf("%w: %s %q", ErrInvalidConfig, EnvLogLevel, level)
		}
	}

	if ttl := get(EnvSessionTTL, ""); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("%w: %s must be a positive duration, got %q", ErrInvalidConfig, EnvSessionTTL, ttl)
		}

		cfg.SessionTTL = d
	}

	if rate := get(EnvFineRatePerDay, ""); rate != "" {
		d, err := decimal.NewFromString(rate)
		if err != nil || d.IsNegative() {
			return Config{}, fmt.Errorf("%w: %s must be a non-negative decimal, got %q", ErrInvalidConfig, EnvFineRatePerDay, rate)
		}

		cfg.FineRatePerDay = d
	}

	if days := get(EnvLoanPeriodDays, ""); days != "" {
		n, err := strconv.Atoi(days)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrInvalidConfig, EnvLoanPeriodDays, days)
		}

		cfg.LoanPeriodDays = n
	}

	return cfg, nil
}

// LoadDotEnv sets the KEY=VALUE pairs of the file at path as environment variables.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	return nil
}
