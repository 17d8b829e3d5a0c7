package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string

	HTTPAddr    string
	DatabaseURL string

	// Connection pool
	DBDriver          string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnMaxIdleTime time.Duration
	DBConnectTimeout  time.Duration

	// Listing behaviour
	ListingFailSoft      bool
	ListingSnapshotReads bool
	ListingLocation      *time.Location

	// Rate Limiting
	RLEnabled bool
	RLLimit   int
	RLWindow  time.Duration

	MetricsEnabled bool

	LogLevel  string
	LogFormat string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.AppEnv = getEnv("APP_ENV", "dev")
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.DatabaseURL = getEnv("DATABASE_URL", "")

	// 5 pooled + 10 overflow connections, recycled hourly
	cfg.DBDriver = getEnv("DB_DRIVER", "postgres")
	cfg.DBMaxOpenConns = getIntEnv("DB_MAX_OPEN_CONNS", 15)
	cfg.DBMaxIdleConns = getIntEnv("DB_MAX_IDLE_CONNS", 5)
	cfg.DBConnMaxLifetime = getDuration("DB_CONN_MAX_LIFETIME", time.Hour)
	cfg.DBConnMaxIdleTime = getDuration("DB_CONN_MAX_IDLE_TIME", 15*time.Minute)
	cfg.DBConnectTimeout = getDuration("DB_CONNECT_TIMEOUT", 30*time.Second)

	cfg.ListingFailSoft = getBoolEnv("LISTING_FAIL_SOFT", true)
	cfg.ListingSnapshotReads = getBoolEnv("LISTING_SNAPSHOT_READS", false)

	// Rate Limiting Defaults: 100 reqs / 1 min
	cfg.RLEnabled = getBoolEnv("RL_ENABLED", true)
	cfg.RLLimit = getIntEnv("RL_IP_LIMIT", 100)
	cfg.RLWindow = getDuration("RL_IP_WINDOW", 1*time.Minute)

	cfg.MetricsEnabled = getBoolEnv("METRICS_ENABLED", true)

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")

	cfg.HTTPReadTimeout = getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	cfg.HTTPWriteTimeout = getDuration("HTTP_WRITE_TIMEOUT", 20*time.Second)
	cfg.HTTPIdleTimeout = getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)

	// validation
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("missing DATABASE_URL")
	}
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "pgx" {
		return nil, fmt.Errorf("invalid DB_DRIVER %q (expected postgres or pgx)", cfg.DBDriver)
	}
	if cfg.DBMaxOpenConns > 0 && cfg.DBMaxIdleConns > cfg.DBMaxOpenConns {
		cfg.DBMaxIdleConns = cfg.DBMaxOpenConns
	}

	loc, err := time.LoadLocation(getEnv("LISTING_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid LISTING_TIMEZONE: %w", err)
	}
	cfg.ListingLocation = loc

	return cfg, nil
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getIntEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getBoolEnv(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
