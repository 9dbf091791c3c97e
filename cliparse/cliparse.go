package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKey     string
	PrayerTTL    time.Duration

	PushURL         string
	PushAccessToken string
	PushConcurrency int
	PushTimeout     time.Duration

	RateLimit float64
	RateBurst int

	LogLevel  string
	LogFormat string
}

// ParseFlags validates flags and fills the rest from the environment.
// A .env file in the working directory is loaded first when present;
// variables already set in the process environment win over it.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := flag.NewFlagSet("prayer-wall", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&envFile, "env-file", ".env", "Optional dotenv file")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Maintenance endpoint key (prefer env)")

	fs.DurationVar(&cfg.PrayerTTL, "ttl", 0, "Prayer request time-to-live")
	fs.StringVar(&cfg.PushURL, "push-url", "", "Push gateway URL (empty disables push)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := LoadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", 3318)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}
	if cfg.AdminKey == "" {
		return Config{}, errors.New("ADMIN_KEY required")
	}

	if cfg.PrayerTTL == 0 {
		ttl, err := envDuration("PRAYER_TTL", 24*time.Hour)
		if err != nil {
			return Config{}, err
		}
		cfg.PrayerTTL = ttl
	}
	if cfg.PrayerTTL <= 0 {
		return Config{}, errors.New("prayer TTL must be positive")
	}

	if cfg.PushURL == "" {
		cfg.PushURL = os.Getenv("PUSH_URL")
	}
	cfg.PushAccessToken = os.Getenv("PUSH_ACCESS_TOKEN")

	var err error
	if cfg.PushConcurrency, err = envInt("PUSH_CONCURRENCY", 8); err != nil {
		return Config{}, err
	}
	if cfg.PushTimeout, err = envDuration("PUSH_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.RateBurst, err = envInt("RATE_LIMIT_BURST", 20); err != nil {
		return Config{}, err
	}

	cfg.RateLimit = 10
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, errors.New("invalid RATE_LIMIT_RPS env variable")
		}
		cfg.RateLimit = rps
	}

	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	cfg.LogFormat = os.Getenv("LOG_FORMAT")

	return cfg, nil
}

// LoadEnvFile loads a dotenv file. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return d, nil
}
