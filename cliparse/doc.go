// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL connection string or SQLite path (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - AdminKey: Secret for the maintenance endpoints (required)
  - PrayerTTL: Lifetime of a prayer request (default: 24h)
  - PushURL, PushAccessToken: Push gateway; empty URL disables push
  - PushConcurrency, PushTimeout: Fan-out bound and per-send timeout
  - RateLimit, RateBurst: Per-client request rate
  - LogLevel, LogFormat: slog level and "json" or "text"

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	--admin-key Maintenance key
	--ttl       Prayer request TTL
	--push-url  Push gateway URL
	--env-file  Dotenv file (default: .env, ignored when missing)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	ADMIN_KEY     → --admin-key
	PRAYER_TTL    → --ttl
	PUSH_URL      → --push-url

Environment only:

	PUSH_ACCESS_TOKEN, PUSH_CONCURRENCY, PUSH_TIMEOUT,
	RATE_LIMIT_RPS, RATE_LIMIT_BURST, LOG_LEVEL, LOG_FORMAT

CLI flags take precedence over environment variables, and real environment
variables take precedence over the dotenv file.

# Logging

NewLogger builds the slog logger the server installs as default:

	slog.SetDefault(cliparse.NewLogger(cfg, os.Stderr))

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - ADMIN_KEY must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - PRAYER_TTL must parse as a positive duration
*/
package cliparse
