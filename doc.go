// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the prayer-wall API server.

Prayer-wall is an anonymous, ephemeral prayer wall. Devices post requests
under a topic, others join and pray, and every request expires after a fixed
time-to-live.

# Starting the Server

	DATABASE_URL=prayer.db ADMIN_KEY=secret go run .

Or with flags:

	go run . -p 3318 -d "postgres://..." -t postgres --admin-key secret

A .env file in the working directory is loaded when present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - ADMIN_KEY (--admin-key): Key for POST /admin/cleanup

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - PRAYER_TTL (--ttl): Request lifetime (default: 24h)
  - PUSH_URL (--push-url), PUSH_ACCESS_TOKEN: Expo-style push gateway
  - PUSH_CONCURRENCY, PUSH_TIMEOUT: Fan-out limits
  - RATE_LIMIT_RPS, RATE_LIMIT_BURST: Per-client rate limit
  - LOG_LEVEL, LOG_FORMAT (text or json)

# Architecture

  - handlers: HTTP request handlers (requests, participation, topics, devices, stats)
  - router: Route definitions using Go 1.22+ routing
  - store: Participation store over sqlx (all counter and expiry rules)
  - notify: Push delivery and bounded fan-out
  - middleware: CORS, logging, JSON helpers, rate limiting
  - metrics: Prometheus collectors
  - models: Request/response and domain types
  - auth: Admin key check and IP hashing
  - db: Connection, schema and topic catalog
  - cliparse: Configuration parsing and logger setup

Expired requests are removed by POST /admin/cleanup or the prayerctl
command in cmd/prayerctl.
*/
package main
