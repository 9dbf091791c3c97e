// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/prayer-wall/cliparse"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, conn *sqlx.DB, dbType string) error {
	var ddl string
	switch dbType {
	case cliparse.DatabasePostgres:
		ddl = postgresSchema
	case cliparse.DatabaseSQLite:
		ddl = sqliteSchema
	default:
		return fmt.Errorf("unsupported database type %q", dbType)
	}

	_, err := conn.ExecContext(ctx, ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Topics
CREATE TABLE IF NOT EXISTS topic (
    id BIGINT PRIMARY KEY,
    title TEXT NOT NULL,
    category TEXT NOT NULL,
    parent_id BIGINT REFERENCES topic(id)
);

CREATE INDEX IF NOT EXISTS idx_topic_parent_id ON topic(parent_id);

-- Prayer requests
CREATE TABLE IF NOT EXISTS prayer_request (
    id TEXT PRIMARY KEY,
    topic_id BIGINT NOT NULL REFERENCES topic(id),
    device_id TEXT,
    description TEXT,
    prayer_count BIGINT NOT NULL DEFAULT 0 CHECK (prayer_count >= 0),
    active_prayers BIGINT NOT NULL DEFAULT 0 CHECK (active_prayers >= 0),
    created_at TIMESTAMPTZ NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_prayer_request_expires_at ON prayer_request(expires_at);
CREATE INDEX IF NOT EXISTS idx_prayer_request_topic_id ON prayer_request(topic_id);
CREATE INDEX IF NOT EXISTS idx_prayer_request_device_id ON prayer_request(device_id);

-- Device participation
CREATE TABLE IF NOT EXISTS device_prayer (
    device_id TEXT NOT NULL,
    prayer_request_id TEXT NOT NULL REFERENCES prayer_request(id) ON DELETE CASCADE,
    joined_at TIMESTAMPTZ NOT NULL,
    completed_at TIMESTAMPTZ,
    PRIMARY KEY (device_id, prayer_request_id)
);

CREATE INDEX IF NOT EXISTS idx_device_prayer_request ON device_prayer(prayer_request_id);

-- Devices
CREATE TABLE IF NOT EXISTS device (
    device_id TEXT PRIMARY KEY,
    push_token TEXT,
    platform TEXT NOT NULL,
    last_active TIMESTAMPTZ NOT NULL
);
`

// Timestamps are stored as unix nanoseconds (see sqliteDSN), so the TIMESTAMP
// declared type is what lets the driver scan them back into time.Time.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS topic (
    id INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    category TEXT NOT NULL,
    parent_id INTEGER REFERENCES topic(id)
);

CREATE INDEX IF NOT EXISTS idx_topic_parent_id ON topic(parent_id);

CREATE TABLE IF NOT EXISTS prayer_request (
    id TEXT PRIMARY KEY,
    topic_id INTEGER NOT NULL REFERENCES topic(id),
    device_id TEXT,
    description TEXT,
    prayer_count INTEGER NOT NULL DEFAULT 0 CHECK (prayer_count >= 0),
    active_prayers INTEGER NOT NULL DEFAULT 0 CHECK (active_prayers >= 0),
    created_at TIMESTAMP NOT NULL,
    expires_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_prayer_request_expires_at ON prayer_request(expires_at);
CREATE INDEX IF NOT EXISTS idx_prayer_request_topic_id ON prayer_request(topic_id);
CREATE INDEX IF NOT EXISTS idx_prayer_request_device_id ON prayer_request(device_id);

CREATE TABLE IF NOT EXISTS device_prayer (
    device_id TEXT NOT NULL,
    prayer_request_id TEXT NOT NULL REFERENCES prayer_request(id) ON DELETE CASCADE,
    joined_at TIMESTAMP NOT NULL,
    completed_at TIMESTAMP,
    PRIMARY KEY (device_id, prayer_request_id)
);

CREATE INDEX IF NOT EXISTS idx_device_prayer_request ON device_prayer(prayer_request_id);

CREATE TABLE IF NOT EXISTS device (
    device_id TEXT PRIMARY KEY,
    push_token TEXT,
    platform TEXT NOT NULL,
    last_active TIMESTAMP NOT NULL
);
`
