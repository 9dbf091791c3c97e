// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Connecting

Open supports PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite):

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)

SQLite connections are limited to a single open connection and use
immediate transactions, so writers are serialized by the driver.

# Schema Creation

	if err := db.CreateSchema(ctx, conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - topic: Two-level prayer topic catalog
  - prayer_request: Anonymous requests with counters and expiry
  - device_prayer: One row per device that joined a request
  - device: Push registrations

# Relationships

	topic 1──* topic (parent_id)
	topic 1──* prayer_request
	prayer_request 1──* device_prayer (ON DELETE CASCADE)

# Topic Catalog

DefaultTopics returns the embedded catalog from topics.yaml. ParseCatalog
reads the same format from any other file.
*/
package db
