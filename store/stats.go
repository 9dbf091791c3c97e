// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/prayer-wall/models"
)

// Stats aggregates counters over active requests. A failed query is logged
// and reported as all zeros.
func (s *Store) Stats(ctx context.Context) models.Stats {
	var stats models.Stats
	err := s.db.GetContext(ctx, &stats, `
		SELECT
			COUNT(*) AS active_requests,
			COALESCE(SUM(r.prayer_count), 0) AS total_prayers,
			COALESCE(SUM(r.active_prayers), 0) AS active_prayers,
			(SELECT COUNT(*)
			 FROM device_prayer dp
			 JOIN prayer_request pr ON pr.id = dp.prayer_request_id
			 WHERE dp.completed_at IS NOT NULL AND pr.expires_at > $1) AS completed_prayers
		FROM prayer_request r
		WHERE r.expires_at > $1
	`, s.clock())
	if err != nil {
		slog.Error("failed to compute stats", "error", err)
		return models.Stats{}
	}
	return stats
}

// Cleanup deletes expired requests and their participation links, returning
// the number of requests removed. Safe to run concurrently with other writes.
func (s *Store) Cleanup(ctx context.Context) (int64, error) {
	now := s.clock()
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM device_prayer
		WHERE prayer_request_id IN (SELECT id FROM prayer_request WHERE expires_at <= $1)
	`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired participation: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM prayer_request WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired prayer requests: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted prayer requests: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if deleted > 0 {
		slog.Info("expired prayer requests removed", "count", deleted)
	}
	return deleted, nil
}
