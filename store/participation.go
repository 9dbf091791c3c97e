// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/prayer-wall/models"
)

// Counter updates applied by the single-statement operations. Decrements
// floor at zero instead of failing.
const (
	incrementActive = "active_prayers = active_prayers + 1"
	decrementActive = "active_prayers = CASE WHEN active_prayers > 0 THEN active_prayers - 1 ELSE 0 END"
	incrementBoth   = "prayer_count = prayer_count + 1, active_prayers = active_prayers + 1"
)

// JoinResult reports the request after a join and whether a new link was made.
type JoinResult struct {
	Request models.PrayerRequest
	Joined  bool
}

// Join links a device to an active request and increments prayer_count once
// per device. Joining again is a no-op that returns the current request with
// Joined false. A concurrent duplicate insert is resolved the same way.
func (s *Store) Join(ctx context.Context, requestID, deviceID string) (JoinResult, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return JoinResult{}, invalid("device_id", "device_id is required")
	}

	now := s.clock()
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return JoinResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	req, err := getActive(ctx, tx, requestID, now)
	if err != nil {
		return JoinResult{}, err
	}

	var linked bool
	err = tx.GetContext(ctx, &linked, `
		SELECT EXISTS(SELECT 1 FROM device_prayer WHERE device_id = $1 AND prayer_request_id = $2)
	`, deviceID, requestID)
	if err != nil {
		return JoinResult{}, fmt.Errorf("failed to check participation: %w", err)
	}
	if linked {
		if err := tx.Commit(); err != nil {
			return JoinResult{}, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return JoinResult{Request: req}, nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO device_prayer (device_id, prayer_request_id, joined_at, completed_at)
		VALUES ($1, $2, $3, NULL)
	`, deviceID, requestID, now)
	if err != nil {
		if !isUniqueViolation(err) {
			return JoinResult{}, fmt.Errorf("failed to join prayer request: %w", err)
		}
		// Lost the race to another join from the same device.
		tx.Rollback()
		slog.Debug("duplicate join resolved as no-op",
			"prayer_request_id", requestID,
			"device_id", deviceID,
		)
		req, err := s.GetRequest(ctx, requestID)
		if err != nil {
			return JoinResult{}, err
		}
		return JoinResult{Request: req}, nil
	}

	_, err = tx.ExecContext(ctx, `UPDATE prayer_request SET prayer_count = prayer_count + 1 WHERE id = $1`, requestID)
	if err != nil {
		return JoinResult{}, fmt.Errorf("failed to update prayer count: %w", err)
	}

	req, err = getActive(ctx, tx, requestID, now)
	if err != nil {
		return JoinResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return JoinResult{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return JoinResult{Request: req, Joined: true}, nil
}

// StartPraying increments active_prayers. It is not tied to a device.
func (s *Store) StartPraying(ctx context.Context, requestID string) (models.PrayerRequest, error) {
	return s.adjust(ctx, requestID, incrementActive)
}

// StopPraying decrements active_prayers, flooring at zero.
func (s *Store) StopPraying(ctx context.Context, requestID string) (models.PrayerRequest, error) {
	return s.adjust(ctx, requestID, decrementActive)
}

// Pray is the legacy single-tap operation. It increments both counters with
// no device link, so prayer_count can exceed the number of joined devices.
func (s *Store) Pray(ctx context.Context, requestID string) (models.PrayerRequest, error) {
	return s.adjust(ctx, requestID, incrementBoth)
}

// Complete marks a device's link completed and decrements active_prayers,
// flooring at zero. A missing, already completed or expired link is
// ErrNotFound. prayer_count is never changed.
func (s *Store) Complete(ctx context.Context, requestID, deviceID string) (models.PrayerRequest, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return models.PrayerRequest{}, invalid("device_id", "device_id is required")
	}

	now := s.clock()
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.PrayerRequest{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE device_prayer SET completed_at = $1
		WHERE device_id = $2 AND prayer_request_id = $3 AND completed_at IS NULL
		  AND EXISTS (SELECT 1 FROM prayer_request WHERE id = $3 AND expires_at > $1)
	`, now, deviceID, requestID)
	if err != nil {
		return models.PrayerRequest{}, fmt.Errorf("failed to complete prayer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.PrayerRequest{}, fmt.Errorf("failed to complete prayer: %w", err)
	}
	if n == 0 {
		return models.PrayerRequest{}, notFound("active participation in", requestID)
	}

	_, err = tx.ExecContext(ctx, `UPDATE prayer_request SET `+decrementActive+` WHERE id = $1`, requestID)
	if err != nil {
		return models.PrayerRequest{}, fmt.Errorf("failed to update active prayers: %w", err)
	}

	req, err := getActive(ctx, tx, requestID, now)
	if err != nil {
		return models.PrayerRequest{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.PrayerRequest{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return req, nil
}

// GetLink returns the participation link between a device and a request.
func (s *Store) GetLink(ctx context.Context, requestID, deviceID string) (models.DevicePrayerLink, error) {
	var link models.DevicePrayerLink
	err := s.db.GetContext(ctx, &link, `
		SELECT device_id, prayer_request_id, joined_at, completed_at
		FROM device_prayer
		WHERE device_id = $1 AND prayer_request_id = $2
	`, deviceID, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DevicePrayerLink{}, notFound("participation in", requestID)
	}
	if err != nil {
		return models.DevicePrayerLink{}, fmt.Errorf("failed to get participation: %w", err)
	}
	return link, nil
}

// adjust applies a counter update to an active request in one statement and
// returns the updated row.
func (s *Store) adjust(ctx context.Context, requestID, set string) (models.PrayerRequest, error) {
	now := s.clock()
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.PrayerRequest{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE prayer_request SET `+set+` WHERE id = $1 AND expires_at > $2`, requestID, now)
	if err != nil {
		return models.PrayerRequest{}, fmt.Errorf("failed to update prayer request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.PrayerRequest{}, fmt.Errorf("failed to update prayer request: %w", err)
	}
	if n == 0 {
		return models.PrayerRequest{}, notFound("prayer request", requestID)
	}

	req, err := getActive(ctx, tx, requestID, now)
	if err != nil {
		return models.PrayerRequest{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.PrayerRequest{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return req, nil
}
