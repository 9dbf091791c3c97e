// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/prayer-wall/models"
)

var validPlatforms = map[string]bool{
	models.PlatformIOS:     true,
	models.PlatformAndroid: true,
	models.PlatformWeb:     true,
}

// RegisterDevice creates or refreshes a device registration. A missing push
// token keeps the stored one. The outcome says whether the row was new.
func (s *Store) RegisterDevice(ctx context.Context, d models.Device) (WriteOutcome, error) {
	d.DeviceID = strings.TrimSpace(d.DeviceID)
	if d.DeviceID == "" {
		return Ignored, invalid("device_id", "device_id is required")
	}
	if !validPlatforms[d.Platform] {
		return Ignored, invalid("platform", "platform must be ios, android or web")
	}
	d.PushToken = trimmed(d.PushToken)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return Ignored, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM device WHERE device_id = $1)`, d.DeviceID)
	if err != nil {
		return Ignored, fmt.Errorf("failed to check device: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO device (device_id, push_token, platform, last_active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (device_id) DO UPDATE SET
			push_token = COALESCE(excluded.push_token, device.push_token),
			platform = excluded.platform,
			last_active = excluded.last_active
	`, d.DeviceID, d.PushToken, d.Platform, s.clock())
	if err != nil {
		return Ignored, fmt.Errorf("failed to register device: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Ignored, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if exists {
		return outcomeOf(res, Updated), nil
	}
	return outcomeOf(res, Inserted), nil
}

// GetDevice returns a registered device.
func (s *Store) GetDevice(ctx context.Context, deviceID string) (models.Device, error) {
	var d models.Device
	err := s.db.GetContext(ctx, &d, `
		SELECT device_id, push_token, platform, last_active FROM device WHERE device_id = $1
	`, deviceID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Device{}, notFound("device", deviceID)
	}
	if err != nil {
		return models.Device{}, fmt.Errorf("failed to get device: %w", err)
	}
	return d, nil
}

// PushTargets returns every device with a push token except the given one.
func (s *Store) PushTargets(ctx context.Context, excludeDeviceID string) ([]models.Device, error) {
	devices := []models.Device{}
	err := s.db.SelectContext(ctx, &devices, `
		SELECT device_id, push_token, platform, last_active
		FROM device
		WHERE push_token IS NOT NULL AND push_token <> '' AND device_id <> $1
		ORDER BY device_id
	`, excludeDeviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list push targets: %w", err)
	}
	return devices, nil
}
