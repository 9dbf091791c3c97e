// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/prayer-wall/models"
)

const (
	// MaxDescriptionLength is the longest description accepted, in characters.
	MaxDescriptionLength = 1000

	DefaultListLimit = 50
	MaxListLimit     = 100
)

const selectRequest = `
	SELECT r.id, r.topic_id, t.title AS topic_title, r.device_id, r.description,
	       r.prayer_count, r.active_prayers, r.created_at, r.expires_at
	FROM prayer_request r
	JOIN topic t ON t.id = r.topic_id`

// CreateParams holds the caller-supplied fields of a new prayer request.
type CreateParams struct {
	TopicID     *int64
	DeviceID    *string
	Description *string
}

// ListParams filters and pages ListActive.
type ListParams struct {
	// TopicID matches requests on that topic, and on its subcategories
	// when it is a main category.
	TopicID *int64
	Limit   int
	Offset  int
}

// CreateRequest validates and stores a new prayer request with zero counters.
func (s *Store) CreateRequest(ctx context.Context, p CreateParams) (models.PrayerRequest, error) {
	if p.TopicID == nil {
		return models.PrayerRequest{}, invalid("topic_id", "topic_id is required")
	}

	description := trimmed(p.Description)
	if description != nil && utf8.RuneCountInString(*description) > MaxDescriptionLength {
		return models.PrayerRequest{}, invalid("description",
			fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength))
	}
	deviceID := trimmed(p.DeviceID)

	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM topic WHERE id = $1)`, *p.TopicID)
	if err != nil {
		return models.PrayerRequest{}, fmt.Errorf("failed to check topic: %w", err)
	}
	if !exists {
		return models.PrayerRequest{}, invalid("topic_id", "topic does not exist")
	}

	id := uuid.NewString()
	now := s.clock()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO prayer_request (id, topic_id, device_id, description, prayer_count, active_prayers, created_at, expires_at)
		VALUES ($1, $2, $3, $4, 0, 0, $5, $6)
	`, id, *p.TopicID, deviceID, description, now, now.Add(s.ttl))
	if err != nil {
		return models.PrayerRequest{}, fmt.Errorf("failed to create prayer request: %w", err)
	}

	return getActive(ctx, s.db, id, now)
}

// GetRequest returns an active prayer request. Expired requests are reported
// as ErrNotFound even before cleanup removes them.
func (s *Store) GetRequest(ctx context.Context, id string) (models.PrayerRequest, error) {
	return getActive(ctx, s.db, id, s.clock())
}

// ListActive returns active requests, newest first.
func (s *Store) ListActive(ctx context.Context, p ListParams) ([]models.PrayerRequest, error) {
	limit, offset := clampPage(p.Limit, p.Offset)

	args := []any{s.clock()}
	where := "r.expires_at > $1"
	if p.TopicID != nil {
		args = append(args, *p.TopicID)
		where += " AND (r.topic_id = $2 OR t.parent_id = $2)"
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf("%s WHERE %s ORDER BY r.created_at DESC, r.id LIMIT $%d OFFSET $%d",
		selectRequest, where, len(args)-1, len(args))

	requests := []models.PrayerRequest{}
	if err := s.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list prayer requests: %w", err)
	}
	return requests, nil
}

// ListByDevice returns the active requests created by a device.
func (s *Store) ListByDevice(ctx context.Context, deviceID string) ([]models.PrayerRequest, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, invalid("device_id", "device_id is required")
	}

	requests := []models.PrayerRequest{}
	err := s.db.SelectContext(ctx, &requests,
		selectRequest+` WHERE r.device_id = $1 AND r.expires_at > $2 ORDER BY r.created_at DESC, r.id`,
		deviceID, s.clock())
	if err != nil {
		return nil, fmt.Errorf("failed to list device prayer requests: %w", err)
	}
	return requests, nil
}

// ListJoined returns the active requests a device has joined, with its link state.
func (s *Store) ListJoined(ctx context.Context, deviceID string) ([]models.JoinedPrayerRequest, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, invalid("device_id", "device_id is required")
	}

	joined := []models.JoinedPrayerRequest{}
	err := s.db.SelectContext(ctx, &joined, `
		SELECT r.id, r.topic_id, t.title AS topic_title, r.device_id, r.description,
		       r.prayer_count, r.active_prayers, r.created_at, r.expires_at,
		       dp.joined_at, dp.completed_at
		FROM device_prayer dp
		JOIN prayer_request r ON r.id = dp.prayer_request_id
		JOIN topic t ON t.id = r.topic_id
		WHERE dp.device_id = $1 AND r.expires_at > $2
		ORDER BY dp.joined_at DESC, r.id
	`, deviceID, s.clock())
	if err != nil {
		return nil, fmt.Errorf("failed to list joined prayer requests: %w", err)
	}
	return joined, nil
}

func getActive(ctx context.Context, q sqlx.QueryerContext, id string, now time.Time) (models.PrayerRequest, error) {
	var req models.PrayerRequest
	err := sqlx.GetContext(ctx, q, &req, selectRequest+` WHERE r.id = $1 AND r.expires_at > $2`, id, now)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PrayerRequest{}, notFound("prayer request", id)
	}
	if err != nil {
		return models.PrayerRequest{}, fmt.Errorf("failed to get prayer request: %w", err)
	}
	return req, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// trimmed returns nil for absent or blank values.
func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
