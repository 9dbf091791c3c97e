// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Platform constants
const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
	PlatformWeb     = "web"
)

// Notification kinds carried in push payloads
const (
	NotifyJoined     = "prayer_joined"
	NotifyNewRequest = "new_prayer_request"
)

// Request types

type CreatePrayerRequest struct {
	TopicID     *int64  `json:"topic_id"`
	DeviceID    *string `json:"device_id,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Body for join and complete. device_id may also come from the X-Device-ID header.
type DeviceActionRequest struct {
	DeviceID string `json:"device_id"`
}

type RegisterDeviceRequest struct {
	DeviceID  string  `json:"device_id"`
	PushToken *string `json:"push_token,omitempty"`
	Platform  string  `json:"platform"`
}

// Response types

type JoinResponse struct {
	PrayerRequest PrayerRequest `json:"prayer_request"`
	Joined        bool          `json:"joined"`
}

type RegisterDeviceResponse struct {
	DeviceID string `json:"device_id"`
	IsNew    bool   `json:"is_new"`
}

type ListPrayerRequestsResponse struct {
	PrayerRequests []PrayerRequest `json:"prayer_requests"`
	Limit          int             `json:"limit"`
	Offset         int             `json:"offset"`
}

type JoinedPrayerRequestsResponse struct {
	PrayerRequests []JoinedPrayerRequest `json:"prayer_requests"`
}

type CleanupResponse struct {
	Deleted int64     `json:"deleted"`
	RanAt   time.Time `json:"ran_at"`
}

// Domain types

type Topic struct {
	ID       int64  `json:"id" db:"id" yaml:"id"`
	Title    string `json:"title" db:"title" yaml:"title"`
	Category string `json:"category" db:"category" yaml:"category"`
	ParentID *int64 `json:"parent_id,omitempty" db:"parent_id" yaml:"parent_id"`
}

type Subcategory struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// TopicGroup is a main category with its subcategories nested under it.
type TopicGroup struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Category      string        `json:"category"`
	Subcategories []Subcategory `json:"subcategories"`
}

type PrayerRequest struct {
	ID            string    `json:"id" db:"id"`
	TopicID       int64     `json:"topic_id" db:"topic_id"`
	TopicTitle    string    `json:"topic_title" db:"topic_title"`
	DeviceID      *string   `json:"device_id,omitempty" db:"device_id"`
	Description   *string   `json:"description,omitempty" db:"description"`
	PrayerCount   int64     `json:"prayer_count" db:"prayer_count"`
	ActivePrayers int64     `json:"active_prayers" db:"active_prayers"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	ExpiresAt     time.Time `json:"expires_at" db:"expires_at"`
}

type DevicePrayerLink struct {
	DeviceID        string     `json:"device_id" db:"device_id"`
	PrayerRequestID string     `json:"prayer_request_id" db:"prayer_request_id"`
	JoinedAt        time.Time  `json:"joined_at" db:"joined_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// JoinedPrayerRequest is a prayer request seen from a device that joined it.
type JoinedPrayerRequest struct {
	PrayerRequest
	JoinedAt    time.Time  `json:"joined_at" db:"joined_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

type Device struct {
	DeviceID   string    `json:"device_id" db:"device_id"`
	PushToken  *string   `json:"-" db:"push_token"` // Never expose in JSON
	Platform   string    `json:"platform" db:"platform"`
	LastActive time.Time `json:"last_active" db:"last_active"`
}

// Stats aggregates over active (non-expired) requests only.
type Stats struct {
	ActiveRequests   int64 `json:"active_requests" db:"active_requests"`
	TotalPrayers     int64 `json:"total_prayers" db:"total_prayers"`
	ActivePrayers    int64 `json:"active_prayers" db:"active_prayers"`
	CompletedPrayers int64 `json:"completed_prayers" db:"completed_prayers"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
