// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePrayerRequest: topic_id, device_id, description
  - DeviceActionRequest: device_id (join, complete)
  - RegisterDeviceRequest: device_id, push_token, platform

# Response Types

Types for JSON responses:

  - JoinResponse: prayer_request, joined
  - RegisterDeviceResponse: device_id, is_new
  - ListPrayerRequestsResponse: prayer_requests, limit, offset
  - JoinedPrayerRequestsResponse: prayer_requests with joined_at/completed_at
  - CleanupResponse: deleted, ran_at
  - ErrorResponse: error, message

# Domain Types

  - Topic: catalog entry, main category when parent_id is null
  - TopicGroup: main category with nested subcategories
  - PrayerRequest: time-limited request with prayer_count and active_prayers
  - DevicePrayerLink: per-(device, request) join/complete record
  - Device: registered device with optional push token
  - Stats: aggregate counters over active requests

Struct tags carry both json and db names; the db names are used by sqlx
when scanning rows in the store package.

# Constants

Platforms:

	PlatformIOS     = "ios"
	PlatformAndroid = "android"
	PlatformWeb     = "web"

Push payload kinds:

	NotifyJoined     = "prayer_joined"
	NotifyNewRequest = "new_prayer_request"
*/
package models
