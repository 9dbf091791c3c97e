// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the prayer-wall API.

# Handler Types

Each handler is a struct holding the store and config:

  - PrayerHandler: Requests, participation and per-device listings
  - TopicHandler: The topic catalog
  - DeviceHandler: Device registration
  - StatsHandler: Aggregates over active requests
  - MaintenanceHandler: Expired request cleanup

	prayerHandler := handlers.NewPrayerHandler(st, dispatcher, cfg)

# Participation

A device joins a request once. Joining bumps prayer_count and active_prayers;
start-praying and stop-praying move active_prayers only, and completing a
joined request moves it back down. active_prayers never goes below zero.

	POST /prayer-requests/{id}/join          → Join (device_id required)
	POST /prayer-requests/{id}/start-praying → StartPraying
	POST /prayer-requests/{id}/stop-praying  → StopPraying
	POST /prayer-requests/{id}/complete      → Complete (device_id required)
	POST /prayer-requests/{id}/pray          → Pray (legacy, both counters)

device_id is read from the JSON body or the X-Device-ID header.

# Expiry

Requests expire a fixed TTL after creation. Expired requests behave as if
they do not exist: reads and updates answer 404.

# Notifications

Create and Join hand push work to a notify.Dispatcher after the response is
decided. Delivery failures are logged and counted, never returned.

# Errors

Store validation errors map to 400, store.ErrNotFound to 404 and anything else
to 500. Bodies use models.ErrorResponse.
*/
package handlers
