// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the prayer-wall API.

# Route Registration

	mux := router.NewRouter(st, dispatcher, cfg)
	server := &http.Server{Handler: router.Wrap(mux, limiter)}

Wrap adds metrics, CORS and rate limiting around the mux.

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Topics:

	GET /topics      - Main categories with nested subcategories
	GET /topics/{id} - Single topic

Prayer requests:

	POST /prayer-requests      - Create (topic_id, optional device_id and description)
	GET  /prayer-requests      - Active requests (?topic_id=&limit=&offset=)
	GET  /prayer-requests/{id} - Single active request

Participation (device_id in body or X-Device-ID header where needed):

	POST /prayer-requests/{id}/join          - Join once per device
	POST /prayer-requests/{id}/start-praying - active_prayers +1
	POST /prayer-requests/{id}/stop-praying  - active_prayers -1, floored
	POST /prayer-requests/{id}/complete      - Mark the device's participation done
	POST /prayer-requests/{id}/pray          - Legacy single tap

Devices:

	POST /devices/register                   - Register or refresh push token
	GET  /devices/{device_id}/prayer-requests - Requests created by the device
	GET  /devices/{device_id}/joined          - Requests the device joined

Statistics and maintenance:

	GET  /stats         - Aggregates over active requests
	POST /admin/cleanup - Delete expired requests (requires X-Admin-Key)
*/
package router
