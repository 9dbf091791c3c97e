// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store implements the prayer request lifecycle on top of sqlx.

# Participation

Each prayer request carries two counters:

  - prayer_count: distinct devices that joined, plus legacy Pray calls
  - active_prayers: people praying right now

Operations:

	Join          link device, prayer_count +1 on first join only
	StartPraying  active_prayers +1
	StopPraying   active_prayers -1, floored at zero
	Complete      mark the device link completed, active_prayers -1 floored
	Pray          legacy: both counters +1, no device link

Join and Complete run in one transaction each. The other counter updates are
single conditional statements, so concurrent calls never lose increments.

# Expiry

Requests expire TTL after creation (24h by default). Every read and write
filters on expires_at, so an expired request behaves as missing before
Cleanup physically removes it together with its links.

# Errors

  - ErrNotFound: missing or expired request, missing or completed link
  - *ValidationError: bad or missing input field

Stats never fails; a database error is logged and yields zeros.
*/
package store
