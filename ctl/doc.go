// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ctl implements the prayerctl operator commands.

	prayerctl -d prayer.db migrate
	prayerctl -d prayer.db seed-topics --file topics.yaml
	prayerctl -d prayer.db cleanup
	prayerctl -d prayer.db --format json stats
	prayerctl -d "postgres://..." -t postgres sweep --schedule "@every 15m"

Commands talk to the database through package store, so they follow the same
expiry and counter rules as the API server.
*/
package ctl
