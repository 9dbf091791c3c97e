// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the small amount of authentication the service needs.

Prayer participation is anonymous; devices identify themselves with an
opaque device_id and are never authenticated. Only maintenance endpoints
are protected.

# Admin Key

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)

Returns ErrMissingAdminKey or ErrInvalidAdminKey. The comparison is
constant time.

BearerToken accepts the same key from an Authorization header.

# IP Hashing

Rate limiting keys clients by a salted hash of their IP so raw addresses
are never held in memory:

	key := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
