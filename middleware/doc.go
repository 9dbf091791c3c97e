// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs one line per request with method, path, status and duration_ms.
Server errors are logged at error level.

# CORS Middleware

	handler := middleware.CORS(mux)

Allows GET, POST and OPTIONS with headers Content-Type, Authorization,
X-Admin-Key and X-Device-ID.

# Rate Limiting

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, cfg.AdminKey)
	handler := limiter.Handler(mux)

One token bucket per client IP (hashed with auth.HashIP). Exceeding it
returns 429 with Retry-After. StartCleanup prunes idle clients.

# Admin Key

	mux.HandleFunc("POST /admin/cleanup", middleware.RequireAdminKey(cfg.AdminKey, h.Cleanup))

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.CreatePrayerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

ParseJSONBody returns ErrEmptyBody for a missing body.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Checks X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware
