// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/prayer-wall/cliparse"
	"github.com/danielhkuo/prayer-wall/handlers"
	"github.com/danielhkuo/prayer-wall/metrics"
	"github.com/danielhkuo/prayer-wall/middleware"
	"github.com/danielhkuo/prayer-wall/notify"
	"github.com/danielhkuo/prayer-wall/store"
)

func NewRouter(st *store.Store, dispatcher *notify.Dispatcher, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	prayerHandler := handlers.NewPrayerHandler(st, dispatcher, cfg)
	topicHandler := handlers.NewTopicHandler(st, cfg)
	deviceHandler := handlers.NewDeviceHandler(st, cfg)
	statsHandler := handlers.NewStatsHandler(st, cfg)
	maintenanceHandler := handlers.NewMaintenanceHandler(st, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Topic catalog
	mux.HandleFunc("GET /topics", middleware.WithLogging(topicHandler.List))
	mux.HandleFunc("GET /topics/{id}", middleware.WithLogging(topicHandler.Get))

	// Prayer requests
	mux.HandleFunc("POST /prayer-requests", middleware.WithLogging(prayerHandler.Create))
	mux.HandleFunc("GET /prayer-requests", middleware.WithLogging(prayerHandler.List))
	mux.HandleFunc("GET /prayer-requests/{id}", middleware.WithLogging(prayerHandler.Get))

	// Participation
	mux.HandleFunc("POST /prayer-requests/{id}/join", middleware.WithLogging(prayerHandler.Join))
	mux.HandleFunc("POST /prayer-requests/{id}/start-praying", middleware.WithLogging(prayerHandler.StartPraying))
	mux.HandleFunc("POST /prayer-requests/{id}/stop-praying", middleware.WithLogging(prayerHandler.StopPraying))
	mux.HandleFunc("POST /prayer-requests/{id}/complete", middleware.WithLogging(prayerHandler.Complete))
	mux.HandleFunc("POST /prayer-requests/{id}/pray", middleware.WithLogging(prayerHandler.Pray))

	// Devices
	mux.HandleFunc("POST /devices/register", middleware.WithLogging(deviceHandler.Register))
	mux.HandleFunc("GET /devices/{device_id}/prayer-requests", middleware.WithLogging(prayerHandler.ListByDevice))
	mux.HandleFunc("GET /devices/{device_id}/joined", middleware.WithLogging(prayerHandler.ListJoined))

	// Statistics and maintenance
	mux.HandleFunc("GET /stats", middleware.WithLogging(statsHandler.Get))
	mux.HandleFunc("POST /admin/cleanup",
		middleware.WithLogging(middleware.RequireAdminKey(cfg.AdminKey, maintenanceHandler.Cleanup)))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("prayer-wall API v1"))
	})

	return mux
}

// Wrap applies the server-wide middleware: metrics outermost so it sees the
// final status, then CORS, then per-client rate limiting.
func Wrap(mux *http.ServeMux, limiter *middleware.RateLimiter) http.Handler {
	var h http.Handler = mux
	if limiter != nil {
		h = limiter.Handler(h)
	}
	return metrics.InstrumentHandler(middleware.CORS(h))
}
