// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/prayer-wall/cliparse"
	"github.com/danielhkuo/prayer-wall/metrics"
	"github.com/danielhkuo/prayer-wall/middleware"
	"github.com/danielhkuo/prayer-wall/models"
	"github.com/danielhkuo/prayer-wall/store"
)

type StatsHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewStatsHandler(st *store.Store, cfg cliparse.Config) *StatsHandler {
	return &StatsHandler{store: st, cfg: cfg}
}

// Get handles GET /stats
// Always 200; a database failure is reported as zeros.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.store.Stats(r.Context()))
}

type MaintenanceHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewMaintenanceHandler(st *store.Store, cfg cliparse.Config) *MaintenanceHandler {
	return &MaintenanceHandler{store: st, cfg: cfg}
}

// Cleanup handles POST /admin/cleanup
// Requires the admin key (see middleware.RequireAdminKey).
func (h *MaintenanceHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	ranAt := time.Now().UTC()

	deleted, err := h.store.Cleanup(r.Context())
	if err != nil {
		slog.Error("cleanup failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Cleanup failed")
		return
	}
	metrics.RecordCleanup(deleted)

	middleware.JSONResponse(w, http.StatusOK, models.CleanupResponse{
		Deleted: deleted,
		RanAt:   ranAt,
	})
}
