// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/prayer-wall/cliparse"
	"github.com/danielhkuo/prayer-wall/middleware"
	"github.com/danielhkuo/prayer-wall/models"
	"github.com/danielhkuo/prayer-wall/store"
)

type DeviceHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewDeviceHandler(st *store.Store, cfg cliparse.Config) *DeviceHandler {
	return &DeviceHandler{store: st, cfg: cfg}
}

// Register handles POST /devices/register
// Creates the device or refreshes its push token, platform and last_active.
func (h *DeviceHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterDeviceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	outcome, err := h.store.RegisterDevice(r.Context(), models.Device{
		DeviceID:  req.DeviceID,
		PushToken: req.PushToken,
		Platform:  req.Platform,
	})
	if err != nil {
		writeStoreError(w, err, "Device not found", "Failed to register device")
		return
	}

	isNew := outcome == store.Inserted
	slog.Info("device registered",
		"outcome", outcome.String(),
		"platform", req.Platform,
		"push_enabled", req.PushToken != nil && *req.PushToken != "",
	)

	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}
	middleware.JSONResponse(w, status, models.RegisterDeviceResponse{
		DeviceID: strings.TrimSpace(req.DeviceID),
		IsNew:    isNew,
	})
}
