// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/prayer-wall/cliparse"
	"github.com/danielhkuo/prayer-wall/metrics"
	"github.com/danielhkuo/prayer-wall/middleware"
	"github.com/danielhkuo/prayer-wall/models"
	"github.com/danielhkuo/prayer-wall/notify"
	"github.com/danielhkuo/prayer-wall/store"
)

const requestNotFound = "Prayer request not found"

type PrayerHandler struct {
	store      *store.Store
	dispatcher *notify.Dispatcher
	cfg        cliparse.Config
}

func NewPrayerHandler(st *store.Store, dispatcher *notify.Dispatcher, cfg cliparse.Config) *PrayerHandler {
	return &PrayerHandler{store: st, dispatcher: dispatcher, cfg: cfg}
}

// Create handles POST /prayer-requests
func (h *PrayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePrayerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	created, err := h.store.CreateRequest(r.Context(), store.CreateParams{
		TopicID:     req.TopicID,
		DeviceID:    req.DeviceID,
		Description: req.Description,
	})
	if err != nil {
		writeStoreError(w, err, "Topic not found", "Failed to create prayer request")
		return
	}

	slog.Info("prayer request created",
		"prayer_request_id", created.ID,
		"topic_id", created.TopicID,
		"anonymous", created.DeviceID == nil,
	)

	h.broadcastNewRequest(created)

	middleware.JSONResponse(w, http.StatusCreated, created)
}

// List handles GET /prayer-requests?topic_id=&limit=&offset=
func (h *PrayerHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var params store.ListParams

	if v := q.Get("topic_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "topic_id must be an integer")
			return
		}
		params.TopicID = &id
	}

	var err error
	if params.Limit, err = intParam(q.Get("limit"), store.DefaultListLimit); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	if params.Offset, err = intParam(q.Get("offset"), 0); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}
	if params.Limit > store.MaxListLimit {
		params.Limit = store.MaxListLimit
	}
	if params.Limit == 0 {
		params.Limit = store.DefaultListLimit
	}

	requests, err := h.store.ListActive(r.Context(), params)
	if err != nil {
		writeStoreError(w, err, requestNotFound, "Failed to list prayer requests")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListPrayerRequestsResponse{
		PrayerRequests: requests,
		Limit:          params.Limit,
		Offset:         params.Offset,
	})
}

// Get handles GET /prayer-requests/{id}
func (h *PrayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	req, err := h.store.GetRequest(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, requestNotFound, "Failed to get prayer request")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, req)
}

// Join handles POST /prayer-requests/{id}/join
// Joining twice is not an error; the response says whether this call joined.
func (h *PrayerHandler) Join(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("id")

	deviceID, err := readDeviceID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := h.store.Join(r.Context(), requestID, deviceID)
	if err != nil {
		metrics.RecordOperation("join", outcomeLabel(err))
		writeStoreError(w, err, requestNotFound, "Failed to join prayer request")
		return
	}

	if res.Joined {
		metrics.RecordOperation("join", "joined")
		slog.Info("prayer request joined",
			"prayer_request_id", requestID,
			"prayer_count", res.Request.PrayerCount,
		)
		h.notifyCreator(res.Request, deviceID)
	} else {
		metrics.RecordOperation("join", "already_joined")
	}

	middleware.JSONResponse(w, http.StatusOK, models.JoinResponse{
		PrayerRequest: res.Request,
		Joined:        res.Joined,
	})
}

// StartPraying handles POST /prayer-requests/{id}/start-praying
func (h *PrayerHandler) StartPraying(w http.ResponseWriter, r *http.Request) {
	h.counterUpdate(w, r, "start_praying", h.store.StartPraying)
}

// StopPraying handles POST /prayer-requests/{id}/stop-praying
func (h *PrayerHandler) StopPraying(w http.ResponseWriter, r *http.Request) {
	h.counterUpdate(w, r, "stop_praying", h.store.StopPraying)
}

// Pray handles POST /prayer-requests/{id}/pray (legacy single tap)
func (h *PrayerHandler) Pray(w http.ResponseWriter, r *http.Request) {
	h.counterUpdate(w, r, "pray", h.store.Pray)
}

// Complete handles POST /prayer-requests/{id}/complete
func (h *PrayerHandler) Complete(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("id")

	deviceID, err := readDeviceID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req, err := h.store.Complete(r.Context(), requestID, deviceID)
	metrics.RecordOperation("complete", outcomeLabel(err))
	if err != nil {
		writeStoreError(w, err, "Active participation not found", "Failed to complete prayer")
		return
	}

	slog.Info("prayer completed", "prayer_request_id", requestID)
	middleware.JSONResponse(w, http.StatusOK, req)
}

// ListByDevice handles GET /devices/{device_id}/prayer-requests
func (h *PrayerHandler) ListByDevice(w http.ResponseWriter, r *http.Request) {
	requests, err := h.store.ListByDevice(r.Context(), r.PathValue("device_id"))
	if err != nil {
		writeStoreError(w, err, requestNotFound, "Failed to list prayer requests")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ListPrayerRequestsResponse{
		PrayerRequests: requests,
		Limit:          len(requests),
	})
}

// ListJoined handles GET /devices/{device_id}/joined
func (h *PrayerHandler) ListJoined(w http.ResponseWriter, r *http.Request) {
	joined, err := h.store.ListJoined(r.Context(), r.PathValue("device_id"))
	if err != nil {
		writeStoreError(w, err, requestNotFound, "Failed to list joined prayer requests")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.JoinedPrayerRequestsResponse{
		PrayerRequests: joined,
	})
}

type counterFunc func(ctx context.Context, requestID string) (models.PrayerRequest, error)

func (h *PrayerHandler) counterUpdate(w http.ResponseWriter, r *http.Request, op string, update counterFunc) {
	req, err := update(r.Context(), r.PathValue("id"))
	metrics.RecordOperation(op, outcomeLabel(err))
	if err != nil {
		writeStoreError(w, err, requestNotFound, "Failed to update prayer request")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, req)
}

// notifyCreator tells the request's creator that someone joined. The lookup
// and delivery happen after the response is written.
func (h *PrayerHandler) notifyCreator(req models.PrayerRequest, joinerID string) {
	if req.DeviceID == nil || *req.DeviceID == joinerID {
		return
	}
	creatorID := *req.DeviceID

	h.dispatcher.Go(models.NotifyJoined, func(ctx context.Context) []notify.Message {
		creator, err := h.store.GetDevice(ctx, creatorID)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			slog.Warn("failed to look up request creator", "error", err)
			return nil
		}

		msg, ok := notify.JoinedMessage(creator, joinerID, req)
		if !ok {
			return nil
		}
		return []notify.Message{msg}
	})
}

// broadcastNewRequest announces a new request to every other device with a
// push token.
func (h *PrayerHandler) broadcastNewRequest(req models.PrayerRequest) {
	var creatorID string
	if req.DeviceID != nil {
		creatorID = *req.DeviceID
	}

	h.dispatcher.Go(models.NotifyNewRequest, func(ctx context.Context) []notify.Message {
		targets, err := h.store.PushTargets(ctx, creatorID)
		if err != nil {
			slog.Warn("failed to list push targets", "error", err)
			return nil
		}
		return notify.NewRequestMessages(req, targets)
	})
}

// readDeviceID takes device_id from the JSON body, falling back to the
// X-Device-ID header. The body is optional.
func readDeviceID(r *http.Request) (string, error) {
	var body models.DeviceActionRequest
	err := middleware.ParseJSONBody(r, &body)
	if err != nil && !errors.Is(err, middleware.ErrEmptyBody) {
		return "", err
	}

	deviceID := strings.TrimSpace(body.DeviceID)
	if deviceID == "" {
		deviceID = strings.TrimSpace(r.Header.Get("X-Device-ID"))
	}
	return deviceID, nil
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New("invalid integer")
	}
	return n, nil
}
