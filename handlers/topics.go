// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/prayer-wall/cliparse"
	"github.com/danielhkuo/prayer-wall/middleware"
	"github.com/danielhkuo/prayer-wall/store"
)

type TopicHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewTopicHandler(st *store.Store, cfg cliparse.Config) *TopicHandler {
	return &TopicHandler{store: st, cfg: cfg}
}

// List handles GET /topics
// Returns main categories with their subcategories nested.
func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.store.Topics(r.Context())
	if err != nil {
		writeStoreError(w, err, "Topic not found", "Failed to list topics")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, groups)
}

// Get handles GET /topics/{id}
func (h *TopicHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "topic id must be an integer")
		return
	}

	topic, err := h.store.Topic(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Topic not found", "Failed to get topic")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, topic)
}
