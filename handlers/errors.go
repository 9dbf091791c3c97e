// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/prayer-wall/middleware"
	"github.com/danielhkuo/prayer-wall/store"
)

// writeStoreError maps store errors onto responses. Internal details are
// logged and never sent to the client.
func writeStoreError(w http.ResponseWriter, err error, notFoundMsg, failMsg string) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, notFoundMsg)
	default:
		slog.Error(failMsg, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, failMsg)
	}
}

// outcomeLabel classifies an error for operation metrics.
func outcomeLabel(err error) string {
	var verr *store.ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, store.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
