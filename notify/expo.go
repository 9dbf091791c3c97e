// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ExpoClient sends messages to an Expo-compatible push gateway.
type ExpoClient struct {
	url         string
	accessToken string
	client      *http.Client
}

// NewExpoClient creates a client for the gateway at url. accessToken is
// optional.
func NewExpoClient(url, accessToken string, timeout time.Duration) *ExpoClient {
	return &ExpoClient{
		url:         url,
		accessToken: accessToken,
		client:      &http.Client{Timeout: timeout},
	}
}

type expoResponse struct {
	Data struct {
		Status  string `json:"status"`
		ID      string `json:"id"`
		Message string `json:"message"`
	} `json:"data"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// Notify posts one message. Anything other than a 2xx response with
// status "ok" counts as a failed delivery.
func (c *ExpoClient) Notify(ctx context.Context, msg Message) bool {
	payload, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to encode push message", "error", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		slog.Error("failed to build push request", "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Warn("push gateway unreachable", "kind", msg.Kind(), "error", err)
		return false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		slog.Warn("failed to read push gateway response", "error", err)
		return false
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("push gateway rejected notification",
			"kind", msg.Kind(),
			"status", resp.StatusCode,
		)
		return false
	}

	var out expoResponse
	if err := json.Unmarshal(body, &out); err != nil {
		slog.Warn("failed to decode push gateway response", "error", err)
		return false
	}
	if len(out.Errors) > 0 || out.Data.Status != "ok" {
		slog.Warn("push notification not accepted",
			"kind", msg.Kind(),
			"status", out.Data.Status,
			"message", out.Data.Message,
		)
		return false
	}

	return true
}
