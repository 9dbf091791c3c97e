// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/prayer-wall/models"
)

// Message is a single push notification addressed to one push token.
type Message struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Sound string            `json:"sound,omitempty"`
	Data  map[string]string `json:"data,omitempty"`
}

// Kind returns the notification kind carried in the payload data.
func (m Message) Kind() string {
	if k := m.Data["type"]; k != "" {
		return k
	}
	return "unknown"
}

// Notifier delivers push messages. Notify reports delivery and never
// returns an error; failures are logged by the implementation.
type Notifier interface {
	Notify(ctx context.Context, msg Message) bool
}

// Nop drops every message. Used when no push gateway is configured.
type Nop struct{}

func (Nop) Notify(_ context.Context, msg Message) bool {
	slog.Debug("push disabled, dropping notification", "kind", msg.Kind())
	return false
}

// JoinedMessage builds the notice sent to a request's creator when another
// device joins. It returns false when nobody should be notified: the
// creator has no push token or joined their own request.
func JoinedMessage(creator models.Device, joinerID string, req models.PrayerRequest) (Message, bool) {
	if creator.PushToken == nil || *creator.PushToken == "" {
		return Message{}, false
	}
	if creator.DeviceID == joinerID {
		return Message{}, false
	}

	body := "Someone is praying for your request."
	if req.PrayerCount > 1 {
		body = fmt.Sprintf("%d people are praying for your request.", req.PrayerCount)
	}

	return Message{
		To:    *creator.PushToken,
		Title: "Someone joined your prayer",
		Body:  body,
		Sound: "default",
		Data: map[string]string{
			"type":              models.NotifyJoined,
			"prayer_request_id": req.ID,
		},
	}, true
}

// NewRequestMessages builds the broadcast for a newly created request, one
// message per target device with a push token.
func NewRequestMessages(req models.PrayerRequest, targets []models.Device) []Message {
	var msgs []Message
	for _, d := range targets {
		if d.PushToken == nil || *d.PushToken == "" {
			continue
		}
		msgs = append(msgs, Message{
			To:    *d.PushToken,
			Title: "New prayer request",
			Body:  fmt.Sprintf("Someone asked for prayer: %s", req.TopicTitle),
			Sound: "default",
			Data: map[string]string{
				"type":              models.NotifyNewRequest,
				"prayer_request_id": req.ID,
			},
		})
	}
	return msgs
}
