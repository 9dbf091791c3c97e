// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/prayer-wall/metrics"
)

const (
	defaultConcurrency = 8
	defaultTimeout     = 5 * time.Second
)

// Report summarizes one fan-out.
type Report struct {
	Delivered int
	Failed    int
}

// BuildFunc produces the messages for a background dispatch. It runs off the
// request path, so it may query the database.
type BuildFunc func(ctx context.Context) []Message

// Dispatcher fans messages out to a Notifier with bounded concurrency and a
// per-message timeout.
type Dispatcher struct {
	notifier    Notifier
	concurrency int
	timeout     time.Duration
	wg          sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. Non-positive limits use defaults.
func NewDispatcher(n Notifier, concurrency int, timeout time.Duration) *Dispatcher {
	if n == nil {
		n = Nop{}
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Dispatcher{
		notifier:    n,
		concurrency: concurrency,
		timeout:     timeout,
	}
}

// Send delivers every message and waits for all of them. A failed send does
// not stop the others.
func (d *Dispatcher) Send(ctx context.Context, msgs []Message) Report {
	var delivered, failed atomic.Int32

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	for _, msg := range msgs {
		g.Go(func() error {
			sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
			defer cancel()

			ok := d.notifier.Notify(sendCtx, msg)
			metrics.RecordNotification(msg.Kind(), ok)
			if ok {
				delivered.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}
	g.Wait()

	return Report{
		Delivered: int(delivered.Load()),
		Failed:    int(failed.Load()),
	}
}

// Go builds and sends messages in the background. The caller never waits
// and never sees delivery errors.
func (d *Dispatcher) Go(kind string, build BuildFunc) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		buildCtx, cancel := context.WithTimeout(context.Background(), d.timeout)
		msgs := build(buildCtx)
		cancel()
		if len(msgs) == 0 {
			return
		}

		report := d.Send(context.Background(), msgs)
		slog.Info("notifications dispatched",
			"kind", kind,
			"delivered", report.Delivered,
			"failed", report.Failed,
		)
	}()
}

// Wait blocks until every background dispatch has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
