// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ctl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/prayer-wall/store"
)

const defaultSchedule = "@every 15m"

func newSweepCommand(rootOpts *RootOptions) *cobra.Command {
	var schedule string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Delete expired prayer requests on a schedule",
		Long: `Run cleanup on a cron schedule until interrupted.

Schedules use standard five-field cron syntax or descriptors such as
"@hourly" and "@every 15m".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newOutput(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			conn, st, err := rootOpts.open(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			out.logf("sweeping on %q", schedule)
			return Sweep(cmd.Context(), st, schedule, func(deleted int64) {
				out.logf("sweep deleted %d expired requests", deleted)
			})
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", defaultSchedule, "cron schedule")
	return cmd
}

// Sweep runs st.Cleanup on schedule until ctx is done. A failed run is logged
// and retried at the next tick. onRun, if set, sees each successful count.
func Sweep(ctx context.Context, st *store.Store, schedule string, onRun func(deleted int64)) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(schedule, func() {
		deleted, err := st.Cleanup(ctx)
		if err != nil {
			slog.Error("sweep failed", "error", err)
			return
		}
		if onRun != nil {
			onRun(deleted)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	c.Start()
	slog.Info("sweep started", "schedule", schedule)

	<-ctx.Done()
	// Wait for a running cleanup to return
	<-c.Stop().Done()
	slog.Info("sweep stopped")
	return nil
}
