// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ctl

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/prayer-wall/db"
	"github.com/danielhkuo/prayer-wall/models"
	"github.com/danielhkuo/prayer-wall/store"
)

type seedOutput struct {
	Inserted int `json:"inserted"`
	Ignored  int `json:"ignored"`
}

func newMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	var skipSeed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create tables and seed the built-in topic catalog",
		Long: `Create all tables and indexes if they do not exist, then insert the
built-in topics. Safe to run repeatedly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newOutput(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			conn, st, err := rootOpts.open(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.CreateSchema(cmd.Context(), conn, rootOpts.DatabaseType); err != nil {
				return err
			}
			out.logf("schema ready (%s)", rootOpts.DatabaseType)

			if skipSeed {
				return out.result(seedOutput{}, "schema ready")
			}

			topics, err := db.DefaultTopics()
			if err != nil {
				return err
			}
			res, err := st.SeedTopics(cmd.Context(), topics)
			if err != nil {
				return err
			}
			return out.result(seedOutput(res), "schema ready, %d topics inserted, %d already present", res.Inserted, res.Ignored)
		},
	}

	cmd.Flags().BoolVar(&skipSeed, "skip-seed", false, "create the schema only")
	return cmd
}

func newSeedTopicsCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed-topics",
		Short: "Insert topics from the built-in catalog or a YAML file",
		Long: `Insert topics that do not exist yet. Existing ids are left untouched.

Without --file the built-in catalog is used. A catalog file has the form:

  topics:
    - id: 1
      title: Job/work
      category: work
      subcategories:
        - id: 16
          title: I just lost my job`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newOutput(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			topics, err := loadTopics(file)
			if err != nil {
				return err
			}
			out.logf("loaded %d topics", len(topics))

			conn, st, err := rootOpts.open(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			res, err := st.SeedTopics(cmd.Context(), topics)
			if err != nil {
				return err
			}
			return out.result(seedOutput(res), "%d topics inserted, %d already present", res.Inserted, res.Ignored)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML catalog file")
	return cmd
}

func loadTopics(file string) ([]models.Topic, error) {
	if file == "" {
		return db.DefaultTopics()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return db.ParseCatalog(data)
}

func newCleanupCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Delete expired prayer requests once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newOutput(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			conn, st, err := rootOpts.open(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			return runCleanup(cmd, st, out)
		},
	}
}

func runCleanup(cmd *cobra.Command, st *store.Store, out *output) error {
	ranAt := time.Now().UTC()
	deleted, err := st.Cleanup(cmd.Context())
	if err != nil {
		return err
	}
	return out.result(models.CleanupResponse{Deleted: deleted, RanAt: ranAt},
		"%s deleted %d expired requests", ranAt.Format(time.RFC3339), deleted)
}

func newStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print aggregates over active prayer requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newOutput(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			conn, st, err := rootOpts.open(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			s := st.Stats(cmd.Context())
			return out.result(s, "active requests: %d\ntotal prayers: %d\nactive prayers: %d\ncompleted prayers: %d",
				s.ActiveRequests, s.TotalPrayers, s.ActivePrayers, s.CompletedPrayers)
		},
	}
}
