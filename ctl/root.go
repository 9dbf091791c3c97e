// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ctl

import (
	"errors"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/prayer-wall/cliparse"
	"github.com/danielhkuo/prayer-wall/db"
	"github.com/danielhkuo/prayer-wall/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DatabaseURL  string
	DatabaseType string
	EnvFile      string
	Format       string // "json" | "text"
	Verbose      bool
}

var validFormats = []string{"text", "json"}

// NewRootCommand creates the prayerctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "prayerctl",
		Short: "Operator tooling for the prayer-wall database",
		Long: `prayerctl manages the prayer-wall database directly: schema creation,
topic seeding, expired request cleanup and statistics.

The database comes from -d/-t or DATABASE_URL/DATABASE_TYPE.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.DatabaseURL, "database", "d", "", "database URL (default $DATABASE_URL)")
	cmd.PersistentFlags().StringVarP(&opts.DatabaseType, "type", "t", "", "database type: sqlite or postgres (default $DATABASE_TYPE, then sqlite)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "optional dotenv file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newSeedTopicsCommand(opts))
	cmd.AddCommand(newCleanupCommand(opts))
	cmd.AddCommand(newStatsCommand(opts))
	cmd.AddCommand(newSweepCommand(opts))

	return cmd
}

// resolve fills unset options from the environment and validates them.
func (o *RootOptions) resolve() error {
	if !isValidFormat(o.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", o.Format, validFormats)
	}
	if err := cliparse.LoadEnvFile(o.EnvFile); err != nil {
		return err
	}

	if o.DatabaseURL == "" {
		o.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if o.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if o.DatabaseType == "" {
		o.DatabaseType = os.Getenv("DATABASE_TYPE")
	}
	if o.DatabaseType == "" {
		o.DatabaseType = cliparse.DatabaseSQLite
	}
	return nil
}

// open connects and wraps the connection in a store. Callers close the
// returned connection.
func (o *RootOptions) open(cmd *cobra.Command) (*sqlx.DB, *store.Store, error) {
	conn, err := db.Open(cmd.Context(), o.DatabaseType, o.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return conn, store.New(conn), nil
}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}
