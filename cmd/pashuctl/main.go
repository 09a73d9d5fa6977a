// Command pashuctl runs maintenance tasks against the configured database.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/config"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/database"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/logging"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/portals"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/portals/registry"
	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/seed"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pashuctl",
		Short:         "PashuDrishti maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			logging.Setup(level)
		},
	}
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newMigrateCmd(), newSeedCmd(), newPurgeLogsCmd())
	return root
}

// connect opens the database and applies every migration.
func connect() (*gorm.DB, error) {
	cfg := config.Load()
	if err := database.Connect(cfg); err != nil {
		return nil, err
	}
	if err := database.MigrateShared(database.DB); err != nil {
		return nil, fmt.Errorf("shared migration failed: %w", err)
	}
	if err := portals.Migrate(database.DB, registry.All(nil, nil, nil), database.MigrateModels); err != nil {
		return nil, fmt.Errorf("portal migration failed: %w", err)
	}
	return database.DB, nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect()
			if err != nil {
				slog.Error("migrate failed", "error", err)
				return err
			}
			defer database.Close(db)
			slog.Info("migrations applied")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo accounts and the starter disease catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect()
			if err != nil {
				slog.Error("seed failed", "error", err)
				return err
			}
			defer database.Close(db)

			res, err := seed.Run(db, password)
			if err != nil {
				slog.Error("seed failed", "error", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d users, %d diseases\n", res.Users, res.Diseases)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", seed.DefaultPassword, "password for every demo account")
	return cmd
}

func newPurgeLogsCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "purge-logs",
		Short: "Delete system_logs rows older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect()
			if err != nil {
				slog.Error("purge failed", "error", err)
				return err
			}
			defer database.Close(db)

			if days <= 0 {
				days = config.Load().LogRetentionDays
			}
			if days <= 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "log retention is disabled, nothing purged")
				return nil
			}
			deleted, err := logging.PurgeOlderThan(db, days, time.Now())
			if err != nil {
				slog.Error("purge failed", "error", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d log rows older than %d days\n", deleted, days)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "retention in days (default LOG_RETENTION_DAYS)")
	return cmd
}
