package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-lead-keeper/internal/config"
	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/internal/store"
)

func newMigrateCmd() *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long: `Apply the embedded goose migrations to the database behind --dsn.

postgres:// and postgresql:// DSNs use PostgreSQL, anything else is opened
as a SQLite file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			return runMigrate(ctx, config.DB{DSN: dsn}, logger.NewLogger("crmctl"))
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "database DSN (required)")
	_ = cmd.MarkFlagRequired("dsn")

	return cmd
}

func runMigrate(ctx context.Context, cfg config.DB, log *logger.Logger) error {
	db, err := store.NewConnect(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Info().Str("driver", db.Driver()).Msg("migrations applied")
	return nil
}
