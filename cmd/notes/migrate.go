package main

import (
	"context"
	"log/slog"

	"notes/config"
	"notes/internal/domain/lifecycle"
	"notes/internal/errors"
	logs "notes/internal/infra/log"
	"notes/internal/infra/persistence/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending PostgreSQL schema migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app := fx.New(
			fx.NopLogger,
			fx.Provide(
				config.New,
				logs.New,
				postgres.New,
			),
			fx.Invoke(registerMigration),
		)
		if err := app.Err(); err != nil {
			return err
		}

		startCtx, cancel := context.WithTimeout(cmd.Context(), 5*lifecycle.DefaultTimeout)
		defer cancel()

		if err := app.Start(startCtx); err != nil {
			return errors.Wrap(err, "migrate")
		}

		stopCtx, cancelStop := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancelStop()

		return errors.WithStack(app.Stop(stopCtx))
	},
}

// registerMigration runs after the connection is pinged on start.
func registerMigration(lc fx.Lifecycle, db *gorm.DB, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return postgres.Migrate(db, logger)
		},
	})
}
