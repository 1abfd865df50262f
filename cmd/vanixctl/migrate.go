package main

import (
	"errors"

	"github.com/vanixstudio/vanix-bff/internal/config"
	"github.com/vanixstudio/vanix-bff/internal/infra/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd(cfg *config.Config, newLogger func() *zap.Logger) *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				return errors.New("no database: pass --dsn or set DATABASE_URL")
			}
			logger := newLogger()

			db, err := postgres.Open(cmd.Context(), dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", cfg.DatabaseURL, "Postgres connection string (defaults to $DATABASE_URL)")
	return cmd
}
