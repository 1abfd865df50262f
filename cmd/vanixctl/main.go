// Command vanixctl inspects client storage dumps and maintains the database.
package main

import (
	"fmt"
	"os"

	"github.com/vanixstudio/vanix-bff/internal/config"
	"github.com/vanixstudio/vanix-bff/internal/infra/observability"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "vanixctl",
		Short:         "Operator tools for the Vanix storefront backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	logger := func() *zap.Logger { return observability.NewLogger(logLevel) }

	root.AddCommand(
		newSessionCmd(cfg, logger),
		newSeriesCmd(logger),
		newMigrateCmd(cfg, logger),
	)
	return root
}

func main() {
	_ = config.LoadDotEnv(".env")

	if err := newRootCmd(config.Load()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
