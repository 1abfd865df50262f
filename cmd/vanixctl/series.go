package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/infra/observability"
	"github.com/vanixstudio/vanix-bff/internal/service"
	"github.com/vanixstudio/vanix-bff/internal/timeseries"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSeriesCmd(newLogger func() *zap.Logger) *cobra.Command {
	var (
		file string
		rng  string
		now  string
	)

	cmd := &cobra.Command{
		Use:   "series",
		Short: "Bucket the orders kept in a storage dump",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}
			var snapshot map[string]any
			if err := json.Unmarshal(data, &snapshot); err != nil {
				return fmt.Errorf("decode snapshot %s: %w", file, err)
			}

			svc := service.NewSessionService(observability.NewMetrics(), newLogger())
			if now != "" {
				t, err := time.Parse(time.RFC3339, now)
				if err != nil {
					return fmt.Errorf("--now: %w", err)
				}
				svc.SetClock(func() time.Time { return t })
			}

			resp, err := svc.SeriesFromSnapshot(cmd.Context(), snapshot, rng)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "storage dump (JSON object)")
	cmd.Flags().StringVarP(&rng, "range", "r", string(timeseries.DefaultRange), "day, week, month, 3m, 6m or year")
	cmd.Flags().StringVar(&now, "now", "", "reference time (RFC3339), defaults to the wall clock")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
