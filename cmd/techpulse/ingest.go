package main

import (
	"context"

	"github.com/spf13/cobra"

	"techpulse/internal/app"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run one ingestion batch and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.Application) error {
			return a.Ingest(ctx)
		})
	},
}
