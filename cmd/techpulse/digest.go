package main

import (
	"context"

	"github.com/spf13/cobra"

	"techpulse/internal/app"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Mail the recent-stories digest to active subscribers once",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.Application) error {
			return a.Digest(ctx)
		})
	},
}
