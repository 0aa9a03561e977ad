package main

import (
	"context"

	"github.com/spf13/cobra"

	"techpulse/internal/app"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo stories",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.Application) error {
			return a.Seed(ctx)
		})
	},
}
