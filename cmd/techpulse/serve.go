package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"techpulse/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with scheduled ingestion and digests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		application, err := app.New(ctx, cfg, rootLogger)
		if err != nil {
			return err
		}
		defer application.Close()

		return application.Serve(ctx)
	},
}

// withApp builds the application for one-shot commands.
func withApp(ctx context.Context, run func(context.Context, *app.Application) error) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, rootLogger)
	if err != nil {
		return err
	}
	defer application.Close()
	return run(ctx, application)
}
