package main

import (
	"github.com/spf13/cobra"

	"techpulse/internal/app"
	"techpulse/migrations"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status|version|reset]",
	Short:     "Apply or inspect database migrations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{migrations.CommandUp, migrations.CommandDown, migrations.CommandStatus, migrations.CommandVersion, migrations.CommandReset},
	RunE: func(cmd *cobra.Command, args []string) error {
		command := migrations.CommandUp
		if len(args) == 1 {
			command = args[0]
		}
		if err := app.Migrate(cmd.Context(), cfg, command); err != nil {
			return err
		}
		rootLogger.Info("migrations done", "command", command)
		return nil
	},
}
