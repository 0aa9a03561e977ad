package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"techpulse/internal/config"
	"techpulse/pkg/logger"
)

var (
	configPath string
	cfg        config.Config
	rootLogger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "techpulse",
	Short:         "TechPulse tech-news aggregator",
	Long:          "TechPulse ingests top Hacker News stories, classifies them with an LLM and serves a searchable feed.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			if err := os.Setenv(config.EnvConfigPath, configPath); err != nil {
				return err
			}
		}
		cfg = config.Load()
		rootLogger = logger.New(cfg.Logging.Level, cfg.Logging.Format)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config (overrides "+config.EnvConfigPath+")")
	rootCmd.AddCommand(serveCmd, ingestCmd, migrateCmd, seedCmd, digestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "techpulse:", err)
		os.Exit(1)
	}
}
