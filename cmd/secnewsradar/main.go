package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"SecNewsRadar/internal/app"
	"SecNewsRadar/internal/config"
	"SecNewsRadar/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "secnewsradar",
	Short: "Security news classification, archiving, and trend pipeline",
	Long: "secnewsradar ingests security-news feeds, classifies items against " +
		"the smart-group taxonomy, flags high-signal items, merges them into " +
		"the monthly/yearly archive, and computes windowed trend statistics.",
}

func buildApp() (*app.Application, error) {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)
	return app.New(cfg, logger)
}

func init() {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Execute the full pipeline once (fetch, merge, trends, brief)",
			RunE: func(cmd *cobra.Command, args []string) error {
				application, err := buildApp()
				if err != nil {
					return err
				}
				return application.Run(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "fetch",
			Short: "Fetch feeds and rebuild the recent snapshot",
			RunE: func(cmd *cobra.Command, args []string) error {
				application, err := buildApp()
				if err != nil {
					return err
				}
				return application.Refresh(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "merge",
			Short: "Merge the recent snapshot into the archive partitions",
			RunE: func(cmd *cobra.Command, args []string) error {
				application, err := buildApp()
				if err != nil {
					return err
				}
				return application.Merge(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "trends",
			Short: "Recompute windowed trend reports from archive and snapshot",
			RunE: func(cmd *cobra.Command, args []string) error {
				application, err := buildApp()
				if err != nil {
					return err
				}
				return application.Trends(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "brief",
			Short: "Generate the curated briefing and digest notification",
			RunE: func(cmd *cobra.Command, args []string) error {
				application, err := buildApp()
				if err != nil {
					return err
				}
				return application.Brief(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Run the pipeline on the configured interval until interrupted",
			RunE: func(cmd *cobra.Command, args []string) error {
				application, err := buildApp()
				if err != nil {
					return err
				}
				return application.Watch(cmd.Context())
			},
		},
	)
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
