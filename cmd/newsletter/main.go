package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"EconomyNewsletter/internal/app"
	"EconomyNewsletter/internal/config"
	"EconomyNewsletter/internal/logging"
	"EconomyNewsletter/internal/sample"
	"EconomyNewsletter/internal/usecase"
)

var inputPath string

var rootCmd = &cobra.Command{
	Use:   "newsletter",
	Short: "Daily economy newsletter generator",
	Long: `Collects economy news, runs the seven analysis stages and
writes an HTML newsletter.

Available subcommands:
  run      - Produce one edition now
  schedule - Produce an edition every day at the configured time
  sample   - Run the stages over built-in sample articles`,
	SilenceUsage: true,
}

// runCmd produces a single edition.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Produce one edition now",
	RunE:  runOnce,
}

// scheduleCmd keeps the process alive and runs the daily edition.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Produce an edition every day at the configured time",
	RunE:  runSchedule,
}

// sampleCmd runs the pipeline over the sample batch without storage.
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Run the stages over built-in sample articles",
	RunE:  runSample,
}

func init() {
	runCmd.Flags().StringVarP(&inputPath, "input", "i", "", "JSON file with articles to process instead of scraping")
	rootCmd.AddCommand(runCmd, scheduleCmd, sampleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runOnce(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := build(ctx, app.Options{InputPath: inputPath})
	if err != nil {
		return err
	}
	defer application.Close()

	return report(cmd, application.RunOnce(ctx))
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := build(ctx, app.Options{})
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Schedule(ctx)
}

func runSample(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	application, err := build(ctx, app.Options{SkipStorage: true})
	if err != nil {
		return err
	}
	defer application.Close()

	return report(cmd, application.RunArticles(ctx, sample.Articles()))
}

func build(ctx context.Context, opts app.Options) (*app.Application, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	return app.New(ctx, cfg, logger, opts)
}

func report(cmd *cobra.Command, result usecase.Result) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if result.Status != usecase.StatusSuccess {
		return fmt.Errorf("pipeline failed: %s", result.Error)
	}
	return nil
}
