package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gotoolly/sitekit/internal/config"
	"github.com/gotoolly/sitekit/internal/history"
	"github.com/gotoolly/sitekit/internal/log"
	"github.com/gotoolly/sitekit/internal/model"
	"github.com/gotoolly/sitekit/internal/report"
	"github.com/gotoolly/sitekit/internal/runner"
)

// addRunFlags registers the flags every mutating command shares.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("apply", false,
		"Write changes to disk (without it the command only reports its plan)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output the run report in Markdown format")
	cmd.Flags().StringP("output", "o", "",
		"Write the run report to specified file path (creates directories if needed)")
}

// buildBaseConfig creates a Config from defaults, the optional config
// file, and the persistent flags shared by all commands. Command-specific
// flags are applied by the caller afterwards, so the precedence ends up
// defaults < file < flags.
func buildBaseConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.Root, err = cmd.Flags().GetString("root")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	// If the user explicitly specified a config file path, error if not
	// found. If no path specified, silently run on defaults.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.ApplyTo(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	return cfg, nil
}

// applyRunFlags reads the shared mutating-command flags into cfg.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	apply, err := cmd.Flags().GetBool("apply")
	if err != nil {
		return err
	}
	cfg.DryRun = !apply

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	return nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger for the run. File paths are
// logged relative to the site root.
func setupLogger(cfg *config.Config) *slog.Logger {
	return log.NewLogger(os.Stderr, cfg.Root, cfg.Verbose)
}

// outputSummary writes the run report in the requested format to stdout
// or the configured report file.
func outputSummary(cfg *config.Config, summary *model.RunSummary) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644) //nolint:gosec // Run reports carry nothing sensitive
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	if cfg.MarkdownReport {
		writer = report.NewMarkdownWriter(output)
	} else {
		writer = report.NewSimpleWriter(output)
	}
	_, err := writer.Write(summary)
	return err
}

// runTransformer drives one batch transformer run: signal handling, the
// runner itself, the report, and the ledger record. extra options are
// appended after the config-derived ones.
func runTransformer(ctx context.Context, cfg *config.Config, t runner.Transformer, extra ...runner.Option) error {
	logger := setupLogger(cfg)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	opts := []runner.Option{
		runner.WithDryRun(cfg.DryRun),
		runner.WithBackup(cfg.Backup),
		runner.WithExcludes(cfg.Excludes),
		runner.WithLogger(logger),
	}
	opts = append(opts, extra...)

	summary, runErr := runner.New(cfg.Root, opts...).Run(ctx, t)

	// The summary covers the work completed before any failure, so report
	// and record it either way.
	if err := outputSummary(cfg, summary); err != nil {
		logger.Error("report failed", "error", err)
	}
	recordRun(ctx, cfg, summary, logger)

	return runErr
}

// recordRun saves an applied run to the ledger. Dry runs are not recorded.
// Recording is advisory: a failure is logged and never fails the run that
// produced it.
func recordRun(ctx context.Context, cfg *config.Config, summary *model.RunSummary, logger *slog.Logger) {
	if summary.DryRun {
		return
	}

	db, err := history.Open(cfg.DBDir, history.DefaultOptions())
	if err != nil {
		logger.Error("failed to open run ledger", "dir", cfg.DBDir, "error", err)
		return
	}
	defer db.Close()

	if err := db.SaveRun(ctx, summary); err != nil {
		logger.Error("failed to record run", "tool", summary.Tool, "error", err)
		return
	}
	logger.Debug("run recorded", "tool", summary.Tool, "dir", cfg.DBDir)
}
