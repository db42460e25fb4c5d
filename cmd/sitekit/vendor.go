package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gotoolly/sitekit/internal/config"
	"github.com/gotoolly/sitekit/internal/vendorjs"
)

// NewVendorCmd creates the vendor command.
func NewVendorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendor",
		Short: "Download pinned vendor JS bundles into the site",
		Long: `Vendor downloads the configured vendor JS builds from their pinned CDN
URLs into the site's vendor directory, so the site serves them itself
instead of loading third-party scripts at runtime.

The bundle list comes from the config file's vendor section; without a
config file the built-in defaults are used. Downloads run concurrently
and the first failure aborts the rest.

Examples:
  # Report what would be downloaded
  sitekit vendor

  # Download into assets/vendor
  sitekit vendor --apply

  # Download one at a time into a custom directory
  sitekit vendor --apply --vendor-dir static/js --concurrency 1`,
		Args: cobra.NoArgs,
		RunE: runVendorCmd,
	}

	addRunFlags(cmd)
	cmd.Flags().String("vendor-dir", "",
		"Install directory relative to the site root (default from config file or built-in)")
	cmd.Flags().Int("concurrency", config.DefaultDownloadConcurrency,
		"Number of concurrent downloads")

	return cmd
}

// runVendorCmd executes the vendor command.
func runVendorCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildVendorConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	installer := vendorjs.New(
		vendorjs.WithConcurrency(cfg.Concurrency),
		vendorjs.WithDryRun(cfg.DryRun),
		vendorjs.WithLogger(logger),
	)

	summary, runErr := installer.Install(ctx, cfg.Root, cfg.VendorDir, cfg.Bundles)

	if err := outputSummary(cfg, summary); err != nil {
		logger.Error("report failed", "error", err)
	}
	recordRun(ctx, cfg, summary, logger)

	return runErr
}

// buildVendorConfig creates a Config from cobra command flags.
func buildVendorConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := applyRunFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if vendorDir, err := cmd.Flags().GetString("vendor-dir"); err != nil {
		return nil, err
	} else if vendorDir != "" {
		cfg.VendorDir = vendorDir
	}
	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
