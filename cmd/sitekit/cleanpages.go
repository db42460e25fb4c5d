package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gotoolly/sitekit/internal/config"
	"github.com/gotoolly/sitekit/internal/generate"
)

// NewCleanPagesCmd creates the clean-pages command.
func NewCleanPagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean-pages",
		Short: "Generate clean-URL copies of legacy pages",
		Long: `Clean-pages turns pages/<name>.html into <name>/index.html so the page
is reachable at /<name>/ without an .html suffix. The copy carries a
canonical link pointing at its clean URL; the legacy page can optionally
get the same canonical and a meta-refresh redirect to the clean copy.

Existing targets are skipped unless --force, which backs the target up
to <target>.bak before overwriting.

Examples:
  # Report what would be generated
  sitekit clean-pages

  # Generate, and point legacy pages at their clean copies
  sitekit clean-pages --apply --canonical-old --redirect-old

  # Overwrite existing clean copies
  sitekit clean-pages --apply --force`,
		Args: cobra.NoArgs,
		RunE: runCleanPagesCmd,
	}

	addRunFlags(cmd)
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing clean targets (a .bak backup is taken first)")
	cmd.Flags().Bool("canonical-old", false,
		"Inject a canonical link into legacy pages pointing at their clean copy")
	cmd.Flags().Bool("redirect-old", false,
		"Inject a meta-refresh redirect into legacy pages")
	cmd.Flags().String("redirect-type", config.DefaultRedirectType,
		`Redirect mechanism (only "meta" is supported on static hosts)`)
	cmd.Flags().Int("redirect-delay", config.DefaultRedirectDelay,
		"Meta-refresh delay in seconds (0 redirects immediately)")
	cmd.Flags().StringP("domain", "d", "",
		"Deployment domain for canonical URLs (default from config file or built-in)")
	cmd.Flags().String("pages-dir", "",
		"Legacy pages directory relative to the site root")
	cmd.Flags().StringSlice("exclude", nil,
		"Glob patterns excluded from discovery (repeatable)")

	return cmd
}

// runCleanPagesCmd executes the clean-pages command.
func runCleanPagesCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildCleanPagesConfig(cmd)
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

	summary, runErr := generate.New(cfg, generate.WithLogger(logger)).Run(ctx)

	// The summary covers the work completed before any failure, so report
	// and record it either way.
	if err := outputSummary(cfg, summary); err != nil {
		logger.Error("report failed", "error", err)
	}
	recordRun(ctx, cfg, summary, logger)

	return runErr
}

// buildCleanPagesConfig creates a Config from cobra command flags.
func buildCleanPagesConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := applyRunFlags(cmd, cfg); err != nil {
		return nil, err
	}

	cfg.Force, err = cmd.Flags().GetBool("force")
	if err != nil {
		return nil, err
	}
	cfg.CanonicalOld, err = cmd.Flags().GetBool("canonical-old")
	if err != nil {
		return nil, err
	}
	cfg.RedirectOld, err = cmd.Flags().GetBool("redirect-old")
	if err != nil {
		return nil, err
	}
	cfg.RedirectType, err = cmd.Flags().GetString("redirect-type")
	if err != nil {
		return nil, err
	}
	cfg.RedirectDelay, err = cmd.Flags().GetInt("redirect-delay")
	if err != nil {
		return nil, err
	}

	if domain, err := cmd.Flags().GetString("domain"); err != nil {
		return nil, err
	} else if domain != "" {
		cfg.Domain = domain
	}
	if pagesDir, err := cmd.Flags().GetString("pages-dir"); err != nil {
		return nil, err
	} else if pagesDir != "" {
		cfg.PagesDir = pagesDir
	}
	if excludes, err := cmd.Flags().GetStringSlice("exclude"); err != nil {
		return nil, err
	} else if len(excludes) > 0 {
		cfg.Excludes = excludes
	}

	return cfg, nil
}
