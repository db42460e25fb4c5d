package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gotoolly/sitekit/internal/config"
	"github.com/gotoolly/sitekit/internal/rewrite"
)

// NewFixMetaCmd creates the fix-meta command.
func NewFixMetaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix-meta",
		Short: "Repair canonical and social metadata across the site",
		Long: `Fix-meta rewrites canonical, og:url, twitter:url, og:image and
twitter:image tags in every page so they carry absolute URLs on the
configured domain. Page URLs are derived from each file's path; image
URLs are rehosted only when they point at an assets path.

The command is idempotent: rerunning it on a fixed site changes nothing.

Examples:
  # Report which pages would change
  sitekit fix-meta --domain https://example.com

  # Apply with .bak backups
  sitekit fix-meta --domain https://example.com --apply`,
		Args: cobra.NoArgs,
		RunE: runFixMetaCmd,
	}

	addRunFlags(cmd)
	cmd.Flags().StringP("domain", "d", "",
		"Deployment domain for canonical and social URLs (default from config file or built-in)")
	cmd.Flags().Bool("backup", true,
		"Write a .bak snapshot before each in-place rewrite")
	cmd.Flags().StringSlice("exclude", nil,
		"Glob patterns excluded from discovery (repeatable)")

	return cmd
}

// runFixMetaCmd executes the fix-meta command.
func runFixMetaCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildRewriteConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	return runTransformer(cmd.Context(), cfg, rewrite.NewMetaFixer(cfg.Domain))
}

// buildRewriteConfig creates a Config from the flags the in-place rewrite
// commands share (fix-meta, fix-paths, strip-prefix, update-domain).
func buildRewriteConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := applyRunFlags(cmd, cfg); err != nil {
		return nil, err
	}

	cfg.Backup, err = cmd.Flags().GetBool("backup")
	if err != nil {
		return nil, err
	}

	if domain, err := cmd.Flags().GetString("domain"); err == nil && domain != "" {
		cfg.Domain = domain
	}
	if cmd.Flags().Lookup("exclude") != nil {
		if excludes, err := cmd.Flags().GetStringSlice("exclude"); err == nil && len(excludes) > 0 {
			cfg.Excludes = excludes
		}
	}

	return cfg, nil
}
