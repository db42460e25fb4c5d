package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gotoolly/sitekit/internal/rewrite"
	"github.com/gotoolly/sitekit/internal/runner"
)

// NewUpdateDomainCmd creates the update-domain command.
func NewUpdateDomainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-domain",
		Short: "Rewrite legacy domains to the current deployment domain",
		Long: `Update-domain replaces every occurrence of each legacy domain with the
current one, in an explicit file list rather than the whole tree: the
sitemap, robots.txt and the handful of pages that embed absolute URLs.
Domain strings in arbitrary files are usually intentional, so nothing
outside the list is touched. Files on the list that a site does not
have are silently skipped.

Examples:
  # Report which files would change
  sitekit update-domain --domain https://example.com

  # Apply with an extra legacy domain and file
  sitekit update-domain --domain https://example.com \
    --old-domain https://old.example.org --file news.html --apply`,
		Args: cobra.NoArgs,
		RunE: runUpdateDomainCmd,
	}

	addRunFlags(cmd)
	cmd.Flags().StringP("domain", "d", "",
		"Replacement domain (default from config file or built-in)")
	cmd.Flags().StringSlice("old-domain", nil,
		"Legacy domain to replace (repeatable; default from config file or built-in)")
	cmd.Flags().StringSlice("file", nil,
		"Root-relative file to rewrite (repeatable; default from config file or built-in)")
	cmd.Flags().Bool("backup", true,
		"Write a .bak snapshot before each in-place rewrite")

	return cmd
}

// runUpdateDomainCmd executes the update-domain command.
func runUpdateDomainCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildRewriteConfig(cmd)
	if err != nil {
		return err
	}

	if oldDomains, err := cmd.Flags().GetStringSlice("old-domain"); err != nil {
		return err
	} else if len(oldDomains) > 0 {
		cfg.OldDomains = oldDomains
	}
	if files, err := cmd.Flags().GetStringSlice("file"); err != nil {
		return err
	} else if len(files) > 0 {
		cfg.TextFiles = files
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	return runTransformer(cmd.Context(), cfg,
		rewrite.NewDomainReplacer(cfg.OldDomains, cfg.Domain),
		runner.WithFiles(cfg.TextFiles))
}
