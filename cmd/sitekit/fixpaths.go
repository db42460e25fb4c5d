package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gotoolly/sitekit/internal/rewrite"
)

// NewFixPathsCmd creates the fix-paths command.
func NewFixPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix-paths",
		Short: "Add a repository prefix to root-absolute references",
		Long: `Fix-paths turns href="/..." and src="/..." into href="/prefix/..."
across every page, plus the '/assets/ references that appear in inline
JS loader snippets. Project sites on shared static hosts need this:
the site lives under a subpath rather than at the domain root.

Use strip-prefix to undo it when moving back to a root deployment.

Examples:
  # Report which pages would change
  sitekit fix-paths --prefix /myrepo

  # Apply with .bak backups
  sitekit fix-paths --prefix /myrepo --apply`,
		Args: cobra.NoArgs,
		RunE: runFixPathsCmd,
	}

	addRunFlags(cmd)
	cmd.Flags().StringP("prefix", "p", "",
		"Repository prefix to add (default from config file or built-in)")
	cmd.Flags().Bool("backup", true,
		"Write a .bak snapshot before each in-place rewrite")
	cmd.Flags().StringSlice("exclude", nil,
		"Glob patterns excluded from discovery (repeatable)")

	return cmd
}

// runFixPathsCmd executes the fix-paths command.
func runFixPathsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildRewriteConfig(cmd)
	if err != nil {
		return err
	}
	if prefix, err := cmd.Flags().GetString("prefix"); err != nil {
		return err
	} else if prefix != "" {
		cfg.Prefix = prefix
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	return runTransformer(cmd.Context(), cfg, rewrite.NewPathPrefixer(cfg.Prefix))
}
