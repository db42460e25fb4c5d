package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gotoolly/sitekit/internal/rewrite"
	"github.com/gotoolly/sitekit/internal/runner"
)

// stripPattern covers every file type the prefix era touched. Unlike the
// page commands this includes the asset tree, so the default excludes do
// not apply here.
const stripPattern = "**/*.{html,js,css}"

// NewStripPrefixCmd creates the strip-prefix command.
func NewStripPrefixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strip-prefix",
		Short: "Remove a legacy repository prefix from site files",
		Long: `Strip-prefix removes every occurrence of the configured prefix from
each page, undoing what fix-paths (or a hand-edit) once added. With
--base-tag it also drops the <base href="prefix/"> element the prefix
era left behind.

Examples:
  # Report which pages would change
  sitekit strip-prefix --prefix /myrepo

  # Apply, removing the base tag too
  sitekit strip-prefix --prefix /myrepo --base-tag --apply`,
		Args: cobra.NoArgs,
		RunE: runStripPrefixCmd,
	}

	addRunFlags(cmd)
	cmd.Flags().StringP("prefix", "p", "",
		"Repository prefix to remove (default from config file or built-in)")
	cmd.Flags().Bool("base-tag", true,
		"Also remove the <base href> tag carrying the prefix")
	cmd.Flags().Bool("backup", true,
		"Write a .bak snapshot before each in-place rewrite")
	cmd.Flags().StringSlice("exclude", nil,
		"Glob patterns excluded from discovery (repeatable)")

	return cmd
}

// runStripPrefixCmd executes the strip-prefix command.
func runStripPrefixCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildRewriteConfig(cmd)
	if err != nil {
		return err
	}
	if prefix, err := cmd.Flags().GetString("prefix"); err != nil {
		return err
	} else if prefix != "" {
		cfg.Prefix = prefix
	}
	baseTag, err := cmd.Flags().GetBool("base-tag")
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// The prefix lives in CSS and JS under assets/ as much as in pages, so
	// the usual assets exclusion would hide most of the work. Only version
	// control stays off limits unless the user says otherwise.
	if !cmd.Flags().Changed("exclude") {
		cfg.Excludes = []string{".git/**"}
	}

	return runTransformer(cmd.Context(), cfg,
		rewrite.NewPrefixStripper(cfg.Prefix, baseTag),
		runner.WithPattern(stripPattern))
}
