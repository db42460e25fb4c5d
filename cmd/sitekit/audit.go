package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gotoolly/sitekit/internal/audit"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Check page head metadata without changing anything",
		Long: `Audit parses every page and reports missing titles, missing canonical
and social tags, and canonicals that point somewhere other than the
page's derived URL. For pages without a title it suggests one derived
from the file name.

Audit never writes. Run fix-meta to repair what it finds.

Examples:
  # Audit the current directory
  sitekit audit

  # Audit against a specific domain
  sitekit audit --domain https://example.com`,
		Args: cobra.NoArgs,
		RunE: runAuditCmd,
	}

	cmd.Flags().StringP("domain", "d", "",
		"Deployment domain pages should carry (default from config file or built-in)")
	cmd.Flags().StringSlice("exclude", nil,
		"Glob patterns excluded from the audit (repeatable)")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}
	if domain, err := cmd.Flags().GetString("domain"); err != nil {
		return err
	} else if domain != "" {
		cfg.Domain = domain
	}
	if excludes, err := cmd.Flags().GetStringSlice("exclude"); err != nil {
		return err
	} else if len(excludes) > 0 {
		cfg.Excludes = excludes
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg)

	auditor := audit.New(cfg.Domain,
		audit.WithExcludes(cfg.Excludes),
		audit.WithLogger(logger),
	)

	findings, err := auditor.Run(cmd.Context(), cfg.Root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(findings) == 0 {
		fmt.Fprintln(out, "All pages look clean.")
		return nil
	}

	fmt.Fprintf(out, "Pages needing attention (%d):\n\n", len(findings))
	for _, f := range findings {
		fmt.Fprintf(out, "  %s\n", f.Path)
		if len(f.Missing) > 0 {
			fmt.Fprintf(out, "    missing: %s\n", strings.Join(f.Missing, ", "))
		}
		if f.CanonicalMismatch() {
			fmt.Fprintf(out, "    canonical: %s\n", f.Canonical)
			fmt.Fprintf(out, "    expected:  %s\n", f.WantURL)
		}
		if f.TitleSuggestion != "" {
			fmt.Fprintf(out, "    suggested title: %q\n", f.TitleSuggestion)
		}
	}
	fmt.Fprintln(out, "\nUse 'sitekit fix-meta --apply' to repair canonical and social tags.")

	return nil
}
