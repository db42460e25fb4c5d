// Package main provides the entry point for the sitekit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for sitekit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitekit",
		Short: "Maintenance toolkit for static HTML sites",
		Long: `Sitekit maintains hand-written static HTML sites: clean-URL page
generation, canonical and social metadata repair, asset path rewriting,
domain migration, and pinned vendor JS installation.

Every mutating command is a dry run by default and only reports what it
would change. Pass --apply to write.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("root", "r", ".", "Site root directory")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .sitekit.yaml in current or home directory)")

	// Add subcommands
	cmd.AddCommand(NewCleanPagesCmd())
	cmd.AddCommand(NewFixMetaCmd())
	cmd.AddCommand(NewFixPathsCmd())
	cmd.AddCommand(NewStripPrefixCmd())
	cmd.AddCommand(NewUpdateDomainCmd())
	cmd.AddCommand(NewVendorCmd())
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
