package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gotoolly/sitekit/internal/history"
)

// NewHistoryCmd creates the history command.
// This command lists past apply runs recorded in the run ledger.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past apply runs from the run ledger",
		Long: `History lists the runs recorded in the ledger: which tool ran, where,
when, and how many files it created, modified or skipped. Dry runs are
never recorded, so the ledger answers "what actually changed".

Examples:
  # List the most recent runs
  sitekit history

  # List clean-pages runs only
  sitekit history --tool clean-pages

  # Show the per-file actions of run 12
  sitekit history --id 12`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list")
	cmd.Flags().StringP("tool", "t", "", "List runs of this tool only")
	cmd.Flags().Int64P("id", "i", 0, "Show the per-file actions of one run")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	tool, err := cmd.Flags().GetString("tool")
	if err != nil {
		return err
	}
	runID, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}

	db, err := history.Open(cfg.DBDir, history.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open run ledger: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if runID > 0 {
		return listRunFiles(cmd, db, runID)
	}

	runs, err := db.ListRuns(ctx, tool, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No recorded runs found.")
		fmt.Fprintln(out, "\nRuns are recorded when a command is executed with --apply.")
		return nil
	}

	fmt.Fprintf(out, "Recorded runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-6s  %-14s  %-20s  %-10s  %s\n", "ID", "Tool", "Date", "Duration", "Changes")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 70))
	for _, r := range runs {
		fmt.Fprintf(out, "  %-6d  %-14s  %-20s  %-10s  %s\n",
			r.ID,
			r.Tool,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Duration.Round(time.Millisecond),
			formatRunCounts(r),
		)
	}
	fmt.Fprintln(out, "\nUse 'sitekit history --id <id>' to see the per-file actions of a run.")

	return nil
}

// listRunFiles prints the per-file actions of one recorded run.
func listRunFiles(cmd *cobra.Command, db *history.RunDB, runID int64) error {
	files, err := db.ListRunFiles(cmd.Context(), runID)
	if err != nil {
		return fmt.Errorf("failed to list run files: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintf(out, "No file actions recorded for run %d.\n", runID)
		return nil
	}

	fmt.Fprintf(out, "Run %d (%d files):\n\n", runID, len(files))
	for _, f := range files {
		fmt.Fprintf(out, "  %-8s %s", f.Action, f.Path)
		if f.Backup != "" {
			fmt.Fprintf(out, " (backup: %s)", f.Backup)
		}
		fmt.Fprintln(out)
	}

	return nil
}

// formatRunCounts formats a run's action counts into a compact string.
func formatRunCounts(r history.RunRecord) string {
	var parts []string
	if r.Created > 0 {
		parts = append(parts, fmt.Sprintf("+%d created", r.Created))
	}
	if r.Modified > 0 {
		parts = append(parts, fmt.Sprintf("~%d modified", r.Modified))
	}
	if r.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", r.Skipped))
	}
	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}
