package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gotoolly/sitekit/internal/model"
)

// Writer renders a run summary to some destination.
type Writer interface {
	// Write outputs the summary and returns the number of bytes written.
	Write(summary *model.RunSummary) (int, error)
}

// SimpleWriter renders a summary as plain terminal text: one line per
// planned or performed action, then a closing count line.
type SimpleWriter struct {
	output io.Writer
}

// NewSimpleWriter creates a SimpleWriter writing to output.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{output: output}
}

// Write renders the summary. Unchanged files are counted but not listed;
// a long roll of no-ops would bury the lines that matter.
func (w *SimpleWriter) Write(summary *model.RunSummary) (int, error) {
	var b strings.Builder

	prefix := ""
	if summary.DryRun {
		prefix = "[DRY] "
	}

	for _, r := range summary.Results {
		if r.Action == model.ActionUnchanged {
			continue
		}
		fmt.Fprintf(&b, "%s%-8s %s", prefix, r.Action, r.Path)
		if r.Backup != "" {
			fmt.Fprintf(&b, " (backup: %s)", r.Backup)
		}
		if r.Note != "" {
			fmt.Fprintf(&b, " (%s)", r.Note)
		}
		b.WriteByte('\n')
	}

	if summary.DryRun {
		fmt.Fprintf(&b, "Dry-run complete: would create %d, modify %d, skip %d (%d files checked). Run with --apply to write changes.\n",
			summary.Created(), summary.Modified(), summary.Skipped(), len(summary.Results))
	} else {
		fmt.Fprintf(&b, "Done. Created %d, modified %d, skipped %d (%d files checked in %s).\n",
			summary.Created(), summary.Modified(), summary.Skipped(), len(summary.Results),
			summary.Duration.Round(time.Millisecond))
	}

	return io.WriteString(w.output, b.String())
}
