package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/gotoolly/sitekit/internal/model"
)

// MarkdownWriter renders a summary as GitHub Flavored Markdown, suitable
// for pasting into an issue or a deploy log.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter writing to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write renders the summary.
func (w *MarkdownWriter) Write(summary *model.RunSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Sitekit Run Report")
	md.PlainText("")

	mode := "apply"
	if summary.DryRun {
		mode = "dry run"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Tool", "`" + summary.Tool + "`"},
			{"Root", "`" + summary.Root + "`"},
			{"Mode", mode},
			{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", summary.Duration.Round(time.Millisecond).String()},
		},
	})
	md.PlainText("")

	md.H2("Counts")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Action", "Count"},
		Rows: [][]string{
			{"Created", strconv.Itoa(summary.Created())},
			{"Modified", strconv.Itoa(summary.Modified())},
			{"Skipped", strconv.Itoa(summary.Skipped())},
			{"Unchanged", strconv.Itoa(summary.Unchanged())},
		},
	})
	md.PlainText("")

	w.writeActions(md, summary)

	return len(md.String()), md.Build()
}

// writeActions lists every non-unchanged file action.
func (w *MarkdownWriter) writeActions(md *markdown.Markdown, summary *model.RunSummary) {
	rows := make([][]string, 0, len(summary.Results))
	for _, r := range summary.Results {
		if r.Action == model.ActionUnchanged {
			continue
		}
		rows = append(rows, []string{"`" + r.Path + "`", r.Action.String(), r.Note, r.Backup})
	}
	if len(rows) == 0 {
		md.PlainText("No changes.")
		return
	}

	md.H2("Actions")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Path", "Action", "Note", "Backup"},
		Rows:   rows,
	})
}
