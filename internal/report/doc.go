// Package report renders run summaries for humans.
//
// Two writers exist behind a common interface:
//   - SimpleWriter: terse terminal output, the format the maintenance
//     scripts have always printed
//   - MarkdownWriter: GitHub-flavored Markdown with tables, for pasting
//     into issues or deploy notes
//
// Design decision: Writers take a RunSummary rather than io primitives so
// new formats can be added without touching the generator or runner, and
// so the same summary can be written to both terminal and file.
package report
