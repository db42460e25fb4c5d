package model

import "time"

// FileResult records the outcome for a single file within a run.
type FileResult struct {
	// Path is the file path relative to the site root, slash-separated.
	Path string `json:"path"`

	// Action is what happened (or would happen) to the file.
	Action Action `json:"action"`

	// Backup is the path of the .bak snapshot taken before a destructive
	// write, relative to the site root. Empty when no backup was needed.
	Backup string `json:"backup,omitempty"`

	// Note carries extra human-readable context, such as the canonical URL
	// a created page points at.
	Note string `json:"note,omitempty"`
}

// RunSummary accumulates per-file results for one tool invocation.
// It is printed by the report writers and persisted by the run ledger.
type RunSummary struct {
	// Tool is the subcommand name that produced this summary.
	Tool string `json:"tool"`

	// Root is the site root the run operated on.
	Root string `json:"root"`

	// DryRun indicates no filesystem writes occurred.
	DryRun bool `json:"dry_run"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the total wall-clock time of the run.
	Duration time.Duration `json:"duration"`

	// Results holds one entry per file the run touched or planned to touch.
	// Files inspected but unchanged are recorded too, so a summary always
	// reflects the full set of inputs considered.
	Results []FileResult `json:"results"`
}

// NewRunSummary creates a RunSummary for the named tool rooted at root.
// StartedAt is set to the current time; callers set Duration when done.
func NewRunSummary(tool, root string, dryRun bool) *RunSummary {
	return &RunSummary{
		Tool:      tool,
		Root:      root,
		DryRun:    dryRun,
		StartedAt: time.Now(),
	}
}

// Add appends a file result to the summary.
func (s *RunSummary) Add(result FileResult) {
	s.Results = append(s.Results, result)
}

// Count returns the number of results with the given action.
func (s *RunSummary) Count(action Action) int {
	n := 0
	for _, r := range s.Results {
		if r.Action == action {
			n++
		}
	}
	return n
}

// Created returns the number of files created.
func (s *RunSummary) Created() int { return s.Count(ActionCreated) }

// Modified returns the number of files modified in place.
func (s *RunSummary) Modified() int { return s.Count(ActionModified) }

// Skipped returns the number of existing targets skipped.
func (s *RunSummary) Skipped() int { return s.Count(ActionSkipped) }

// Unchanged returns the number of files inspected but left as-is.
func (s *RunSummary) Unchanged() int { return s.Count(ActionUnchanged) }

// Changed reports whether the run produced (or would produce) any writes.
func (s *RunSummary) Changed() bool {
	return s.Created() > 0 || s.Modified() > 0
}
