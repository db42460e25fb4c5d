package model

// Action represents what a run did (or, in a dry run, would do) to one file.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and counting. The String() method provides
// human-readable output for logs, reports, and database storage.
type Action int

const (
	// ActionUnchanged indicates the file was inspected but no change was needed.
	// Re-running a tool over already-converted content lands here, which is
	// what keeps repeated runs idempotent.
	ActionUnchanged Action = iota

	// ActionCreated indicates a new file was written that did not exist before,
	// or an existing file was overwritten under --force.
	ActionCreated

	// ActionModified indicates an existing file was rewritten in place.
	// A backup is taken before any in-place modification.
	ActionModified

	// ActionSkipped indicates an existing target was left untouched because
	// --force was not set. A skip is a normal outcome, never an error.
	ActionSkipped
)

// String returns a human-readable representation of the action.
func (a Action) String() string {
	switch a {
	case ActionUnchanged:
		return "unchanged"
	case ActionCreated:
		return "created"
	case ActionModified:
		return "modified"
	case ActionSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// ParseAction converts a stored string back into an Action.
// Unknown strings map to ActionUnchanged; the run ledger only ever
// stores values produced by String().
func ParseAction(s string) Action {
	switch s {
	case "created":
		return ActionCreated
	case "modified":
		return ActionModified
	case "skipped":
		return ActionSkipped
	default:
		return ActionUnchanged
	}
}
