// Package history persists a ledger of apply runs.
//
// Every mutating command that actually writes records what it did — tool,
// counts, per-file actions — into a small SQLite database under the XDG
// data directory. The history command lists past runs, which is how an
// operator answers "what did last week's clean-pages run touch" without
// digging through shell history.
//
// The ledger is advisory: a recording failure is logged and never fails
// the run that produced it.
package history
