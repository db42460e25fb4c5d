// Package model defines the core data structures shared across sitekit.
//
// This package contains the following main types:
//   - Action: what a run did (or would do) to a single file
//   - FileResult: a single file's outcome within a run
//   - RunSummary: the accumulated outcome of one tool invocation
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The runner, generator, report, and history packages all need
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
