// Package generate creates clean-URL directory copies of legacy pages.
//
// For every page under the pages directory, the generator derives its
// clean-URL target (pages/contact.html becomes contact/index.html), writes
// a copy whose canonical link points at the clean URL, and optionally
// rewrites the legacy page with a canonical pointer and/or a meta-refresh
// redirect to its clean successor.
//
// Each file moves through a small state machine:
//
//	DISCOVER -> { DRY_REPORT | (CREATE_OR_SKIP -> LEGACY_UPDATE) } -> DONE
//
// The generator is deliberately conservative. An existing clean copy is
// skipped unless force is set, a .bak snapshot is taken before every
// destructive write, and new content is written in one call only after it
// has been fully computed in memory. An unsafe page path or the first I/O
// failure aborts the whole run; batch correctness matters more than
// maximizing progress.
package generate
