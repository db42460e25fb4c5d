package site

import "errors"

// Mapping validation errors.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances at each call site. This allows callers to use
// errors.Is() for programmatic handling; the orchestrator treats ErrUnsafePath
// as fatal for the whole run because it indicates a configuration or data
// problem, not a per-file nuisance.
var (
	// ErrUnsafePath is returned when a page path is absolute, contains
	// parent-directory segments, or would otherwise resolve outside the
	// site root.
	ErrUnsafePath = errors.New("unsafe page path: resolves outside the site root")

	// ErrNotPage is returned when a path does not name an .html page.
	ErrNotPage = errors.New("not a page: path does not end in .html")
)
