package config

import "errors"

// Configuration validation errors.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances in Validate(). This allows callers to use errors.Is()
// for programmatic error handling while still providing human-readable
// messages.
var (
	// ErrNoRoot is returned when the site root directory is empty.
	ErrNoRoot = errors.New("no site root specified")

	// ErrInvalidDomain is returned when the domain is not an absolute
	// http(s) URL. Canonical URLs are built by concatenation, so a domain
	// without a scheme would silently produce relative canonicals.
	ErrInvalidDomain = errors.New("invalid domain: must be an absolute http(s) URL")

	// ErrInvalidRedirectType is returned for an unsupported --redirect-type.
	// Only meta-refresh redirects exist; static hosts cannot emit HTTP 301s.
	ErrInvalidRedirectType = errors.New(`invalid redirect type: only "meta" is supported`)

	// ErrInvalidRedirectDelay is returned when the redirect delay is
	// negative. Use 0 for an immediate redirect.
	ErrInvalidRedirectDelay = errors.New("invalid redirect delay: must be non-negative")

	// ErrInvalidConcurrency is returned when the download concurrency is
	// not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")
)
