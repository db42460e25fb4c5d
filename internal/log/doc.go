// Package log provides logging for batch runs, built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - Site-root-relative paths in log output
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// Batch tools log a lot of file paths. Printing them as absolute paths
// makes output noisy and machine-specific; the RelativeHandler rewrites
// path-valued attributes so a log line reads "path=guides/seo/index.html"
// whatever directory the tool ran from.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, root, verbose)
//	logger.Info("clean page written",
//	    "path", "/home/me/site/guides/seo/index.html", // logged relative to root
//	)
package log
