// Package main provides the entry point for the sitekit CLI.
//
// Sitekit is a maintenance toolkit for static HTML sites. It generates
// clean-URL copies of legacy pages, repairs canonical and social metadata,
// rewrites asset paths for different hosts, and installs pinned vendor
// JS bundles.
//
// Usage:
//
//	sitekit clean-pages [--apply]
//	sitekit fix-meta --domain https://example.com [--apply]
//
// Every mutating command is a dry run by default; pass --apply to write.
// See --help for all available options.
package main

// main is the entry point for sitekit.
func main() {
	Execute()
}
