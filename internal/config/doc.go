// Package config holds the run configuration for sitekit.
//
// Configuration comes from three layers, weakest first: compiled-in
// defaults, an optional .sitekit.yaml file (current directory, then home),
// and command-line flags. The resolved Config struct is passed explicitly
// into the generator, runner, and installer rather than held as ambient
// state, which keeps the path mapper and tag injectors testable in
// isolation.
//
// Validation happens once, after flag parsing and before any filesystem
// work, and fails fast with sentinel errors usable via errors.Is.
package config
