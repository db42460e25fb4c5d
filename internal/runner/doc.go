// Package runner drives batch text transformations over a site tree.
//
// A Runner discovers files (by doublestar glob or an explicit list), feeds
// each one through a Transformer, and handles everything the transformers
// should not care about: dry-run accounting, backup-before-write, write
// atomicity at the file level, and abort-on-first-I/O-error semantics.
//
// Design decision: Transformers are an interface rather than function
// values because implementations carry configuration state (domains,
// prefixes) and a Name() for logging and run records. The runner stops at
// the first read or write failure; batch correctness matters more than
// maximizing progress, and a half-transformed tree is worse than a short
// one. A changed file is always written with its fully computed content in
// a single call, so an interrupt between files never leaves a partial write.
package runner
