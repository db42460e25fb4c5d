// Package rewrite contains the text transformations applied to site files.
//
// Everything here is deliberately textual: the transformations operate on
// page source as strings with regular expressions and literal replacements,
// never through an HTML parser. That keeps the output byte-stable for
// content the transformation does not target, which matters when the same
// tree is rewritten repeatedly and diffed between runs.
//
// Two kinds of API live here:
//   - pure functions used by the clean-page generator (SetCanonical,
//     InsertMetaRefresh), each returning the new text plus a changed flag
//   - Transformer implementations (MetaFixer, PathPrefixer, PrefixStripper,
//     DomainReplacer) driven by the batch runner
//
// All transformations are idempotent: applying one twice with the same
// arguments yields the same output as applying it once.
package rewrite
