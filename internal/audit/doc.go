// Package audit inspects page head metadata without modifying anything.
//
// The auditor is the read-only counterpart of fix-meta: it parses each
// page's head and reports which canonical and social tags are missing, and
// whether an existing canonical matches the URL the page should carry. For
// pages lacking a <title> it suggests one derived from the file name.
//
// Parsing here uses a real HTML parser rather than the rewrite package's
// regexes: the auditor only reads, so tolerance for malformed markup wins
// over byte-stability, which is the opposite trade-off the transformers
// make.
package audit
