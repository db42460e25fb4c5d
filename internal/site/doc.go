// Package site derives clean-URL targets and canonical URLs from page paths.
//
// The mapping rule is the heart of the clean-URL scheme: a legacy page
// pages/guides/seo.html becomes the directory index guides/seo/index.html,
// served as https://example.com/guides/seo. The root index.html is the one
// special case and maps to the site root itself.
//
// All paths handled here are slash-separated and relative to a root;
// host-OS separators are normalized on the way in. A mapping that would
// escape the root is an input error, never a silent no-op.
package site
