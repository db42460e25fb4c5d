package site

import (
	"fmt"
	"path"
	"strings"
)

// pageExt is the extension that marks a legacy page file.
const pageExt = ".html"

// indexFile is the implicit directory index file name.
const indexFile = "index.html"

// Mapping describes the clean-URL targets derived from one legacy page.
// All path fields are slash-separated and relative to the site root,
// except RedirectPath which is site-root-absolute for use in redirects.
type Mapping struct {
	// Source is the page path relative to the pages root, as given.
	Source string

	// CleanDir is the directory that will hold the clean copy.
	// Empty for the root index page.
	CleanDir string

	// CleanIndex is the clean copy's index.html path.
	CleanIndex string

	// CleanPath is the extension-less URL path, without leading slash.
	// Empty for the root index page.
	CleanPath string

	// RedirectPath is the site-root-absolute path used when redirecting
	// the legacy page, e.g. "/guides/seo". "/" for the root index page.
	RedirectPath string

	// CanonicalURL is the absolute canonical URL for the clean copy.
	CanonicalURL string
}

// Map computes the clean-URL mapping for a page path relative to the pages
// root. The trailing .html extension is stripped, the result becomes a
// directory, and the page becomes that directory's index.html. A page
// literally named index.html maps to the site root, not to an index/
// subdirectory.
//
// Map returns ErrUnsafePath if the path is absolute or would resolve outside
// the site root, and ErrNotPage if it does not name an .html file. Both are
// treated as fatal by the orchestrator.
func Map(rel, domain string) (*Mapping, error) {
	normalized, err := normalize(rel)
	if err != nil {
		return nil, err
	}

	if path.Ext(normalized) != pageExt {
		return nil, fmt.Errorf("%w: %s", ErrNotPage, rel)
	}

	stem := strings.TrimSuffix(normalized, pageExt)
	if stem == "" || strings.HasSuffix(stem, "/") {
		return nil, fmt.Errorf("%w: %s", ErrUnsafePath, rel)
	}

	m := &Mapping{Source: rel}
	if stem == "index" {
		// The root index page keeps its place at the top of the site.
		m.CleanDir = ""
		m.CleanIndex = indexFile
		m.CleanPath = ""
		m.RedirectPath = "/"
	} else {
		m.CleanDir = stem
		m.CleanIndex = stem + "/" + indexFile
		m.CleanPath = stem
		m.RedirectPath = "/" + stem
	}
	m.CanonicalURL = JoinURL(domain, m.CleanPath)

	return m, nil
}

// PageURL derives the preferred URL for any HTML file relative to the site
// root, the rule the meta fixer and auditor share: a directory index is
// addressed by its directory, everything else by its path minus the .html
// extension.
func PageURL(rel, domain string) string {
	normalized, err := normalize(rel)
	if err != nil {
		// Read-only consumers pass paths discovered on disk; an odd name
		// still deserves a deterministic URL rather than a failure.
		normalized = strings.TrimLeft(path.Clean(strings.ReplaceAll(rel, "\\", "/")), "/")
	}

	if path.Base(normalized) == indexFile {
		dir := path.Dir(normalized)
		if dir == "." {
			return JoinURL(domain, "")
		}
		return JoinURL(domain, dir)
	}
	return JoinURL(domain, strings.TrimSuffix(normalized, pageExt))
}

// JoinURL concatenates a domain and a URL path without ever producing a
// double slash. An empty path yields the bare domain with trailing slash.
func JoinURL(domain, p string) string {
	base := strings.TrimRight(domain, "/")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return base + "/"
	}
	return base + "/" + p
}

// normalize converts a page path to canonical slash-separated relative form,
// rejecting anything that could escape the root.
func normalize(rel string) (string, error) {
	s := strings.ReplaceAll(rel, "\\", "/")
	if s == "" {
		return "", fmt.Errorf("%w: empty path", ErrUnsafePath)
	}
	if strings.HasPrefix(s, "/") {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, rel)
	}

	cleaned := path.Clean(s)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") || cleaned == "." {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, rel)
	}
	return cleaned, nil
}
