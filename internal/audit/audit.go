package audit

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gotoolly/sitekit/internal/site"
)

// Tag names reported in Finding.Missing.
const (
	TagTitle        = "title"
	TagCanonical    = "canonical"
	TagOGURL        = "og:url"
	TagOGImage      = "og:image"
	TagTwitterURL   = "twitter:url"
	TagTwitterImage = "twitter:image"
)

// Finding is the audit result for one page.
type Finding struct {
	// Path is the page path relative to the site root.
	Path string

	// WantURL is the URL the page should carry, derived from its path.
	WantURL string

	// Canonical is the canonical href found, empty if absent.
	Canonical string

	// Title is the page title found, empty if absent.
	Title string

	// TitleSuggestion is a human title derived from the file name,
	// filled only when Title is empty.
	TitleSuggestion string

	// Missing lists the head tags the page lacks.
	Missing []string
}

// CanonicalMismatch reports whether the page has a canonical pointing
// somewhere other than its derived URL.
func (f *Finding) CanonicalMismatch() bool {
	return f.Canonical != "" && f.Canonical != f.WantURL
}

// Clean reports whether the page needs no attention.
func (f *Finding) Clean() bool {
	return len(f.Missing) == 0 && !f.CanonicalMismatch()
}

// Auditor checks page head metadata across a site tree.
type Auditor struct {
	domain   string
	excludes []string
	logger   *slog.Logger

	// titleCaser turns file-name slugs into display titles.
	titleCaser cases.Caser
}

// Option configures an Auditor.
type Option func(*Auditor)

// WithExcludes sets the glob patterns excluded from the audit.
func WithExcludes(excludes []string) Option {
	return func(a *Auditor) {
		a.excludes = excludes
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Auditor) {
		a.logger = logger
	}
}

// New creates an Auditor for the given domain.
func New(domain string, opts ...Option) *Auditor {
	a := &Auditor{
		domain:     domain,
		titleCaser: cases.Title(language.English),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// Run audits every HTML file under root and returns findings for pages
// that need attention, sorted by path. Clean pages are not reported.
func (a *Auditor) Run(ctx context.Context, root string) ([]Finding, error) {
	matches, err := doublestar.Glob(os.DirFS(root), "**/*.html")
	if err != nil {
		return nil, fmt.Errorf("discover pages under %s: %w", root, err)
	}
	sort.Strings(matches)

	var findings []Finding
	for _, rel := range matches {
		select {
		case <-ctx.Done():
			return findings, ctx.Err()
		default:
		}
		if a.excluded(rel) {
			continue
		}

		abs := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Stat(abs)
		if err != nil || info.IsDir() {
			continue
		}
		content, err := os.ReadFile(abs) //nolint:gosec // Paths come from discovery under root
		if err != nil {
			return findings, fmt.Errorf("read %s: %w", rel, err)
		}

		finding, err := a.Inspect(rel, content)
		if err != nil {
			return findings, fmt.Errorf("parse %s: %w", rel, err)
		}
		if !finding.Clean() {
			findings = append(findings, finding)
		}
	}
	return findings, nil
}

// Inspect audits a single page's content.
func (a *Auditor) Inspect(rel string, content []byte) (Finding, error) {
	finding := Finding{
		Path:    rel,
		WantURL: site.PageURL(rel, a.domain),
	}

	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return finding, err
	}

	found := map[string]bool{}
	walk(doc, func(n *html.Node) {
		switch n.Data {
		case "title":
			found[TagTitle] = true
			if n.FirstChild != nil {
				finding.Title = strings.TrimSpace(n.FirstChild.Data)
			}
		case "link":
			if strings.EqualFold(attr(n, "rel"), "canonical") {
				found[TagCanonical] = true
				finding.Canonical = attr(n, "href")
			}
		case "meta":
			switch {
			case strings.EqualFold(attr(n, "property"), TagOGURL):
				found[TagOGURL] = true
			case strings.EqualFold(attr(n, "property"), TagOGImage):
				found[TagOGImage] = true
			case strings.EqualFold(attr(n, "name"), TagTwitterURL):
				found[TagTwitterURL] = true
			case strings.EqualFold(attr(n, "name"), TagTwitterImage):
				found[TagTwitterImage] = true
			}
		}
	})

	for _, tag := range []string{TagTitle, TagCanonical, TagOGURL, TagOGImage, TagTwitterURL, TagTwitterImage} {
		if !found[tag] {
			finding.Missing = append(finding.Missing, tag)
		}
	}
	if finding.Title == "" {
		finding.TitleSuggestion = a.suggestTitle(rel)
	}
	return finding, nil
}

// excluded reports whether rel matches any exclude glob.
func (a *Auditor) excluded(rel string) bool {
	for _, pattern := range a.excludes {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// suggestTitle derives a display title from the page's file name:
// guides/seo-basics.html becomes "Seo Basics". A directory index takes
// its directory's name; the root index falls back to "Home".
func (a *Auditor) suggestTitle(rel string) string {
	stem := strings.TrimSuffix(path.Base(rel), ".html")
	if stem == "index" {
		dir := path.Base(path.Dir(rel))
		if dir == "." || dir == "/" {
			return "Home"
		}
		stem = dir
	}
	slug := strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	return a.titleCaser.String(slug)
}

// walk visits every element node in the document.
func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// attr returns the value of the named attribute, or empty.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
