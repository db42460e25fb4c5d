package site

import (
	"errors"
	"strings"
	"testing"
)

const testDomain = "https://example.com"

// TestMap tests clean-URL derivation for regular and nested pages.
func TestMap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		rel           string
		wantDir       string
		wantIndex     string
		wantRedirect  string
		wantCanonical string
	}{
		{
			name:          "top-level page",
			rel:           "contact.html",
			wantDir:       "contact",
			wantIndex:     "contact/index.html",
			wantRedirect:  "/contact",
			wantCanonical: "https://example.com/contact",
		},
		{
			name:          "nested page",
			rel:           "guides/seo.html",
			wantDir:       "guides/seo",
			wantIndex:     "guides/seo/index.html",
			wantRedirect:  "/guides/seo",
			wantCanonical: "https://example.com/guides/seo",
		},
		{
			name:          "root index maps to site root",
			rel:           "index.html",
			wantDir:       "",
			wantIndex:     "index.html",
			wantRedirect:  "/",
			wantCanonical: "https://example.com/",
		},
		{
			name:          "nested index keeps its directory",
			rel:           "guides/index.html",
			wantDir:       "guides/index",
			wantIndex:     "guides/index/index.html",
			wantRedirect:  "/guides/index",
			wantCanonical: "https://example.com/guides/index",
		},
		{
			name:          "windows separators are normalized",
			rel:           `guides\seo.html`,
			wantDir:       "guides/seo",
			wantIndex:     "guides/seo/index.html",
			wantRedirect:  "/guides/seo",
			wantCanonical: "https://example.com/guides/seo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := Map(tt.rel, testDomain)
			if err != nil {
				t.Fatalf("Map(%q) returned error: %v", tt.rel, err)
			}
			if m.CleanDir != tt.wantDir {
				t.Errorf("CleanDir = %q, want %q", m.CleanDir, tt.wantDir)
			}
			if m.CleanIndex != tt.wantIndex {
				t.Errorf("CleanIndex = %q, want %q", m.CleanIndex, tt.wantIndex)
			}
			if m.RedirectPath != tt.wantRedirect {
				t.Errorf("RedirectPath = %q, want %q", m.RedirectPath, tt.wantRedirect)
			}
			if m.CanonicalURL != tt.wantCanonical {
				t.Errorf("CanonicalURL = %q, want %q", m.CanonicalURL, tt.wantCanonical)
			}
		})
	}
}

// TestMapRejectsUnsafePaths tests the traversal defense.
func TestMapRejectsUnsafePaths(t *testing.T) {
	t.Parallel()

	unsafe := []string{
		"../outside.html",
		"a/../../outside.html",
		"/etc/passwd.html",
		"..",
		"",
		".html",
	}

	for _, rel := range unsafe {
		if _, err := Map(rel, testDomain); !errors.Is(err, ErrUnsafePath) {
			t.Errorf("Map(%q) error = %v, want ErrUnsafePath", rel, err)
		}
	}
}

// TestMapRejectsNonPages tests that non-HTML files are refused.
func TestMapRejectsNonPages(t *testing.T) {
	t.Parallel()

	for _, rel := range []string{"style.css", "guides/seo.htm", "script.js"} {
		if _, err := Map(rel, testDomain); !errors.Is(err, ErrNotPage) {
			t.Errorf("Map(%q) error = %v, want ErrNotPage", rel, err)
		}
	}
}

// TestCanonicalURLNeverDoubleSlash tests the URL join invariant against
// domains with and without trailing slashes.
func TestCanonicalURLNeverDoubleSlash(t *testing.T) {
	t.Parallel()

	for _, domain := range []string{"https://example.com", "https://example.com/"} {
		m, err := Map("guides/seo.html", domain)
		if err != nil {
			t.Fatalf("Map returned error: %v", err)
		}
		if rest := strings.TrimPrefix(m.CanonicalURL, "https://"); strings.Contains(rest, "//") {
			t.Errorf("CanonicalURL %q contains a double slash", m.CanonicalURL)
		}
	}
}

// TestPageURL tests URL derivation for arbitrary site files.
func TestPageURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rel  string
		want string
	}{
		{"index.html", "https://example.com/"},
		{"guides/index.html", "https://example.com/guides"},
		{"guides/seo.html", "https://example.com/guides/seo"},
		{"tools/qr-code-generator.html", "https://example.com/tools/qr-code-generator"},
	}

	for _, tt := range tests {
		if got := PageURL(tt.rel, testDomain); got != tt.want {
			t.Errorf("PageURL(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}

// TestJoinURL tests slash handling at the domain/path boundary.
func TestJoinURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		domain string
		path   string
		want   string
	}{
		{"https://example.com", "", "https://example.com/"},
		{"https://example.com/", "", "https://example.com/"},
		{"https://example.com", "about", "https://example.com/about"},
		{"https://example.com/", "/about", "https://example.com/about"},
	}

	for _, tt := range tests {
		if got := JoinURL(tt.domain, tt.path); got != tt.want {
			t.Errorf("JoinURL(%q, %q) = %q, want %q", tt.domain, tt.path, got, tt.want)
		}
	}
}
