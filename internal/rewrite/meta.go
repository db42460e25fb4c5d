package rewrite

import (
	"regexp"
	"strings"

	"github.com/gotoolly/sitekit/internal/site"
)

// Social and canonical tag patterns. Unlike canonicalRe these match the
// whole tag: the fixer rewrites the entire element to a known-good form
// instead of patching the attribute value in place.
var (
	canonicalTagRe = regexp.MustCompile(`(?i)<link\s+rel=(?:"|')canonical(?:"|')\s+href=(?:"|')([^"']*)(?:"|')\s*>`)
	ogURLRe        = regexp.MustCompile(`(?i)<meta\s+property=(?:"|')og:url(?:"|')\s+content=(?:"|')([^"']*)(?:"|')\s*>`)
	twitterURLRe   = regexp.MustCompile(`(?i)<meta\s+name=(?:"|')twitter:url(?:"|')\s+content=(?:"|')([^"']*)(?:"|')\s*>`)
	ogImageRe      = regexp.MustCompile(`(?i)<meta\s+property=(?:"|')og:image(?:"|')\s+content=(?:"|')([^"']*)(?:"|')\s*>`)
	twitterImageRe = regexp.MustCompile(`(?i)<meta\s+name=(?:"|')twitter:image(?:"|')\s+content=(?:"|')([^"']*)(?:"|')\s*>`)

	// assetsRe extracts the /assets/... suffix from an image URL regardless
	// of which host (if any) currently serves it.
	assetsRe = regexp.MustCompile(`^(?:https?://)?(?:www\.)?[^/]*(/assets/.*)$`)
)

// MetaFixer rewrites canonical, og:url, twitter:url, og:image and
// twitter:image tags so they carry absolute URLs on the configured domain.
// Page URLs are derived from the file's path; image URLs are rehosted only
// when they point at an assets path.
type MetaFixer struct {
	// domain is the base URL used for all rewritten tags.
	domain string
}

// NewMetaFixer creates a MetaFixer for the given domain.
// A trailing slash on the domain is dropped so that concatenation with
// root-absolute asset paths never produces a double slash.
func NewMetaFixer(domain string) *MetaFixer {
	return &MetaFixer{domain: strings.TrimRight(domain, "/")}
}

// Name returns the transformer name for logging and run records.
func (f *MetaFixer) Name() string { return "fix-meta" }

// Transform rewrites the head metadata of one page. The rel path is used to
// derive the page's preferred URL; the returned flag reports whether the
// content differs from the input.
func (f *MetaFixer) Transform(rel string, content []byte) ([]byte, bool, error) {
	text := string(content)
	url := site.PageURL(rel, f.domain)

	out := canonicalTagRe.ReplaceAllString(text, `<link rel="canonical" href="`+url+`">`)
	out = ogURLRe.ReplaceAllString(out, `<meta property="og:url" content="`+url+`">`)
	out = twitterURLRe.ReplaceAllString(out, `<meta name="twitter:url" content="`+url+`">`)

	out = ogImageRe.ReplaceAllStringFunc(out, func(tag string) string {
		if asset, ok := f.assetPath(ogImageRe, tag); ok {
			return `<meta property="og:image" content="` + f.domain + asset + `">`
		}
		return tag
	})
	out = twitterImageRe.ReplaceAllStringFunc(out, func(tag string) string {
		if asset, ok := f.assetPath(twitterImageRe, tag); ok {
			return `<meta name="twitter:image" content="` + f.domain + asset + `">`
		}
		return tag
	})

	return []byte(out), out != text, nil
}

// assetPath extracts the root-absolute assets path from an image tag's
// content value. It returns ok=false when the value does not reference an
// assets path at all, in which case the tag is left untouched.
func (f *MetaFixer) assetPath(re *regexp.Regexp, tag string) (string, bool) {
	sub := re.FindStringSubmatch(tag)
	if sub == nil {
		return "", false
	}
	src := sub[1]

	if m := assetsRe.FindStringSubmatch(src); m != nil {
		return m[1], true
	}
	if len(src) > 0 && src[0] != '/' {
		src = "/" + src
	}
	if len(src) >= len("/assets/") && src[:len("/assets/")] == "/assets/" {
		return src, true
	}
	return "", false
}
