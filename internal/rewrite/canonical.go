package rewrite

import (
	"fmt"
	"regexp"
	"strings"
)

// headClose marks the insertion point for new head elements.
const headClose = "</head>"

// canonicalRe matches an existing canonical link tag, capturing the text
// around the href value so only the URL itself is replaced and every other
// attribute and all surrounding whitespace survive.
var canonicalRe = regexp.MustCompile(`(?i)(<link[^>]*rel=["']canonical["'][^>]*href=["'])([^"']+)(["'][^>]*>)`)

// SetCanonical returns content with its canonical link pointing at
// canonicalURL, plus a flag reporting whether anything changed.
//
// If a canonical tag exists, only its href value is replaced; changed is
// true only if the value actually differed. Otherwise a new tag is inserted
// immediately before </head>, or prepended to the document when no head
// close exists, degrading gracefully rather than failing.
func SetCanonical(content, canonicalURL string) (string, bool) {
	if canonicalRe.MatchString(content) {
		out := canonicalRe.ReplaceAllStringFunc(content, func(tag string) string {
			sub := canonicalRe.FindStringSubmatch(tag)
			return sub[1] + canonicalURL + sub[3]
		})
		return out, out != content
	}

	insert := `  <link rel="canonical" href="` + canonicalURL + "\">\n"
	if strings.Contains(content, headClose) {
		return strings.Replace(content, headClose, insert+headClose, 1), true
	}
	return insert + content, true
}

// InsertMetaRefresh returns content with an HTTP-refresh meta instruction
// targeting targetURL after the given delay in seconds (0 for immediate).
//
// The instruction is inserted before </head>, or prepended when no head
// close exists. If an identical instruction is already present the content
// is returned untouched with changed=false, which is what makes redirect
// injection idempotent across repeated runs.
func InsertMetaRefresh(content, targetURL string, seconds int) (string, bool) {
	meta := fmt.Sprintf("<meta http-equiv=\"refresh\" content=\"%d; url=%s\">\n", seconds, targetURL)
	if strings.Contains(content, meta) {
		return content, false
	}
	if strings.Contains(content, headClose) {
		return strings.Replace(content, headClose, "  "+meta+headClose, 1), true
	}
	return meta + content, true
}
