package rewrite

import "strings"

// DomainReplacer rewrites legacy domain strings to the current deployment
// domain. It runs over an explicit file list (sitemap, robots, pages that
// embed absolute URLs) rather than the whole tree, since domain strings in
// arbitrary files are usually intentional.
type DomainReplacer struct {
	old []string
	new string
}

// NewDomainReplacer creates a DomainReplacer that rewrites every occurrence
// of each old domain to newDomain.
func NewDomainReplacer(old []string, newDomain string) *DomainReplacer {
	return &DomainReplacer{old: old, new: strings.TrimRight(newDomain, "/")}
}

// Name returns the transformer name for logging and run records.
func (d *DomainReplacer) Name() string { return "update-domain" }

// Transform replaces each configured legacy domain with the new one.
func (d *DomainReplacer) Transform(_ string, content []byte) ([]byte, bool, error) {
	text := string(content)
	out := text
	for _, old := range d.old {
		out = strings.ReplaceAll(out, old, d.new)
	}
	return []byte(out), out != text, nil
}
