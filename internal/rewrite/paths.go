package rewrite

import "strings"

// PathPrefixer adds a repository prefix to root-absolute references in HTML,
// turning href="/..." into href="/prefix/...". This is what project sites on
// shared static hosts need, where the site lives under a subpath rather than
// at the domain root.
//
// The replacements are literal rather than regex-based: attribute forms in
// both quote styles, plus the inline-JS '/assets/ patterns that appear in
// hand-written loader snippets.
type PathPrefixer struct {
	prefix string
}

// NewPathPrefixer creates a PathPrefixer. A trailing slash on the prefix is
// dropped so the replacement never yields "//".
func NewPathPrefixer(prefix string) *PathPrefixer {
	return &PathPrefixer{prefix: strings.TrimRight(prefix, "/")}
}

// Name returns the transformer name for logging and run records.
func (p *PathPrefixer) Name() string { return "fix-paths" }

// Transform applies the prefix to root-absolute href/src attributes and
// inline-JS asset references.
func (p *PathPrefixer) Transform(_ string, content []byte) ([]byte, bool, error) {
	text := string(content)
	out := text

	// Attribute forms, both quote styles.
	out = strings.ReplaceAll(out, ` href="/`, ` href="`+p.prefix+`/`)
	out = strings.ReplaceAll(out, ` src="/`, ` src="`+p.prefix+`/`)
	out = strings.ReplaceAll(out, ` href='/`, ` href='`+p.prefix+`/`)
	out = strings.ReplaceAll(out, ` src='/`, ` src='`+p.prefix+`/`)

	// Inline JS such as l.href = '/assets/...'.
	out = strings.ReplaceAll(out, `'/assets/`, `'`+p.prefix+`/assets/`)
	out = strings.ReplaceAll(out, `"/assets/`, `"`+p.prefix+`/assets/`)

	return []byte(out), out != text, nil
}

// PrefixStripper removes a legacy root prefix from site files, undoing what
// PathPrefixer (or a hand-edit) once added, and drops any <base href> tag
// that carried the prefix.
type PrefixStripper struct {
	prefix  string
	baseTag bool
}

// NewPrefixStripper creates a PrefixStripper. When baseTag is true the
// <base href="prefix/"> element is removed as well, including the indented
// and newline-carrying forms it was originally inserted with.
func NewPrefixStripper(prefix string, baseTag bool) *PrefixStripper {
	return &PrefixStripper{prefix: strings.TrimRight(prefix, "/"), baseTag: baseTag}
}

// Name returns the transformer name for logging and run records.
func (p *PrefixStripper) Name() string { return "strip-prefix" }

// Transform removes the base tag variants first, then every remaining
// occurrence of the prefix. Ordering matters: the base tag contains the
// prefix, and stripping the prefix first would leave a mangled base tag
// behind.
func (p *PrefixStripper) Transform(_ string, content []byte) ([]byte, bool, error) {
	text := string(content)
	out := text

	if p.baseTag {
		base := `<base href="` + p.prefix + `/">`
		out = strings.ReplaceAll(out, "\n    "+base, "")
		out = strings.ReplaceAll(out, base+"\n", "")
		out = strings.ReplaceAll(out, base, "")
	}
	out = strings.ReplaceAll(out, p.prefix, "")

	return []byte(out), out != text, nil
}
