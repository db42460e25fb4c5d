package log

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// pathKeys contains attribute keys whose values are file paths and should
// be rewritten relative to the site root.
var pathKeys = map[string]bool{
	"path":   true,
	"source": true,
	"target": true,
	"backup": true,
	"output": true,
	"file":   true,
	"dir":    true,
}

// RelativeHandler wraps an slog.Handler to rewrite path-valued attributes
// relative to a site root before passing records to the underlying handler.
//
// Design decision: We use a handler wrapper rather than trimming paths at
// every call site because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites can log whatever path they hold without caring about form
type RelativeHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// root is the absolute site root paths are made relative to.
	root string
}

// NewRelativeHandler creates a new RelativeHandler wrapping the given
// handler. Paths under root are logged relative to it; paths outside root
// pass through untouched. If handler is nil, the returned RelativeHandler
// uses slog.Default().Handler().
func NewRelativeHandler(handler slog.Handler, root string) *RelativeHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &RelativeHandler{handler: handler, root: root}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *RelativeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's path attributes and passes it to the
// underlying handler.
func (h *RelativeHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})

	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
// Path attributes are rewritten before being added.
func (h *RelativeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.rewriteAttr(a)
	}
	return &RelativeHandler{handler: h.handler.WithAttrs(rewritten), root: h.root}
}

// WithGroup returns a new handler with the given group name.
func (h *RelativeHandler) WithGroup(name string) slog.Handler {
	return &RelativeHandler{handler: h.handler.WithGroup(name), root: h.root}
}

// rewriteAttr rewrites a single attribute, recursively handling groups.
func (h *RelativeHandler) rewriteAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			rewritten[i] = h.rewriteAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	}

	if !pathKeys[strings.ToLower(a.Key)] || a.Value.Kind() != slog.KindString {
		return a
	}

	rel, ok := h.relativize(a.Value.String())
	if !ok {
		return a
	}
	return slog.String(a.Key, rel)
}

// relativize returns p relative to the root, or ok=false when p is not an
// absolute path under the root.
func (h *RelativeHandler) relativize(p string) (string, bool) {
	if h.root == "" || !filepath.IsAbs(p) {
		return "", false
	}
	rel, err := filepath.Rel(h.root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	if rel == "." {
		return ".", true
	}
	return filepath.ToSlash(rel), true
}

// NewLogger creates a new slog.Logger writing to w, with file paths
// rewritten relative to root.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - root: The site root directory paths are made relative to
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, root string, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	relativeHandler := NewRelativeHandler(textHandler, root)

	return slog.New(relativeHandler)
}
