package runner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gotoolly/sitekit/internal/model"
)

// DefaultPattern selects every HTML file under the root.
const DefaultPattern = "**/*.html"

// Transformer rewrites the content of a single file.
// Implementations must be pure with respect to the filesystem: they receive
// content and return content, and the runner alone decides what gets written.
type Transformer interface {
	// Transform receives the file's root-relative slash path and content,
	// and returns the new content plus whether it differs from the input.
	// An error aborts the whole run.
	Transform(rel string, content []byte) ([]byte, bool, error)

	// Name returns the transformer's name for logging and run records.
	Name() string
}

// Runner applies a Transformer across a site tree.
type Runner struct {
	// root is the site root directory.
	root string

	// pattern is the doublestar glob selecting files under root.
	// Ignored when files is non-empty.
	pattern string

	// files is an explicit root-relative file list. Missing entries are
	// silently skipped, so a shared config can name files only some sites
	// have.
	files []string

	// excludes are doublestar globs; a file matching any of them is never
	// transformed. This is what keeps asset folders and VCS metadata out
	// of a run.
	excludes []string

	// dryRun disables all filesystem writes.
	dryRun bool

	// backup controls whether a .bak snapshot is taken before each write.
	backup bool

	// logger is used for structured logging during the run.
	logger *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithPattern sets the glob used for file discovery.
func WithPattern(pattern string) Option {
	return func(r *Runner) {
		if pattern != "" {
			r.pattern = pattern
		}
	}
}

// WithFiles sets an explicit root-relative file list instead of glob
// discovery. Entries that do not exist on disk are skipped.
func WithFiles(files []string) Option {
	return func(r *Runner) {
		r.files = files
	}
}

// WithExcludes sets the glob patterns excluded from discovery.
func WithExcludes(excludes []string) Option {
	return func(r *Runner) {
		r.excludes = excludes
	}
}

// WithDryRun disables filesystem writes; the run only reports what it
// would change.
func WithDryRun(dryRun bool) Option {
	return func(r *Runner) {
		r.dryRun = dryRun
	}
}

// WithBackup enables a .bak snapshot before each in-place write.
func WithBackup(backup bool) Option {
	return func(r *Runner) {
		r.backup = backup
	}
}

// WithLogger sets a custom logger for the run.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New creates a Runner rooted at root.
func New(root string, opts ...Option) *Runner {
	r := &Runner{
		root:    root,
		pattern: DefaultPattern,
		dryRun:  true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Run applies the transformer to every discovered file and returns the
// accumulated summary. The first read or write failure aborts the run; the
// summary returned alongside the error covers the files completed before it.
func (r *Runner) Run(ctx context.Context, t Transformer) (*model.RunSummary, error) {
	summary := model.NewRunSummary(t.Name(), r.root, r.dryRun)
	defer func() {
		summary.Duration = time.Since(summary.StartedAt)
	}()

	files, err := r.discover()
	if err != nil {
		return summary, fmt.Errorf("discover files under %s: %w", r.root, err)
	}
	r.logger.Debug("discovered files", "tool", t.Name(), "count", len(files))

	for _, rel := range files {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		if err := r.transformOne(rel, t, summary); err != nil {
			return summary, err
		}
	}

	return summary, nil
}

// transformOne processes a single file through the transformer.
func (r *Runner) transformOne(rel string, t Transformer, summary *model.RunSummary) error {
	abs := filepath.Join(r.root, filepath.FromSlash(rel))

	content, err := os.ReadFile(abs) //nolint:gosec // Paths come from discovery under root
	if err != nil {
		return fmt.Errorf("read %s: %w", rel, err)
	}

	out, changed, err := t.Transform(rel, content)
	if err != nil {
		return fmt.Errorf("transform %s: %w", rel, err)
	}
	if !changed {
		summary.Add(model.FileResult{Path: rel, Action: model.ActionUnchanged})
		return nil
	}

	if r.dryRun {
		r.logger.Info("would modify", "path", rel)
		summary.Add(model.FileResult{Path: rel, Action: model.ActionModified})
		return nil
	}

	result := model.FileResult{Path: rel, Action: model.ActionModified}
	if r.backup {
		bak, err := Backup(abs)
		if err != nil {
			return fmt.Errorf("backup %s: %w", rel, err)
		}
		result.Backup = rel + BackupSuffix
		r.logger.Debug("backup written", "path", rel, "backup", bak)
	}

	mode := fs.FileMode(0644)
	if info, err := os.Stat(abs); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(abs, out, mode); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}

	r.logger.Info("modified", "path", rel)
	summary.Add(result)
	return nil
}

// discover returns the sorted, root-relative slash paths the run covers.
func (r *Runner) discover() ([]string, error) {
	if len(r.files) > 0 {
		out := make([]string, 0, len(r.files))
		for _, rel := range r.files {
			abs := filepath.Join(r.root, filepath.FromSlash(rel))
			info, err := os.Stat(abs)
			if err != nil || info.IsDir() {
				continue
			}
			out = append(out, filepath.ToSlash(rel))
		}
		return out, nil
	}

	matches, err := doublestar.Glob(os.DirFS(r.root), r.pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	out := make([]string, 0, len(matches))
	for _, rel := range matches {
		if r.excluded(rel) {
			continue
		}
		info, err := os.Stat(filepath.Join(r.root, filepath.FromSlash(rel)))
		if err != nil || info.IsDir() {
			continue
		}
		out = append(out, rel)
	}
	return out, nil
}

// excluded reports whether rel matches any exclude glob.
func (r *Runner) excluded(rel string) bool {
	for _, pattern := range r.excludes {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
