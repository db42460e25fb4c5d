package generate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gotoolly/sitekit/internal/config"
	"github.com/gotoolly/sitekit/internal/model"
	"github.com/gotoolly/sitekit/internal/rewrite"
	"github.com/gotoolly/sitekit/internal/runner"
	"github.com/gotoolly/sitekit/internal/site"
)

// pagePattern selects page files under the pages directory.
const pagePattern = "**/*.html"

// Generator orchestrates clean-page creation for one run.
type Generator struct {
	cfg    *config.Config
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets a custom logger for the run.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New creates a Generator for the given configuration.
func New(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Run executes the generator over every discovered page and returns the
// accumulated summary. Unsafe page paths and I/O failures abort the run;
// the summary returned alongside the error covers the work completed
// before it.
func (g *Generator) Run(ctx context.Context) (*model.RunSummary, error) {
	summary := model.NewRunSummary("clean-pages", g.cfg.Root, g.cfg.DryRun)
	defer func() {
		summary.Duration = time.Since(summary.StartedAt)
	}()

	pages, err := g.discover()
	if err != nil {
		return summary, err
	}
	g.logger.Debug("discovered pages", "count", len(pages))

	for _, rel := range pages {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		mapping, err := site.Map(rel, g.cfg.Domain)
		if err != nil {
			// Traversal-unsafe input halts the whole run: it signals a
			// configuration or data problem, not a per-file nuisance.
			return summary, fmt.Errorf("map %s: %w", rel, err)
		}

		if g.cfg.DryRun {
			g.report(mapping, summary)
			continue
		}
		if err := g.apply(mapping, summary); err != nil {
			return summary, err
		}
	}

	return summary, nil
}

// discover returns sorted page paths relative to the pages directory.
// A missing pages directory yields an empty run, not an error.
func (g *Generator) discover() ([]string, error) {
	pagesRoot := filepath.Join(g.cfg.Root, g.cfg.PagesDir)
	if info, err := os.Stat(pagesRoot); err != nil || !info.IsDir() {
		g.logger.Warn("pages directory not found", "path", pagesRoot)
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(pagesRoot), pagePattern)
	if err != nil {
		return nil, fmt.Errorf("discover pages under %s: %w", pagesRoot, err)
	}
	sort.Strings(matches)

	out := make([]string, 0, len(matches))
	for _, rel := range matches {
		if g.excluded(rel) {
			continue
		}
		info, err := os.Stat(filepath.Join(pagesRoot, filepath.FromSlash(rel)))
		if err != nil || info.IsDir() {
			continue
		}
		out = append(out, rel)
	}
	return out, nil
}

// excluded reports whether rel matches any exclude glob.
func (g *Generator) excluded(rel string) bool {
	for _, pattern := range g.cfg.Excludes {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// report records the planned action for one page without touching the
// filesystem. This is the DRY_REPORT terminal state.
func (g *Generator) report(m *site.Mapping, summary *model.RunSummary) {
	if g.selfTarget(m) {
		summary.Add(model.FileResult{Path: g.legacyPath(m), Action: model.ActionUnchanged})
		return
	}
	if g.targetExists(m) && !g.cfg.Force {
		g.logger.Info("would skip existing target", "target", m.CleanIndex)
		summary.Add(model.FileResult{Path: m.CleanIndex, Action: model.ActionSkipped, Note: "target exists"})
		return
	}
	g.logger.Info("would create", "target", m.CleanIndex, "canonical", m.CanonicalURL)
	summary.Add(model.FileResult{Path: m.CleanIndex, Action: model.ActionCreated, Note: m.CanonicalURL})
}

// apply runs CREATE_OR_SKIP and, when requested, LEGACY_UPDATE for one page.
func (g *Generator) apply(m *site.Mapping, summary *model.RunSummary) error {
	if g.selfTarget(m) {
		// The page already is its own clean copy. Creating would overwrite
		// the source and a redirect would point the page at itself, so the
		// whole file is a no-op.
		summary.Add(model.FileResult{Path: g.legacyPath(m), Action: model.ActionUnchanged})
		return nil
	}

	sourceAbs := g.sourceAbs(m)
	content, err := os.ReadFile(sourceAbs) //nolint:gosec // Paths come from discovery under the pages root
	if err != nil {
		return fmt.Errorf("read %s: %w", g.legacyPath(m), err)
	}

	if g.targetExists(m) && !g.cfg.Force {
		// A skip is a normal outcome, not an error: it protects manual
		// edits in an existing clean copy.
		g.logger.Warn("skipping existing target; use --force to overwrite", "target", m.CleanIndex)
		summary.Add(model.FileResult{Path: m.CleanIndex, Action: model.ActionSkipped, Note: "target exists"})
		return nil
	}

	if err := g.createClean(m, string(content), summary); err != nil {
		return err
	}

	if g.cfg.CanonicalOld || g.cfg.RedirectOld {
		if err := g.updateLegacy(m, string(content), summary); err != nil {
			return err
		}
	}
	return nil
}

// createClean writes the clean copy with its canonical pointing at the
// clean URL, backing up a pre-existing target before a forced overwrite.
func (g *Generator) createClean(m *site.Mapping, content string, summary *model.RunSummary) error {
	targetAbs := filepath.Join(g.cfg.Root, filepath.FromSlash(m.CleanIndex))

	if err := os.MkdirAll(filepath.Dir(targetAbs), 0750); err != nil {
		return fmt.Errorf("create directory for %s: %w", m.CleanIndex, err)
	}

	newContent, _ := rewrite.SetCanonical(content, m.CanonicalURL)

	result := model.FileResult{Path: m.CleanIndex, Action: model.ActionCreated, Note: m.CanonicalURL}
	if g.targetExists(m) {
		if _, err := runner.Backup(targetAbs); err != nil {
			return err
		}
		result.Backup = m.CleanIndex + runner.BackupSuffix
	}

	if err := os.WriteFile(targetAbs, []byte(newContent), 0644); err != nil { //nolint:gosec // Site files are world-readable
		return fmt.Errorf("write %s: %w", m.CleanIndex, err)
	}

	g.logger.Info("created", "target", m.CleanIndex, "canonical", m.CanonicalURL)
	summary.Add(result)
	return nil
}

// updateLegacy injects the canonical pointer and/or redirect into the
// legacy page, writing only if something actually changed.
func (g *Generator) updateLegacy(m *site.Mapping, content string, summary *model.RunSummary) error {
	updated := content
	changed := false

	if g.cfg.CanonicalOld {
		var c bool
		updated, c = rewrite.SetCanonical(updated, m.CanonicalURL)
		changed = changed || c
	}
	if g.cfg.RedirectOld && g.cfg.RedirectType == config.DefaultRedirectType {
		var c bool
		updated, c = rewrite.InsertMetaRefresh(updated, m.RedirectPath, g.cfg.RedirectDelay)
		changed = changed || c
	}

	legacy := g.legacyPath(m)
	if !changed {
		summary.Add(model.FileResult{Path: legacy, Action: model.ActionUnchanged})
		return nil
	}

	sourceAbs := g.sourceAbs(m)
	if _, err := runner.Backup(sourceAbs); err != nil {
		return err
	}
	if err := os.WriteFile(sourceAbs, []byte(updated), 0644); err != nil { //nolint:gosec // Site files are world-readable
		return fmt.Errorf("write %s: %w", legacy, err)
	}

	g.logger.Info("updated legacy page", "path", legacy)
	summary.Add(model.FileResult{
		Path:   legacy,
		Action: model.ActionModified,
		Backup: legacy + runner.BackupSuffix,
	})
	return nil
}

// selfTarget reports whether the page's clean target is the page itself,
// which happens when the pages directory is the site root and the page
// already sits at its clean location.
func (g *Generator) selfTarget(m *site.Mapping) bool {
	targetAbs := filepath.Join(g.cfg.Root, filepath.FromSlash(m.CleanIndex))
	return filepath.Clean(g.sourceAbs(m)) == filepath.Clean(targetAbs)
}

// targetExists reports whether the clean target already exists on disk.
func (g *Generator) targetExists(m *site.Mapping) bool {
	_, err := os.Stat(filepath.Join(g.cfg.Root, filepath.FromSlash(m.CleanIndex)))
	return err == nil
}

// sourceAbs returns the absolute path of the legacy source page.
func (g *Generator) sourceAbs(m *site.Mapping) string {
	return filepath.Join(g.cfg.Root, g.cfg.PagesDir, filepath.FromSlash(m.Source))
}

// legacyPath returns the legacy page's path relative to the site root.
func (g *Generator) legacyPath(m *site.Mapping) string {
	return path.Join(filepath.ToSlash(g.cfg.PagesDir), m.Source)
}
