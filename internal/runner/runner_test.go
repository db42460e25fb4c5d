package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// upperTransformer upper-cases occurrences of "old" for test purposes.
type upperTransformer struct{}

func (upperTransformer) Name() string { return "test-upper" }

func (upperTransformer) Transform(_ string, content []byte) ([]byte, bool, error) {
	out := strings.ReplaceAll(string(content), "old", "NEW")
	return []byte(out), out != string(content), nil
}

// failingTransformer always returns an error.
type failingTransformer struct{}

func (failingTransformer) Name() string { return "test-fail" }

func (failingTransformer) Transform(string, []byte) ([]byte, bool, error) {
	return nil, false, errors.New("boom")
}

// writeTree creates a small site fixture and returns its root.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(abs, []byte(content), 0600); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	return root
}

// readFile reads a fixture file back.
func readFile(t *testing.T, root, rel string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

// TestRunnerDryRun tests that dry-run mode never touches the filesystem.
func TestRunnerDryRun(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"index.html":       "<p>old</p>",
		"about/index.html": "<p>old</p>",
		"robots.txt":       "old",
	})

	r := New(root, WithDryRun(true))
	summary, err := r.Run(context.Background(), upperTransformer{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if !summary.DryRun {
		t.Error("summary.DryRun = false, want true")
	}
	if got := summary.Modified(); got != 2 {
		t.Errorf("Modified() = %d, want 2", got)
	}
	if got := readFile(t, root, "index.html"); got != "<p>old</p>" {
		t.Errorf("dry run modified file: %q", got)
	}
	if _, err := os.Stat(filepath.Join(root, "index.html.bak")); !os.IsNotExist(err) {
		t.Error("dry run created a backup file")
	}
}

// TestRunnerApply tests in-place modification with backups.
func TestRunnerApply(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"index.html":      "<p>old</p>",
		"docs/guide.html": "<p>nothing to do</p>",
	})

	r := New(root, WithDryRun(false), WithBackup(true))
	summary, err := r.Run(context.Background(), upperTransformer{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got := summary.Modified(); got != 1 {
		t.Errorf("Modified() = %d, want 1", got)
	}
	if got := summary.Unchanged(); got != 1 {
		t.Errorf("Unchanged() = %d, want 1", got)
	}
	if got := readFile(t, root, "index.html"); got != "<p>NEW</p>" {
		t.Errorf("file not rewritten: %q", got)
	}
	if got := readFile(t, root, "index.html.bak"); got != "<p>old</p>" {
		t.Errorf("backup does not hold pre-change content: %q", got)
	}
	if _, err := os.Stat(filepath.Join(root, "docs/guide.html.bak")); !os.IsNotExist(err) {
		t.Error("backup created for unchanged file")
	}
}

// TestRunnerExcludes tests that exclude globs keep files out of a run.
func TestRunnerExcludes(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"index.html":             "<p>old</p>",
		"assets/widget.html":     "<p>old</p>",
		".git/hooks/sample.html": "<p>old</p>",
	})

	r := New(root, WithDryRun(false), WithExcludes([]string{"assets/**", ".git/**"}))
	summary, err := r.Run(context.Background(), upperTransformer{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got := len(summary.Results); got != 1 {
		t.Fatalf("len(Results) = %d, want 1", got)
	}
	if got := readFile(t, root, "assets/widget.html"); got != "<p>old</p>" {
		t.Errorf("excluded file was modified: %q", got)
	}
}

// TestRunnerExplicitFiles tests the explicit file list mode, including
// silently skipping entries that do not exist.
func TestRunnerExplicitFiles(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"sitemap.xml": "old",
		"robots.txt":  "old",
		"index.html":  "old",
	})

	r := New(root,
		WithDryRun(false),
		WithFiles([]string{"sitemap.xml", "robots.txt", "humans.txt"}),
	)
	summary, err := r.Run(context.Background(), upperTransformer{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got := summary.Modified(); got != 2 {
		t.Errorf("Modified() = %d, want 2", got)
	}
	if got := readFile(t, root, "index.html"); got != "old" {
		t.Errorf("file outside explicit list was modified: %q", got)
	}
}

// TestRunnerAbortsOnTransformError tests fail-fast behavior.
func TestRunnerAbortsOnTransformError(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.html": "old",
		"b.html": "old",
	})

	r := New(root, WithDryRun(false))
	_, err := r.Run(context.Background(), failingTransformer{})
	if err == nil {
		t.Fatal("Run returned nil error, want transform failure")
	}
	if !strings.Contains(err.Error(), "a.html") {
		t.Errorf("error does not name the offending path: %v", err)
	}
}

// TestRunnerContextCancellation tests that a cancelled context stops the run.
func TestRunnerContextCancellation(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"a.html": "old"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(root, WithDryRun(false))
	_, err := r.Run(ctx, upperTransformer{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

// TestBackupOverwritesPrevious tests single-generation backup semantics.
func TestBackupOverwritesPrevious(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"page.html": "first"})
	abs := filepath.Join(root, "page.html")

	if _, err := Backup(abs); err != nil {
		t.Fatalf("Backup returned error: %v", err)
	}
	if err := os.WriteFile(abs, []byte("second"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Backup(abs); err != nil {
		t.Fatalf("second Backup returned error: %v", err)
	}

	if got := readFile(t, root, "page.html.bak"); got != "second" {
		t.Errorf("backup = %q, want latest pre-change snapshot %q", got, "second")
	}
}
