package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
)

// setTestDataDir redirects the XDG data directory (and with it the run
// ledger) into a temp directory. Tests using it must not run in parallel
// because the XDG package state is global.
func setTestDataDir(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	old, had := os.LookupEnv("XDG_DATA_HOME")
	if err := os.Setenv("XDG_DATA_HOME", dir); err != nil {
		t.Fatalf("setenv: %v", err)
	}
	xdg.Reload()

	t.Cleanup(func() {
		if had {
			os.Setenv("XDG_DATA_HOME", old) //nolint:errcheck,gosec // Test cleanup
		} else {
			os.Unsetenv("XDG_DATA_HOME") //nolint:errcheck // Test cleanup
		}
		xdg.Reload()
	})
}

// writeSiteFile creates a file under root, creating parent directories.
func writeSiteFile(t *testing.T, root, rel, content string) {
	t.Helper()

	abs := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(abs, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

// execute runs the root command with the given arguments.
func execute(t *testing.T, args ...string) error {
	t.Helper()

	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(new(bytes.Buffer))
	return cmd.Execute()
}

const legacyPage = `<!DOCTYPE html>
<html>
<head>
  <title>SEO Guide</title>
</head>
<body><p>content</p></body>
</html>
`

// TestCleanPagesDryRun tests that the default run writes nothing and
// reports its plan.
func TestCleanPagesDryRun(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSiteFile(t, root, "pages/guides/seo.html", legacyPage)
	reportFile := filepath.Join(t.TempDir(), "report.txt")

	if err := execute(t, "clean-pages", "--root", root, "--output", reportFile); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "guides", "seo", "index.html")); err == nil {
		t.Error("dry run created the clean target")
	}

	report, err := os.ReadFile(reportFile)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	out := string(report)
	if !strings.Contains(out, "guides/seo/index.html") {
		t.Errorf("report missing planned target:\n%s", out)
	}
	if !strings.Contains(out, "Run with --apply to write changes.") {
		t.Errorf("report missing dry-run closing line:\n%s", out)
	}
}

// TestCleanPagesApply tests the full apply flow: clean copy creation,
// legacy update, and the ledger record shown by the history command.
func TestCleanPagesApply(t *testing.T) {
	setTestDataDir(t)

	root := t.TempDir()
	writeSiteFile(t, root, "pages/guides/seo.html", legacyPage)

	err := execute(t, "clean-pages", "--root", root, "--apply",
		"--canonical-old", "--redirect-old",
		"--output", filepath.Join(t.TempDir(), "report.txt"))
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	clean, err := os.ReadFile(filepath.Join(root, "guides", "seo", "index.html"))
	if err != nil {
		t.Fatalf("clean target not created: %v", err)
	}
	if !strings.Contains(string(clean), `<link rel="canonical" href="https://gotoolly.netlify.app/guides/seo">`) {
		t.Errorf("clean copy missing canonical link:\n%s", clean)
	}

	legacy, err := os.ReadFile(filepath.Join(root, "pages", "guides", "seo.html"))
	if err != nil {
		t.Fatalf("read legacy page: %v", err)
	}
	if !strings.Contains(string(legacy), `http-equiv="refresh"`) {
		t.Errorf("legacy page missing redirect:\n%s", legacy)
	}
	if _, err := os.Stat(filepath.Join(root, "pages", "guides", "seo.html.bak")); err != nil {
		t.Errorf("legacy backup not written: %v", err)
	}

	// The apply run must show up in the ledger.
	historyCmd := NewRootCmd()
	var buf bytes.Buffer
	historyCmd.SetOut(&buf)
	historyCmd.SetArgs([]string{"history"})
	if err := historyCmd.Execute(); err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "clean-pages") {
		t.Errorf("history missing recorded run:\n%s", buf.String())
	}
}

// TestFixMetaApply tests in-place metadata repair with backup.
func TestFixMetaApply(t *testing.T) {
	setTestDataDir(t)

	root := t.TempDir()
	writeSiteFile(t, root, "about.html", `<!DOCTYPE html>
<html>
<head>
  <link rel="canonical" href="https://old.example.org/about.html">
</head>
<body></body>
</html>
`)

	err := execute(t, "fix-meta", "--root", root,
		"--domain", "https://new.example.com", "--apply",
		"--output", filepath.Join(t.TempDir(), "report.txt"))
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(root, "about.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	if !strings.Contains(string(content), `<link rel="canonical" href="https://new.example.com/about">`) {
		t.Errorf("canonical not rewritten:\n%s", content)
	}
	if _, err := os.Stat(filepath.Join(root, "about.html.bak")); err != nil {
		t.Errorf("backup not written: %v", err)
	}
}

// TestUpdateDomainApply tests domain replacement over the explicit
// file list.
func TestUpdateDomainApply(t *testing.T) {
	setTestDataDir(t)

	root := t.TempDir()
	writeSiteFile(t, root, "sitemap.xml",
		"<urlset><url><loc>https://gotoolly.com/about</loc></url></urlset>\n")

	err := execute(t, "update-domain", "--root", root,
		"--domain", "https://new.example.com", "--apply",
		"--output", filepath.Join(t.TempDir(), "report.txt"))
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(root, "sitemap.xml"))
	if err != nil {
		t.Fatalf("read sitemap: %v", err)
	}
	if !strings.Contains(string(content), "https://new.example.com/about") {
		t.Errorf("domain not replaced:\n%s", content)
	}
	if strings.Contains(string(content), "gotoolly.com") {
		t.Errorf("legacy domain still present:\n%s", content)
	}
}

// TestVendorDryRun tests that the vendor command plans without fetching.
func TestVendorDryRun(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	reportFile := filepath.Join(t.TempDir(), "report.txt")

	if err := execute(t, "vendor", "--root", root, "--output", reportFile); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "assets", "vendor")); err == nil {
		t.Error("dry run created the vendor directory")
	}

	report, err := os.ReadFile(reportFile)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(report), "tf.min.js") {
		t.Errorf("report missing planned bundle:\n%s", report)
	}
}

// TestAuditReportsFindings tests the read-only audit output.
func TestAuditReportsFindings(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSiteFile(t, root, "guides/seo-basics.html", "<!DOCTYPE html>\n<html><head></head><body></body></html>\n")

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"audit", "--root", root})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "guides/seo-basics.html") {
		t.Errorf("audit missing finding:\n%s", out)
	}
	if !strings.Contains(out, "missing:") {
		t.Errorf("audit missing tag list:\n%s", out)
	}
	if !strings.Contains(out, `"Seo Basics"`) {
		t.Errorf("audit missing title suggestion:\n%s", out)
	}
}

// TestHistoryEmptyLedger tests the history command against a fresh ledger.
func TestHistoryEmptyLedger(t *testing.T) {
	setTestDataDir(t)

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"history"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if !strings.Contains(buf.String(), "No recorded runs found.") {
		t.Errorf("expected empty-ledger message, got:\n%s", buf.String())
	}
}
