package main

import (
	"testing"
)

// TestNewCleanPagesCmd tests the clean-pages command creation.
func TestNewCleanPagesCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCleanPagesCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "clean-pages" {
			t.Errorf("expected use 'clean-pages', got %q", cmd.Use)
		}
	})

	t.Run("has descriptions", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" || cmd.Long == "" {
			t.Error("expected non-empty descriptions")
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{
			"apply", "force", "canonical-old", "redirect-old",
			"redirect-type", "redirect-delay", "domain", "pages-dir",
			"exclude", "markdown", "output",
		} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})

	t.Run("apply defaults to false", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("apply")
		if flag == nil {
			t.Fatal("expected apply flag")
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("redirect-type defaults to meta", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("redirect-type")
		if flag == nil {
			t.Fatal("expected redirect-type flag")
		}
		if flag.DefValue != "meta" {
			t.Errorf("expected default 'meta', got %q", flag.DefValue)
		}
	})
}
