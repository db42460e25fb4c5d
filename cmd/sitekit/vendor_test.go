package main

import (
	"testing"
)

// TestNewVendorCmd tests the vendor command creation.
func TestNewVendorCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVendorCmd()

	if cmd.Use != "vendor" {
		t.Errorf("expected use 'vendor', got %q", cmd.Use)
	}
	for _, name := range []string{"apply", "vendor-dir", "concurrency", "markdown", "output"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}

	flag := cmd.Flags().Lookup("concurrency")
	if flag != nil && flag.DefValue != "2" {
		t.Errorf("expected concurrency default '2', got %q", flag.DefValue)
	}
}

// TestNewAuditCmd tests the audit command creation.
func TestNewAuditCmd(t *testing.T) {
	t.Parallel()

	cmd := NewAuditCmd()

	if cmd.Use != "audit" {
		t.Errorf("expected use 'audit', got %q", cmd.Use)
	}
	for _, name := range []string{"domain", "exclude"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
	if cmd.Flags().Lookup("apply") != nil {
		t.Error("audit is read-only and must not have an apply flag")
	}
}

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	if cmd.Use != "history" {
		t.Errorf("expected use 'history', got %q", cmd.Use)
	}
	for _, name := range []string{"limit", "tool", "id"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
}
