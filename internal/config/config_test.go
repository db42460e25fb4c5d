package config

import (
	"errors"
	"testing"
)

// TestNewConfigDefaults tests that the constructor fills sensible defaults.
func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if !cfg.DryRun {
		t.Error("DryRun = false, want true (dry run is the default mode)")
	}
	if cfg.Domain != DefaultDomain {
		t.Errorf("Domain = %q, want %q", cfg.Domain, DefaultDomain)
	}
	if cfg.PagesDir != DefaultPagesDir {
		t.Errorf("PagesDir = %q, want %q", cfg.PagesDir, DefaultPagesDir)
	}
	if cfg.RedirectType != DefaultRedirectType {
		t.Errorf("RedirectType = %q, want %q", cfg.RedirectType, DefaultRedirectType)
	}
	if len(cfg.Excludes) == 0 {
		t.Error("Excludes is empty, want asset and VCS excludes")
	}
	if len(cfg.Bundles) != 2 {
		t.Errorf("len(Bundles) = %d, want 2", len(cfg.Bundles))
	}
	if cfg.DBDir == "" {
		t.Error("DBDir is empty, want XDG data directory")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

// TestConfigValidate tests fail-fast validation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "empty root",
			mutate:  func(c *Config) { c.Root = "" },
			wantErr: ErrNoRoot,
		},
		{
			name:    "domain without scheme",
			mutate:  func(c *Config) { c.Domain = "example.com" },
			wantErr: ErrInvalidDomain,
		},
		{
			name:    "domain with bad scheme",
			mutate:  func(c *Config) { c.Domain = "ftp://example.com" },
			wantErr: ErrInvalidDomain,
		},
		{
			name:    "unsupported redirect type",
			mutate:  func(c *Config) { c.RedirectType = "301" },
			wantErr: ErrInvalidRedirectType,
		},
		{
			name:    "negative redirect delay",
			mutate:  func(c *Config) { c.RedirectDelay = -1 },
			wantErr: ErrInvalidRedirectDelay,
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Concurrency = 0 },
			wantErr: ErrInvalidConcurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
