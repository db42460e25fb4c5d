package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".sitekit.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file structure. Every field is optional;
// zero values leave the compiled-in defaults in place.
type File struct {
	// Domain is the deployment domain for canonical and social URLs.
	Domain string `yaml:"domain"`

	// PagesDir is the legacy pages directory relative to the site root.
	PagesDir string `yaml:"pages_dir"`

	// Excludes are glob patterns excluded from discovery.
	Excludes []string `yaml:"excludes"`

	// Prefix is the repository prefix for fix-paths and strip-prefix.
	Prefix string `yaml:"prefix"`

	// OldDomains are the legacy domains update-domain replaces.
	OldDomains []string `yaml:"old_domains"`

	// TextFiles is the file list update-domain operates on.
	TextFiles []string `yaml:"text_files"`

	// Vendor lists the vendor JS bundles to install.
	Vendor []Bundle `yaml:"vendor"`

	// VendorDir is the bundle install directory relative to the site root.
	VendorDir string `yaml:"vendor_dir"`
}

// LoadConfigFile loads a configuration file from path.
// If the file does not exist, it returns ErrConfigNotFound. Callers decide
// whether that matters based on whether the path was explicitly requested.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// FindConfigFile searches for the configuration file in order:
// the explicit path if given, then .sitekit.yaml in the current directory,
// then in the user's home directory. It returns the path found, or empty.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		candidate := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// ApplyTo overlays the file's non-zero values onto cfg.
// Flags are applied after this, so the precedence ends up
// defaults < file < flags.
func (f *File) ApplyTo(cfg *Config) {
	if f.Domain != "" {
		cfg.Domain = f.Domain
	}
	if f.PagesDir != "" {
		cfg.PagesDir = f.PagesDir
	}
	if len(f.Excludes) > 0 {
		cfg.Excludes = f.Excludes
	}
	if f.Prefix != "" {
		cfg.Prefix = f.Prefix
	}
	if len(f.OldDomains) > 0 {
		cfg.OldDomains = f.OldDomains
	}
	if len(f.TextFiles) > 0 {
		cfg.TextFiles = f.TextFiles
	}
	if len(f.Vendor) > 0 {
		cfg.Bundles = f.Vendor
	}
	if f.VendorDir != "" {
		cfg.VendorDir = f.VendorDir
	}
}
