package config

import (
	"net/url"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values. These mirror the site the toolkit grew up
// maintaining; every one of them can be overridden by .sitekit.yaml or flags.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "sitekit"

	// DefaultDomain is the deployment domain used to build canonical and
	// social URLs when none is configured.
	DefaultDomain = "https://gotoolly.netlify.app"

	// DefaultPagesDir is the directory of legacy pages, relative to the
	// site root, that clean-URL copies are generated from.
	DefaultPagesDir = "pages"

	// DefaultRedirectType is the only supported legacy-redirect mechanism.
	// Static hosts cannot send real HTTP redirects, so a meta refresh is
	// the whole menu.
	DefaultRedirectType = "meta"

	// DefaultRedirectDelay is the meta-refresh delay in seconds.
	// 0 redirects immediately.
	DefaultRedirectDelay = 0

	// DefaultPrefix is the repository prefix added to or stripped from
	// root-absolute asset paths on project-page hosts.
	DefaultPrefix = "/gotoolly.com"

	// DefaultVendorDir is where vendor JS bundles are installed, relative
	// to the site root.
	DefaultVendorDir = "assets/vendor"

	// DefaultDownloadConcurrency bounds parallel vendor downloads. The
	// bundle list is short; two in flight keeps the CDN happy.
	DefaultDownloadConcurrency = 2
)

// DefaultExcludes are glob patterns never touched by tree-walking commands:
// the asset folder and version-control metadata.
var DefaultExcludes = []string{"assets/**", ".git/**"}

// DefaultOldDomains are the legacy domains update-domain rewrites.
var DefaultOldDomains = []string{"https://gotoolly.com", "https://www.gotoolly.com"}

// DefaultTextFiles are the files update-domain inspects. Domain strings in
// arbitrary files are usually intentional, so the command works from an
// explicit list instead of the whole tree.
var DefaultTextFiles = []string{
	"sitemap.xml",
	"robots.txt",
	"humans.txt",
	"tools/qr-code-generator.html",
}

// Bundle names one vendor JS bundle: where to fetch it and the file name
// it is installed under.
type Bundle struct {
	// URL is the pinned CDN URL of the production build.
	URL string `yaml:"url"`

	// Name is the target file name under the vendor directory.
	Name string `yaml:"name"`
}

// DefaultBundles are the vendor builds the site ships.
var DefaultBundles = []Bundle{
	{URL: "https://cdn.jsdelivr.net/npm/@tensorflow/tfjs@4.8.0/dist/tf.min.js", Name: "tf.min.js"},
	{URL: "https://cdn.jsdelivr.net/npm/@tensorflow-models/body-pix@2.0.5/dist/body-pix.min.js", Name: "body-pix.min.js"},
}

// Config holds all configuration options for a sitekit run.
// It is populated from defaults, the optional config file, and CLI flags,
// then passed through the application via dependency injection rather than
// global state.
//
// Design decision: We use a single flat struct instead of nested structs
// per command. The number of options is manageable, and most commands share
// the same core fields (Root, Domain, DryRun, Excludes).
type Config struct {
	// Root is the site root directory all paths are relative to.
	Root string

	// PagesDir is the legacy pages directory relative to Root.
	PagesDir string

	// Domain is the base URL for canonical and social URLs.
	Domain string

	// DryRun disables all filesystem writes. This is the default; every
	// mutating command requires --apply to clear it.
	DryRun bool

	// CanonicalOld injects a canonical link into legacy pages pointing at
	// their clean copy.
	CanonicalOld bool

	// RedirectOld injects a meta-refresh redirect into legacy pages.
	RedirectOld bool

	// RedirectType selects the redirect mechanism. Only "meta" exists.
	RedirectType string

	// RedirectDelay is the meta-refresh delay in seconds.
	RedirectDelay int

	// Force permits overwriting existing clean targets. Without it an
	// existing target is skipped, never clobbered.
	Force bool

	// Backup enables .bak snapshots before in-place rewrites performed by
	// the batch runner commands. The clean-page generator always backs up
	// before modifying a legacy file regardless of this setting.
	Backup bool

	// Excludes are glob patterns excluded from discovery.
	Excludes []string

	// Prefix is the repository prefix for fix-paths and strip-prefix.
	Prefix string

	// OldDomains are the legacy domains update-domain replaces.
	OldDomains []string

	// TextFiles is the explicit file list update-domain operates on.
	TextFiles []string

	// Bundles are the vendor JS builds the vendor command installs.
	Bundles []Bundle

	// VendorDir is the install directory for bundles, relative to Root.
	VendorDir string

	// Concurrency bounds parallel vendor downloads.
	Concurrency int

	// MarkdownReport switches the run report to Markdown format.
	MarkdownReport bool

	// ReportFile writes the run report to a file instead of stdout.
	ReportFile string

	// Verbose enables debug-level log output.
	Verbose bool

	// DBDir is the directory of the run-ledger database. Defaults to the
	// XDG data directory.
	DBDir string

	// ConfigFilePath is the explicit path of the config file, when the
	// user supplied one.
	ConfigFilePath string
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor rather than relying on zero values
// because most defaults are non-zero, and the constructor doubles as
// documentation of what they are.
func NewConfig() *Config {
	return &Config{
		Root:          ".",
		PagesDir:      DefaultPagesDir,
		Domain:        DefaultDomain,
		DryRun:        true,
		RedirectType:  DefaultRedirectType,
		RedirectDelay: DefaultRedirectDelay,
		Excludes:      append([]string(nil), DefaultExcludes...),
		Prefix:        DefaultPrefix,
		OldDomains:    append([]string(nil), DefaultOldDomains...),
		TextFiles:     append([]string(nil), DefaultTextFiles...),
		Bundles:       append([]Bundle(nil), DefaultBundles...),
		VendorDir:     DefaultVendorDir,
		Concurrency:   DefaultDownloadConcurrency,
		DBDir:         XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for sitekit, which holds the
// run-ledger database.
// On Linux: ~/.local/share/sitekit
// On macOS: ~/Library/Application Support/sitekit
// On Windows: %LOCALAPPDATA%\sitekit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It is called once after flag parsing, before any filesystem work.
func (c *Config) Validate() error {
	if c.Root == "" {
		return ErrNoRoot
	}

	u, err := url.Parse(c.Domain)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidDomain
	}

	if c.RedirectType != DefaultRedirectType {
		return ErrInvalidRedirectType
	}

	if c.RedirectDelay < 0 {
		return ErrInvalidRedirectDelay
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	return nil
}
