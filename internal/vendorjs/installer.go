package vendorjs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/sync/errgroup"

	"github.com/gotoolly/sitekit/internal/config"
	"github.com/gotoolly/sitekit/internal/model"
)

// Download tuning. CDN fetches are small static files; a short timeout and
// a few retries cover the transient failures worth covering.
const (
	defaultRetryMax   = 3
	defaultTimeout    = 30 * time.Second
	defaultMaxBodyMiB = 32
)

// ErrBadBundleName is returned when a bundle name contains path separators
// or parent references. Bundle names become file names under the vendor
// directory and must never resolve outside it.
var ErrBadBundleName = errors.New("invalid bundle name: must be a bare file name")

// Installer downloads vendor bundles into a site's vendor directory.
type Installer struct {
	client      *retryablehttp.Client
	concurrency int
	dryRun      bool
	logger      *slog.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithConcurrency bounds the number of downloads in flight.
func WithConcurrency(n int) Option {
	return func(i *Installer) {
		if n > 0 {
			i.concurrency = n
		}
	}
}

// WithDryRun disables downloads; the installer only reports its plan.
func WithDryRun(dryRun bool) Option {
	return func(i *Installer) {
		i.dryRun = dryRun
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Installer) {
		i.logger = logger
	}
}

// WithHTTPClient replaces the retrying HTTP client, used by tests to point
// at a local server with tighter settings.
func WithHTTPClient(client *retryablehttp.Client) Option {
	return func(i *Installer) {
		i.client = client
	}
}

// New creates an Installer with retrying defaults.
func New(opts ...Option) *Installer {
	i := &Installer{
		concurrency: config.DefaultDownloadConcurrency,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.logger == nil {
		i.logger = slog.Default()
	}
	if i.client == nil {
		client := retryablehttp.NewClient()
		client.RetryMax = defaultRetryMax
		client.HTTPClient.Timeout = defaultTimeout
		client.Logger = nil
		i.client = client
	}
	return i
}

// Install fetches every bundle into root/vendorDir and returns the run
// summary. Downloads run concurrently; the first failure cancels the rest
// and is returned. In dry-run mode nothing is fetched or written.
func (i *Installer) Install(ctx context.Context, root, vendorDir string, bundles []config.Bundle) (*model.RunSummary, error) {
	summary := model.NewRunSummary("vendor", root, i.dryRun)
	defer func() {
		summary.Duration = time.Since(summary.StartedAt)
	}()

	for _, b := range bundles {
		if err := validateName(b.Name); err != nil {
			return summary, fmt.Errorf("bundle %q: %w", b.Name, err)
		}
	}

	targetDir := filepath.Join(root, filepath.FromSlash(vendorDir))

	if i.dryRun {
		for _, b := range bundles {
			rel := filepath.ToSlash(filepath.Join(vendorDir, b.Name))
			i.logger.Info("would download", "url", b.URL, "target", rel)
			summary.Add(model.FileResult{Path: rel, Action: model.ActionCreated, Note: b.URL})
		}
		return summary, nil
	}

	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return summary, fmt.Errorf("create vendor directory %s: %w", vendorDir, err)
	}

	// Results land in a fixed slot per bundle so the summary keeps the
	// configured order regardless of download completion order.
	results := make([]model.FileResult, len(bundles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.concurrency)

	for idx, b := range bundles {
		g.Go(func() error {
			data, err := i.fetch(gctx, b.URL)
			if err != nil {
				return fmt.Errorf("download %s: %w", b.URL, err)
			}

			target := filepath.Join(targetDir, b.Name)
			if err := os.WriteFile(target, data, 0644); err != nil { //nolint:gosec // Vendor bundles are world-readable
				return fmt.Errorf("write %s: %w", b.Name, err)
			}

			rel := filepath.ToSlash(filepath.Join(vendorDir, b.Name))
			i.logger.Info("downloaded", "url", b.URL, "target", rel, "bytes", len(data))
			results[idx] = model.FileResult{Path: rel, Action: model.ActionCreated, Note: b.URL}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}
	for _, r := range results {
		summary.Add(r)
	}
	return summary, nil
}

// fetch downloads one URL, bounding the body size.
func (i *Installer) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, defaultMaxBodyMiB<<20))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// validateName rejects bundle names that could escape the vendor directory.
func validateName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) {
		return ErrBadBundleName
	}
	return nil
}
