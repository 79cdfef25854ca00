// Package source opens CSV input from local files and URLs.
//
// Files are decompressed according to their extension (see CompressionFor).
// URLs are fetched once and kept in a local cache file, so that opening the
// same URL again reads from disk:
//
//	rc, err := source.OpenURL(ctx, "https://example.com/data.csv", source.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	defer rc.Close()
//
//	for row, err := range csv.NewParser().Rows(csv.NewLineReader(rc)) {
//	    ...
//	}
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/shapestone/csvrows/pkg/csv"
)

// ErrHTTPStatus is returned when a URL answers with a non-200 status.
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// Options configures URL access.
type Options struct {
	// CacheDir holds cache files.
	// Default: os.TempDir()
	CacheDir string

	// UseCache keeps a local copy of every fetched URL and reuses it.
	// Default: true
	UseCache bool

	// HTTPClient performs requests.
	// Default: http.DefaultClient
	HTTPClient *http.Client

	// Logger receives cache diagnostics. Nil discards them.
	Logger csv.Logger
}

// DefaultOptions returns the default URL configuration.
func DefaultOptions() Options {
	return Options{
		CacheDir:   os.TempDir(),
		UseCache:   true,
		HTTPClient: http.DefaultClient,
	}
}

// OptionsFor returns DefaultOptions adjusted for chars. NoURLCache turns
// caching off; other characteristics are ignored.
func OptionsFor(chars ...csv.Characteristic) Options {
	opts := DefaultOptions()
	if csv.HasCharacteristic(chars, csv.NoURLCache) {
		opts.UseCache = false
	}
	return opts
}

func (o Options) client() *http.Client {
	if o.HTTPClient == nil {
		return http.DefaultClient
	}
	return o.HTTPClient
}

func (o Options) logger() csv.Logger {
	if o.Logger == nil {
		return csv.NopLogger()
	}
	return o.Logger
}

func (o Options) cacheDir() string {
	if o.CacheDir == "" {
		return os.TempDir()
	}
	return o.CacheDir
}

// Open opens a local file, decompressing it according to its extension.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}

	dec, err := NewReader(f, CompressionFor(path))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	return newStack(dec, dec, f), nil
}

// CachePath returns the cache file used for rawURL under dir. The name is
// derived from the URL, so every URL has exactly one cache file.
func CachePath(dir, rawURL string) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(rawURL))
	return filepath.Join(dir, "csv-"+id.String()+".cache.zst")
}

// OpenURL returns the content at rawURL, decompressed according to the
// extension of its path.
//
// With caching on, an existing cache file is read instead of the network;
// otherwise the response is stored first. Cache files are zstd compressed
// and never expire; use Evict to drop one.
func OpenURL(ctx context.Context, rawURL string, opts Options) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("source: parse url: %w", err)
	}
	comp := CompressionFor(u.Path)
	log := opts.logger()

	if !opts.UseCache {
		log.Debug("fetching %s without cache", rawURL)
		return fetch(ctx, rawURL, comp, opts)
	}

	path := CachePath(opts.cacheDir(), rawURL)
	if _, err := os.Stat(path); err == nil {
		log.Debug("cache hit for %s: %s", rawURL, path)
		return openCache(path, comp)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("source: stat cache: %w", err)
	}

	log.Debug("cache miss for %s, storing in %s", rawURL, path)
	if err := fill(ctx, rawURL, path, opts); err != nil {
		return nil, err
	}
	return openCache(path, comp)
}

// Evict removes the cache file for rawURL, if any.
func Evict(rawURL string, opts Options) error {
	err := os.Remove(CachePath(opts.cacheDir(), rawURL))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("source: evict: %w", err)
	}
	return nil
}

func get(ctx context.Context, rawURL string, opts Options) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("source: get %s: %w", rawURL, err)
	}
	resp, err := opts.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("source: get %s: %w", rawURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("source: get %s: %w: %s", rawURL, ErrHTTPStatus, resp.Status)
	}
	return resp, nil
}

func fetch(ctx context.Context, rawURL string, comp Compression, opts Options) (io.ReadCloser, error) {
	resp, err := get(ctx, rawURL, opts)
	if err != nil {
		return nil, err
	}
	dec, err := NewReader(resp.Body, comp)
	if err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("source: decode %s: %w", rawURL, err)
	}
	return newStack(dec, dec, resp.Body), nil
}

// fill downloads rawURL into path. The file only appears once complete.
func fill(ctx context.Context, rawURL, path string, opts Options) (err error) {
	resp, err := get(ctx, rawURL, opts)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), "csv-*.tmp")
	if err != nil {
		return fmt.Errorf("source: create cache: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	enc, err := zstd.NewWriter(tmp)
	if err != nil {
		return fmt.Errorf("source: create cache: %w", err)
	}
	if _, err = io.Copy(enc, resp.Body); err != nil {
		enc.Close()
		return fmt.Errorf("source: download %s: %w", rawURL, err)
	}
	if err = enc.Close(); err != nil {
		return fmt.Errorf("source: write cache: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("source: write cache: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("source: write cache: %w", err)
	}
	return nil
}

func openCache(path string, comp Compression) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open cache: %w", err)
	}
	raw, err := NewReader(f, Zstd)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("source: open cache: %w", err)
	}
	dec, err := NewReader(raw, comp)
	if err != nil {
		raw.Close()
		f.Close()
		return nil, fmt.Errorf("source: open cache: %w", err)
	}
	return newStack(dec, dec, raw, f), nil
}
