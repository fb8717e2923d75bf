package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	// defaultMaxBytes caps how much a single fetch may return. Descriptor
	// catalogs are small; anything near this size is a misconfigured URL.
	defaultMaxBytes = int64(8 << 20)

	defaultTimeout = 30 * time.Second
)

// Fetcher retrieves document bytes for a Source. File fetching always works;
// fs.FS and HTTP require the matching option.
type Fetcher struct {
	fs       fs.FS
	http     *http.Client
	timeout  time.Duration
	maxBytes int64
}

// Option adjusts a Fetcher during construction.
type Option func(*Fetcher)

// WithFS supplies the filesystem KindFS sources resolve against.
func WithFS(fsys fs.FS) Option {
	return func(f *Fetcher) {
		f.fs = fsys
	}
}

// WithHTTPClient enables URL sources using a clone of the supplied client.
// The fetcher timeout applies when the client sets none.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client == nil {
			f.http = nil
			return
		}
		clone := *client
		f.http = &clone
	}
}

// WithHTTP enables URL sources with a default client.
func WithHTTP() Option {
	return func(f *Fetcher) {
		f.http = &http.Client{}
	}
}

// WithTimeout bounds each HTTP fetch.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = timeout
	}
}

// WithMaxBytes overrides the per-fetch size cap.
func WithMaxBytes(limit int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = limit
	}
}

// NewFetcher builds a Fetcher. Without options it reads local files only.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:  defaultTimeout,
		maxBytes: defaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.http != nil && f.http.Timeout == 0 && f.timeout > 0 {
		f.http.Timeout = f.timeout
	}
	return f
}

// Fetch returns the bytes behind src.
func (f *Fetcher) Fetch(ctx context.Context, src Source) ([]byte, error) {
	switch src.Kind() {
	case KindFile:
		return f.fetchFile(ctx, src.Location())
	case KindFS:
		return f.fetchFS(ctx, src.Location())
	case KindURL:
		return f.fetchHTTP(ctx, src.Location())
	default:
		return nil, fmt.Errorf("source: unsupported kind %q", src.Kind())
	}
}

func (f *Fetcher) fetchFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("source: file path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	return f.limitRead(file, abs)
}

func (f *Fetcher) fetchFS(ctx context.Context, name string) ([]byte, error) {
	if f.fs == nil {
		return nil, errors.New("source: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("source: fs path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	return f.limitRead(file, name)
}

func (f *Fetcher) fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	if f.http == nil {
		return nil, errors.New("source: http support disabled")
	}
	if rawURL == "" {
		return nil, errors.New("source: url is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if f.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("source: unexpected status " + resp.Status)
	}

	return f.limitRead(resp.Body, rawURL)
}

func (f *Fetcher) limitRead(r io.Reader, location string) ([]byte, error) {
	limit := f.maxBytes
	if limit <= 0 {
		limit = defaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("source: %s exceeds the %d byte limit", location, limit)
	}
	return data, nil
}
