// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch resolves normalized document URLs to local files, downloading
// only when the document is not already in the cache.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/manual-extractor/internal/httputil"
	"github.com/pdiddy/manual-extractor/pkg/types"
)

// Transport retrieves the raw bytes behind a URL.
type Transport interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// Cache stores documents by file name.
type Cache interface {
	// Lookup reports the local path of name and whether it is present.
	Lookup(name string) (path string, ok bool, err error)

	// Store writes the content of r under name and returns its local path.
	Store(name string, r io.Reader) (path string, err error)
}

// HTTPTransport fetches documents with a single GET per call.
type HTTPTransport struct {
	Client    *http.Client
	UserAgent string
}

// NewHTTPTransport returns a transport whose client applies cfg.Timeout.
func NewHTTPTransport(cfg types.HTTPConfig) *HTTPTransport {
	return &HTTPTransport{
		Client:    &http.Client{Timeout: cfg.Timeout},
		UserAgent: cfg.UserAgent,
	}
}

// Fetch implements Transport.
func (t *HTTPTransport) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	return httputil.Get(ctx, t.Client, url, t.UserAgent)
}

// Fetcher returns local paths for document URLs. Presence of a cache entry
// is the whole hit test; no content checks are made.
type Fetcher struct {
	transport Transport
	cache     Cache
	log       io.Writer
}

// NewFetcher builds a Fetcher. Progress lines are written to w.
func NewFetcher(t Transport, c Cache, w io.Writer) *Fetcher {
	if w == nil {
		w = io.Discard
	}
	return &Fetcher{transport: t, cache: c, log: w}
}

// FileName returns the cache key of url: the text after its last slash.
func FileName(url string) string {
	return url[strings.LastIndex(url, "/")+1:]
}

// Fetch returns the local path of the document at url. On a cache hit it
// does not touch the network. On a miss it performs one transport fetch and
// stores the body verbatim.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	name := FileName(url)
	if name == "" {
		return "", fmt.Errorf("%w: no file name in %q", types.ErrInvalidURL, url)
	}

	path, ok, err := f.cache.Lookup(name)
	if err != nil {
		return "", fmt.Errorf("%w: looking up %s: %w", types.ErrIO, name, err)
	}
	if ok {
		fmt.Fprintf(f.log, "cached:     %s\n", name)
		return path, nil
	}

	body, err := f.transport.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("%w: fetching %s: %w", types.ErrTransport, url, err)
	}
	defer body.Close()

	src := &bodyReader{r: body}
	path, err = f.cache.Store(name, src)
	if err != nil {
		// A body that breaks off mid-stream is a transport failure even
		// though it surfaces from the cache write.
		if src.err != nil {
			return "", fmt.Errorf("%w: reading %s: %w", types.ErrTransport, url, src.err)
		}
		return "", fmt.Errorf("%w: storing %s: %w", types.ErrIO, name, err)
	}

	fmt.Fprintf(f.log, "downloaded: %s\n", name)
	return path, nil
}

// bodyReader remembers the first non-EOF read error of the response body.
type bodyReader struct {
	r   io.Reader
	err error
}

func (b *bodyReader) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err != nil && err != io.EOF && b.err == nil {
		b.err = err
	}
	return n, err
}
