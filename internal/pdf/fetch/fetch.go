// Package fetch downloads remote PDFs to temporary files so the inspection
// components can treat every source as a local path.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Fetcher retrieves PDF bytes over HTTP/HTTPS with a size cap enforced both
// before and during the transfer.
type Fetcher struct {
	client  *http.Client
	maxSize int64
}

// NewFetcher creates a fetcher with the given timeout and byte cap
func NewFetcher(timeout time.Duration, maxSize int64) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		maxSize: maxSize,
	}
}

// IsRemote reports whether a path names an HTTP or HTTPS source
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// FetchToTemp downloads url into a temporary .pdf file and returns its path
// with a cleanup function that removes it. The Content-Length header is
// checked before the body is read; servers that omit it are still capped
// during the read.
func (f *Fetcher) FetchToTemp(ctx context.Context, url string) (string, func(), error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}
	if resp.ContentLength > f.maxSize {
		return "", nil, fmt.Errorf("remote file too large: %d bytes (max: %d bytes)",
			resp.ContentLength, f.maxSize)
	}

	tmpFile, err := os.CreateTemp("", "fetched-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	cleanup := func() {
		os.Remove(tmpFile.Name())
	}

	written, err := io.Copy(tmpFile, io.LimitReader(resp.Body, f.maxSize+1))
	closeErr := tmpFile.Close()
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	if closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to write temp file: %w", closeErr)
	}
	if written > f.maxSize {
		cleanup()
		return "", nil, fmt.Errorf("remote file too large: exceeds %d bytes", f.maxSize)
	}

	return tmpFile.Name(), cleanup, nil
}
