// Package fetch acquires input for the tally CLI tool; it retrieves content
// from local files, URLs, and standard input.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Size limits to prevent memory overload; the whole input is read into
// memory before counting begins.
// TODO: make these configurable via command-line flags
const (
	MaxFileSizeBytes = 50 * 1024 * 1024  // 50MB limit for files and stdin
	MaxHTTPSizeBytes = 100 * 1024 * 1024 // 100MB limit for HTTP content (may not have Content-Length)
)

// HTTPRequestTimeout bounds the total time for a remote fetch.
const HTTPRequestTimeout = 30 * time.Second

// phase-specific timeouts derived from HTTPRequestTimeout
var (
	httpDialTimeout           = HTTPRequestTimeout / 6
	httpTLSTimeout            = HTTPRequestTimeout / 6
	httpResponseHeaderTimeout = HTTPRequestTimeout / 2
)

// cappedReadCloser wraps an io.ReadCloser to enforce a size limit. Reading
// exactly limit bytes is allowed; the reader carries one sentinel byte of
// headroom and errors only once a read consumes it, so an input of exactly
// the limit still reaches EOF cleanly.
type cappedReadCloser struct {
	io.ReadCloser
	remaining int64  // limit plus one sentinel byte
	source    string // for error messages
}

func newCappedReadCloser(rc io.ReadCloser, limit int64, source string) *cappedReadCloser {
	return &cappedReadCloser{
		ReadCloser: rc,
		remaining:  limit + 1,
		source:     source,
	}
}

func (c *cappedReadCloser) Read(p []byte) (n int, err error) {
	if c.remaining <= 0 {
		return 0, fmt.Errorf("content from %q exceeds size limit", c.source)
	}
	if int64(len(p)) > c.remaining {
		p = p[0:c.remaining]
	}
	n, err = c.ReadCloser.Read(p)
	c.remaining -= int64(n)
	if c.remaining <= 0 && (err == nil || err == io.EOF) {
		// the sentinel byte was consumed; the input is over the limit
		return n, fmt.Errorf("content from %q exceeds size limit", c.source)
	}
	return n, err
}

// httpClient is shared across fetches; its timeouts prevent indefinite hangs
// and it is safe for concurrent use.
var httpClient = &http.Client{
	Timeout: HTTPRequestTimeout,
	Transport: &http.Transport{
		Dial: (&net.Dialer{
			Timeout: httpDialTimeout,
		}).Dial,
		TLSHandshakeTimeout:   httpTLSTimeout,
		ResponseHeaderTimeout: httpResponseHeaderTimeout,
		DisableKeepAlives:     true,
	},
}

// IsRemote reports whether the source names an HTTP or HTTPS URL.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// GetContent retrieves content from a source and returns an io.ReadCloser.
// Three source forms are supported:
//   - "-" reads from standard input
//   - URLs starting with "http://" or "https://" are fetched via HTTP
//   - everything else is treated as a local file path
//
// ctx allows for cancellation and timeout control of fetch operations.
func GetContent(ctx context.Context, source string) (io.ReadCloser, error) {
	switch {
	case source == "-":
		return newCappedReadCloser(os.Stdin, MaxFileSizeBytes, "stdin"), nil
	case IsRemote(source):
		return fetchURL(ctx, source)
	default:
		return fetchFile(source)
	}
}

// fetchURL retrieves content from an HTTP or HTTPS URL using the shared
// client. ctx allows for cancellation and timeout control of the request.
func fetchURL(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for URL %q: %w", url, err)
	}
	req.Header.Set("User-Agent", "tally/0.1")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %q: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP request failed for URL %q: status %d %s", url, resp.StatusCode, resp.Status)
	}

	// reject oversized responses up front when Content-Length is present
	if contentLength := resp.Header.Get("Content-Length"); contentLength != "" {
		if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil && size > MaxHTTPSizeBytes {
			resp.Body.Close()
			return nil, fmt.Errorf("HTTP content too large (%d bytes > %d bytes limit)",
				size, MaxHTTPSizeBytes)
		}
	}

	// without Content-Length, cap the body while reading instead
	return newCappedReadCloser(resp.Body, MaxHTTPSizeBytes, url), nil
}

// fetchFile opens a local file for reading, surfacing errors that name the
// failing path.
func fetchFile(path string) (io.ReadCloser, error) {
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", path, err)
	}

	// check size before opening so counting never starts on partial data
	if fileInfo.Size() > MaxFileSizeBytes {
		return nil, fmt.Errorf("file %q is too large (%d bytes > %d bytes limit)",
			path, fileInfo.Size(), MaxFileSizeBytes)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}

	return file, nil
}
