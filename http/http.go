// Package http implements docindex.Fetcher and docindex.SitemapService over
// plain HTTP, for static documentation sites that need no JavaScript.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/docindex"
)

// DefaultUserAgent identifies the crawler to documentation hosts.
const DefaultUserAgent = "BlenderAEAssistant/1.0 Documentation Crawler"

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout.
const DefaultFetchTimeout = 10 * time.Second

// maxBodySize caps how much of a response is read.
const maxBodySize = 20 << 20

// newRequest builds a GET or HEAD request carrying the user agent.
func newRequest(ctx context.Context, method, target, userAgent string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, docindex.Errorf(docindex.EINVALID, "invalid URL %q: %v", target, err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	return req, nil
}

// StatusError maps a non-success response onto an application error code.
func StatusError(resp *http.Response, target string) error {
	msg := fmt.Sprintf("HTTP %d for %s", resp.StatusCode, target)
	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return docindex.Errorf(docindex.ENOTFOUND, "%s", msg)
	case resp.StatusCode == http.StatusTooManyRequests:
		return &docindex.Error{
			Code:       docindex.ERATELIMIT,
			Message:    msg,
			RetryAfter: ParseRetryAfter(resp.Header.Get("Retry-After")),
		}
	case resp.StatusCode >= 500:
		return docindex.Errorf(docindex.EUNAVAILABLE, "%s", msg)
	default:
		return docindex.Errorf(docindex.EINVALID, "%s", msg)
	}
}

// ParseRetryAfter parses a Retry-After header given in seconds or as an HTTP
// date. Returns zero when the header is absent or already in the past.
func ParseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

func readBody(r io.Reader) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxBodySize))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
