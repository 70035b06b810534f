package slog_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/mock"
	dislog "github.com/fwojciec/docindex/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bevelURL = "https://docs.blender.org/manual/en/latest/modeling/meshes/editing/edge/bevel.html"

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		err     error
		level   slog.Level
		want    []string
		notWant []string
	}{
		{
			name:    "success at debug",
			html:    "<html>bevel</html>",
			level:   slog.LevelDebug,
			want:    []string{"level=DEBUG", "msg=fetch", "url=" + bevelURL, "bytes=18", "duration="},
			notWant: []string{"err=", "code="},
		},
		{
			name:    "success hidden at info",
			html:    "<html>bevel</html>",
			level:   slog.LevelInfo,
			notWant: []string{"fetch"},
		},
		{
			name:  "throttled at warn with retry hint",
			err:   &docindex.Error{Code: docindex.ERATELIMIT, Message: "HTTP 429", RetryAfter: 5 * time.Second},
			level: slog.LevelInfo,
			want:  []string{"level=WARN", "code=rate_limited", "retry_after=5s"},
		},
		{
			name:  "server failure at warn",
			err:   fmt.Errorf("fetch: %w", docindex.Errorf(docindex.EUNAVAILABLE, "HTTP 503")),
			level: slog.LevelInfo,
			want:  []string{"level=WARN", "code=unavailable", `err="fetch: HTTP 503"`},
		},
		{
			name:    "missing page stays at debug",
			err:     docindex.Errorf(docindex.ENOTFOUND, "HTTP 404"),
			level:   slog.LevelInfo,
			notWant: []string{"fetch"},
		},
		{
			name:  "plain error is internal",
			err:   errors.New("network error"),
			level: slog.LevelDebug,
			want:  []string{"code=internal", `err="network error"`},
		},
		{
			name:    "canceled stays at debug",
			err:     context.Canceled,
			level:   slog.LevelInfo,
			notWant: []string{"fetch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: tt.level}))
			inner := &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return tt.html, tt.err
				},
			}

			html, err := dislog.NewLoggingFetcher(inner, logger).Fetch(context.Background(), bevelURL)

			assert.Equal(t, tt.html, html)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
			} else {
				require.NoError(t, err)
			}
			out := buf.String()
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closed := errors.New("already closed")
	inner := &mock.Fetcher{CloseFn: func() error { return closed }}

	err := dislog.NewLoggingFetcher(inner, slog.New(slog.DiscardHandler)).Close()

	assert.Same(t, closed, err)
}
