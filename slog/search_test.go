package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/mock"
	dislog "github.com/fwojciec/docindex/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSearchService(t *testing.T) {
	t.Parallel()

	item := &docindex.Item{ID: "1", Title: "Bevel", Content: "Bevel edges.", Source: docindex.SourceBlender, Path: "/bevel"}
	inner := &mock.SearchService{
		SearchFn: func(ctx context.Context, query string, limit int) ([]docindex.SearchResult, error) {
			return []docindex.SearchResult{{Item: item, Score: 0.75}}, nil
		},
		LoadFn: func(ctx context.Context, path string) (int, error) {
			return 12, nil
		},
		AllFn: func() ([]*docindex.Item, error) {
			return []*docindex.Item{item}, nil
		},
	}

	t.Run("logs search", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := dislog.NewLoggingSearchService(inner, slog.New(slog.NewTextHandler(&buf, nil)))

		results, err := svc.Search(context.Background(), "bevel", 3)

		require.NoError(t, err)
		assert.Len(t, results, 1)
		output := buf.String()
		assert.Contains(t, output, "msg=search")
		assert.Contains(t, output, "query=bevel")
		assert.Contains(t, output, "limit=3")
		assert.Contains(t, output, "results=1")
		assert.Contains(t, output, "top_score=0.75")
	})

	t.Run("logs reload", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := dislog.NewLoggingSearchService(inner, slog.New(slog.NewTextHandler(&buf, nil)))

		n, err := svc.Load(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 12, n)
		assert.Contains(t, buf.String(), "items=12")
	})

	t.Run("delegates all", func(t *testing.T) {
		t.Parallel()

		svc := dislog.NewLoggingSearchService(inner, slog.New(slog.DiscardHandler))

		all, err := svc.All()

		require.NoError(t, err)
		assert.Equal(t, []*docindex.Item{item}, all)
	})
}
