package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/mock"
	dislog "github.com/fwojciec/docindex/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCorpusStore(t *testing.T) {
	t.Parallel()

	items := []*docindex.Item{
		{ID: "1", Content: "a", Source: docindex.SourceBlender, Path: "/a"},
		{ID: "2", Content: "b", Source: docindex.SourceBlender, Path: "/b"},
	}

	t.Run("logs load", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.CorpusStore{LoadFn: func(ctx context.Context) ([]*docindex.Item, error) {
			return items, nil
		}}

		got, err := dislog.NewLoggingCorpusStore(inner, slog.New(slog.NewTextHandler(&buf, nil))).Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, items, got)
		assert.Contains(t, buf.String(), "corpus load")
		assert.Contains(t, buf.String(), "items=2")
	})

	t.Run("logs save", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		var saved []*docindex.Item
		inner := &mock.CorpusStore{SaveFn: func(ctx context.Context, items []*docindex.Item) error {
			saved = items
			return nil
		}}

		err := dislog.NewLoggingCorpusStore(inner, slog.New(slog.NewTextHandler(&buf, nil))).Save(context.Background(), items)

		require.NoError(t, err)
		assert.Equal(t, items, saved)
		assert.Contains(t, buf.String(), "corpus save")
		assert.Contains(t, buf.String(), "items=2")
	})

	t.Run("logs snapshot at debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.CorpusStore{SaveSnapshotFn: func(ctx context.Context, items []*docindex.Item) error {
			return nil
		}}
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		err := dislog.NewLoggingCorpusStore(inner, logger).SaveSnapshot(context.Background(), items)

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "corpus snapshot")
	})
	t.Run("logs snapshot removal at debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.CorpusStore{RemoveSnapshotFn: func(ctx context.Context) error {
			return errors.New("read-only file system")
		}}
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		err := dislog.NewLoggingCorpusStore(inner, logger).RemoveSnapshot(context.Background())

		require.Error(t, err)
		assert.Contains(t, buf.String(), "corpus snapshot removed")
		assert.Contains(t, buf.String(), `err="read-only file system"`)
	})
}
