package mock

import (
	"context"

	"github.com/fwojciec/docindex"
)

var _ docindex.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is a mock implementation of docindex.CorpusStore.
type CorpusStore struct {
	LoadFn           func(ctx context.Context) ([]*docindex.Item, error)
	SaveFn           func(ctx context.Context, items []*docindex.Item) error
	SaveSnapshotFn   func(ctx context.Context, items []*docindex.Item) error
	RemoveSnapshotFn func(ctx context.Context) error
}

func (s *CorpusStore) Load(ctx context.Context) ([]*docindex.Item, error) {
	return s.LoadFn(ctx)
}

func (s *CorpusStore) Save(ctx context.Context, items []*docindex.Item) error {
	return s.SaveFn(ctx, items)
}

func (s *CorpusStore) SaveSnapshot(ctx context.Context, items []*docindex.Item) error {
	return s.SaveSnapshotFn(ctx, items)
}

func (s *CorpusStore) RemoveSnapshot(ctx context.Context) error {
	return s.RemoveSnapshotFn(ctx)
}
