// Package search ranks corpus items against a query by cosine similarity of
// their embeddings.
package search

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/fwojciec/docindex"
	"golang.org/x/sync/singleflight"
)

var _ docindex.SearchService = (*Engine)(nil)

// Engine serves similarity queries over an in-memory corpus snapshot.
//
// Searches read the current snapshot without locking. Load builds a complete
// replacement before publishing it, so a concurrent search sees either the
// old corpus or the new one. Concurrent loads of the same path share one
// read.
type Engine struct {
	// Embedder embeds query text.
	Embedder docindex.Embedder

	// Store is the default corpus, read by Load with an empty path.
	Store docindex.CorpusStore

	// OpenStore returns the store for an explicit corpus path. Nil
	// rejects explicit paths.
	OpenStore func(path string) docindex.CorpusStore

	// LazyLoad loads the default corpus on the first search or listing
	// instead of failing with ENOTLOADED.
	LazyLoad bool

	Logger *slog.Logger

	snap  atomic.Pointer[snapshot]
	group singleflight.Group
}

// snapshot is an immutable loaded corpus.
type snapshot struct {
	items      []*docindex.Item
	candidates []candidate
}

// candidate is an embedded item with its precomputed norm.
type candidate struct {
	item *docindex.Item
	norm float64
}

// NewEngine returns an Engine over store.
func NewEngine(embedder docindex.Embedder, store docindex.CorpusStore) *Engine {
	return &Engine{Embedder: embedder, Store: store}
}

// Load reads the corpus at path, or the default corpus if path is empty, and
// replaces the served snapshot. Returns the number of items loaded,
// including items without an embedding.
func (e *Engine) Load(ctx context.Context, path string) (int, error) {
	store := e.Store
	if path != "" {
		if e.OpenStore == nil {
			return 0, docindex.Errorf(docindex.EINVALID, "loading a corpus by path is not supported")
		}
		store = e.OpenStore(path)
	}
	if store == nil {
		return 0, docindex.Errorf(docindex.EINVALID, "no corpus store configured")
	}

	v, err, _ := e.group.Do(path, func() (any, error) {
		items, err := store.Load(ctx)
		if err != nil {
			return nil, err
		}
		snap := newSnapshot(items)
		e.snap.Store(snap)
		if e.Logger != nil {
			e.Logger.Info("corpus loaded", "path", path, "items", len(snap.items), "embedded", len(snap.candidates))
		}
		return len(snap.items), nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// Search embeds query and returns at most limit items ordered by descending
// similarity. Equal scores keep corpus order.
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]docindex.SearchResult, error) {
	if _, err := e.current(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []docindex.SearchResult{}, nil
	}
	if query == "" {
		return nil, docindex.Errorf(docindex.EINVALID, "query required")
	}

	vec, err := e.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return e.SearchVector(vec, limit)
}

// SearchVector ranks the loaded corpus against an already embedded query.
// Returns EDIMENSION if any candidate's vector length differs from vec.
func (e *Engine) SearchVector(vec []float32, limit int) ([]docindex.SearchResult, error) {
	snap := e.snap.Load()
	if snap == nil {
		return nil, docindex.Errorf(docindex.ENOTLOADED, "no corpus loaded")
	}
	if limit <= 0 {
		return []docindex.SearchResult{}, nil
	}

	qnorm := norm(vec)
	results := make([]docindex.SearchResult, 0, len(snap.candidates))
	for _, c := range snap.candidates {
		if len(c.item.Embedding) != len(vec) {
			return nil, docindex.Errorf(docindex.EDIMENSION,
				"item %s has %d dimensions, query has %d", c.item.ID, len(c.item.Embedding), len(vec))
		}
		results = append(results, docindex.SearchResult{
			Item:  c.item,
			Score: float32(cosine(vec, c.item.Embedding, qnorm, c.norm)),
		})
	}

	slices.SortStableFunc(results, func(a, b docindex.SearchResult) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// All returns every item of the loaded corpus, in corpus order.
func (e *Engine) All() ([]*docindex.Item, error) {
	snap, err := e.current(context.Background())
	if err != nil {
		return nil, err
	}
	return slices.Clone(snap.items), nil
}

// current returns the served snapshot, loading the default corpus first
// when LazyLoad is set.
func (e *Engine) current(ctx context.Context) (*snapshot, error) {
	if snap := e.snap.Load(); snap != nil {
		return snap, nil
	}
	if !e.LazyLoad {
		return nil, docindex.Errorf(docindex.ENOTLOADED, "no corpus loaded")
	}
	if _, err := e.Load(ctx, ""); err != nil {
		return nil, err
	}
	return e.snap.Load(), nil
}

func newSnapshot(items []*docindex.Item) *snapshot {
	snap := &snapshot{items: slices.Clone(items)}
	for _, item := range snap.items {
		if !item.Embedded() {
			continue
		}
		snap.candidates = append(snap.candidates, candidate{item: item, norm: norm(item.Embedding)})
	}
	return snap
}
