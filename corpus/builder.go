// Package corpus turns extracted pages into embedded corpus items and merges
// them into the persisted corpus.
package corpus

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/fwojciec/docindex"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Builder defaults.
const (
	DefaultSnapshotEvery = 10
	DefaultPace          = 200 * time.Millisecond
)

// Placeholder content used when a build produced no items.
const (
	PlaceholderTitle   = "Placeholder Documentation"
	PlaceholderContent = "No documentation items were generated for this source."
	PlaceholderPath    = "placeholder"
)

// Stats counts what a build has done so far.
type Stats struct {
	Pages    int // pages added
	Chunks   int // chunks produced from those pages
	Embedded int // chunks kept with an embedding
	Dropped  int // chunks dropped after an embedding failure
	Tokens   int // tokens in kept chunks, when a TokenCounter is set
}

// CommitResult describes the corpus written by Commit.
type CommitResult struct {
	Built int // items contributed by this build
	Kept  int // items kept from the existing corpus
	Total int // items written
}

// Builder accumulates the items of one source partition.
//
// Each added page is chunked and every chunk embedded. A chunk whose
// embedding fails is logged and dropped; the build continues. Every
// SnapshotEvery items the accumulated items are written as a snapshot.
// Builder is safe for concurrent use, though pages are embedded one at a
// time.
type Builder struct {
	Source   docindex.Source
	Embedder docindex.Embedder
	Store    docindex.CorpusStore

	// ChunkSize bounds item content length in bytes.
	ChunkSize int

	// SnapshotEvery is the snapshot interval in items.
	SnapshotEvery int

	// Pace is the minimum interval between embedding calls. Negative
	// disables pacing.
	Pace time.Duration

	// Exclude lists sources dropped from the existing corpus on Commit.
	Exclude []docindex.Source

	// Tokens, if set, counts tokens of kept chunks for Stats.
	Tokens docindex.TokenCounter

	// Logger receives dropped-chunk warnings. Nil disables logging.
	Logger *slog.Logger

	// NewID generates item IDs. Defaults to random UUIDs.
	NewID func() string

	once    sync.Once
	limiter *rate.Limiter

	mu    sync.Mutex
	items []*docindex.Item
	dims  int
	stats Stats
}

// NewBuilder returns a Builder for source with default settings.
func NewBuilder(source docindex.Source, embedder docindex.Embedder, store docindex.CorpusStore) *Builder {
	return &Builder{Source: source, Embedder: embedder, Store: store}
}

// Add chunks and embeds page. It matches crawl.PageFunc.
// Only context cancellation is returned as an error; per-chunk failures are
// counted in Stats.
func (b *Builder) Add(ctx context.Context, page *docindex.Page) error {
	b.init()

	b.mu.Lock()
	defer b.mu.Unlock()

	chunks := docindex.Chunk(page, b.Source, orDefault(b.ChunkSize, docindex.DefaultChunkSize))
	b.stats.Pages++
	b.stats.Chunks += len(chunks)

	for _, item := range chunks {
		if err := b.limiter.Wait(ctx); err != nil {
			return err
		}

		vec, err := b.Embedder.Embed(ctx, item.Content)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			b.drop(item, err)
			continue
		}
		if b.dims == 0 {
			b.dims = len(vec)
		} else if len(vec) != b.dims {
			b.drop(item, docindex.Errorf(docindex.EDIMENSION, "got %d dimensions, corpus has %d", len(vec), b.dims))
			continue
		}

		item.ID = b.NewID()
		item.Embedding = vec
		b.items = append(b.items, item)
		b.stats.Embedded++
		b.countTokens(ctx, item.Content)

		if len(b.items)%orDefault(b.SnapshotEvery, DefaultSnapshotEvery) == 0 {
			b.snapshot(ctx)
		}
	}
	return nil
}

// Items returns a copy of the items built so far.
func (b *Builder) Items() []*docindex.Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.items)
}

// Stats returns build counters.
func (b *Builder) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

// Commit merges the built items into the persisted corpus, saves it and
// discards the build snapshot.
//
// A build with no items contributes a single placeholder item without an
// embedding, so the partition is still visible in the corpus. A missing
// corpus is treated as empty. If the kept items were embedded with a
// different vector length than this build, Commit returns EDIMENSION and
// leaves the stored corpus untouched.
func (b *Builder) Commit(ctx context.Context) (*CommitResult, error) {
	b.init()

	b.mu.Lock()
	built, dims := slices.Clone(b.items), b.dims
	b.mu.Unlock()
	if len(built) == 0 {
		built = []*docindex.Item{b.placeholder()}
	}

	existing, err := b.Store.Load(ctx)
	if err != nil && docindex.ErrorCode(err) != docindex.ENOTFOUND {
		return nil, err
	}

	merged := Merge(existing, built, b.Source, b.Exclude...)
	if err := checkDimensions(merged[:len(merged)-len(built)], dims); err != nil {
		return nil, err
	}
	if err := b.Store.Save(ctx, merged); err != nil {
		return nil, err
	}
	if err := b.Store.RemoveSnapshot(ctx); err != nil && b.Logger != nil {
		b.Logger.Warn("snapshot removal failed", "err", err)
	}

	return &CommitResult{
		Built: len(built),
		Kept:  len(merged) - len(built),
		Total: len(merged),
	}, nil
}

// checkDimensions reports EDIMENSION if an embedded kept item does not have
// dims dimensions. A build without embeddings matches anything.
func checkDimensions(kept []*docindex.Item, dims int) error {
	if dims == 0 {
		return nil
	}
	for _, item := range kept {
		if item.Embedded() && len(item.Embedding) != dims {
			return docindex.Errorf(docindex.EDIMENSION,
				"built %d-dimension vectors but %s item %s has %d; rebuild or exclude that source",
				dims, item.Source, item.ID, len(item.Embedding))
		}
	}
	return nil
}

func (b *Builder) init() {
	b.once.Do(func() {
		limit := rate.Every(orDefault(b.Pace, DefaultPace))
		if b.Pace < 0 {
			limit = rate.Inf
		}
		b.limiter = rate.NewLimiter(limit, 1)
		if b.NewID == nil {
			b.NewID = uuid.NewString
		}
	})
}

func (b *Builder) placeholder() *docindex.Item {
	return &docindex.Item{
		ID:      b.NewID(),
		Title:   PlaceholderTitle,
		Content: PlaceholderContent,
		Source:  b.Source,
		Path:    PlaceholderPath,
	}
}

func (b *Builder) drop(item *docindex.Item, err error) {
	b.stats.Dropped++
	if b.Logger != nil {
		b.Logger.Warn("chunk dropped", "path", item.Path, "title", item.Title, "err", err)
	}
}

// snapshot writes the items so far. Failures are logged, not returned: the
// snapshot only protects progress against a crash.
func (b *Builder) snapshot(ctx context.Context) {
	if err := b.Store.SaveSnapshot(ctx, slices.Clone(b.items)); err != nil && b.Logger != nil {
		b.Logger.Warn("snapshot failed", "items", len(b.items), "err", err)
	}
}

func (b *Builder) countTokens(ctx context.Context, text string) {
	if b.Tokens == nil {
		return
	}
	n, err := b.Tokens.CountTokens(ctx, text)
	if err != nil {
		if b.Logger != nil {
			b.Logger.Debug("token count failed", "err", err)
		}
		return
	}
	b.stats.Tokens += n
}

func orDefault[T int | time.Duration](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}
