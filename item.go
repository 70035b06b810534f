package docindex

import (
	"context"
	"slices"
)

// Source identifies the documentation corpus an item belongs to.
// Sources partition the corpus: a rebuild replaces one partition at a time.
type Source string

// Known documentation sources.
const (
	SourceBlender      Source = "blender"
	SourceAfterEffects Source = "afterEffects"
)

// Sources returns all known sources in a stable order.
func Sources() []Source {
	return []Source{SourceBlender, SourceAfterEffects}
}

// ParseSource returns the Source named by s.
// Returns EINVALID if the name is not a known source.
func ParseSource(s string) (Source, error) {
	if slices.Contains(Sources(), Source(s)) {
		return Source(s), nil
	}
	return "", Errorf(EINVALID, "unknown source %q", s)
}

// Item is the unit of retrieval: one document, or one chunk of a longer one.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Source    Source    `json:"source"`
	Path      string    `json:"path"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the item contains invalid fields.
func (i *Item) Validate() error {
	if i.ID == "" {
		return Errorf(EINVALID, "item ID required")
	}
	if i.Content == "" {
		return Errorf(EINVALID, "item content required")
	}
	if i.Source == "" {
		return Errorf(EINVALID, "item source required")
	}
	if i.Path == "" {
		return Errorf(EINVALID, "item path required")
	}
	return nil
}

// Embedded reports whether the item carries an embedding vector.
func (i *Item) Embedded() bool {
	return len(i.Embedding) > 0
}

// CorpusStore persists the corpus as a whole.
// Writers replace the entire collection; readers never observe a partial write.
type CorpusStore interface {
	// Load reads the persisted corpus.
	// Returns ENOTFOUND if no corpus has been written yet.
	Load(ctx context.Context) ([]*Item, error)

	// Save atomically replaces the persisted corpus.
	Save(ctx context.Context, items []*Item) error

	// SaveSnapshot atomically writes an interim snapshot of an in-progress
	// build without touching the persisted corpus.
	SaveSnapshot(ctx context.Context, items []*Item) error

	// RemoveSnapshot discards the interim snapshot once the build it
	// protected has been saved. Removing a missing snapshot is not an error.
	RemoveSnapshot(ctx context.Context) error
}
