package corpus_test

import (
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/corpus"
	"github.com/stretchr/testify/assert"
)

func item(id string, source docindex.Source) *docindex.Item {
	return &docindex.Item{ID: id, Content: "content " + id, Source: source, Path: "/" + id}
}

func ids(items []*docindex.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestMerge(t *testing.T) {
	t.Parallel()

	t.Run("replaces the rebuilt partition and keeps the rest", func(t *testing.T) {
		t.Parallel()

		existing := []*docindex.Item{
			item("b-old-1", docindex.SourceBlender),
			item("ae-1", docindex.SourceAfterEffects),
			item("b-old-2", docindex.SourceBlender),
			item("ae-2", docindex.SourceAfterEffects),
		}
		built := []*docindex.Item{
			item("b-new-1", docindex.SourceBlender),
			item("b-new-2", docindex.SourceBlender),
			item("b-new-3", docindex.SourceBlender),
		}

		got := corpus.Merge(existing, built, docindex.SourceBlender)

		assert.Equal(t, []string{"ae-1", "ae-2", "b-new-1", "b-new-2", "b-new-3"}, ids(got))
	})

	t.Run("drops excluded partitions", func(t *testing.T) {
		t.Parallel()

		existing := []*docindex.Item{
			item("b-old", docindex.SourceBlender),
			item("ae", docindex.SourceAfterEffects),
		}
		built := []*docindex.Item{item("b-new", docindex.SourceBlender)}

		got := corpus.Merge(existing, built, docindex.SourceBlender, docindex.SourceAfterEffects)

		assert.Equal(t, []string{"b-new"}, ids(got))
	})

	t.Run("empty existing corpus yields built items", func(t *testing.T) {
		t.Parallel()

		built := []*docindex.Item{item("ae", docindex.SourceAfterEffects)}

		got := corpus.Merge(nil, built, docindex.SourceAfterEffects)

		assert.Equal(t, []string{"ae"}, ids(got))
	})

	t.Run("does not modify inputs", func(t *testing.T) {
		t.Parallel()

		existing := []*docindex.Item{item("b-old", docindex.SourceBlender), item("ae", docindex.SourceAfterEffects)}
		built := []*docindex.Item{item("b-new", docindex.SourceBlender)}

		_ = corpus.Merge(existing, built, docindex.SourceBlender)

		assert.Equal(t, []string{"b-old", "ae"}, ids(existing))
		assert.Equal(t, []string{"b-new"}, ids(built))
	})
}
