package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/docindex/bloom"
	"github.com/stretchr/testify/assert"
)

func TestSet_Add(t *testing.T) {
	t.Parallel()

	t.Run("reports new locators", func(t *testing.T) {
		t.Parallel()

		s := bloom.NewSet(100, 0.01)

		assert.True(t, s.Add("https://docs.blender.org/manual/en/latest/modeling/index.html"))
		assert.False(t, s.Add("https://docs.blender.org/manual/en/latest/modeling/index.html"))
		assert.True(t, s.Add("https://docs.blender.org/manual/en/latest/animation/index.html"))
		assert.Equal(t, 2, s.Len())
	})

	t.Run("has no false positives when the filter saturates", func(t *testing.T) {
		t.Parallel()

		// A tiny filter with a high false positive rate makes filter hits
		// for unseen locators likely.
		s := bloom.NewSet(4, 0.5)
		for i := range 500 {
			assert.True(t, s.Add(fmt.Sprintf("page-%d.html", i)), "page-%d.html", i)
		}
		assert.Equal(t, 500, s.Len())
		assert.False(t, s.Contains("page-500.html"))
	})
}

func TestSet_Contains(t *testing.T) {
	t.Parallel()

	s := bloom.NewSet(100, 0.01)
	s.Add("a.html")

	assert.True(t, s.Contains("a.html"))
	assert.False(t, s.Contains("b.html"))
	assert.Equal(t, 1, s.Len())
}
