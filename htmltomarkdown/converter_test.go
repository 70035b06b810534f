package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ docindex.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<h1>Keyframes</h1><p>Press I to insert.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Keyframes")
		assert.Contains(t, md, "Press I to insert.")
	})

	t.Run("keeps paragraph breaks", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>First paragraph.</p><p>Second paragraph.</p>`)

		require.NoError(t, err)
		assert.Equal(t, "First paragraph.\n\nSecond paragraph.", md)
	})

	t.Run("reduces links to their text", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>See <a href="https://docs.blender.org/api/current/bpy.ops.html">operators</a> for details.</p>`)

		require.NoError(t, err)
		assert.Equal(t, "See operators for details.", md)
	})

	t.Run("drops images", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>Panel <img src="panel.png" alt="screenshot"> layout.</p>`)

		require.NoError(t, err)
		assert.NotContains(t, md, "panel.png")
		assert.Contains(t, md, "Panel")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<ul><li>Fixed Count</li><li>Fit Length</li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- Fixed Count")
		assert.Contains(t, md, "- Fit Length")
	})

	t.Run("converts code blocks", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<pre><code class="language-python">bpy.ops.mesh.primitive_cube_add()</code></pre>`)

		require.NoError(t, err)
		assert.Contains(t, md, "```python")
		assert.Contains(t, md, "bpy.ops.mesh.primitive_cube_add()")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<table>
<thead><tr><th>Property</th><th>Type</th></tr></thead>
<tbody><tr><td>opacity</td><td>Property</td></tr></tbody>
</table>`)

		require.NoError(t, err)
		assert.Contains(t, md, "opacity")
		assert.Contains(t, md, "|")
	})

	t.Run("blank input yields empty text", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert("  \n ")

		require.NoError(t, err)
		assert.Empty(t, md)
	})
}
