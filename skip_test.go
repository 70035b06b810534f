package docindex_test

import (
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/stretchr/testify/assert"
)

func TestSkipPolicy_Skip(t *testing.T) {
	t.Parallel()

	policy := docindex.DefaultSkipPolicy()

	tests := []struct {
		name    string
		locator string
		title   string
		want    bool
	}{
		{"license page by title and path", "https://docs.blender.org/manual/en/latest/license.html", "License Agreement", true},
		{"license term in title only", "https://example.com/about.html", "GNU License", true},
		{"install directory", "getting_started/installing/install/linux.html", "Linux", true},
		{"generated index page", "https://docs.blender.org/manual/en/latest/genindex.html", "Index", true},
		{"search page", "search.html", "Search", true},
		{"not found page", "https://example.com/404.html", "Oops", true},
		{"regular page", "https://docs.blender.org/manual/en/latest/modeling/meshes/index.html", "Meshes", false},
		{"term as substring of a segment", "https://example.com/installer_notes/page.html", "Notes", false},
		{"case-insensitive title", "x.html", "COPYRIGHT notice", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, policy.Skip(tt.locator, tt.title))
		})
	}

	t.Run("nil policy skips nothing", func(t *testing.T) {
		t.Parallel()

		var p *docindex.SkipPolicy
		assert.False(t, p.Skip("license.html", "License"))
	})
}

func TestSkipPolicy_Dirs(t *testing.T) {
	t.Parallel()

	policy := docindex.DefaultSkipPolicy()
	policy.Dirs = []string{"modeling", "render/"}

	assert.False(t, policy.Skip("modeling/meshes/tools.html", "Tools"))
	assert.False(t, policy.Skip("render/cycles.html", "Cycles"))
	assert.True(t, policy.Skip("addons/rigging.html", "Rigging"))
	assert.False(t, policy.Skip("addons/index.html", "Add-ons"), "index pages bypass the directory list")
	assert.True(t, policy.Skip("legal/index.html", "Legal"), "excluded terms still apply to index pages")
}

func TestCleanTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Extrude Region", docindex.CleanTitle("Extrude Region — Blender Manual"))
	assert.Equal(t, "Extrude Region", docindex.CleanTitle("  Extrude   Region - Blender 4.2 Manual "))
	assert.Equal(t, "Layer object", docindex.CleanTitle("Layer object - After Effects Scripting Guide"))
	assert.Equal(t, "Keyframes", docindex.CleanTitle("Keyframes | Adobe After Effects"))
	assert.Equal(t, "Plain", docindex.CleanTitle("Plain"))
}

func TestTitleFromLocator(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Edit Mode", docindex.TitleFromLocator("modeling/meshes/edit_mode.html"))
	assert.Equal(t, "Video Editing", docindex.TitleFromLocator("https://docs.blender.org/manual/en/latest/video_editing/index.html"))
	assert.Equal(t, "Layer Object", docindex.TitleFromLocator("https://ae-scripting.docsforadobe.dev/layer/layer-object/"))
	assert.Equal(t, "", docindex.TitleFromLocator("https://example.com/"))
}
