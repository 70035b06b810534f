package goquery

import "github.com/fwojciec/docindex"

var _ docindex.LinkSelector = (*SphinxSelector)(nil)

// sphinxConfigs cover the classic theme used by the Blender manual, the
// Furo-based Blender API reference and the ReadTheDocs theme.
var sphinxConfigs = []SelectorConfig{
	{".toctree-wrapper a[href]", docindex.PriorityTOC, "toc"},
	{"#localtoc a[href], .toc-tree a[href]", docindex.PriorityTOC, "toc"},
	{".sphinxsidebar a[href], .sidebar-tree a[href]", docindex.PriorityNavigation, "nav"},
	{".wy-nav-side a[href], .wy-menu-vertical a[href]", docindex.PriorityNavigation, "nav"},
	{".related a[href], .prev-next-area a[href]", docindex.PriorityNavigation, "nav"},
	{".document a[href], .body a[href], article a[href]", docindex.PriorityContent, "content"},
	{"footer a[href]", docindex.PriorityFooter, "footer"},
}

// SphinxSelector extracts links from Sphinx documentation sites.
type SphinxSelector struct{}

// NewSphinxSelector creates a new SphinxSelector.
func NewSphinxSelector() *SphinxSelector {
	return &SphinxSelector{}
}

// Name returns the selector's identifier.
func (s *SphinxSelector) Name() string {
	return "sphinx"
}

// ExtractLinks parses HTML and returns discovered links with priority.
func (s *SphinxSelector) ExtractLinks(html string, baseURL string) ([]docindex.DiscoveredLink, error) {
	return ExtractLinksWithConfigs(html, baseURL, sphinxConfigs)
}
