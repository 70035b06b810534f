package goquery

import "github.com/fwojciec/docindex"

var _ docindex.LinkSelector = (*MkDocsSelector)(nil)

// mkdocsConfigs target MkDocs Material, which hosts the After Effects
// scripting and expression guides.
var mkdocsConfigs = []SelectorConfig{
	{".md-sidebar--secondary a[href], [data-md-component='toc'] a[href]", docindex.PriorityTOC, "toc"},
	{".md-nav--primary a[href], [data-md-component='navigation'] a[href]", docindex.PriorityNavigation, "nav"},
	{".md-content a[href], article a[href]", docindex.PriorityContent, "content"},
	{".md-footer a[href], footer a[href]", docindex.PriorityFooter, "footer"},
}

// MkDocsSelector extracts links from MkDocs documentation sites.
type MkDocsSelector struct{}

// NewMkDocsSelector creates a new MkDocsSelector.
func NewMkDocsSelector() *MkDocsSelector {
	return &MkDocsSelector{}
}

// Name returns the selector's identifier.
func (s *MkDocsSelector) Name() string {
	return "mkdocs"
}

// ExtractLinks parses HTML and returns discovered links with priority.
func (s *MkDocsSelector) ExtractLinks(html string, baseURL string) ([]docindex.DiscoveredLink, error) {
	return ExtractLinksWithConfigs(html, baseURL, mkdocsConfigs)
}
