package goquery

import "github.com/fwojciec/docindex"

var _ docindex.LinkSelector = (*GenericSelector)(nil)

// genericConfigs use universal patterns that work across documentation
// generators. The final catch-all keeps sites with non-semantic markup
// crawlable; scope filtering happens in the crawler.
var genericConfigs = []SelectorConfig{
	{".toc a[href], .table-of-contents a[href], .sidebar a[href], aside a[href]", docindex.PriorityTOC, "toc"},
	{"nav a[href], [role=\"navigation\"] a[href], .nav a[href], .menu a[href], .navbar a[href]", docindex.PriorityNavigation, "nav"},
	{"main a[href], article a[href], .content a[href], .doc-content a[href]", docindex.PriorityContent, "content"},
	{"footer a[href], .footer a[href]", docindex.PriorityFooter, "footer"},
	{"a[href]", docindex.PriorityFallback, "fallback"},
}

// GenericSelector extracts links using selectors common to most sites.
type GenericSelector struct{}

// NewGenericSelector creates a new GenericSelector.
func NewGenericSelector() *GenericSelector {
	return &GenericSelector{}
}

// Name returns the selector's identifier.
func (s *GenericSelector) Name() string {
	return "generic"
}

// ExtractLinks parses HTML and returns discovered links with priority.
func (s *GenericSelector) ExtractLinks(html string, baseURL string) ([]docindex.DiscoveredLink, error) {
	return ExtractLinksWithConfigs(html, baseURL, genericConfigs)
}
