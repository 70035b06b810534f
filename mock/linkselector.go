package mock

import "github.com/fwojciec/docindex"

var _ docindex.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of docindex.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]docindex.DiscoveredLink, error)
	NameFn         func() string
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]docindex.DiscoveredLink, error) {
	return s.ExtractLinksFn(html, baseURL)
}

func (s *LinkSelector) Name() string {
	return s.NameFn()
}

var _ docindex.FrameworkDetector = (*FrameworkDetector)(nil)

// FrameworkDetector is a mock implementation of docindex.FrameworkDetector.
type FrameworkDetector struct {
	DetectFn func(html string) docindex.Framework
}

func (d *FrameworkDetector) Detect(html string) docindex.Framework {
	return d.DetectFn(html)
}

var _ docindex.LinkSelectorRegistry = (*LinkSelectorRegistry)(nil)

// LinkSelectorRegistry is a mock implementation of docindex.LinkSelectorRegistry.
type LinkSelectorRegistry struct {
	GetFn        func(framework docindex.Framework) docindex.LinkSelector
	GetForHTMLFn func(html string) docindex.LinkSelector
	RegisterFn   func(framework docindex.Framework, selector docindex.LinkSelector)
	ListFn       func() []docindex.Framework
}

func (r *LinkSelectorRegistry) Get(framework docindex.Framework) docindex.LinkSelector {
	return r.GetFn(framework)
}

func (r *LinkSelectorRegistry) GetForHTML(html string) docindex.LinkSelector {
	return r.GetForHTMLFn(html)
}

func (r *LinkSelectorRegistry) Register(framework docindex.Framework, selector docindex.LinkSelector) {
	r.RegisterFn(framework, selector)
}

func (r *LinkSelectorRegistry) List() []docindex.Framework {
	return r.ListFn()
}
