package mock

import "github.com/fwojciec/docindex"

var _ docindex.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docindex.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docindex.ExtractResult, error)
	NameFn    func() string
}

func (e *Extractor) Extract(html string) (*docindex.ExtractResult, error) {
	return e.ExtractFn(html)
}

func (e *Extractor) Name() string {
	if e.NameFn == nil {
		return "mock"
	}
	return e.NameFn()
}

var _ docindex.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of docindex.PageExtractor.
type PageExtractor struct {
	ExtractFn func(markup, locator string) (*docindex.Page, error)
}

func (e *PageExtractor) Extract(markup, locator string) (*docindex.Page, error) {
	return e.ExtractFn(markup, locator)
}
