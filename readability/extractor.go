// Package readability adapts go-readability as a content extraction
// strategy that scores subtrees by text and link density.
package readability

import (
	"strings"

	"github.com/fwojciec/docindex"
	"github.com/go-shiori/go-readability"
)

var _ docindex.Extractor = (*Extractor)(nil)

// DefaultCharThreshold is the minimum number of characters a candidate
// block needs before the heuristic accepts it. Reference pages are often
// short, so it is well below the library default.
const DefaultCharThreshold = 20

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct {
	// CharThreshold overrides DefaultCharThreshold when positive.
	CharThreshold int
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{CharThreshold: DefaultCharThreshold}
}

// Name returns the strategy identifier.
func (e *Extractor) Name() string {
	return "readability"
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*docindex.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docindex.Errorf(docindex.EINVALID, "empty HTML input")
	}

	parser := readability.NewParser()
	if e.CharThreshold > 0 {
		parser.CharThresholds = e.CharThreshold
	}

	article, err := parser.Parse(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, docindex.WrapError(docindex.EINVALID, err, "readability failed")
	}

	return &docindex.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
