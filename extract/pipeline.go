// Package extract turns raw documentation markup into normalized pages by
// running an ordered chain of extraction strategies.
package extract

import (
	"unicode/utf8"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/goquery"
	"github.com/fwojciec/docindex/htmltomarkdown"
	"github.com/fwojciec/docindex/readability"
	"github.com/fwojciec/docindex/trafilatura"
)

var _ docindex.PageExtractor = (*Pipeline)(nil)

// Pipeline tries each strategy in order and keeps the first one whose
// converted, normalized text is non-empty.
type Pipeline struct {
	Strategies []docindex.Extractor
	Converter  docindex.Converter

	// Skip excludes pages by locator and title. Nil keeps every page.
	Skip *docindex.SkipPolicy

	// MinContentLength rejects pages with fewer characters of content.
	MinContentLength int
}

// NewPipeline returns a pipeline with the default strategy chain: family
// selectors, trafilatura, readability and finally the whole body.
func NewPipeline(skip *docindex.SkipPolicy) *Pipeline {
	return &Pipeline{
		Strategies: []docindex.Extractor{
			goquery.NewContentExtractor(),
			trafilatura.NewExtractor(),
			readability.NewExtractor(),
			goquery.NewBodyExtractor(),
		},
		Converter:        htmltomarkdown.NewConverter(),
		Skip:             skip,
		MinContentLength: docindex.DefaultMinContentLength,
	}
}

// Extract implements docindex.PageExtractor.
//
// A strategy that fails or finds nothing hands over to the next one. The
// first non-empty title reported by any strategy tried wins, falling back to
// a title derived from locator.
func (p *Pipeline) Extract(markup, locator string) (*docindex.Page, error) {
	var title, content string
	var lastErr error
	failed := 0

	for _, strategy := range p.Strategies {
		result, err := strategy.Extract(markup)
		if err != nil {
			lastErr = err
			failed++
			continue
		}
		if title == "" {
			title = docindex.CleanTitle(result.Title)
		}
		if result.ContentHTML == "" {
			continue
		}
		text, err := p.Converter.Convert(result.ContentHTML)
		if err != nil {
			lastErr = err
			failed++
			continue
		}
		if text = docindex.NormalizeSentences(text); text != "" {
			content = text
			break
		}
	}

	if content == "" && failed == len(p.Strategies) && lastErr != nil {
		return nil, docindex.WrapError(docindex.EINVALID, lastErr, "no extraction strategy could process %s", locator)
	}

	if title == "" {
		title = docindex.CleanTitle(docindex.TitleFromLocator(locator))
	}

	if p.Skip.Skip(locator, title) {
		return nil, nil
	}
	if content == "" || utf8.RuneCountInString(content) < p.MinContentLength {
		return nil, nil
	}

	return &docindex.Page{
		Locator: locator,
		Title:   title,
		Content: content,
	}, nil
}
