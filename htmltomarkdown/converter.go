// Package htmltomarkdown turns extracted HTML fragments into Markdown text
// ready for normalization.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docindex"
)

var _ docindex.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. Links are reduced to their text and
// images are dropped, since URLs carry no meaning once embedded.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into Markdown. Blank input yields an
// empty string so callers can move on to the next strategy.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", docindex.Errorf(docindex.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find("img, picture, svg").Remove()
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		a.ReplaceWithSelection(a.Contents())
	})
	cleaned, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}

	result, err := c.conv.ConvertString(cleaned)
	if err != nil {
		return "", docindex.WrapError(docindex.EINVALID, err, "markdown conversion failed")
	}
	return strings.TrimSpace(result), nil
}
