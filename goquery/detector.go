package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docindex"
)

var _ docindex.FrameworkDetector = (*Detector)(nil)

// Detector identifies documentation frameworks from HTML content using the
// meta generator tag and structural markers unique to each generator.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified framework.
func (d *Detector) Detect(html string) docindex.Framework {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return docindex.FrameworkUnknown
	}
	return detect(doc)
}

func detect(doc *goquery.Document) docindex.Framework {
	// Meta generator tags are the most reliable signal when present.
	// Docutils pages carry more than one generator tag.
	var framework docindex.Framework
	doc.Find("meta[name='generator']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		generator := strings.ToLower(s.AttrOr("content", ""))
		switch {
		case strings.Contains(generator, "sphinx"):
			framework = docindex.FrameworkSphinx
		case strings.Contains(generator, "mkdocs"):
			framework = docindex.FrameworkMkDocs
		}
		return framework == docindex.FrameworkUnknown
	})
	if framework != docindex.FrameworkUnknown {
		return framework
	}

	// data-md-* attributes are unique to MkDocs Material.
	if hasSelector(doc, "[data-md-color-scheme]") ||
		hasSelector(doc, "[data-md-component]") ||
		hasSelector(doc, ".md-nav--primary") {
		return docindex.FrameworkMkDocs
	}

	// Classic, Furo and ReadTheDocs Sphinx themes.
	if hasSelector(doc, ".toctree-wrapper") ||
		hasSelector(doc, ".sphinxsidebar") ||
		hasSelector(doc, ".wy-nav-side") ||
		hasSelector(doc, "div.documentwrapper") {
		return docindex.FrameworkSphinx
	}

	return docindex.FrameworkUnknown
}

func hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
