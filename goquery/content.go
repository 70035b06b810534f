package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docindex"
)

var (
	_ docindex.Extractor = (*ContentExtractor)(nil)
	_ docindex.Extractor = (*BodyExtractor)(nil)
)

// ContentRules lists, for one documentation family, the main-content
// selectors in priority order and the boilerplate removed before matching.
type ContentRules struct {
	Selectors []string
	Remove    []string
}

// alwaysRemove is stripped from every document before extraction.
const alwaysRemove = "script, style, noscript, template, iframe, svg"

// DefaultRules returns the content rules for the known families.
// FrameworkUnknown holds the generic rules used for any other site.
func DefaultRules() map[docindex.Framework]ContentRules {
	return map[docindex.Framework]ContentRules{
		docindex.FrameworkSphinx: {
			Selectors: []string{
				".document .section",
				".document section",
				".documentwrapper",
				`.document[role="main"]`,
				".body",
				".rst-content .section",
				"article",
			},
			Remove: []string{
				".sphinxsidebar", ".footer", ".header", "nav", ".rel", ".related",
				".navigation", ".toc", ".nextprev", ".breadcrumb", ".feedback",
				".headerlink", ".prev-next-area",
			},
		},
		docindex.FrameworkMkDocs: {
			Selectors: []string{".md-content", "article", "main", ".content"},
			Remove:    []string{".md-sidebar", ".md-footer", ".md-header", "nav", ".toc", ".md-source-file", ".headerlink"},
		},
		docindex.FrameworkUnknown: {
			Selectors: []string{"main", "article", `[role="main"]`, ".content", "#content"},
			Remove:    []string{"nav", "header", "footer", "aside", ".sidebar", ".toc", ".breadcrumb", ".feedback"},
		},
	}
}

// ContentExtractor isolates the main content using the selectors of the
// detected documentation family. It always reports the page title (first
// h1, else the title element) so later strategies can reuse it.
type ContentExtractor struct {
	rules map[docindex.Framework]ContentRules
}

// NewContentExtractor creates a ContentExtractor with the default rules.
func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{
		rules: DefaultRules(),
	}
}

// Name returns the strategy identifier.
func (e *ContentExtractor) Name() string {
	return "selectors"
}

// Extract returns the first non-empty family selector match.
func (e *ContentExtractor) Extract(html string) (*docindex.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docindex.Errorf(docindex.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &docindex.ExtractResult{Title: pageTitle(doc)}

	rules, ok := e.rules[detect(doc)]
	if !ok {
		rules = e.rules[docindex.FrameworkUnknown]
	}

	doc.Find(alwaysRemove).Remove()
	for _, sel := range rules.Remove {
		doc.Find(sel).Remove()
	}

	for _, selector := range rules.Selectors {
		match := doc.Find(selector).First()
		if match.Length() == 0 || strings.TrimSpace(match.Text()) == "" {
			continue
		}
		content, err := goquery.OuterHtml(match)
		if err != nil {
			return nil, err
		}
		result.ContentHTML = content
		break
	}

	return result, nil
}

// BodyExtractor returns the whole document body with scripts and styles
// removed. It is the last resort of the strategy chain.
type BodyExtractor struct{}

// NewBodyExtractor creates a new BodyExtractor.
func NewBodyExtractor() *BodyExtractor {
	return &BodyExtractor{}
}

// Name returns the strategy identifier.
func (e *BodyExtractor) Name() string {
	return "body"
}

// Extract returns the document body.
func (e *BodyExtractor) Extract(html string) (*docindex.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docindex.Errorf(docindex.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &docindex.ExtractResult{Title: pageTitle(doc)}
	doc.Find(alwaysRemove).Remove()

	body := doc.Find("body")
	if strings.TrimSpace(body.Text()) == "" {
		return result, nil
	}
	content, err := body.Html()
	if err != nil {
		return nil, err
	}
	result.ContentHTML = content
	return result, nil
}

// pageTitle returns the text of the first h1, else the title element.
func pageTitle(doc *goquery.Document) string {
	h1 := doc.Find("h1").First().Clone()
	h1.Find(".headerlink").Remove()
	if title := strings.TrimSpace(h1.Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
