package docindex

// Page is the extracted, normalized form of one documentation page.
type Page struct {
	// Locator is the URL or relative file path the page was read from.
	Locator string

	// Title is the resolved page heading.
	Title string

	// Content is the normalized plain-text body.
	Content string
}

// PageExtractor turns raw markup into a Page.
type PageExtractor interface {
	// Extract resolves the title and main content of markup read from
	// locator. It returns (nil, nil) when the page is skipped by policy or
	// yields too little content; an error means the markup could not be
	// processed at all.
	Extract(markup, locator string) (*Page, error)
}
