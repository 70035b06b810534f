package docindex

import (
	"context"
	"regexp"
)

// SitemapService discovers page URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs finds URLs listed in the sitemaps of baseURL's host that
	// lie under baseURL's directory. It checks robots.txt for sitemap
	// directives, then falls back to /sitemap.xml. Sitemap indexes are
	// resolved recursively. A nil filter passes every URL.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter specifies patterns for including and excluding URLs.
// Crawl ignore patterns are Exclude entries.
type URLFilter struct {
	// Include patterns. If set, only URLs matching at least one pass.
	Include []*regexp.Regexp

	// Exclude patterns. URLs matching any are rejected.
	// Exclude is applied after Include.
	Exclude []*regexp.Regexp
}

// NewURLFilter compiles exclusion patterns into a filter.
func NewURLFilter(exclude ...string) (*URLFilter, error) {
	f := &URLFilter{}
	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid ignore pattern %q: %v", pattern, err)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	if len(f.Include) > 0 && !matchAny(f.Include, url) {
		return false
	}
	return !matchAny(f.Exclude, url)
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
