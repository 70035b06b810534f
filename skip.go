package docindex

import (
	"path"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMinContentLength is the default noise threshold for page content.
const DefaultMinContentLength = 100

// SkipPolicy decides which pages are excluded from the corpus regardless of
// their content.
type SkipPolicy struct {
	// Pages are page names (without extension) that are never indexed,
	// such as generated index and search pages.
	Pages []string

	// Terms exclude a page when they appear in its title, or as a path
	// segment or page name of its locator. Matching is case-insensitive.
	Terms []string

	// Dirs, when non-empty, restricts indexing to locators under one of
	// these directories. Index pages are always kept.
	Dirs []string
}

// DefaultSkipPolicy returns the policy for legal, installation and
// generated pages.
func DefaultSkipPolicy() *SkipPolicy {
	return &SkipPolicy{
		Pages: []string{"genindex", "search", "404"},
		Terms: []string{"license", "copyright", "install", "download", "trademark", "legal", "credits"},
	}
}

// Skip reports whether the page at locator with the given title is excluded.
//
// Checks run in order: excluded page names, excluded terms, then the
// directory allow-list, which index pages bypass.
func (p *SkipPolicy) Skip(locator, title string) bool {
	if p == nil {
		return false
	}
	loc := strings.ToLower(locatorPath(locator))
	if !strings.HasPrefix(loc, "/") {
		loc = "/" + loc
	}
	name := strings.TrimSuffix(path.Base(loc), path.Ext(loc))

	for _, page := range p.Pages {
		if name == strings.ToLower(page) {
			return true
		}
	}

	lowerTitle := strings.ToLower(title)
	for _, term := range p.Terms {
		term = strings.ToLower(term)
		if strings.Contains(lowerTitle, term) ||
			strings.Contains(loc, "/"+term+"/") ||
			strings.HasSuffix(loc, "/"+term+".html") {
			return true
		}
	}

	if len(p.Dirs) == 0 || name == "index" {
		return false
	}
	for _, dir := range p.Dirs {
		dir = strings.Trim(strings.ToLower(dir), "/")
		if strings.HasPrefix(strings.TrimPrefix(loc, "/"), dir+"/") {
			return false
		}
	}
	return true
}

// locatorPath returns the path portion of a URL locator, or the locator
// itself for file paths.
func locatorPath(locator string) string {
	locator = strings.ReplaceAll(locator, "\\", "/")
	if i := strings.Index(locator, "://"); i >= 0 {
		rest := locator[i+3:]
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			rest = rest[j:]
		} else {
			rest = "/"
		}
		if k := strings.IndexAny(rest, "?#"); k >= 0 {
			rest = rest[:k]
		}
		return rest
	}
	return locator
}

// titleSuffixes strips site branding appended to page titles.
var titleSuffixes = []*regexp.Regexp{
	regexp.MustCompile(`\s*[-–—|]\s*Blender.*Manual.*$`),
	regexp.MustCompile(`\s*[-–—|]\s*Blender.*Documentation.*$`),
	regexp.MustCompile(`\s*[-–—|]\s*Adobe.*$`),
	regexp.MustCompile(`\s*[-–—|]\s*After Effects (Scripting|Expression) Guide.*$`),
}

// CleanTitle trims whitespace and known site-branding suffixes from title.
func CleanTitle(title string) string {
	title = strings.Join(strings.Fields(title), " ")
	for _, re := range titleSuffixes {
		title = re.ReplaceAllString(title, "")
	}
	return strings.TrimSpace(title)
}

// TitleFromLocator derives a title from the last path element of locator:
// the extension is dropped, underscores and hyphens become spaces and each
// word is capitalized. Index pages take the name of their directory.
func TitleFromLocator(locator string) string {
	p := strings.TrimSuffix(locatorPath(locator), "/")
	base := path.Base(p)
	name := strings.TrimSuffix(base, path.Ext(base))
	if name == "index" {
		name = path.Base(path.Dir(p))
	}
	if name == "." || name == "/" {
		return ""
	}
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
