package goquery

import (
	"slices"

	"github.com/fwojciec/docindex"
)

var _ docindex.LinkSelectorRegistry = (*Registry)(nil)

// Registry maps detected frameworks to link selectors, falling back to a
// generic selector when the framework is unknown or has no selector.
type Registry struct {
	detector  docindex.FrameworkDetector
	fallback  docindex.LinkSelector
	selectors map[docindex.Framework]docindex.LinkSelector
}

// NewRegistry creates a new Registry with the given detector and fallback selector.
func NewRegistry(detector docindex.FrameworkDetector, fallback docindex.LinkSelector) *Registry {
	return &Registry{
		detector:  detector,
		fallback:  fallback,
		selectors: make(map[docindex.Framework]docindex.LinkSelector),
	}
}

// NewDefaultRegistry returns a registry for the documentation families the
// crawler knows: Sphinx (Blender manual and API, After Effects guides) and
// MkDocs, with the generic selector as fallback.
func NewDefaultRegistry(detector docindex.FrameworkDetector) *Registry {
	r := NewRegistry(detector, NewGenericSelector())
	r.Register(docindex.FrameworkSphinx, NewSphinxSelector())
	r.Register(docindex.FrameworkMkDocs, NewMkDocsSelector())
	return r
}

// Get returns the selector for a specific framework, or nil.
func (r *Registry) Get(framework docindex.Framework) docindex.LinkSelector {
	return r.selectors[framework]
}

// GetForHTML detects the framework from HTML and returns the appropriate selector.
func (r *Registry) GetForHTML(html string) docindex.LinkSelector {
	if selector, ok := r.selectors[r.detector.Detect(html)]; ok {
		return selector
	}
	return r.fallback
}

// Register adds a selector for a framework, replacing any existing one.
func (r *Registry) Register(framework docindex.Framework, selector docindex.LinkSelector) {
	r.selectors[framework] = selector
}

// List returns all registered frameworks in sorted order.
func (r *Registry) List() []docindex.Framework {
	frameworks := make([]docindex.Framework, 0, len(r.selectors))
	for f := range r.selectors {
		frameworks = append(frameworks, f)
	}
	slices.Sort(frameworks)
	return frameworks
}
