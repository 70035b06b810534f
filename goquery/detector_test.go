package goquery_test

import (
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/goquery"
	"github.com/stretchr/testify/assert"
)

var _ docindex.FrameworkDetector = (*goquery.Detector)(nil)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want docindex.Framework
	}{
		{
			name: "sphinx from meta generator",
			html: `<html><head><meta name="generator" content="Docutils 0.20.1: https://docutils.sourceforge.io/" /><meta name="generator" content="Sphinx 7.2.6"></head><body></body></html>`,
			want: docindex.FrameworkSphinx,
		},
		{
			name: "sphinx from classic theme sidebar",
			html: `<html><body><div class="documentwrapper"><div class="body">x</div></div><div class="sphinxsidebar"></div></body></html>`,
			want: docindex.FrameworkSphinx,
		},
		{
			name: "sphinx from toctree wrapper",
			html: `<html><body><div class="toctree-wrapper compound"><ul><li><a href="a.html">A</a></li></ul></div></body></html>`,
			want: docindex.FrameworkSphinx,
		},
		{
			name: "mkdocs from meta generator",
			html: `<html><head><meta name="generator" content="mkdocs-1.5.3, mkdocs-material-9.4.6"></head><body></body></html>`,
			want: docindex.FrameworkMkDocs,
		},
		{
			name: "mkdocs from material color scheme",
			html: `<html><body data-md-color-scheme="default"><div class="md-container"></div></body></html>`,
			want: docindex.FrameworkMkDocs,
		},
		{
			name: "unknown for plain html",
			html: `<html><head><title>Page</title></head><body><main><p>Hello</p></main></body></html>`,
			want: docindex.FrameworkUnknown,
		},
		{
			name: "unknown for empty input",
			html: ``,
			want: docindex.FrameworkUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, goquery.NewDetector().Detect(tt.html))
		})
	}

	t.Run("meta generator takes priority over class markers", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta name="generator" content="Sphinx 5.0"></head>
<body data-md-color-scheme="default"><nav class="md-nav--primary"></nav></body></html>`

		assert.Equal(t, docindex.FrameworkSphinx, goquery.NewDetector().Detect(html))
	})
}
