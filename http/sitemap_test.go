package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/docindex"
	dihttp "github.com/fwojciec/docindex/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func urlset(paths ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, p := range paths {
		b.WriteString("  <url><loc>" + p + "</loc></url>\n")
	}
	b.WriteString("</urlset>")
	return b.String()
}

func sitemapIndex(paths ...string) string {
	var b strings.Builder
	b.WriteString(`<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	for _, p := range paths {
		b.WriteString("<sitemap><loc>" + p + "</loc></sitemap>")
	}
	b.WriteString("</sitemapindex>")
	return b.String()
}

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		files  map[string]string
		seed   string
		filter *docindex.URLFilter
		want   []string
	}{
		{
			name: "robots.txt directive",
			files: map[string]string{
				"/robots.txt":       "User-agent: *\nDisallow: /_static/\nsitemap: {{BASE}}/docs-sitemap.xml\n",
				"/docs-sitemap.xml": urlset("{{BASE}}/layers/layer/", "{{BASE}}/general/project/"),
			},
			want: []string{"/layers/layer/", "/general/project/"},
		},
		{
			name: "several robots.txt directives",
			files: map[string]string{
				"/robots.txt": "Sitemap: {{BASE}}/a.xml\nSitemap: {{BASE}}/b.xml\n",
				"/a.xml":      urlset("{{BASE}}/layers/layer/"),
				"/b.xml":      urlset("{{BASE}}/item/comp/"),
			},
			want: []string{"/layers/layer/", "/item/comp/"},
		},
		{
			name: "fallback to /sitemap.xml",
			files: map[string]string{
				"/sitemap.xml": urlset("{{BASE}}/introduction/overview/"),
			},
			want: []string{"/introduction/overview/"},
		},
		{
			name: "sitemap index resolved recursively and once",
			files: map[string]string{
				"/sitemap.xml":         sitemapIndex("{{BASE}}/sitemap-manual.xml", "{{BASE}}/sitemap-api.xml", "{{BASE}}/sitemap.xml"),
				"/sitemap-manual.xml":  urlset("{{BASE}}/manual/modeling/index.html"),
				"/sitemap-api.xml":     sitemapIndex("{{BASE}}/sitemap-api-bpy.xml"),
				"/sitemap-api-bpy.xml": urlset("{{BASE}}/api/bpy.ops.html"),
			},
			want: []string{"/manual/modeling/index.html", "/api/bpy.ops.html"},
		},
		{
			name: "no sitemap",
			files: map[string]string{
				"/robots.txt": "User-agent: *\n",
			},
			want: []string{},
		},
		{
			name: "scoped to seed directory on the seed host",
			files: map[string]string{
				"/sitemap.xml": urlset(
					"{{BASE}}/manual/modeling/meshes.html",
					"{{BASE}}/manual/modeling/curves/index.html",
					"{{BASE}}/manual/modeling/meshes.html",
					"{{BASE}}/manual/animation/keyframes.html",
					"https://other.example.com/manual/modeling/x.html",
				),
			},
			seed: "/manual/modeling/index.html",
			want: []string{"/manual/modeling/meshes.html", "/manual/modeling/curves/index.html"},
		},
		{
			name: "filter",
			files: map[string]string{
				"/sitemap.xml": urlset("{{BASE}}/manual/genindex.html", "{{BASE}}/manual/render/cycles.html", "{{BASE}}/manual/search.html"),
			},
			filter: mustFilter(t, `/genindex`, `/search`),
			want:   []string{"/manual/render/cycles.html"},
		},
		{
			name: "include filter",
			files: map[string]string{
				"/sitemap.xml": urlset("{{BASE}}/manual/render/cycles.html", "{{BASE}}/blog/release.html"),
			},
			filter: &docindex.URLFilter{Include: []*regexp.Regexp{regexp.MustCompile(`/manual/`)}},
			want:   []string{"/manual/render/cycles.html"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, _ := newSitemapServer(t, tt.files)

			urls, err := dihttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL+tt.seed, tt.filter)

			require.NoError(t, err)
			want := make([]string, 0, len(tt.want))
			for _, p := range tt.want {
				want = append(want, srv.URL+p)
			}
			assert.Equal(t, want, urls)
		})
	}
}

func TestSitemapService_DiscoverURLs_Errors(t *testing.T) {
	t.Parallel()

	t.Run("context canceled", func(t *testing.T) {
		t.Parallel()

		srv, _ := newSitemapServer(t, map[string]string{"/sitemap.xml": urlset("{{BASE}}/a/")})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := dihttp.NewSitemapService(srv.Client()).DiscoverURLs(ctx, srv.URL, nil)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := dihttp.NewSitemapService(nil).DiscoverURLs(context.Background(), "::not a url", nil)

		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(err))
	})

	t.Run("malformed sitemap", func(t *testing.T) {
		t.Parallel()

		srv, _ := newSitemapServer(t, map[string]string{"/sitemap.xml": "this is not a sitemap"})

		_, err := dihttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(err))
	})

	t.Run("missing sitemap named in robots.txt", func(t *testing.T) {
		t.Parallel()

		srv, _ := newSitemapServer(t, map[string]string{"/robots.txt": "Sitemap: {{BASE}}/gone.xml\n"})

		_, err := dihttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

		assert.Equal(t, docindex.ENOTFOUND, docindex.ErrorCode(err))
	})
}

func TestSitemapService_DiscoverURLs_SendsUserAgent(t *testing.T) {
	t.Parallel()

	srv, agents := newSitemapServer(t, map[string]string{"/sitemap.xml": urlset("{{BASE}}/a/")})

	_, err := dihttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	for _, ua := range agents() {
		assert.Equal(t, dihttp.DefaultUserAgent, ua)
	}
}

func mustFilter(t *testing.T, exclude ...string) *docindex.URLFilter {
	t.Helper()
	f, err := docindex.NewURLFilter(exclude...)
	require.NoError(t, err)
	return f
}

// newSitemapServer serves files by path. {{BASE}} in a file is replaced
// with the server URL. The returned func lists the user agents seen.
func newSitemapServer(t *testing.T, files map[string]string) (*httptest.Server, func() []string) {
	t.Helper()

	var mu sync.Mutex
	var agents []string

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		agents = append(agents, r.UserAgent())
		mu.Unlock()

		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if strings.HasSuffix(r.URL.Path, ".txt") {
			w.Header().Set("Content-Type", "text/plain")
		} else {
			w.Header().Set("Content-Type", "application/xml")
		}
		_, _ = w.Write([]byte(strings.ReplaceAll(body, "{{BASE}}", srv.URL)))
	}))
	t.Cleanup(srv.Close)

	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), agents...)
	}
}
