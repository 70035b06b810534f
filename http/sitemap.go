package http

import (
	"bufio"
	"context"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/docindex"
)

var _ docindex.SitemapService = (*SitemapService)(nil)

// SitemapService expands crawl seeds from a host's XML sitemaps.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// NewSitemapService creates a SitemapService with the given HTTP client.
// If client is nil, a client with DefaultFetchTimeout is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &SitemapService{client: client, userAgent: DefaultUserAgent}
}

// DiscoverURLs implements docindex.SitemapService. A host without sitemaps
// yields an empty, non-nil slice.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *docindex.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, docindex.Errorf(docindex.EINVALID, "invalid base URL %q", baseURL)
	}
	scope := scopePrefix(base.Path)

	root := &url.URL{Scheme: base.Scheme, Host: base.Host}
	sitemaps, err := s.findSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	w := &sitemapWalk{svc: s, seen: make(map[string]bool)}
	for _, sm := range sitemaps {
		if err := w.visit(ctx, sm); err != nil {
			return nil, err
		}
	}

	urls := []string{}
	unique := make(map[string]bool, len(w.urls))
	for _, raw := range w.urls {
		u, err := url.Parse(raw)
		if err != nil || u.Host != base.Host || !strings.HasPrefix(u.Path, scope) {
			continue
		}
		if unique[raw] || !filter.Match(raw) {
			continue
		}
		unique[raw] = true
		urls = append(urls, raw)
	}
	return urls, nil
}

// scopePrefix returns the directory of p with a trailing slash, so a seed of
// /manual/modeling/index.html scopes to /manual/modeling/.
func scopePrefix(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if !strings.HasSuffix(p, "/") {
		p = path.Dir(p)
	}
	return strings.TrimSuffix(p, "/") + "/"
}

// findSitemaps reads Sitemap: directives from robots.txt and falls back to
// /sitemap.xml.
func (s *SitemapService) findSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if body, err := s.get(ctx, robots); err == nil {
		var sitemaps []string
		scanner := bufio.NewScanner(strings.NewReader(body))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if len(line) > len("sitemap:") && strings.EqualFold(line[:len("sitemap:")], "sitemap:") {
				if loc := strings.TrimSpace(line[len("sitemap:"):]); loc != "" {
					sitemaps = append(sitemaps, loc)
				}
			}
		}
		if len(sitemaps) > 0 {
			return sitemaps, nil
		}
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	req, err := newRequest(ctx, http.MethodHead, fallback, s.userAgent)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}
	return []string{fallback}, nil
}

// sitemapWalk collects page URLs from a sitemap tree, visiting each
// sitemap once.
type sitemapWalk struct {
	svc  *SitemapService
	seen map[string]bool
	urls []string
}

func (w *sitemapWalk) visit(ctx context.Context, loc string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.seen[loc] {
		return nil
	}
	w.seen[loc] = true

	body, err := w.svc.get(ctx, loc)
	if err != nil {
		return err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return docindex.Errorf(docindex.EINVALID, "parsing sitemap %s: %v", loc, err)
	}
	root := doc.Root()
	if root == nil {
		return docindex.Errorf(docindex.EINVALID, "empty sitemap %s", loc)
	}

	if root.Tag == "sitemapindex" {
		for _, child := range locs(root, "sitemap") {
			if err := w.visit(ctx, child); err != nil {
				return err
			}
		}
		return nil
	}
	w.urls = append(w.urls, locs(root, "url")...)
	return nil
}

// locs returns the trimmed <loc> text of each tag child of root.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *SitemapService) get(ctx context.Context, target string) (string, error) {
	req, err := newRequest(ctx, http.MethodGet, target, s.userAgent)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", StatusError(resp, target)
	}
	return readBody(resp.Body)
}
