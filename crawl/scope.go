package crawl

import (
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/docindex"
)

// scope admits URLs on the seed's host under the seed's directory.
type scope struct {
	host   string
	prefix string
}

func newScope(seed string) (scope, error) {
	u, err := url.Parse(seed)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return scope{}, docindex.Errorf(docindex.EINVALID, "invalid seed URL %q", seed)
	}
	return scope{host: u.Host, prefix: dirPrefix(u.Path)}, nil
}

// dirPrefix returns the directory of p with a trailing slash.
func dirPrefix(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if !strings.HasSuffix(p, "/") {
		p = path.Dir(p)
	}
	return strings.TrimSuffix(p, "/") + "/"
}

func (s scope) contains(u *url.URL) bool {
	p := u.Path
	if p == "" {
		p = "/"
	}
	return u.Host == s.host && strings.HasPrefix(p, s.prefix)
}

// scopes is the union of the scopes of all seeds of a run.
type scopes []scope

func (ss scopes) contains(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	for _, s := range ss {
		if s.contains(u) {
			return true
		}
	}
	return false
}
