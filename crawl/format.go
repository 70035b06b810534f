package crawl

import "strings"

// TruncateURL shortens url to at most maxLen bytes for progress lines. The
// scheme is dropped. When it leaves room for a useful tail the host is kept
// in front of the elision, since the tail names the page.
func TruncateURL(url string, maxLen int) string {
	const gap = "..."
	if maxLen <= 0 {
		return ""
	}
	if _, rest, ok := strings.Cut(url, "://"); ok {
		url = rest
	}
	if len(url) <= maxLen {
		return url
	}
	if maxLen <= len(gap) {
		return url[len(url)-maxLen:]
	}

	host, _, _ := strings.Cut(url, "/")
	if len(host)+len(gap)+16 <= maxLen {
		tail := maxLen - len(host) - len(gap)
		return host + gap + url[len(url)-tail:]
	}
	return gap + url[len(url)-(maxLen-len(gap)):]
}
