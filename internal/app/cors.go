package app

import (
	"net/url"
	"strings"
)

// extractOriginHost reduces an Origin header value to "host[:port]" so it
// can be matched against the configured allow-list.
func extractOriginHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

// matchOriginPattern checks an allow-list entry against a host. Entries are
// either exact hosts, "*.domain" subdomain wildcards, or "host:*" for any
// port on the given host.
func matchOriginPattern(pattern, host string) bool {
	if pattern == host {
		return true
	}
	if strings.HasPrefix(pattern, "*.") {
		suffix := pattern[1:]
		return strings.HasSuffix(host, suffix)
	}
	if strings.HasSuffix(pattern, ":*") {
		prefix := pattern[:len(pattern)-1]
		return strings.HasPrefix(host, prefix)
	}
	return false
}
