package enrich

import (
	"net"
	"net/url"
	"strings"
)

var internalSchemes = map[string]struct{}{
	"chrome":           {},
	"chrome-extension": {},
	"moz-extension":    {},
	"about":            {},
	"edge":             {},
	"file":             {},
	"data":             {},
}

// isInternalAddress reports whether rawURL targets a host that should
// never be probed over the network: loopback, RFC-1918 private ranges,
// .local/.internal TLDs, and browser-internal schemes.
func isInternalAddress(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}

	scheme := strings.ToLower(u.Scheme)
	if _, ok := internalSchemes[scheme]; ok {
		return true
	}

	host := u.Hostname()
	if host == "" {
		return true
	}
	if strings.HasSuffix(host, ".local") || strings.HasSuffix(host, ".internal") {
		return true
	}

	ip := net.ParseIP(host)
	if ip == nil {
		if strings.EqualFold(host, "localhost") {
			return true
		}
		return false
	}

	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}
