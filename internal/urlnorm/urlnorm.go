// Package urlnorm canonicalizes URLs for equality comparison and storage.
package urlnorm

import (
	"net/url"
	"strings"
)

// Normalize produces the canonical form of raw used throughout the import
// pipeline as the storage key for bookmarks:
//
//  1. Parse; on failure, fall back to a lowercased, trimmed copy of raw.
//  2. Lowercase the host; keep the path case-sensitive.
//  3. Drop default ports (80 for http, 443 for https).
//  4. Remove the path entirely when it is exactly "/"; otherwise remove
//     one trailing slash.
//  5. Preserve query and fragment verbatim.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)

	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return strings.ToLower(trimmed)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(stripDefaultPort(u.Scheme, u.Host))

	if u.Path == "/" {
		u.Path = ""
	} else if strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String()
}

// Equal reports whether two raw URLs canonicalize to the same form.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

func stripDefaultPort(scheme, host string) string {
	hostname, port, found := strings.Cut(host, ":")
	if !found {
		return host
	}

	switch {
	case scheme == "http" && port == "80":
		return hostname
	case scheme == "https" && port == "443":
		return hostname
	default:
		return host
	}
}
