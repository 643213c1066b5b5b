// Package enrich probes bookmark URLs for reachability and extracts page
// metadata (title, description, Open Graph tags, body snippet) used to
// enrich bookmarks before classification.
package enrich

import "time"

// Metadata holds best-effort fields scraped from a fetched page. Every
// field is optional; a zero value means the page did not provide it.
type Metadata struct {
	Title         string
	Description   string
	OGTitle       string
	OGDescription string
	OGImage       string
	BodySnippet   string
}

const (
	headTimeout     = 5 * time.Second
	getProbeTimeout = 8 * time.Second
	getBodyTimeout  = 10 * time.Second
	maxRedirects    = 5
	maxSnippetChars = 5000
)
