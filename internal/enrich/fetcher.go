package enrich

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

// Fetcher validates and fetches bookmark target URLs. It never returns an
// error to callers beyond what signals "nothing could be recovered" — a
// failed fetch yields a nil Metadata, and the import then stores the
// bookmark without enrichment rather than aborting the run.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher builds a Fetcher that sends userAgent on every request
// (a desktop-browser user agent when userAgent is empty) over a
// bounded-redirect transport. The HEAD→GET fallback in Validate is modeled
// as explicit two-step application logic rather than retryablehttp's own
// backoff loop, so RetryMax stays at 0 here.
func NewFetcher(userAgent string) *Fetcher {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.Logger = nil
	rc.HTTPClient = cleanhttp.DefaultPooledClient()
	rc.HTTPClient.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return http.ErrUseLastResponse
		}
		return nil
	}

	if userAgent == "" {
		userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}

	return &Fetcher{
		client:    rc.StandardClient(),
		userAgent: userAgent,
	}
}

// Validate reports whether a URL is reachable enough to be worth
// enriching. Internal addresses are accepted without a probe. Otherwise it
// sends a HEAD request first; on any failure it retries once with a GET,
// aborting as soon as response headers arrive. Status >= 500 counts as
// invalid.
func (f *Fetcher) Validate(ctx context.Context, rawURL string) bool {
	if isInternalAddress(rawURL) {
		return true
	}

	if f.probe(ctx, http.MethodHead, rawURL, headTimeout) {
		return true
	}
	return f.probe(ctx, http.MethodGet, rawURL, getProbeTimeout)
}

func (f *Fetcher) probe(ctx context.Context, method, rawURL string, timeout time.Duration) bool {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, rawURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1))

	if resp.StatusCode >= 500 {
		return false
	}
	return resp.StatusCode < 400
}

// Fetch retrieves the page body and extracts its metadata. It returns nil
// on any transport failure and never propagates an error to the caller.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) *Metadata {
	reqCtx, cancel := context.WithTimeout(ctx, getBodyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		slog.Debug("enrich: request build failed", "url", rawURL, "error", err)
		return nil
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		slog.Debug("enrich: fetch failed", "url", rawURL, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		slog.Debug("enrich: fetch returned error status", "url", rawURL, "status", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		slog.Debug("enrich: body read failed", "url", rawURL, "error", err)
		return nil
	}

	meta, err := extractMetadata(body)
	if err != nil {
		slog.Debug("enrich: metadata extraction failed", "url", rawURL, "error", err)
		return nil
	}
	return meta
}
