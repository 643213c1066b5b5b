package discover

import (
	"context"
	"log/slog"

	"github.com/lysyi3m/bookmark-comb/internal/llmclient"
	"github.com/lysyi3m/bookmark-comb/internal/model"
)

// Discover builds a custom taxonomy from sample, preferring the LLM path
// when client is non-nil. Any LLM failure (unavailable client, transport
// error, unparseable response, zero categories) falls back to
// deterministic clustering — this function never returns an error for
// that reason; it only returns one if the resulting forest itself is
// invalid (duplicate slugs after flattening).
func Discover(ctx context.Context, client *llmclient.Client, sample []BookmarkSample, stats Stats, domainCategoryOf func(host string) (string, bool)) (Result, error) {
	if client != nil {
		roots, err := discoverViaLLM(ctx, client, sample, stats)
		if err == nil {
			flattenOverDepth(roots)
			if verr := validateSlugs(roots); verr != nil {
				return Result{}, verr
			}
			return Result{Roots: roots, FromLLM: true}, nil
		}
		slog.Warn("discover: LLM path failed, falling back to clustering", "error", err)
	}

	roots := clusterFallback(sample, domainCategoryOf)
	flattenOverDepth(roots)
	dedupeSlugs(roots)

	return Result{Roots: roots, FromLLM: false}, nil
}

// CountNodes returns the total number of categories across the forest,
// for the analyze endpoint's stats payload.
func CountNodes(roots []*model.DiscoveredCategory) int {
	total := 0
	var walk func([]*model.DiscoveredCategory)
	walk = func(nodes []*model.DiscoveredCategory) {
		total += len(nodes)
		for _, n := range nodes {
			walk(n.Children)
		}
	}
	walk(roots)
	return total
}

// MaxDepth returns the deepest level found in the forest (0-indexed roots).
func MaxDepth(roots []*model.DiscoveredCategory) int {
	max := 0
	var walk func([]*model.DiscoveredCategory)
	walk = func(nodes []*model.DiscoveredCategory) {
		for _, n := range nodes {
			if n.Level > max {
				max = n.Level
			}
			walk(n.Children)
		}
	}
	walk(roots)
	return max
}
