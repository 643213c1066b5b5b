// Package discover builds a custom category taxonomy from a bookmark
// sample, either via an LLM prompt or, when the LLM is unavailable or its
// response can't be parsed, a deterministic clustering fallback.
package discover

import "github.com/lysyi3m/bookmark-comb/internal/model"

const (
	minRoots = 6
	maxRoots = 10
	maxDepth = 4

	folderClusterMinSize  = 3
	domainClusterMinSize  = 5
	keywordClusterMinSize = 5

	clusterTopKeywords = 15
)

// BookmarkSample is the minimal per-bookmark view the discoverer needs.
type BookmarkSample struct {
	Title        string
	Host         string
	SourceFolder string
	Keywords     []string
}

// Stats summarizes the full bookmark set beyond the sample, used to give
// the LLM prompt aggregate signal without enumerating every bookmark.
type Stats struct {
	TopHosts     []HostCount
	FolderCounts []FolderCount
}

type HostCount struct {
	Host  string
	Count int
}

type FolderCount struct {
	Folder string
	Count  int
}

// Result is the discovered forest plus whether the LLM path produced it
// (false means the deterministic clustering fallback ran).
type Result struct {
	Roots   []*model.DiscoveredCategory
	FromLLM bool
}
