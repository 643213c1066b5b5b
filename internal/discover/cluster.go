package discover

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lysyi3m/bookmark-comb/internal/model"
)

var titleCaser = cases.Title(language.English)

// clusterFallback deterministically groups bookmarks by source folder,
// then by domain-category hits, then by frequent keywords, in that
// precedence — each pass consumes the bookmarks it claims so later passes
// only see the residue. Anything left over becomes "Uncategorized".
func clusterFallback(sample []BookmarkSample, domainCategoryOf func(host string) (string, bool)) []*model.DiscoveredCategory {
	remaining := make([]int, len(sample))
	for i := range sample {
		remaining[i] = i
	}

	var roots []*model.DiscoveredCategory

	byFolder, remaining := clusterByFolder(sample, remaining)
	roots = append(roots, byFolder...)

	byDomain, remaining := clusterByDomain(sample, remaining, domainCategoryOf)
	roots = append(roots, byDomain...)

	byKeyword, remaining := clusterByKeyword(sample, remaining)
	roots = append(roots, byKeyword...)

	if len(remaining) > 0 {
		roots = append(roots, &model.DiscoveredCategory{
			TempID:         uuid.New().String(),
			Name:           "Uncategorized",
			Slug:           "uncategorized",
			Description:    "Bookmarks that did not cluster into any other category",
			EstimatedCount: len(remaining),
		})
	}

	return roots
}

func clusterByFolder(sample []BookmarkSample, remaining []int) ([]*model.DiscoveredCategory, []int) {
	groups := map[string][]int{}
	for _, i := range remaining {
		folder := sample[i].SourceFolder
		if folder == "" {
			continue
		}
		groups[folder] = append(groups[folder], i)
	}

	var out []*model.DiscoveredCategory
	claimed := map[int]bool{}
	for _, folder := range sortedKeys(groups) {
		members := groups[folder]
		if len(members) < folderClusterMinSize {
			continue
		}
		out = append(out, newCluster(folder, members, sample))
		for _, i := range members {
			claimed[i] = true
		}
	}

	return out, filterClaimed(remaining, claimed)
}

func clusterByDomain(sample []BookmarkSample, remaining []int, domainCategoryOf func(string) (string, bool)) ([]*model.DiscoveredCategory, []int) {
	groups := map[string][]int{}
	for _, i := range remaining {
		if domainCategoryOf == nil {
			continue
		}
		if cat, ok := domainCategoryOf(sample[i].Host); ok {
			groups[cat] = append(groups[cat], i)
		}
	}

	var out []*model.DiscoveredCategory
	claimed := map[int]bool{}
	for _, cat := range sortedKeys(groups) {
		members := groups[cat]
		if len(members) < domainClusterMinSize {
			continue
		}
		out = append(out, newCluster(cat, members, sample))
		for _, i := range members {
			claimed[i] = true
		}
	}

	return out, filterClaimed(remaining, claimed)
}

func clusterByKeyword(sample []BookmarkSample, remaining []int) ([]*model.DiscoveredCategory, []int) {
	groups := map[string][]int{}
	for _, i := range remaining {
		for _, kw := range sample[i].Keywords {
			groups[kw] = append(groups[kw], i)
		}
	}

	var out []*model.DiscoveredCategory
	claimed := map[int]bool{}
	for _, kw := range sortedKeys(groups) {
		members := unclaimed(groups[kw], claimed)
		if len(members) < keywordClusterMinSize {
			continue
		}
		out = append(out, newCluster(kw, members, sample))
		for _, i := range members {
			claimed[i] = true
		}
	}

	return out, filterClaimed(remaining, claimed)
}

func newCluster(label string, members []int, sample []BookmarkSample) *model.DiscoveredCategory {
	freq := map[string]int{}
	for _, i := range members {
		for _, kw := range sample[i].Keywords {
			freq[kw]++
		}
	}

	type kv struct {
		term  string
		count int
	}
	ranked := make([]kv, 0, len(freq))
	for term, count := range freq {
		ranked = append(ranked, kv{term, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].term < ranked[j].term
	})

	top := clusterTopKeywords
	if len(ranked) < top {
		top = len(ranked)
	}
	keywords := make([]string, top)
	for i := 0; i < top; i++ {
		keywords[i] = ranked[i].term
	}

	name := titleCaser.String(label)
	return &model.DiscoveredCategory{
		TempID:         uuid.New().String(),
		Name:           name,
		Slug:           slugify(name),
		Description:    fmt.Sprintf("Bookmarks clustered around %q (%d items)", label, len(members)),
		Keywords:       keywords,
		EstimatedCount: len(members),
	}
}

func filterClaimed(remaining []int, claimed map[int]bool) []int {
	out := make([]int, 0, len(remaining))
	for _, i := range remaining {
		if !claimed[i] {
			out = append(out, i)
		}
	}
	return out
}

func unclaimed(members []int, claimed map[int]bool) []int {
	return filterClaimed(members, claimed)
}

func sortedKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
