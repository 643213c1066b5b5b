package discover

import (
	"context"
	"testing"

	"github.com/lysyi3m/bookmark-comb/internal/model"
)

func sampleBookmarks() []BookmarkSample {
	var out []BookmarkSample
	for i := 0; i < 4; i++ {
		out = append(out, BookmarkSample{Title: "repo", Host: "github.com", SourceFolder: "Dev Tools", Keywords: []string{"golang", "api"}})
	}
	for i := 0; i < 6; i++ {
		out = append(out, BookmarkSample{Title: "recipe", Host: "allrecipes.com", Keywords: []string{"recipe", "cooking"}})
	}
	out = append(out, BookmarkSample{Title: "orphan", Host: "example.com"})
	return out
}

func TestDiscover_NoLLMUsesClusterFallback(t *testing.T) {
	result, err := Discover(context.Background(), nil, sampleBookmarks(), Stats{}, nil)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if result.FromLLM {
		t.Error("FromLLM = true, want false when client is nil")
	}
	if len(result.Roots) == 0 {
		t.Error("expected at least one discovered root category")
	}
}

func TestClusterFallback_FolderClusterSurvivesThreshold(t *testing.T) {
	roots := clusterFallback(sampleBookmarks(), nil)

	foundDevTools := false
	for _, r := range roots {
		if r.Name == "Dev Tools" {
			foundDevTools = true
			if r.EstimatedCount != 4 {
				t.Errorf("Dev Tools EstimatedCount = %d, want 4", r.EstimatedCount)
			}
		}
	}
	if !foundDevTools {
		t.Errorf("expected a Dev Tools cluster from folder grouping, got %+v", roots)
	}
}

func TestClusterFallback_ResidueBecomesUncategorized(t *testing.T) {
	roots := clusterFallback(sampleBookmarks(), nil)

	found := false
	for _, r := range roots {
		if r.Slug == "uncategorized" {
			found = true
		}
	}
	if !found {
		t.Error("expected an Uncategorized bucket for the orphaned bookmark")
	}
}

func TestFlattenOverDepth_PromotesGrandchildrenPastMaxDepth(t *testing.T) {
	leafE := &model.DiscoveredCategory{TempID: "e", Name: "E", Slug: "e"}
	leafD := &model.DiscoveredCategory{TempID: "d", Name: "D", Slug: "d", Children: []*model.DiscoveredCategory{leafE}}
	level3 := &model.DiscoveredCategory{TempID: "c", Name: "C", Slug: "c", Children: []*model.DiscoveredCategory{leafD}}
	level2 := &model.DiscoveredCategory{TempID: "b", Name: "B", Slug: "b", Children: []*model.DiscoveredCategory{level3}}
	level1 := &model.DiscoveredCategory{TempID: "a", Name: "A", Slug: "a", Children: []*model.DiscoveredCategory{level2}}

	roots := []*model.DiscoveredCategory{level1}
	flattenOverDepth(roots)

	if MaxDepth(roots) > maxDepth-1 {
		t.Errorf("MaxDepth() = %d, want <= %d", MaxDepth(roots), maxDepth-1)
	}
}

func TestValidateSlugs_DetectsDuplicates(t *testing.T) {
	roots := []*model.DiscoveredCategory{
		{TempID: "1", Name: "A", Slug: "same"},
		{TempID: "2", Name: "B", Slug: "same"},
	}
	if err := validateSlugs(roots); err == nil {
		t.Error("validateSlugs() = nil, want error for duplicate slugs")
	}
}

func TestDedupeSlugs_RenamesCollision(t *testing.T) {
	roots := []*model.DiscoveredCategory{
		{TempID: "1", Name: "A", Slug: "same"},
		{TempID: "2", Name: "B", Slug: "same"},
	}
	dedupeSlugs(roots)
	if roots[0].Slug == roots[1].Slug {
		t.Errorf("expected distinct slugs after dedupe, got %q and %q", roots[0].Slug, roots[1].Slug)
	}
}
