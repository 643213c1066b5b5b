package api

import (
	"testing"

	"github.com/lysyi3m/bookmark-comb/internal/discover"
	"github.com/lysyi3m/bookmark-comb/internal/model"
)

func TestAnalyzeSamples_FromBookmarksArray(t *testing.T) {
	req := analyzeRequest{
		Bookmarks: []analyzeBookmarkInput{
			{URL: "https://golang.org/doc", Title: "Go Docs", SourceFolder: "Dev"},
			{URL: "https://example.com/", Title: "Example"},
		},
	}

	samples, err := analyzeSamples(req)
	if err != nil {
		t.Fatalf("analyzeSamples() error = %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].Host != "golang.org" {
		t.Errorf("expected host golang.org, got %q", samples[0].Host)
	}
	if samples[0].SourceFolder != "Dev" {
		t.Errorf("expected SourceFolder Dev, got %q", samples[0].SourceFolder)
	}
}

func TestAnalyzeSamples_FromHTML(t *testing.T) {
	html := `<DL><p>
<DT><A HREF="https://news.ycombinator.com/">Hacker News</A>
</DL><p>`

	req := analyzeRequest{BookmarksHTML: html}
	samples, err := analyzeSamples(req)
	if err != nil {
		t.Fatalf("analyzeSamples() error = %v", err)
	}
	if len(samples) != 1 || samples[0].Host != "news.ycombinator.com" {
		t.Fatalf("expected one sample for news.ycombinator.com, got %+v", samples)
	}
}

func TestBuildStats_RanksHostsAndFoldersByFrequency(t *testing.T) {
	samples := []discover.BookmarkSample{
		{Host: "a.com", SourceFolder: "Dev"},
		{Host: "a.com", SourceFolder: "Dev"},
		{Host: "b.com", SourceFolder: "Reading"},
	}

	stats := buildStats(samples)

	if len(stats.TopHosts) != 2 || stats.TopHosts[0].Host != "a.com" || stats.TopHosts[0].Count != 2 {
		t.Errorf("expected a.com first with count 2, got %+v", stats.TopHosts)
	}
	if len(stats.FolderCounts) != 2 || stats.FolderCounts[0].Folder != "Dev" {
		t.Errorf("expected Dev first, got %+v", stats.FolderCounts)
	}
}

func TestBuildAnalyzeResult_ComputesPerLevelCountsAndWarnsOnRootCount(t *testing.T) {
	roots := []*model.DiscoveredCategory{
		{TempID: "t1", Name: "Tech", Level: 0, Keywords: []string{"go", "rust"}, EstimatedCount: 5,
			Children: []*model.DiscoveredCategory{
				{TempID: "t2", Name: "Web", Level: 1, Keywords: []string{"html"}, EstimatedCount: 2},
			}},
	}

	result := buildAnalyzeResult(discover.Result{Roots: roots, FromLLM: true}, 10)

	if result.Stats.TotalCategories != 2 {
		t.Errorf("expected 2 total categories, got %d", result.Stats.TotalCategories)
	}
	if result.Stats.MaxDepth != 1 {
		t.Errorf("expected max depth 1, got %d", result.Stats.MaxDepth)
	}
	if len(result.Stats.CategoriesPerLevel) != 2 || result.Stats.CategoriesPerLevel[0] != 1 || result.Stats.CategoriesPerLevel[1] != 1 {
		t.Errorf("expected [1,1] per-level counts, got %v", result.Stats.CategoriesPerLevel)
	}
	if result.Stats.TotalKeywords != 3 {
		t.Errorf("expected 3 total keywords, got %d", result.Stats.TotalKeywords)
	}
	if result.Stats.TotalEstimatedBookmarks != 7 {
		t.Errorf("expected 7 estimated bookmarks, got %d", result.Stats.TotalEstimatedBookmarks)
	}
	if len(result.Validation.Warnings) == 0 {
		t.Error("expected a warning for a single-root forest falling outside 6-10")
	}
	if result.BookmarkCount != 10 {
		t.Errorf("expected bookmarkCount 10, got %d", result.BookmarkCount)
	}
}
