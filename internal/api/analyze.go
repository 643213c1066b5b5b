package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/bookmark-comb/internal/bookmarkhtml"
	"github.com/lysyi3m/bookmark-comb/internal/classify"
	"github.com/lysyi3m/bookmark-comb/internal/discover"
	"github.com/lysyi3m/bookmark-comb/internal/model"
	"github.com/lysyi3m/bookmark-comb/internal/textproc"
)

type analyzeBookmarkInput struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	SourceFolder string `json:"sourceFolder,omitempty"`
}

type analyzeRequest struct {
	BookmarksHTML string                 `json:"bookmarksHtml,omitempty"`
	Bookmarks     []analyzeBookmarkInput `json:"bookmarks,omitempty"`
}

type discoveryResultDTO struct {
	Categories []*model.DiscoveredCategory `json:"categories"`
	FromLLM    bool                        `json:"fromLLM"`
}

type validationDTO struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

type analyzeStatsDTO struct {
	TotalCategories        int   `json:"totalCategories"`
	MaxDepth                int   `json:"maxDepth"`
	CategoriesPerLevel      []int `json:"categoriesPerLevel"`
	TotalKeywords           int   `json:"totalKeywords"`
	TotalEstimatedBookmarks int   `json:"totalEstimatedBookmarks"`
}

type analyzeResultDTO struct {
	DiscoveryResult discoveryResultDTO `json:"discoveryResult"`
	Validation      validationDTO      `json:"validation"`
	Stats           analyzeStatsDTO    `json:"stats"`
	BookmarkCount   int                `json:"bookmarkCount"`
}

// Analyze runs taxonomy discovery synchronously over a sample of bookmarks
// supplied either as a raw Netscape export or as a pre-parsed array, per
// spec.md §6's analyze endpoint.
func (h *Handler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "malformed request body"})
		return
	}

	samples, err := analyzeSamples(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if len(samples) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "no bookmarks provided"})
		return
	}

	stats := buildStats(samples)

	domainCategories, err := classify.BuiltinDomainCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	domainCategoryOf := func(host string) (string, bool) {
		name, ok := domainCategories[host]
		return name, ok
	}

	result, err := discover.Discover(c.Request.Context(), h.LLM, samples, stats, domainCategoryOf)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  buildAnalyzeResult(result, len(samples)),
	})
}

func analyzeSamples(req analyzeRequest) ([]discover.BookmarkSample, error) {
	var samples []discover.BookmarkSample

	if req.BookmarksHTML != "" {
		parsed, err := bookmarkhtml.Parse(req.BookmarksHTML)
		if err != nil {
			return nil, err
		}
		for _, b := range parsed {
			samples = append(samples, toSample(b.URL, b.Title, b.Description, b.SourceFolder))
		}
	}

	for _, b := range req.Bookmarks {
		samples = append(samples, toSample(b.URL, b.Title, b.Description, b.SourceFolder))
	}

	return samples, nil
}

func toSample(rawURL, title, description, sourceFolder string) discover.BookmarkSample {
	text := title + " " + description
	keywords := textproc.ExtractSemanticKeywords(text, textproc.DefaultConfig())
	keywords = append(keywords, textproc.DomainHints(rawURL)...)

	return discover.BookmarkSample{
		Title:        title,
		Host:         hostOf(rawURL),
		SourceFolder: sourceFolder,
		Keywords:     keywords,
	}
}

func buildStats(samples []discover.BookmarkSample) discover.Stats {
	hostCounts := map[string]int{}
	folderCounts := map[string]int{}

	for _, s := range samples {
		if s.Host != "" {
			hostCounts[s.Host]++
		}
		if s.SourceFolder != "" {
			folderCounts[s.SourceFolder]++
		}
	}

	var stats discover.Stats
	for host, count := range hostCounts {
		stats.TopHosts = append(stats.TopHosts, discover.HostCount{Host: host, Count: count})
	}
	for folder, count := range folderCounts {
		stats.FolderCounts = append(stats.FolderCounts, discover.FolderCount{Folder: folder, Count: count})
	}

	sort.Slice(stats.TopHosts, func(i, j int) bool { return stats.TopHosts[i].Count > stats.TopHosts[j].Count })
	sort.Slice(stats.FolderCounts, func(i, j int) bool { return stats.FolderCounts[i].Count > stats.FolderCounts[j].Count })

	const topN = 20
	if len(stats.TopHosts) > topN {
		stats.TopHosts = stats.TopHosts[:topN]
	}

	return stats
}

func buildAnalyzeResult(result discover.Result, bookmarkCount int) analyzeResultDTO {
	maxDepth := discover.MaxDepth(result.Roots)

	perLevel := make([]int, maxDepth+1)
	totalKeywords := 0
	totalEstimated := 0

	var walk func([]*model.DiscoveredCategory)
	walk = func(nodes []*model.DiscoveredCategory) {
		for _, n := range nodes {
			perLevel[n.Level]++
			totalKeywords += len(n.Keywords)
			totalEstimated += n.EstimatedCount
			walk(n.Children)
		}
	}
	walk(result.Roots)

	rootCount := len(result.Roots)
	var warnings []string
	if rootCount < 6 || rootCount > 10 {
		warnings = append(warnings, "root category count falls outside the 6-10 soft constraint")
	}

	return analyzeResultDTO{
		DiscoveryResult: discoveryResultDTO{Categories: result.Roots, FromLLM: result.FromLLM},
		Validation:      validationDTO{Valid: true, Errors: []string{}, Warnings: warnings},
		Stats: analyzeStatsDTO{
			TotalCategories:         discover.CountNodes(result.Roots),
			MaxDepth:                maxDepth,
			CategoriesPerLevel:      perLevel,
			TotalKeywords:           totalKeywords,
			TotalEstimatedBookmarks: totalEstimated,
		},
		BookmarkCount: bookmarkCount,
	}
}
