package api

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/bookmark-comb/internal/model"
)

type bulkCategoriesRequest struct {
	Categories      []*model.DiscoveredCategory `json:"categories"`
	ReplaceExisting bool                        `json:"replaceExisting,omitempty"`
}

// BulkCreateCategories persists a DiscoveredCategory forest parent-first,
// per spec.md §6's bulk-category endpoint.
func (h *Handler) BulkCreateCategories(c *gin.Context) {
	var req bulkCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}
	if len(req.Categories) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "categories must be non-empty"})
		return
	}

	existing := map[string]bool{}
	var walkExisting func([]*model.DiscoveredCategory)
	walkExisting = func(nodes []*model.DiscoveredCategory) {
		for _, n := range nodes {
			if _, err := h.Categories.GetBySlug(n.Slug); err == nil {
				existing[n.Slug] = true
			}
			walkExisting(n.Children)
		}
	}
	if !req.ReplaceExisting {
		walkExisting(req.Categories)
	}

	tempToSlug, err := h.Categories.CreateCategoriesBulk(req.Categories, req.ReplaceExisting)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	categoryMap := map[string]string{}
	updated := 0
	for tempID, slug := range tempToSlug {
		cat, err := h.Categories.GetBySlug(slug)
		if err != nil {
			continue
		}
		categoryMap[tempID] = cat.ID
		if existing[slug] {
			updated++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"created":     len(tempToSlug) - updated,
		"updated":     updated,
		"categoryMap": categoryMap,
	})
}

type mergeCategoriesRequest struct {
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
}

// MergeCategories unions sourceId's keywords into targetId, reparents its
// children and bookmarks, and deletes it, per spec.md §6's merge endpoint.
func (h *Handler) MergeCategories(c *gin.Context) {
	var req mergeCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	if req.SourceID == "" || req.TargetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sourceId and targetId are required"})
		return
	}
	if req.SourceID == req.TargetID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sourceId and targetId must differ"})
		return
	}

	source, err := h.Categories.GetByID(req.SourceID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "source category not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	target, err := h.Categories.GetByID(req.TargetID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "target category not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	merged, movedRows, err := h.Categories.Merge(source.Slug, target.Slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mergedBookmarks": movedRows,
		"mergedKeywords":  merged.Keywords,
	})
}
