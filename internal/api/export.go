package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/bookmark-comb/internal/export"
)

// Export renders the persisted corpus in the requested browser format,
// per spec.md §6's export endpoint.
func (h *Handler) Export(c *gin.Context) {
	format := export.Format(c.DefaultQuery("format", "chrome"))
	categoryID := c.Query("categoryId")

	var contentType, ext string
	switch format {
	case export.FormatChrome:
		contentType, ext = "application/json", "json"
	case export.FormatFirefox, export.FormatSafari:
		contentType, ext = "text/html", "html"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be chrome, firefox, or safari"})
		return
	}

	bookmarks, err := h.Bookmarks.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	roots, err := h.Categories.ListCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out, err := export.Run(export.Snapshot{Roots: roots, Bookmarks: bookmarks}, format, categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("fury_bookmarks_%s_%s.%s", format, time.Now().UTC().Format("2006-01-02"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, out)
}
