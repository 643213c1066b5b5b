package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/bookmark-comb/internal/config"
	"github.com/lysyi3m/bookmark-comb/internal/importer"
	"github.com/lysyi3m/bookmark-comb/internal/llmclient"
	"github.com/lysyi3m/bookmark-comb/internal/store"
)

// Handler wires every component the HTTP layer fronts.
type Handler struct {
	Bookmarks  *store.BookmarkRepository
	Categories *store.CategoryRepository
	Sessions   *store.SessionRepository
	Pipeline   *importer.Pipeline
	LLM        *llmclient.Client
	Cfg        *config.Cfg
}

// NewHandler builds a Handler from its component dependencies.
func NewHandler(bookmarks *store.BookmarkRepository, categories *store.CategoryRepository, sessions *store.SessionRepository, pipeline *importer.Pipeline, llm *llmclient.Client, cfg *config.Cfg) *Handler {
	return &Handler{
		Bookmarks:  bookmarks,
		Categories: categories,
		Sessions:   sessions,
		Pipeline:   pipeline,
		LLM:        llm,
		Cfg:        cfg,
	}
}

func (h *Handler) version() string {
	if h.Cfg == nil {
		return config.GetVersion()
	}
	return h.Cfg.Version
}

// HealthCheck reports liveness plus a coarse view of component readiness.
func (h *Handler) HealthCheck(c *gin.Context) {
	health := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   h.version(),
		"llm":       h.LLM != nil,
	}

	if count, err := h.Bookmarks.Count(); err == nil {
		health["bookmarks"] = count
	}

	c.JSON(http.StatusOK, health)
}

// GetStats reports bookmark/category counts.
func (h *Handler) GetStats(c *gin.Context) {
	stats := gin.H{"timestamp": time.Now().Format(time.RFC3339)}

	if count, err := h.Bookmarks.Count(); err == nil {
		stats["totalBookmarks"] = count
	}
	if count, err := h.Categories.Count(); err == nil {
		stats["totalCategories"] = count
	}

	c.JSON(http.StatusOK, stats)
}
