// Package api exposes the import pipeline, taxonomy discoverer, category
// store, and exporter over HTTP, built on gin-gonic/gin.
package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer builds the gin engine with the teacher's logging/recovery/CORS
// middleware stack and wires every route. apiAccessKey, when set, gates
// the mutating category endpoints behind authMiddleware.
func NewServer(h *Handler, apiAccessKey string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	setupRoutes(r, h, apiAccessKey)

	return r
}

func setupRoutes(r *gin.Engine, h *Handler, apiAccessKey string) {
	r.GET("/health", h.HealthCheck)
	r.GET("/stats", h.GetStats)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/import", h.Import)
		v1.POST("/analyze", h.Analyze)
		v1.GET("/export", h.Export)
	}

	if apiAccessKey != "" {
		mutating := r.Group("/api/v1/categories")
		mutating.Use(authMiddleware(apiAccessKey))
		{
			mutating.POST("/bulk", h.BulkCreateCategories)
			mutating.POST("/merge", h.MergeCategories)
		}
		log.Printf("category endpoints require authentication")
	} else {
		v1.POST("/categories/bulk", h.BulkCreateCategories)
		v1.POST("/categories/merge", h.MergeCategories)
		log.Printf("category endpoints unauthenticated (API_ACCESS_KEY not set)")
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "bookmark-comb",
			"version": h.version(),
			"endpoints": gin.H{
				"import":         "/api/v1/import (POST, multipart)",
				"analyze":        "/api/v1/analyze (POST)",
				"categoriesBulk": "/api/v1/categories/bulk (POST)",
				"categoriesMerge": "/api/v1/categories/merge (POST)",
				"export":         "/api/v1/export?format=chrome|firefox|safari",
				"health":         "/health",
				"stats":          "/stats",
			},
		})
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware requires a matching key in the X-API-Key header, or an
// Authorization: Bearer fallback.
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-API-Key")

		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
