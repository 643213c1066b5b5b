package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/bookmark-comb/internal/importer"
	"github.com/lysyi3m/bookmark-comb/internal/model"
)

// Import streams one import run as Server-Sent Events: "file" is the
// required multipart HTML body, "customCategories" an optional JSON
// DiscoveredCategory forest selecting path B, per spec.md §6.
func (h *Handler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'file' form field"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}

	req := importer.Request{
		FileName: fileHeader.Filename,
		HTML:     string(raw),
	}

	if customJSON := c.PostForm("customCategories"); customJSON != "" {
		var roots []*model.DiscoveredCategory
		if err := json.Unmarshal([]byte(customJSON), &roots); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed 'customCategories' JSON"})
			return
		}
		req.CustomCategories = roots
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	events := h.Pipeline.Run(c.Request.Context(), req)

	c.Stream(func(w io.Writer) bool {
		event, ok := <-events
		if !ok {
			return false
		}
		if err := writeSSE(w, event); err != nil {
			slog.Error("api: failed writing SSE event", "event", event.Name, "error", err)
			return false
		}
		return true
	})
}

func writeSSE(w io.Writer, event importer.Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("api: failed to marshal event %q: %w", event.Name, err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
	return err
}
