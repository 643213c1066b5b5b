package api

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lysyi3m/bookmark-comb/internal/importer"
)

func TestWriteSSE_FramesEventNameAndJSONData(t *testing.T) {
	var buf bytes.Buffer
	event := importer.Event{Name: importer.EventInit, Data: importer.InitData{TotalInFile: 3, UniqueBookmarks: 2, DuplicatesInFile: 1}}

	if err := writeSSE(&buf, event); err != nil {
		t.Fatalf("writeSSE() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "event: init\n") {
		t.Errorf("expected event line prefix, got %q", out)
	}
	if !strings.Contains(out, `"totalInFile":3`) {
		t.Errorf("expected JSON data payload, got %q", out)
	}
	if !strings.HasSuffix(out, "\n\n") {
		t.Errorf("expected trailing blank line terminating the SSE frame, got %q", out)
	}
}
