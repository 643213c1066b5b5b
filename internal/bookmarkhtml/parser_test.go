package bookmarkhtml

import (
	"testing"

	"github.com/lysyi3m/bookmark-comb/internal/corerrors"
)

const sample = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3>Dev</H3>
    <DL><p>
        <DT><A HREF="https://github.com/a/b">Repo</A>
        <DD>A cool repo
        <DT><A HREF="https://example.com/">Example</A>
    </DL><p>
    <DT><A HREF="https://toplevel.example.com">Top</A>
</DL><p>
`

func TestParse_Basic(t *testing.T) {
	bms, err := Parse(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bms) != 3 {
		t.Fatalf("expected 3 bookmarks, got %d: %+v", len(bms), bms)
	}

	if bms[0].URL != "https://github.com/a/b" {
		t.Errorf("bookmark 0 URL = %q", bms[0].URL)
	}
	if bms[0].SourceFolder != "Dev" {
		t.Errorf("bookmark 0 folder = %q", bms[0].SourceFolder)
	}
	if bms[0].Description != "A cool repo" {
		t.Errorf("bookmark 0 description = %q", bms[0].Description)
	}

	if bms[2].SourceFolder != "" {
		t.Errorf("bookmark 2 should be at root, got folder %q", bms[2].SourceFolder)
	}
}

func TestParse_EmptyHrefDropped(t *testing.T) {
	doc := `<DL><p><DT><A HREF="">Empty</A><DT><A HREF="https://x.com">X</A></DL>`
	bms, err := Parse(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bms) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(bms))
	}
}

func TestParse_TitleDefaultsToURL(t *testing.T) {
	doc := `<DL><p><DT><A HREF="https://x.com"></A></DL>`
	bms, err := Parse(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bms) != 1 || bms[0].Title != "https://x.com" {
		t.Fatalf("expected title to default to URL, got %+v", bms)
	}
}

func TestParse_MalformedInput(t *testing.T) {
	_, err := Parse("not a bookmark file at all, just text")
	if err != corerrors.ErrMalformedInput {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestParse_EmptyArchive(t *testing.T) {
	bms, err := Parse(`<DL><p></DL>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bms) != 0 {
		t.Fatalf("expected 0 bookmarks, got %d", len(bms))
	}
}
