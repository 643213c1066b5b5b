package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/lysyi3m/bookmark-comb/internal/model"
	"github.com/lysyi3m/bookmark-comb/internal/store"
)

func sampleSnapshot() Snapshot {
	tech := &model.Category{ID: "c-tech", Slug: "technology", Name: "Technology"}
	webdev := &model.Category{ID: "c-webdev", Slug: "web-development", Name: "Web Development", ParentSlug: "technology"}

	roots := []*store.CategoryNode{
		{
			Category: tech,
			Children: []*store.CategoryNode{
				{Category: webdev},
			},
		},
	}

	bookmarks := []*model.Bookmark{
		{ID: "b1", URL: "https://github.com/a/b", Title: "Repo", CategoryID: "c-webdev"},
		{ID: "b2", URL: "https://example.com/", Title: "No category"},
	}

	return Snapshot{Roots: roots, Bookmarks: bookmarks}
}

func TestRun_JSON_UncategorizedGoesToBookmarkBar(t *testing.T) {
	out, err := Run(sampleSnapshot(), FormatChrome, "")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var root jsonRoot
	if err := json.Unmarshal(out, &root); err != nil {
		t.Fatalf("failed to unmarshal export JSON: %v", err)
	}

	if len(root.BookmarkBar.Bookmark) != 1 || root.BookmarkBar.Bookmark[0].URL != "https://example.com/" {
		t.Errorf("expected uncategorized bookmark directly under bookmark_bar, got %+v", root.BookmarkBar.Bookmark)
	}

	if len(root.BookmarkBar.Children) != 1 || root.BookmarkBar.Children[0].Name != "Technology" {
		t.Fatalf("expected a Technology folder under bookmark_bar, got %+v", root.BookmarkBar.Children)
	}

	webdevFolder := root.BookmarkBar.Children[0].Children[0]
	if webdevFolder.Name != "Web Development" || len(webdevFolder.Bookmark) != 1 {
		t.Errorf("expected Repo bookmark under Web Development, got %+v", webdevFolder)
	}
}

func TestRun_JSON_CategoryWithNoBookmarksOmitted(t *testing.T) {
	snapshot := sampleSnapshot()
	snapshot.Roots = append(snapshot.Roots, &store.CategoryNode{
		Category: &model.Category{ID: "c-empty", Slug: "empty", Name: "Empty Category"},
	})

	out, err := Run(snapshot, FormatChrome, "")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var root jsonRoot
	if err := json.Unmarshal(out, &root); err != nil {
		t.Fatalf("failed to unmarshal export JSON: %v", err)
	}

	for _, c := range root.BookmarkBar.Children {
		if c.Name == "Empty Category" {
			t.Error("Empty Category should be omitted from export since it has no in-scope bookmarks")
		}
	}
}

func TestRun_HTML_ContainsNetscapeHeader(t *testing.T) {
	out, err := Run(sampleSnapshot(), FormatFirefox, "")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	s := string(out)
	if !strings.Contains(s, "NETSCAPE-Bookmark-file-1") {
		t.Error("expected Netscape bookmark file header")
	}
	if !strings.Contains(s, `<A HREF="https://github.com/a/b"`) {
		t.Error("expected bookmark anchor for the categorized URL")
	}
	if !strings.Contains(s, "<H3") {
		t.Error("expected a folder heading for the category tree")
	}
}

func TestRun_FilterByCategory_OnlySubtreeAndAncestorsAppear(t *testing.T) {
	out, err := Run(sampleSnapshot(), FormatChrome, "c-webdev")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var root jsonRoot
	if err := json.Unmarshal(out, &root); err != nil {
		t.Fatalf("failed to unmarshal export JSON: %v", err)
	}

	if len(root.BookmarkBar.Bookmark) != 0 {
		t.Error("filtered export should not include uncategorized bookmarks directly under bookmark_bar")
	}
	if len(root.BookmarkBar.Children) != 1 || root.BookmarkBar.Children[0].Name != "Technology" {
		t.Fatalf("expected Technology as the ancestor path, got %+v", root.BookmarkBar.Children)
	}

	tech := root.BookmarkBar.Children[0]
	if len(tech.Bookmark) != 0 {
		t.Error("ancestor folder should not carry its own bookmarks when filtering by a descendant category")
	}
	if len(tech.Children) != 1 || tech.Children[0].Name != "Web Development" {
		t.Fatalf("expected Web Development subtree under Technology, got %+v", tech.Children)
	}
}
