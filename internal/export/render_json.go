package export

import (
	"encoding/json"

	"github.com/lysyi3m/bookmark-comb/internal/model"
)

// jsonBookmark and jsonFolder mirror the Chrome/Edge bookmarks.json shape
// closely enough for round-trip import: a folder has children and/or
// bookmarks, a bookmark is a leaf.
type jsonFolder struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Children []*jsonFolder   `json:"children,omitempty"`
	URL      string          `json:"url,omitempty"`
	Bookmark []*jsonBookmark `json:"bookmarks,omitempty"`
}

type jsonBookmark struct {
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

type jsonRoot struct {
	BookmarkBar *jsonFolder `json:"bookmark_bar"`
	Other       *jsonFolder `json:"other"`
}

func renderJSON(tree *folderNode) ([]byte, error) {
	var bookmarkBar, other *folderNode
	for _, c := range tree.Children {
		switch c.Name {
		case "bookmark_bar":
			bookmarkBar = c
		case "other":
			other = c
		}
	}

	root := jsonRoot{
		BookmarkBar: toJSONFolder(bookmarkBar),
		Other:       toJSONFolder(other),
	}

	return json.MarshalIndent(root, "", "  ")
}

func toJSONFolder(n *folderNode) *jsonFolder {
	if n == nil {
		return &jsonFolder{Name: "", Type: "folder"}
	}

	sortBookmarksByTitle(n.Bookmark)

	f := &jsonFolder{Name: n.Name, Type: "folder"}
	for _, b := range n.Bookmark {
		f.Bookmark = append(f.Bookmark, toJSONBookmark(b))
	}
	for _, c := range n.Children {
		f.Children = append(f.Children, toJSONFolder(c))
	}
	return f
}

func toJSONBookmark(b *model.Bookmark) *jsonBookmark {
	return &jsonBookmark{Name: b.Title, Type: "url", URL: b.URL}
}
