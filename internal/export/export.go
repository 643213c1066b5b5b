// Package export renders the persisted bookmark corpus back out in
// browser-native formats: Netscape HTML (the same shape C1 parses) and a
// nested JSON folder tree. Both read a single consistent snapshot of the
// category forest and bookmark list.
package export

import (
	"sort"

	"github.com/lysyi3m/bookmark-comb/internal/model"
	"github.com/lysyi3m/bookmark-comb/internal/store"
)

// Format selects the export's wire shape.
type Format string

const (
	FormatChrome  Format = "chrome"
	FormatFirefox Format = "firefox"
	FormatSafari  Format = "safari"
)

// folderNode is the in-memory tree export builds from the persisted
// category forest plus its in-scope bookmarks, before rendering to
// either wire format.
type folderNode struct {
	Name     string
	Children []*folderNode
	Bookmark []*model.Bookmark
}

// Snapshot is the consistent read export.Run needs: every category (as a
// forest) and every bookmark, taken together so neither changes mid-export.
type Snapshot struct {
	Roots     []*store.CategoryNode
	Bookmarks []*model.Bookmark
}

// Run renders snapshot into the requested format. categoryID, if
// non-empty, restricts the export to that category's subtree plus its
// ancestors; an empty categoryID exports everything.
func Run(snapshot Snapshot, format Format, categoryID string) ([]byte, error) {
	tree := buildTree(snapshot, categoryID)

	if format == FormatChrome {
		return renderJSON(tree)
	}
	return renderNetscapeHTML(tree), nil
}

// buildTree assembles the bookmark_bar/other root, mirroring the category
// forest under bookmark_bar and placing uncategorized bookmarks in
// bookmark_bar directly, per spec.md §4.10. When categoryID is set, only
// the path of ancestors down to that category, plus its own subtree,
// survives; ancestor folders on that path carry no bookmarks of their
// own, only the structure leading to the target.
func buildTree(snapshot Snapshot, categoryID string) *folderNode {
	roots := snapshot.Roots
	inScope := map[string]bool{}

	if categoryID == "" {
		var mark func([]*store.CategoryNode)
		mark = func(nodes []*store.CategoryNode) {
			for _, n := range nodes {
				inScope[n.Category.ID] = true
				mark(n.Children)
			}
		}
		mark(roots)
	} else {
		roots = pathToCategory(roots, categoryID)
		if target := findNode(snapshot.Roots, categoryID); target != nil {
			markSubtree(target, inScope)
		}
	}

	byCategoryID := map[string][]*model.Bookmark{}
	var uncategorized []*model.Bookmark
	for _, b := range snapshot.Bookmarks {
		if b.CategoryID == "" {
			uncategorized = append(uncategorized, b)
			continue
		}
		if !inScope[b.CategoryID] {
			continue
		}
		byCategoryID[b.CategoryID] = append(byCategoryID[b.CategoryID], b)
	}

	bookmarkBar := &folderNode{Name: "bookmark_bar"}
	if categoryID == "" {
		bookmarkBar.Bookmark = uncategorized
	}

	for _, n := range roots {
		if folder := buildCategoryFolder(n, byCategoryID, inScope); folder != nil {
			bookmarkBar.Children = append(bookmarkBar.Children, folder)
		}
	}

	other := &folderNode{Name: "other"}

	return &folderNode{Name: "root", Children: []*folderNode{bookmarkBar, other}}
}

// pathToCategory returns a pruned copy of nodes that keeps only the
// branch(es) leading to targetID, plus targetID's full original subtree.
func pathToCategory(nodes []*store.CategoryNode, targetID string) []*store.CategoryNode {
	var out []*store.CategoryNode
	for _, n := range nodes {
		if n.Category.ID == targetID {
			out = append(out, n)
			continue
		}
		childPath := pathToCategory(n.Children, targetID)
		if len(childPath) > 0 {
			out = append(out, &store.CategoryNode{Category: n.Category, Children: childPath})
		}
	}
	return out
}

func findNode(nodes []*store.CategoryNode, id string) *store.CategoryNode {
	for _, n := range nodes {
		if n.Category.ID == id {
			return n
		}
		if found := findNode(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// buildCategoryFolder returns nil when the category's subtree has no
// in-scope bookmarks anywhere beneath it, so only categories with at least
// one in-scope bookmark, plus their ancestors, are emitted.
// Ancestor-path nodes (outside inScope) never carry their own bookmarks,
// only the structure leading to the in-scope subtree.
func buildCategoryFolder(n *store.CategoryNode, byCategoryID map[string][]*model.Bookmark, inScope map[string]bool) *folderNode {
	folder := &folderNode{Name: n.Category.Name}
	if inScope[n.Category.ID] {
		folder.Bookmark = byCategoryID[n.Category.ID]
	}

	for _, child := range n.Children {
		if childFolder := buildCategoryFolder(child, byCategoryID, inScope); childFolder != nil {
			folder.Children = append(folder.Children, childFolder)
		}
	}

	if len(folder.Bookmark) == 0 && len(folder.Children) == 0 {
		return nil
	}
	return folder
}

func markSubtree(n *store.CategoryNode, inScope map[string]bool) {
	inScope[n.Category.ID] = true
	for _, c := range n.Children {
		markSubtree(c, inScope)
	}
}

func sortBookmarksByTitle(bs []*model.Bookmark) {
	sort.SliceStable(bs, func(i, j int) bool { return bs[i].Title < bs[j].Title })
}
