// Package bookmarkhtml parses Netscape-format bookmark export files into a
// flat, ordered sequence of bookmarks.
package bookmarkhtml

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/lysyi3m/bookmark-comb/internal/corerrors"
)

// Bookmark is a single entry extracted from a Netscape bookmark archive.
type Bookmark struct {
	URL          string
	Title        string
	Description  string
	SourceFolder string
}

// Parse walks the nested <DL>/<DT> tree of a Netscape bookmark export and
// returns a flat, depth-first ordered list of bookmarks. It fails with
// corerrors.ErrMalformedInput only when no root list is found; otherwise it
// returns whatever it could parse.
func Parse(doc string) ([]Bookmark, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, corerrors.ErrMalformedInput
	}

	rootList := findFirstDL(root)
	if rootList == nil {
		return nil, corerrors.ErrMalformedInput
	}

	w := &walker{}
	w.walkList(rootList)

	return w.bookmarks, nil
}

type walker struct {
	folderStack []string
	bookmarks   []Bookmark
}

// walkList processes the <DT> children of a <DL> element, alternating
// between folder headers (<H3>) and bookmark anchors (<A>), with an
// optional trailing <DD> description attached to the most recent entry.
func (w *walker) walkList(dl *html.Node) {
	for child := dl.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}

		switch child.Data {
		case "dt":
			w.walkTerm(child)
		case "dl":
			// Some exporters nest <DL> directly rather than inside a <DT>.
			w.walkList(child)
		}
	}
}

func (w *walker) walkTerm(dt *html.Node) {
	for child := dt.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}

		switch child.Data {
		case "h3":
			name := strings.TrimSpace(textContent(child))
			w.folderStack = append(w.folderStack, name)

			if sub := findFirstDL(dt); sub != nil {
				w.walkList(sub)
			} else if sub := nextSiblingDL(dt); sub != nil {
				w.walkList(sub)
			}

			w.folderStack = w.folderStack[:len(w.folderStack)-1]
			return
		case "a":
			href := attr(child, "href")
			if strings.TrimSpace(href) == "" {
				return
			}

			title := strings.TrimSpace(textContent(child))
			if title == "" {
				title = href
			}

			bm := Bookmark{
				URL:          strings.TrimSpace(href),
				Title:        title,
				SourceFolder: strings.Join(w.folderStack, " / "),
			}

			if desc := nextSiblingDD(dt); desc != "" {
				bm.Description = desc
			}

			w.bookmarks = append(w.bookmarks, bm)
			return
		}
	}
}

// nextSiblingDD returns the trimmed text of a <DD> element that immediately
// follows dt, before the next <DT>, per the "immediately-following sibling"
// rule.
func nextSiblingDD(dt *html.Node) string {
	for sib := dt.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type != html.ElementNode {
			continue
		}
		if sib.Data == "dd" {
			return strings.TrimSpace(textContent(sib))
		}
		if sib.Data == "dt" {
			return ""
		}
	}
	return ""
}

// nextSiblingDL finds a <DL> that is a following sibling of dt (browsers
// frequently close <DT> before the nested <DL> that holds its folder's
// contents, so the parsed tree places it as a sibling rather than a child).
func nextSiblingDL(dt *html.Node) *html.Node {
	for sib := dt.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type == html.ElementNode && sib.Data == "dl" {
			return sib
		}
		if sib.Type == html.ElementNode && sib.Data == "dt" {
			return nil
		}
	}
	return nil
}

func findFirstDL(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "dl" {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findFirstDL(child); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}
