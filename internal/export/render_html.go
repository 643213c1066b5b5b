package export

import (
	"bytes"
	"fmt"
	"html"
	"time"

	"github.com/lysyi3m/bookmark-comb/internal/model"
)

const netscapeHeader = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<!-- This is an automatically generated file.
     It will be read and overwritten.
     DO NOT EDIT! -->
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
`

// renderNetscapeHTML walks tree and writes the <DL>-nested Netscape
// bookmark format, the same manual buffer-and-escape approach the
// teacher's RSS generator uses for its own XML, generalized to
// <DT><H3>/<DT><A> tags.
func renderNetscapeHTML(tree *folderNode) []byte {
	var buf bytes.Buffer
	buf.WriteString(netscapeHeader)
	buf.WriteString("<DL><p>\n")

	var bookmarkBar, other *folderNode
	for _, c := range tree.Children {
		switch c.Name {
		case "bookmark_bar":
			bookmarkBar = c
		case "other":
			other = c
		}
	}

	if bookmarkBar != nil {
		writeFolderContents(&buf, bookmarkBar, 1)
	}
	if other != nil && (len(other.Children) > 0 || len(other.Bookmark) > 0) {
		writeHeading(&buf, "other", 1)
		buf.WriteString(indent(1) + "<DL><p>\n")
		writeFolderContents(&buf, other, 2)
		buf.WriteString(indent(1) + "</DL><p>\n")
	}

	buf.WriteString("</DL><p>\n")
	return buf.Bytes()
}

func writeFolderContents(buf *bytes.Buffer, n *folderNode, depth int) {
	sortBookmarksByTitle(n.Bookmark)

	for _, b := range n.Bookmark {
		writeBookmark(buf, b, depth)
	}
	for _, c := range n.Children {
		writeHeading(buf, c.Name, depth)
		buf.WriteString(indent(depth) + "<DL><p>\n")
		writeFolderContents(buf, c, depth+1)
		buf.WriteString(indent(depth) + "</DL><p>\n")
	}
}

func writeHeading(buf *bytes.Buffer, name string, depth int) {
	fmt.Fprintf(buf, "%s<DT><H3 ADD_DATE=\"%d\">%s</H3>\n", indent(depth), addDate(), html.EscapeString(name))
}

func writeBookmark(buf *bytes.Buffer, b *model.Bookmark, depth int) {
	fmt.Fprintf(buf, "%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
		indent(depth), html.EscapeString(b.URL), unixTime(b.CreatedAt), html.EscapeString(b.Title))
	if b.Description != "" {
		fmt.Fprintf(buf, "%s<DD>%s\n", indent(depth), html.EscapeString(b.Description))
	}
}

func indent(depth int) string {
	out := make([]byte, depth*4)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}

func unixTime(t time.Time) int64 {
	if t.IsZero() {
		return addDate()
	}
	return t.Unix()
}

// addDate is used for folder headings, which have no natural timestamp
// of their own.
func addDate() int64 {
	return 0
}
