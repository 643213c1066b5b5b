package enrich

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "codeberg.org/readeck/go-readability"
)

var removedSelectors = []string{"script", "style", "nav", "footer", "header", "aside", "noscript", "iframe", "svg"}

var whitespaceRe = regexp.MustCompile(`\s+`)

// extractMetadata parses an HTML document, strips non-content subtrees,
// and pulls title/description/Open Graph tags plus a bounded body-text
// snippet out of it.
func extractMetadata(body []byte) (*Metadata, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	doc.Find(strings.Join(removedSelectors, ", ")).Remove()

	meta := &Metadata{
		Title:         strings.TrimSpace(doc.Find("title").First().Text()),
		Description:   metaContent(doc, "description"),
		OGTitle:       propContent(doc, "og:title"),
		OGDescription: propContent(doc, "og:description"),
		OGImage:       propContent(doc, "og:image"),
	}

	meta.BodySnippet = bodySnippet(body)

	return meta, nil
}

func metaContent(doc *goquery.Document, name string) string {
	v, _ := doc.Find(`meta[name="` + name + `"]`).Attr("content")
	return strings.TrimSpace(v)
}

func propContent(doc *goquery.Document, prop string) string {
	v, _ := doc.Find(`meta[property="` + prop + `"]`).Attr("content")
	return strings.TrimSpace(v)
}

// bodySnippet extracts a bounded, whitespace-normalized text snippet from
// the article body via readability, falling back to empty on failure —
// readability failure never aborts metadata extraction as a whole.
func bodySnippet(body []byte) string {
	article, err := readability.FromReader(bytes.NewReader(body), nil)
	if err != nil || article.TextContent == "" {
		return ""
	}

	snippet := whitespaceRe.ReplaceAllString(strings.TrimSpace(article.TextContent), " ")
	if len(snippet) > maxSnippetChars {
		snippet = snippet[:maxSnippetChars]
	}
	return snippet
}
