// Package textproc cleans free text and extracts semantic keywords, URL
// tokens, and domain hints used by the rule classifier and enrichment
// pipeline.
package textproc

import (
	"html"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	urlRe        = regexp.MustCompile(`https?://\S+`)
	emailRe      = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	camelBoundRe = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	nonWordRe    = regexp.MustCompile(`[^a-z0-9\s]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	lower        = cases.Lower(language.English)
)

// Clean normalizes Unicode, strips HTML markup and entities, removes URLs
// and email-shaped runs, splits CamelCase and snake_case/kebab-case tokens,
// lowercases, and collapses whitespace.
func Clean(text string) string {
	t := norm.NFKC.String(text)
	t = html.UnescapeString(t)
	t = htmlTagRe.ReplaceAllString(t, " ")
	t = urlRe.ReplaceAllString(t, " ")
	t = emailRe.ReplaceAllString(t, " ")
	t = splitCompoundWords(t)
	t = lower.String(t)
	t = nonWordRe.ReplaceAllString(t, " ")
	t = whitespaceRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// splitCompoundWords inserts spaces at CamelCase boundaries and replaces
// snake_case/kebab-case separators with spaces.
func splitCompoundWords(s string) string {
	s = camelBoundRe.ReplaceAllString(s, "$1 $2")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return s
}

// ExtractURLTokens splits a URL's host labels and path segments into
// lowercase word tokens, dropping empty segments and file extensions.
func ExtractURLTokens(rawURL string) []string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}

	var tokens []string
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, label := range strings.Split(host, ".") {
		if len(label) > 2 {
			tokens = append(tokens, label)
		}
	}

	for _, seg := range strings.Split(u.Path, "/") {
		seg = strings.TrimSuffix(seg, pathExt(seg))
		for _, part := range strings.FieldsFunc(seg, func(r rune) bool {
			return r == '-' || r == '_' || r == '.' || unicode.IsSpace(r)
		}) {
			part = strings.ToLower(part)
			if len(part) > 1 && !isNumeric(part) {
				tokens = append(tokens, part)
			}
		}
	}

	return tokens
}

func pathExt(seg string) string {
	if i := strings.LastIndex(seg, "."); i > 0 {
		return seg[i:]
	}
	return ""
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// ExtractSemanticKeywords tokenizes cleaned text and returns up to
// cfg.TopN keywords ranked by score. Curated compound phrases are kept
// whole and scored at 100 per occurrence (no separate lower-scored bigram
// tier is applied); remaining single words score by frequency, doubled when the word
// appears in the domain-specific term table.
func ExtractSemanticKeywords(text string, cfg Config) []string {
	cleaned := Clean(text)
	words := strings.Fields(cleaned)

	scores := map[string]int{}
	usedInPhrase := map[int]bool{}

	for i := 0; i+1 < len(words); i++ {
		phrase := words[i] + " " + words[i+1]
		if isCompound(phrase) {
			scores[phrase] += 100
			usedInPhrase[i] = true
			usedInPhrase[i+1] = true
		}
	}

	for i, w := range words {
		if usedInPhrase[i] {
			continue
		}
		if len(w) < cfg.MinWordLength || isNumeric(w) || isStopWord(w) {
			continue
		}
		points := 1
		if isDomainTerm(w) {
			points = 2
		}
		scores[w] += points
	}

	keywords := make([]ScoredKeyword, 0, len(scores))
	for term, score := range scores {
		keywords = append(keywords, ScoredKeyword{Term: term, Score: score})
	}

	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Score != keywords[j].Score {
			return keywords[i].Score > keywords[j].Score
		}
		return keywords[i].Term < keywords[j].Term
	})

	topN := cfg.TopN
	if topN <= 0 {
		topN = DefaultConfig().TopN
	}
	if len(keywords) > topN {
		keywords = keywords[:topN]
	}

	out := make([]string, len(keywords))
	for i, k := range keywords {
		out[i] = k.Term
	}
	return out
}

// DomainHints matches a URL's host and path against a fixed regex→tag
// table and returns every tag that matches.
func DomainHints(rawURL string) []string {
	lowered := strings.ToLower(rawURL)
	var tags []string
	for _, h := range domainHints {
		if h.re.MatchString(lowered) {
			tags = append(tags, h.tag)
		}
	}
	return tags
}
