package textproc

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Hello World", "hello world"},
		{"strips html", "<p>Hello</p> <b>World</b>", "hello world"},
		{"strips urls", "see https://example.com/page for details", "see for details"},
		{"strips emails", "contact me at foo@example.com please", "contact me at please"},
		{"splits camel case", "GoLangTutorial", "go lang tutorial"},
		{"splits snake case", "data_science_basics", "data science basics"},
		{"splits kebab case", "web-development-guide", "web development guide"},
		{"collapses whitespace", "too   many    spaces", "too many spaces"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Clean(c.input)
			if got != c.want {
				t.Errorf("Clean(%q) = %q, want %q", c.input, got, c.want)
			}
		})
	}
}

func TestExtractURLTokens(t *testing.T) {
	tokens := ExtractURLTokens("https://www.github.com/golang/go/blob/master/README.md")
	joined := strings.Join(tokens, ",")
	for _, want := range []string{"github", "golang", "blob", "master", "readme"} {
		if !strings.Contains(joined, want) {
			t.Errorf("ExtractURLTokens() = %v, missing %q", tokens, want)
		}
	}
	if strings.Contains(joined, "www") {
		t.Errorf("ExtractURLTokens() should drop www prefix, got %v", tokens)
	}
}

func TestExtractURLTokens_Unparsable(t *testing.T) {
	if got := ExtractURLTokens("://::not a url"); got != nil {
		t.Errorf("ExtractURLTokens() on unparsable input = %v, want nil", got)
	}
}

func TestExtractSemanticKeywords_PrefersCompoundsAndDomainTerms(t *testing.T) {
	text := "An introduction to machine learning using python and golang for startup founders"
	kws := ExtractSemanticKeywords(text, DefaultConfig())
	if len(kws) == 0 {
		t.Fatal("expected at least one keyword")
	}
	if kws[0] != "machine learning" {
		t.Errorf("top keyword = %q, want %q (compound should score highest)", kws[0], "machine learning")
	}

	found := map[string]bool{}
	for _, k := range kws {
		found[k] = true
	}
	if !found["python"] || !found["golang"] {
		t.Errorf("expected domain terms python/golang present in %v", kws)
	}
}

func TestExtractSemanticKeywords_DropsStopWordsAndShortTokens(t *testing.T) {
	kws := ExtractSemanticKeywords("the and or a an of to in on at is it", DefaultConfig())
	if len(kws) != 0 {
		t.Errorf("expected no keywords from pure stop words, got %v", kws)
	}
}

func TestExtractSemanticKeywords_RespectsTopN(t *testing.T) {
	text := "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima mike november oscar papa quebec"
	cfg := Config{MinWordLength: 2, TopN: 3}
	kws := ExtractSemanticKeywords(text, cfg)
	if len(kws) != 3 {
		t.Errorf("len(kws) = %d, want 3", len(kws))
	}
}

func TestDomainHints(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://github.com/foo/bar", "development"},
		{"https://www.youtube.com/watch?v=abc", "video"},
		{"https://en.wikipedia.org/wiki/Go", "reference"},
	}
	for _, c := range cases {
		hints := DomainHints(c.url)
		found := false
		for _, h := range hints {
			if h == c.want {
				found = true
			}
		}
		if !found {
			t.Errorf("DomainHints(%q) = %v, want to include %q", c.url, hints, c.want)
		}
	}
}

func TestDomainHints_NoMatch(t *testing.T) {
	if got := DomainHints("https://my-obscure-personal-blog.example"); len(got) != 0 {
		t.Errorf("DomainHints() = %v, want empty", got)
	}
}
