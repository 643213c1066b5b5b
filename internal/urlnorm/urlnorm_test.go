package urlnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase host", "HTTPS://X.COM/", "https://x.com"},
		{"drop default https port", "https://x.com:443/path", "https://x.com/path"},
		{"drop default http port", "http://x.com:80/path", "http://x.com/path"},
		{"keep non-default port", "http://x.com:8080/path", "http://x.com:8080/path"},
		{"trim one trailing slash", "https://x.com/a/b/", "https://x.com/a/b"},
		{"root slash removed", "https://x.com/", "https://x.com"},
		{"path case preserved", "https://x.com/A/B", "https://x.com/A/B"},
		{"query and fragment preserved", "https://x.com/a?b=1#c", "https://x.com/a?b=1#c"},
		{"whitespace trimmed", "  https://x.com  ", "https://x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_DuplicateFolding(t *testing.T) {
	urls := []string{"https://x.com/", "https://x.com", "HTTPS://X.COM/"}
	first := Normalize(urls[0])
	for _, u := range urls[1:] {
		if Normalize(u) != first {
			t.Errorf("expected %q to normalize to %q", u, first)
		}
	}
}

func TestNormalize_UnparsableFallsBackLowercased(t *testing.T) {
	got := Normalize("  Not A URL At All ://  ")
	if got != "not a url at all ://" {
		t.Errorf("got %q", got)
	}
}
