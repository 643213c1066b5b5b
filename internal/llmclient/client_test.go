package llmclient

import "testing"

func TestNew_NoAPIKeyIsUnavailable(t *testing.T) {
	client, ok := New("", "", "gpt-4o-mini")
	if ok || client != nil {
		t.Errorf("New(\"\", ...) = (%v, %v), want (nil, false)", client, ok)
	}
}

func TestNew_WithAPIKey(t *testing.T) {
	client, ok := New("sk-test", "https://api.openai.com/v1", "gpt-4o-mini")
	if !ok || client == nil {
		t.Fatalf("New() = (%v, %v), want non-nil client and true", client, ok)
	}
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n[1,2,3]\n```", "[1,2,3]"},
		{`{"a":1}`, `{"a":1}`},
	}
	for _, c := range cases {
		if got := stripFences(c.in); got != c.want {
			t.Errorf("stripFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
