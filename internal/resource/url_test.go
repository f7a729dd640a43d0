package resource

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"bare host", "example.org", "https://example.org", true},
		{"www host", "www.x.com", "https://www.x.com", true},
		{"https kept", "https://y.com", "https://y.com", true},
		{"http kept", "http://y.com/path?q=1", "http://y.com/path?q=1", true},
		{"empty", "", "", false},
		{"whitespace only", "   \t ", "", false},
		{"surrounding whitespace", "  example.org/a  ", "https://example.org/a", true},
		{"quoted", `"www.quoted.org"`, "https://www.quoted.org", true},
		{"quoted with scheme", `"https://quoted.org"`, "https://quoted.org", true},
		{"only quotes", `""`, "", false},
		{"single quote char", `"`, "", false},
		{"one layer stripped", `""a.org""`, `https://"a.org"`, true},
		{"no validation", "not a url", "https://not a url", true},
		{"padding inside quotes", `" a.org "`, "https://a.org", true},
		{"scheme after padding inside quotes", `" https://a.org"`, "https://a.org", true},
		{"blank inside quotes", `"   "`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeURL(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("NormalizeURL(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeURL_Idempotent(t *testing.T) {
	inputs := []string{
		"example.org",
		"www.x.com",
		"https://y.com",
		"http://plain.net",
		`"quoted.org"`,
		"  spaced.org  ",
		"ftp://odd.example",
		`" a.org "`,
		`" https://a.org"`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once, ok := NormalizeURL(in)
			if !ok {
				t.Fatalf("NormalizeURL(%q) returned no result", in)
			}
			twice, ok := NormalizeURL(once)
			if !ok {
				t.Fatalf("NormalizeURL(%q) returned no result", once)
			}
			if once != twice {
				t.Errorf("NormalizeURL not idempotent: %q -> %q -> %q", in, once, twice)
			}
		})
	}
}
