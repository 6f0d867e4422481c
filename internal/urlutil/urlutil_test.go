package urlutil

import (
	"net/url"
	"testing"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

// TestNormalize tests href normalization and rejection rules.
func TestNormalize(t *testing.T) {
	t.Parallel()

	base := mustParse(t, "https://example.com/index.html")

	tests := []struct {
		name string
		href string
		want string
		ok   bool
	}{
		{"relative path", "/about", "https://example.com/about", true},
		{"relative to page", "contact", "https://example.com/contact", true},
		{"absolute same host", "https://example.com/pricing", "https://example.com/pricing", true},
		{"fragment stripped", "/docs#install", "https://example.com/docs", true},
		{"host lowercased", "https://EXAMPLE.COM/a", "https://example.com/a", true},
		{"bare host gets root path", "https://example.com", "https://example.com/", true},
		{"query preserved", "/search?q=seo", "https://example.com/search?q=seo", true},
		{"empty href", "", "", false},
		{"pure fragment", "#top", "", false},
		{"javascript scheme", "javascript:void(0)", "", false},
		{"mailto scheme", "mailto:hi@example.com", "", false},
		{"tel scheme", "tel:+123456", "", false},
		{"different domain", "https://other.com/page", "", false},
		{"subdomain is external", "https://blog.example.com/post", "", false},
		{"non-http scheme", "ftp://example.com/file", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Normalize(tt.href, base)
			if ok != tt.ok {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.href, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}

// TestNormalizePortSensitivity tests that ports are part of the host.
func TestNormalizePortSensitivity(t *testing.T) {
	t.Parallel()

	base := mustParse(t, "http://example.com:8080/")

	if _, ok := Normalize("http://example.com/other", base); ok {
		t.Error("different port must be rejected")
	}
	if got, ok := Normalize("/same", base); !ok || got != "http://example.com:8080/same" {
		t.Errorf("got %q ok=%v", got, ok)
	}
}

// TestLinkSet tests ordered deduplication.
func TestLinkSet(t *testing.T) {
	t.Parallel()

	set := NewLinkSet()

	if !set.Add("https://example.com/a") {
		t.Error("first add must succeed")
	}
	if !set.Add("https://example.com/b") {
		t.Error("second add must succeed")
	}
	if set.Add("https://example.com/a") {
		t.Error("duplicate add must be rejected")
	}

	urls := set.URLs()
	if len(urls) != 2 || urls[0] != "https://example.com/a" || urls[1] != "https://example.com/b" {
		t.Errorf("unexpected order: %v", urls)
	}
	if !set.Contains("https://example.com/b") {
		t.Error("expected set to contain /b")
	}
	if set.Len() != 2 {
		t.Errorf("len: got %d, want 2", set.Len())
	}
}
