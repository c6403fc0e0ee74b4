package urlutil_test

import (
	"testing"

	"github.com/tmarchev/beacon/internal/urlutil"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases host", "https://Example.COM/path", "https://example.com/path"},
		{"strips fragment", "https://example.com/page#section", "https://example.com/page"},
		{"strips default https port", "https://example.com:443/page", "https://example.com/page"},
		{"strips default http port", "http://example.com:80/page", "http://example.com/page"},
		{"keeps custom port", "http://example.com:8080/page", "http://example.com:8080/page"},
		{"trims trailing slash", "https://example.com/page/", "https://example.com/page"},
		{"keeps root slash", "https://example.com/", "https://example.com/"},
		{"defaults to https", "example.com/page", "https://example.com/page"},
		{"punycodes international host", "https://bücher.example/page", "https://xn--bcher-kva.example/page"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := urlutil.Normalize(tc.in)
			if err != nil {
				t.Fatalf("Normalize(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeSameSpelling(t *testing.T) {
	t.Parallel()

	// Two spellings of the same page must normalize identically.
	a, err := urlutil.Normalize("https://Example.com/docs/#intro")
	if err != nil {
		t.Fatal(err)
	}
	b, err := urlutil.Normalize("https://example.com:443/docs")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("spellings did not converge: %q vs %q", a, b)
	}
}

func TestNormalizeErrors(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "https://", "://bad"} {
		if _, err := urlutil.Normalize(in); err == nil {
			t.Errorf("Normalize(%q): expected error", in)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	base := "https://example.com/docs/guide"

	got, err := urlutil.Resolve(base, "../api#ref")
	if err != nil {
		t.Fatal(err)
	}
	if want := "https://example.com/api"; got != want {
		t.Errorf("Resolve relative = %q, want %q", got, want)
	}

	got, err = urlutil.Resolve(base, "https://other.example/x")
	if err != nil {
		t.Fatal(err)
	}
	if want := "https://other.example/x"; got != want {
		t.Errorf("Resolve absolute = %q, want %q", got, want)
	}

	if _, err := urlutil.Resolve(base, "mailto:hi@example.com"); err == nil {
		t.Error("Resolve mailto: expected error")
	}
	if _, err := urlutil.Resolve(base, "javascript:void(0)"); err == nil {
		t.Error("Resolve javascript: expected error")
	}
}

func TestSameHost(t *testing.T) {
	t.Parallel()

	if !urlutil.SameHost("https://example.com/a", "http://EXAMPLE.com/b") {
		t.Error("same hostname with different scheme/case should match")
	}
	if urlutil.SameHost("https://example.com/a", "https://sub.example.com/a") {
		t.Error("subdomain should not match")
	}
	if urlutil.SameHost("://bad", "https://example.com") {
		t.Error("malformed input should never match")
	}
}

func TestOrigin(t *testing.T) {
	t.Parallel()

	got, err := urlutil.Origin("https://example.com:8443/deep/path?q=1")
	if err != nil {
		t.Fatal(err)
	}
	if want := "https://example.com:8443"; got != want {
		t.Errorf("Origin = %q, want %q", got, want)
	}

	if _, err := urlutil.Origin("/relative/only"); err == nil {
		t.Error("relative url: expected error")
	}
}
