package util

import (
	"errors"
	"testing"
)

// TestHostToken validates candidate host capture from refanged URLs.
// PASS: host token up to the first '/' or whitespace, scheme skipped.
// FAIL: wrong token or a capture where none exists.
func TestHostToken(t *testing.T) {
	cases := []struct {
		in, out string
		ok      bool
	}{
		{"example.com", "example.com", true},
		{"https://example.com/path", "example.com", true},
		{"HTTP://Example.com", "Example.com", true},
		{"ftp://example.com", "example.com", true},
		{"example.com:8080/x", "example.com:8080", true},
		{"http://notadomain", "notadomain", true},
		{"/path/only", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := HostToken(c.in)
		if ok != c.ok || got != c.out {
			t.Fatalf("%q -> (%q,%v) want (%q,%v)", c.in, got, ok, c.out, c.ok)
		}
	}
}

// TestValidDomain checks the simplified domain syntax.
// PASS: dotted alnum/hyphen labels with an alphabetic TLD >= 2 accepted.
// FAIL: single labels, numeric TLDs, ports or stray characters accepted.
func TestValidDomain(t *testing.T) {
	good := []string{"example.com", "a.b.example.co", "my-site.io", "EXAMPLE.COM", "x1.y2.org"}
	bad := []string{"localhost", "notadomain", "example.c", "1.2.3.4", "example.com:80", "exa_mple.com", "example..com", ".com", "example.com."}
	for _, d := range good {
		if !ValidDomain(d) {
			t.Fatalf("want valid: %q", d)
		}
	}
	for _, d := range bad {
		if ValidDomain(d) {
			t.Fatalf("want invalid: %q", d)
		}
	}
}

// TestCheckDomain maps failures onto the two sentinel errors.
// PASS: nil for a valid host, ErrNoHost without a token, ErrBadDomain otherwise.
// FAIL: wrong sentinel.
func TestCheckDomain(t *testing.T) {
	if err := CheckDomain("https://example.com/a"); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := CheckDomain("/x"); !errors.Is(err, ErrNoHost) {
		t.Fatalf("want ErrNoHost, got %v", err)
	}
	if err := CheckDomain("http://localhost/"); !errors.Is(err, ErrBadDomain) {
		t.Fatalf("want ErrBadDomain, got %v", err)
	}
}

// TestSecondLevel validates naive registrable-domain extraction.
// PASS: lowercased, last two labels kept, short hosts verbatim.
// FAIL: any mismatch.
func TestSecondLevel(t *testing.T) {
	cases := []struct {
		in, out string
		ok      bool
	}{
		{"https://a.b.example.com/x", "example.com", true},
		{"EXAMPLE.COM", "example.com", true},
		{"HTTP://www.Example.co.uk/", "co.uk", true},
		{"localhost", "localhost", true},
		{"example.com:8080/x", "example.com:8080", true},
		{"/nothing", "", false},
	}
	for _, c := range cases {
		got, ok := SecondLevel(c.in)
		if ok != c.ok || got != c.out {
			t.Fatalf("%q -> (%q,%v) want (%q,%v)", c.in, got, ok, c.out, c.ok)
		}
	}
}
