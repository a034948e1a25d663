package util

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrNoHost    = errors.New("no host token")
	ErrBadDomain = errors.New("invalid domain")
)

var (
	// optional scheme, then everything up to the first '/' or whitespace
	hostTokenRe = regexp.MustCompile(`^(?:[a-zA-Z][a-zA-Z0-9+.\-]*://)?([^/\s]+)`)
	domainRe    = regexp.MustCompile(`^(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}$`)
	// extraction only knows about http(s)
	webHostRe = regexp.MustCompile(`(?i)^(?:https?://)?([^/]+)`)
)

// HostToken returns the candidate host of a URL-like string: an optional
// "scheme://" prefix is skipped and the token runs up to the first '/' or
// whitespace. It reports false when there is nothing host-like to capture.
func HostToken(s string) (string, bool) {
	m := hostTokenRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ValidDomain is a simplified syntactic check: one or more dot-separated
// labels of letters, digits and hyphens, ending in an alphabetic TLD of at
// least two characters. No length limits, no IDN.
func ValidDomain(host string) bool {
	return domainRe.MatchString(host)
}

// CheckDomain returns ErrNoHost or ErrBadDomain for s, or nil when the host
// token of s passes ValidDomain.
func CheckDomain(s string) error {
	host, ok := HostToken(s)
	if !ok {
		return ErrNoHost
	}
	if !ValidDomain(host) {
		return ErrBadDomain
	}
	return nil
}

// SecondLevel lowercases the host of an http(s) URL and keeps its last two
// labels, e.g. "https://a.b.Example.com/x" -> "example.com". Hosts with two
// or fewer labels are returned whole. Public suffixes like co.uk are not
// special-cased.
func SecondLevel(s string) (string, bool) {
	m := webHostRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	host := strings.ToLower(m[1])
	labels := strings.Split(host, ".")
	if len(labels) > 2 {
		host = strings.Join(labels[len(labels)-2:], ".")
	}
	return host, true
}
