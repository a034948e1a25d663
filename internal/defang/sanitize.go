// Package defang rewrites URLs into a defanged form that chat clients and
// scanners will not auto-link, and refangs them back.
//
// Every function in this package is pure: no I/O, no shared state. Rules are
// applied in a fixed order and must stay in that order.
package defang

import (
	"strings"
	"unicode"
)

// Sanitize defangs url: whitespace is removed, a leading http/https (any
// case) becomes hXXp/hXXps, and every '.' becomes "[.]". It never fails.
func Sanitize(url string) string {
	s := stripSpace(url)
	s = replacePrefixFold(s, "https", "hXXps", "http", "hXXp")
	return strings.ReplaceAll(s, ".", "[.]")
}

// stripSpace drops every Unicode whitespace rune.
func stripSpace(s string) string {
	if strings.IndexFunc(s, unicode.IsSpace) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// replacePrefixFold takes (match, replacement) pairs, longest match first.
// The first match that prefixes s case-insensitively is swapped for its
// fixed-case replacement.
func replacePrefixFold(s string, pairs ...string) string {
	for i := 0; i+1 < len(pairs); i += 2 {
		p := pairs[i]
		if len(s) >= len(p) && strings.EqualFold(s[:len(p)], p) {
			return pairs[i+1] + s[len(p):]
		}
	}
	return s
}
