package defang

import (
	"sort"
	"strings"

	"github.com/avivbaron/urldefang/internal/util"
)

// DomainSet is an unordered, deduplicating collection of domains.
type DomainSet map[string]struct{}

func (s DomainSet) Add(d string) { s[d] = struct{}{} }

func (s DomainSet) Has(d string) bool {
	_, ok := s[d]
	return ok
}

func (s DomainSet) Len() int { return len(s) }

// Slice returns the domains sorted, so callers that print them get a stable
// order.
func (s DomainSet) Slice() []string {
	out := make([]string, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// ExtractDomain returns the naive second-level domain of line. Defanged
// input is refanged first. It reports false when no host can be captured.
// Unlike Unsanitize there is no TLD check: "localhost" comes back as is.
func ExtractDomain(line string) (string, bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return "", false
	}
	s = replacePrefixFold(s, "hXXps", "https", "hXXp", "http")
	s = strings.ReplaceAll(s, "[.]", ".")
	s = strings.ReplaceAll(s, "[://]", "://")
	return util.SecondLevel(s)
}

// ExtractDomains collects the second-level domains of every line. Lines with
// no capture are skipped.
func ExtractDomains(lines []string) DomainSet {
	set := make(DomainSet)
	for _, l := range lines {
		if d, ok := ExtractDomain(l); ok {
			set.Add(d)
		}
	}
	return set
}
