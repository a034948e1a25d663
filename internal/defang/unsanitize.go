package defang

import (
	"strings"

	"github.com/avivbaron/urldefang/internal/util"
)

// Reason says why a line was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNoHost
	ReasonBadDomain
)

func (r Reason) String() string {
	switch r {
	case ReasonNoHost:
		return "no_host"
	case ReasonBadDomain:
		return "bad_domain"
	default:
		return ""
	}
}

// Outcome is the result of refanging one line. When Accepted is false, URL
// holds the original trimmed input rather than the partially rewritten one.
type Outcome struct {
	Input    string
	URL      string
	Accepted bool
	Reason   Reason
}

// Err returns the sentinel matching the rejection reason, or nil.
func (o Outcome) Err() error {
	switch o.Reason {
	case ReasonNoHost:
		return util.ErrNoHost
	case ReasonBadDomain:
		return util.ErrBadDomain
	}
	return nil
}

// Refang applies the rewrite rules of Unsanitize without validating the
// result.
func Refang(url string) string {
	s := stripSpace(url)
	s = replacePrefixFold(s, "hXXps", "https", "hXXp", "http")
	s = strings.ReplaceAll(s, "[.]", ".")
	return strings.ReplaceAll(s, "[://]", "://")
}

// Unsanitize refangs url and validates the host of the result.
func Unsanitize(url string) Outcome {
	orig := strings.TrimSpace(url)
	out := Outcome{Input: orig}

	s := Refang(orig)
	switch err := util.CheckDomain(s); err {
	case nil:
		out.URL = s
		out.Accepted = true
	case util.ErrNoHost:
		out.URL = orig
		out.Reason = ReasonNoHost
	default:
		out.URL = orig
		out.Reason = ReasonBadDomain
	}
	return out
}
