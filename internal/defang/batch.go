package defang

import "strings"

// MaxLines is the default number of raw input lines a caller processes per
// request. The functions in this package do not enforce it.
const MaxLines = 100

// lineBreaks folds every line boundary into '\n'. Besides \r\n and \r this
// covers \v, \f, the file/group/record separators, NEL and the Unicode
// line and paragraph separators.
var lineBreaks = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\v", "\n",
	"\f", "\n",
	"\x1c", "\n",
	"\x1d", "\n",
	"\x1e", "\n",
	"\u0085", "\n",
	"\u2028", "\n",
	"\u2029", "\n",
)

// SplitLines splits text into lines, keeps the first limit raw lines (blank
// ones count towards the cap), trims them and drops the blanks. limit <= 0
// disables the cap.
func SplitLines(text string, limit int) []string {
	return CleanLines(RawLines(text), limit)
}

// RawLines splits text on any line boundary (see lineBreaks) without trimming
// the lines. A single trailing line break does not start another line.
func RawLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(lineBreaks.Replace(text), "\n")
	return strings.Split(text, "\n")
}

// CleanLines applies the cap, trimming and blank filtering of SplitLines to
// lines that were already split.
func CleanLines(raw []string, limit int) []string {
	if limit > 0 && len(raw) > limit {
		raw = raw[:limit]
	}
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

// SanitizeLines defangs every non-blank line, preserving order.
func SanitizeLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, Sanitize(l))
	}
	return out
}

// UnsanitizeAll refangs every non-blank line and returns one outcome per
// line, in input order.
func UnsanitizeAll(lines []string) []Outcome {
	out := make([]Outcome, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, Unsanitize(l))
	}
	return out
}

// UnsanitizeLines partitions the non-blank lines into refanged URLs and the
// original text of rejected lines. Both keep input order.
func UnsanitizeLines(lines []string) (accepted, rejected []string) {
	accepted = []string{}
	rejected = []string{}
	for _, o := range UnsanitizeAll(lines) {
		if o.Accepted {
			accepted = append(accepted, o.URL)
		} else {
			rejected = append(rejected, o.URL)
		}
	}
	return accepted, rejected
}
