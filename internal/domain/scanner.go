// Package domain contains the core import resolution logic: scanning
// chapter bodies for directives, extracting tagged regions from referenced
// files and substituting them back in.
package domain

import (
	"regexp"
	"strings"

	m "github.com/mouse-blink/bookimport/internal/model"
)

// DefaultEscape is the character that turns a directive into a literal.
// A backslash would be the obvious choice but markdown hosts tend to strip
// it for their own escaping, so a forward slash is used instead.
const DefaultEscape = "/"

// Scanner finds import directives in chapter bodies. The pattern is
// compiled once in NewScanner and the value is safe for concurrent use.
type Scanner struct {
	re *regexp.Regexp
}

// Submatch layout of the scanner pattern.
const (
	groupEscape = 1
	groupFile   = 2
	groupTag    = 3
)

// NewScanner builds a Scanner that treats escape as the escape marker.
// The escape alternative is folded into the pattern as an optional prefix,
// so an escaped occurrence is matched as a whole and can never be
// re-matched as a live directive.
func NewScanner(escape string) *Scanner {
	if escape == "" {
		escape = DefaultEscape
	}

	pattern := `(` + regexp.QuoteMeta(escape) + `)?` + // escape marker
		`\{\{[ \t]*` + // opening braces
		`#import` + // directive keyword
		`[ \t]+` + // separating whitespace
		`([a-zA-Z0-9 \t_./\\-]+)` + // referenced file path
		`@` + // tag delimiter
		`([a-zA-Z0-9_.-]+)` + // tag name
		`[ \t]*\}\}` // closing braces

	return &Scanner{re: regexp.MustCompile(pattern)}
}

// Scan returns every directive occurrence in body, escaped ones included,
// in ascending start order. Matches are non-overlapping and a single
// directive never spans multiple lines. Scan touches no state outside the
// body and performs no I/O.
func (s *Scanner) Scan(body string) []m.Directive {
	matches := s.re.FindAllStringSubmatchIndex(body, -1)
	if len(matches) == 0 {
		return nil
	}

	directives := make([]m.Directive, 0, len(matches))

	for _, match := range matches {
		start, end := match[0], match[1]

		d := m.Directive{
			Text:    body[start:end],
			File:    m.Path(strings.TrimSpace(group(body, match, groupFile))),
			Tag:     group(body, match, groupTag),
			Start:   start,
			End:     end,
			Escaped: match[2*groupEscape] >= 0,
		}

		directives = append(directives, d)
	}

	return directives
}

// group extracts a submatch by index, empty when the group did not take
// part in the match.
func group(body string, match []int, idx int) string {
	lo, hi := match[2*idx], match[2*idx+1]
	if lo < 0 {
		return ""
	}

	return body[lo:hi]
}
