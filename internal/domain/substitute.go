package domain

import (
	m "github.com/mouse-blink/bookimport/internal/model"
)

// Substitute rewrites body by replacing each live directive's exact span
// with its resolved text. resolved is keyed by the directive start offset;
// escaped directives and directives with no entry are left untouched.
//
// Directives are replaced in descending start order so that splicing one
// span never shifts the offsets of the spans still to be replaced: every
// remaining directive sits strictly before the one just spliced. Two
// textually identical directives therefore each receive their own
// resolved content.
func Substitute(body string, directives []m.Directive, resolved map[int]string) string {
	for i := len(directives) - 1; i >= 0; i-- {
		d := directives[i]
		if d.Escaped {
			continue
		}

		content, ok := resolved[d.Start]
		if !ok {
			continue
		}

		body = body[:d.Start] + content + body[d.End:]
	}

	return body
}
