package domain

import (
	"strings"
	"unicode/utf8"

	m "github.com/mouse-blink/bookimport/internal/model"
)

// markerKeyword introduces a tag marker line inside a referenced file:
//
//	# @import start cool-css
//	.box { display:block; }
//	# @import end cool-css
//
// Anything before the keyword (comment syntax of the host language) and
// anything after the tag token is ignored.
const markerKeyword = "@import"

// Extract returns the text strictly between the start and end marker lines
// for tag in data, re-joined with the file's own line separator. The
// marker lines themselves are excluded. path is used for error reporting
// only; Extract never reads the filesystem.
func Extract(path m.Path, data []byte, tag string) (string, error) {
	if !utf8.Valid(data) {
		return "", &InvalidEncodingError{Path: path}
	}

	sep := "\n"
	if strings.Contains(string(data), "\r\n") {
		sep = "\r\n"
	}

	lines := strings.Split(string(data), sep)

	start, end := -1, -1

	for i, line := range lines {
		if start < 0 && isMarkerLine(line, "start", tag) {
			start = i
		}

		if end < 0 && isMarkerLine(line, "end", tag) {
			end = i
		}

		if start >= 0 && end >= 0 {
			break
		}
	}

	switch {
	case start < 0:
		return "", &MissingStartTagError{Path: path, Tag: tag}
	case end < 0:
		return "", &MissingEndTagError{Path: path, Tag: tag}
	case end < start:
		return "", &InvertedTagOrderError{Path: path, Tag: tag}
	}

	return strings.Join(lines[start+1:end], sep), nil
}

// isMarkerLine reports whether line is a `@import <kind> <tag>` marker.
// The tag must match as a whole token: a `foo` marker line is not a match
// for tag `foo-bar` and vice versa.
func isMarkerLine(line, kind, tag string) bool {
	idx := strings.Index(line, markerKeyword)
	if idx < 0 {
		return false
	}

	fields := strings.Fields(line[idx:])
	if len(fields) < 3 {
		return false
	}

	return fields[0] == markerKeyword && fields[1] == kind && fields[2] == tag
}
