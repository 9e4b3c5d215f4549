package model

// Directive is a single import occurrence found in one chapter body.
// It lives for exactly one scan/substitute cycle and is never persisted.
type Directive struct {
	// Text is the literal matched span, escape marker included.
	//
	// {{#import ./fixture.css@cool-css }}
	Text string
	// File is the referenced file path, relative to the directory of the
	// chapter the directive was found in.
	//
	// ./fixture.css
	File Path
	// Tag names the region between the start and end marker lines of File.
	//
	// cool-css
	Tag string
	// Start is the byte offset of the first byte of Text in the body.
	Start int
	// End is the byte offset one past the last byte of Text.
	End int
	// Escaped marks a directive prefixed with the escape character. It is
	// reported for diagnostics but never resolved and never replaced.
	Escaped bool
}

// Resolution records one resolved (or merely discovered) directive for
// reporting in list and check output.
type Resolution struct {
	Chapter   string
	Directive Directive
}
